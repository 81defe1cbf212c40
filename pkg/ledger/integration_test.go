package ledger

import (
	"context"
	"os"
	"testing"

	"github.com/hashgraph-online/hip542-go/pkg/alias"
	"github.com/hashgraph-online/hip542-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

func TestLedgerIntegration_TransferToAliasCreatesAccount(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") != "1" {
		t.Skip("set RUN_INTEGRATION=1 to run live integration tests")
	}

	operatorConfig, err := shared.OperatorConfigFromEnv()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}

	client, err := NewClient(ClientConfig{
		OperatorAccountID:  operatorConfig.AccountID,
		OperatorPrivateKey: operatorConfig.PrivateKey,
		Network:            operatorConfig.Network,
	})
	if err != nil {
		t.Fatalf("failed to create ledger client: %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	treasury, err := client.CreateAccount(ctx, 20)
	if err != nil {
		t.Fatalf("failed to create treasury: %v", err)
	}
	t.Logf("treasury %s", treasury.AccountID.String())

	supplyKey, err := hedera.PrivateKeyGenerateEcdsa()
	if err != nil {
		t.Fatalf("failed to generate supply key: %v", err)
	}
	tokenID, err := client.CreateNonFungibleToken(ctx, TokenCreateParams{
		Name:              "ledger integration",
		Symbol:            "LINT",
		TreasuryAccountID: treasury.AccountID,
		AdminKey:          treasury.PrivateKey.PublicKey(),
		SupplyKey:         supplyKey.PublicKey(),
	}, treasury.PrivateKey)
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	minted, err := client.MintToken(ctx, tokenID, [][]byte{[]byte("ipfs://one"), []byte("ipfs://two")}, supplyKey)
	if err != nil {
		t.Fatalf("failed to mint: %v", err)
	}
	if len(minted.Serials) != 2 || minted.Serials[0] != 1 || minted.Serials[1] != 2 {
		t.Fatalf("unexpected serials %v", minted.Serials)
	}

	derived, err := alias.Generate(alias.DefaultShard, alias.DefaultRealm)
	if err != nil {
		t.Fatalf("failed to generate alias: %v", err)
	}
	if err := client.TransferNft(ctx, tokenID, 1, treasury.AccountID, treasury.PrivateKey, derived.AccountID); err != nil {
		t.Fatalf("failed to transfer to alias: %v", err)
	}

	resolved, err := client.GetAccountIDByAlias(ctx, derived.AccountID)
	if err != nil {
		t.Fatalf("failed to resolve alias: %v", err)
	}
	again, err := client.GetAccountIDByAlias(ctx, derived.AccountID)
	if err != nil {
		t.Fatalf("failed to resolve alias twice: %v", err)
	}
	if resolved.String() != again.String() {
		t.Fatalf("alias resolved to %s then %s", resolved.String(), again.String())
	}

	owner, err := client.GetNftOwner(ctx, tokenID, 1)
	if err != nil {
		t.Fatalf("failed to query owner: %v", err)
	}
	if owner.String() != resolved.String() {
		t.Fatalf("owner %s does not match resolved alias account %s", owner.String(), resolved.String())
	}
}
