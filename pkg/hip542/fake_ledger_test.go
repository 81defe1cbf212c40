package hip542

import (
	"context"
	"fmt"

	"github.com/hashgraph-online/hip542-go/pkg/ledger"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

type fakeNft struct {
	owner    hedera.AccountID
	metadata []byte
}

type fakeToken struct {
	treasury hedera.AccountID
	nfts     []fakeNft
}

// fakeLedger mimics the network: aliases are bound to a fresh account number
// the first time a transfer names them.
type fakeLedger struct {
	nextAccount   uint64
	nextToken     uint64
	tokens        map[string]*fakeToken
	aliases       map[string]hedera.AccountID
	calls         []string
	errs          map[string]error
	mintSerials   func(count int) []int64
	ownerOverride *hedera.AccountID
	lastReceiver  hedera.AccountID
	closed        int
	closeErr      error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		nextAccount: 1000,
		nextToken:   5000,
		tokens:      map[string]*fakeToken{},
		aliases:     map[string]hedera.AccountID{},
		errs:        map[string]error{},
	}
}

func (f *fakeLedger) record(operation string) error {
	f.calls = append(f.calls, operation)
	return f.errs[operation]
}

func (f *fakeLedger) CreateAccount(ctx context.Context, initialBalanceHbar float64) (ledger.Identity, error) {
	if err := f.record("CreateAccount"); err != nil {
		return ledger.Identity{}, err
	}
	key, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return ledger.Identity{}, err
	}
	if _, err := ledger.BuildAccountCreateTx(key.PublicKey(), initialBalanceHbar); err != nil {
		return ledger.Identity{}, err
	}
	f.nextAccount++
	return ledger.Identity{AccountID: hedera.AccountID{Account: f.nextAccount}, PrivateKey: key}, nil
}

func (f *fakeLedger) CreateNonFungibleToken(ctx context.Context, params ledger.TokenCreateParams, treasuryKey hedera.PrivateKey) (hedera.TokenID, error) {
	if err := f.record("CreateNonFungibleToken"); err != nil {
		return hedera.TokenID{}, err
	}
	if _, err := ledger.BuildNonFungibleTokenCreateTx(params); err != nil {
		return hedera.TokenID{}, err
	}
	if treasuryKey.PublicKey().String() != params.AdminKey.String() {
		return hedera.TokenID{}, fmt.Errorf("INVALID_SIGNATURE")
	}
	f.nextToken++
	tokenID := hedera.TokenID{Token: f.nextToken}
	f.tokens[tokenID.String()] = &fakeToken{treasury: params.TreasuryAccountID}
	return tokenID, nil
}

func (f *fakeLedger) MintToken(ctx context.Context, tokenID hedera.TokenID, metadata [][]byte, supplyKey hedera.PrivateKey) (ledger.MintResult, error) {
	if err := f.record("MintToken"); err != nil {
		return ledger.MintResult{}, err
	}
	if _, err := ledger.BuildMintTx(tokenID, metadata); err != nil {
		return ledger.MintResult{}, err
	}
	token, ok := f.tokens[tokenID.String()]
	if !ok {
		return ledger.MintResult{}, fmt.Errorf("INVALID_TOKEN_ID")
	}

	serials := make([]int64, 0, len(metadata))
	for _, entry := range metadata {
		token.nfts = append(token.nfts, fakeNft{owner: token.treasury, metadata: entry})
		serials = append(serials, int64(len(token.nfts)))
	}
	if f.mintSerials != nil {
		serials = f.mintSerials(len(metadata))
	}
	return ledger.MintResult{Status: "SUCCESS", Serials: serials}, nil
}

func (f *fakeLedger) TransferNft(ctx context.Context, tokenID hedera.TokenID, serial int64, sender hedera.AccountID, senderKey hedera.PrivateKey, receiver hedera.AccountID) error {
	if err := f.record("TransferNft"); err != nil {
		return err
	}
	if _, err := ledger.BuildNftTransferTx(tokenID, serial, sender, receiver); err != nil {
		return err
	}
	nft, err := f.nft(tokenID, serial)
	if err != nil {
		return err
	}
	if nft.owner.String() != sender.String() {
		return fmt.Errorf("SENDER_DOES_NOT_OWN_NFT_SERIAL_NO")
	}

	resolved := receiver
	if receiver.AliasKey != nil {
		key := receiver.AliasKey.String()
		bound, ok := f.aliases[key]
		if !ok {
			f.nextAccount++
			bound = hedera.AccountID{Account: f.nextAccount}
			f.aliases[key] = bound
		}
		resolved = bound
	}
	nft.owner = resolved
	f.lastReceiver = receiver
	return nil
}

func (f *fakeLedger) GetAccountIDByAlias(ctx context.Context, aliasAccountID hedera.AccountID) (hedera.AccountID, error) {
	if err := f.record("GetAccountIDByAlias"); err != nil {
		return hedera.AccountID{}, err
	}
	if aliasAccountID.AliasKey == nil {
		return hedera.AccountID{}, fmt.Errorf("alias account ID carries no alias")
	}
	bound, ok := f.aliases[aliasAccountID.AliasKey.String()]
	if !ok {
		return hedera.AccountID{}, fmt.Errorf("INVALID_ACCOUNT_ID")
	}
	return bound, nil
}

func (f *fakeLedger) GetNftOwner(ctx context.Context, tokenID hedera.TokenID, serial int64) (hedera.AccountID, error) {
	if err := f.record("GetNftOwner"); err != nil {
		return hedera.AccountID{}, err
	}
	if f.ownerOverride != nil {
		return *f.ownerOverride, nil
	}
	nft, err := f.nft(tokenID, serial)
	if err != nil {
		return hedera.AccountID{}, err
	}
	return nft.owner, nil
}

func (f *fakeLedger) Close() error {
	f.closed++
	return f.closeErr
}

func (f *fakeLedger) nft(tokenID hedera.TokenID, serial int64) (*fakeNft, error) {
	token, ok := f.tokens[tokenID.String()]
	if !ok {
		return nil, fmt.Errorf("INVALID_TOKEN_ID")
	}
	if serial <= 0 || serial > int64(len(token.nfts)) {
		return nil, fmt.Errorf("INVALID_NFT_ID")
	}
	return &token.nfts[serial-1], nil
}
