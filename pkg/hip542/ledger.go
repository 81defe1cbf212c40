package hip542

import (
	"context"

	"github.com/hashgraph-online/hip542-go/pkg/ledger"
	"github.com/hashgraph-online/hip542-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"go.uber.org/zap"
)

// Ledger is the remote collaborator the pipeline drives. *ledger.Client
// implements it against a live network.
type Ledger interface {
	CreateAccount(ctx context.Context, initialBalanceHbar float64) (ledger.Identity, error)
	CreateNonFungibleToken(ctx context.Context, params ledger.TokenCreateParams, treasuryKey hedera.PrivateKey) (hedera.TokenID, error)
	MintToken(ctx context.Context, tokenID hedera.TokenID, metadata [][]byte, supplyKey hedera.PrivateKey) (ledger.MintResult, error)
	TransferNft(ctx context.Context, tokenID hedera.TokenID, serial int64, sender hedera.AccountID, senderKey hedera.PrivateKey, receiver hedera.AccountID) error
	GetAccountIDByAlias(ctx context.Context, aliasAccountID hedera.AccountID) (hedera.AccountID, error)
	GetNftOwner(ctx context.Context, tokenID hedera.TokenID, serial int64) (hedera.AccountID, error)
}

type Session interface {
	Ledger
	Close() error
}

type SessionFactory func(config shared.OperatorConfig, logger *zap.Logger) (Session, error)

var _ Session = (*ledger.Client)(nil)

// OpenLedgerSession opens a live session for the operator.
func OpenLedgerSession(config shared.OperatorConfig, logger *zap.Logger) (Session, error) {
	client, err := ledger.NewClient(ledger.ClientConfig{
		OperatorAccountID:  config.AccountID,
		OperatorPrivateKey: config.PrivateKey,
		Network:            config.Network,
		Logger:             logger,
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
