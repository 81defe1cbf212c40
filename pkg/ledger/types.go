package ledger

import (
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"go.uber.org/zap"
)

const (
	DefaultMaxTokenCreateFeeHbar = 30
)

type ClientConfig struct {
	OperatorAccountID  string
	OperatorPrivateKey string
	Network            string
	Logger             *zap.Logger
}

// Identity is an account together with the key that signs for it.
type Identity struct {
	AccountID  hedera.AccountID
	PrivateKey hedera.PrivateKey
}

type TokenCreateParams struct {
	Name              string
	Symbol            string
	TreasuryAccountID hedera.AccountID
	AdminKey          hedera.PublicKey
	SupplyKey         hedera.PublicKey
	InitialSupply     uint64
	MaxTransactionFee float64
	TransactionMemo   string
}

type MintResult struct {
	Status  string
	Serials []int64
}
