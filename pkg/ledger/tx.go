package ledger

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// BuildAccountCreateTx builds an account creation funded with initialBalanceHbar.
func BuildAccountCreateTx(publicKey hedera.PublicKey, initialBalanceHbar float64) (*hedera.AccountCreateTransaction, error) {
	if len(publicKey.BytesRaw()) == 0 {
		return nil, fmt.Errorf("public key is required")
	}
	if initialBalanceHbar < 0 {
		return nil, fmt.Errorf("initial balance cannot be negative")
	}

	return hedera.NewAccountCreateTransaction().
		SetKey(publicKey).
		SetInitialBalance(hedera.NewHbar(initialBalanceHbar)), nil
}

// BuildNonFungibleTokenCreateTx builds a NonFungibleUnique token creation.
func BuildNonFungibleTokenCreateTx(params TokenCreateParams) (*hedera.TokenCreateTransaction, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, fmt.Errorf("token name is required")
	}
	symbol := strings.TrimSpace(params.Symbol)
	if symbol == "" {
		return nil, fmt.Errorf("token symbol is required")
	}
	if isZeroAccountID(params.TreasuryAccountID) {
		return nil, fmt.Errorf("treasury account ID is required")
	}
	if len(params.SupplyKey.BytesRaw()) == 0 {
		return nil, fmt.Errorf("supply key is required")
	}
	if len(params.AdminKey.BytesRaw()) == 0 {
		return nil, fmt.Errorf("admin key is required")
	}

	maxFee := params.MaxTransactionFee
	if maxFee <= 0 {
		maxFee = DefaultMaxTokenCreateFeeHbar
	}

	transaction := hedera.NewTokenCreateTransaction().
		SetTokenName(name).
		SetTokenSymbol(symbol).
		SetTokenType(hedera.TokenTypeNonFungibleUnique).
		SetDecimals(0).
		SetInitialSupply(params.InitialSupply).
		SetTreasuryAccountID(params.TreasuryAccountID).
		SetSupplyKey(params.SupplyKey).
		SetAdminKey(params.AdminKey).
		SetMaxTransactionFee(hedera.NewHbar(maxFee))

	if memo := strings.TrimSpace(params.TransactionMemo); memo != "" {
		transaction.SetTransactionMemo(memo)
	}

	return transaction, nil
}

// BuildMintTx builds a single mint carrying every metadata entry as one batch.
// The network assigns serial numbers in slice order.
func BuildMintTx(tokenID hedera.TokenID, metadata [][]byte) (*hedera.TokenMintTransaction, error) {
	if isZeroTokenID(tokenID) {
		return nil, fmt.Errorf("token ID is required")
	}
	if len(metadata) == 0 {
		return nil, fmt.Errorf("at least one metadata entry is required")
	}
	for index, entry := range metadata {
		if len(entry) == 0 {
			return nil, fmt.Errorf("metadata entry %d is empty", index)
		}
	}

	return hedera.NewTokenMintTransaction().
		SetTokenID(tokenID).
		SetMetadatas(metadata), nil
}

// BuildNftTransferTx builds a single-leg NFT transfer.
func BuildNftTransferTx(
	tokenID hedera.TokenID,
	serial int64,
	sender hedera.AccountID,
	receiver hedera.AccountID,
) (*hedera.TransferTransaction, error) {
	if isZeroTokenID(tokenID) {
		return nil, fmt.Errorf("token ID is required")
	}
	if serial <= 0 {
		return nil, fmt.Errorf("serial number must be positive")
	}
	if isZeroAccountID(sender) {
		return nil, fmt.Errorf("sender account ID is required")
	}
	if isZeroAccountID(receiver) {
		return nil, fmt.Errorf("receiver account ID is required")
	}

	nftID := hedera.NftID{TokenID: tokenID, SerialNumber: serial}
	return hedera.NewTransferTransaction().AddNftTransfer(nftID, sender, receiver), nil
}

func isZeroAccountID(accountID hedera.AccountID) bool {
	return accountID.Account == 0 && accountID.AliasKey == nil && accountID.AliasEvmAddress == nil
}

func isZeroTokenID(tokenID hedera.TokenID) bool {
	return tokenID.Shard == 0 && tokenID.Realm == 0 && tokenID.Token == 0
}
