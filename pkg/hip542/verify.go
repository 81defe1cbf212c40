package hip542

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/hashgraph-online/hip542-go/pkg/alias"
	"github.com/hashgraph-online/hip542-go/pkg/mirror"
	"github.com/hashgraph-online/hip542-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// MirrorReader is the read-only mirror node surface used for cross-checks.
type MirrorReader interface {
	GetAccount(ctx context.Context, accountIDOrAlias string) (mirror.AccountInfo, error)
	GetNft(ctx context.Context, tokenID string, serial int64) (mirror.Nft, error)
	GetTokenNfts(ctx context.Context, tokenID string, options mirror.NftQueryOptions) ([]mirror.Nft, error)
}

var _ MirrorReader = (*mirror.Client)(nil)

type Verification struct {
	TokenID           string `json:"token_id" yaml:"token_id"`
	Serial            int64  `json:"serial" yaml:"serial"`
	AliasEVMAddress   string `json:"alias_evm_address" yaml:"alias_evm_address"`
	ResolvedAccountID string `json:"resolved_account_id" yaml:"resolved_account_id"`
	OwnerAccountID    string `json:"owner_account_id" yaml:"owner_account_id"`
	Match             bool   `json:"match" yaml:"match"`
}

// VerifyWithMirror resolves the alias of publicKey through the mirror node
// and compares the result with the current owner of the NFT.
func VerifyWithMirror(
	ctx context.Context,
	reader MirrorReader,
	tokenID string,
	serial int64,
	publicKey hedera.PublicKey,
) (Verification, error) {
	if _, err := shared.ParseTokenID(tokenID); err != nil {
		return Verification{}, err
	}
	if serial <= 0 {
		return Verification{}, fmt.Errorf("serial number must be positive")
	}

	derived, err := alias.FromPublicKey(publicKey, alias.DefaultShard, alias.DefaultRealm)
	if err != nil {
		return Verification{}, err
	}

	account, err := reader.GetAccount(ctx, strings.ToLower(derived.EVMAddress))
	if err != nil {
		return Verification{}, fmt.Errorf("failed to resolve alias %s: %w", derived.EVMAddress, err)
	}
	if strings.TrimSpace(account.Account) == "" {
		return Verification{}, shared.ContractViolation("mirror account for alias %s has no account ID", derived.EVMAddress)
	}

	nft, err := reader.GetNft(ctx, tokenID, serial)
	if err != nil {
		return Verification{}, fmt.Errorf("failed to query nft owner: %w", err)
	}

	return Verification{
		TokenID:           tokenID,
		Serial:            serial,
		AliasEVMAddress:   derived.EVMAddress,
		ResolvedAccountID: account.Account,
		OwnerAccountID:    nft.AccountID,
		Match:             account.Account == nft.AccountID,
	}, nil
}

// CheckMintedBatch confirms that serials 1..N of the collection carry the
// given metadata in order.
func CheckMintedBatch(ctx context.Context, reader MirrorReader, tokenID string, metadata [][]byte) error {
	nfts, err := reader.GetTokenNfts(ctx, tokenID, mirror.NftQueryOptions{Order: "asc"})
	if err != nil {
		return fmt.Errorf("failed to list collection nfts: %w", err)
	}
	if len(nfts) != len(metadata) {
		return fmt.Errorf("collection %s holds %d nfts, expected %d", tokenID, len(nfts), len(metadata))
	}

	for index, nft := range nfts {
		if nft.SerialNumber != int64(index+1) {
			return fmt.Errorf("position %d holds serial %d, expected %d", index, nft.SerialNumber, index+1)
		}
		decoded, err := mirror.DecodeNftMetadata(nft)
		if err != nil {
			return fmt.Errorf("serial %d: %w", nft.SerialNumber, err)
		}
		if !bytes.Equal(decoded, metadata[index]) {
			return fmt.Errorf("serial %d carries metadata %q, expected %q", nft.SerialNumber, decoded, metadata[index])
		}
	}
	return nil
}
