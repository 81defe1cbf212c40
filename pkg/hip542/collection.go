package hip542

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashgraph-online/hip542-go/pkg/ledger"
	"github.com/hashgraph-online/hip542-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	DefaultCollectionName   = "HIP-542 Example Collection"
	DefaultCollectionSymbol = "HIP-542"
)

var defaultMetadataURIs = []string{
	"ipfs://bafkreiap62fsqxmo4hy45bmwiqolqqtkhtehghqauixvv5mcq7uofdpvt4",
	"ipfs://bafkreibvluvlf36lilrqoaum54ga3nlumms34m4kab2x67f5piofmo5fsa",
	"ipfs://bafkreidrqy67amvygjnvgr2mgdgqg2alaowoy34ljubot6qwf6bcf4yma4",
	"ipfs://bafkreicoorrcx3d4foreggz72aedxhosuk3cjgumglstokuhw2cmz22n7u",
	"ipfs://bafkreidv7k5vfn6gnj5mhahnrvhxep4okw75dwbt6o4r3rhe3ktraddf5a",
}

// DefaultMetadata returns the five IPFS metadata references minted by default.
func DefaultMetadata() [][]byte {
	return MetadataFromURIs(defaultMetadataURIs)
}

func MetadataFromURIs(uris []string) [][]byte {
	metadata := make([][]byte, 0, len(uris))
	for _, uri := range uris {
		metadata = append(metadata, []byte(strings.TrimSpace(uri)))
	}
	return metadata
}

type CollectionOptions struct {
	Name     string
	Symbol   string
	Metadata [][]byte
	Treasury ledger.Identity
}

type Collection struct {
	TokenID    hedera.TokenID
	SupplyKey  hedera.PrivateKey
	Serials    []int64
	MintStatus string
}

// IssueCollection generates a supply key, creates the collection with the
// treasury as admin and mints the whole metadata batch. There is no
// compensation when the mint fails after creation: the empty collection stays
// on the ledger and the mint error is returned.
func IssueCollection(ctx context.Context, l Ledger, options CollectionOptions) (Collection, error) {
	supplyKey, err := hedera.PrivateKeyGenerateEcdsa()
	if err != nil {
		return Collection{}, fmt.Errorf("failed to generate supply key: %w", err)
	}

	tokenID, err := l.CreateNonFungibleToken(ctx, ledger.TokenCreateParams{
		Name:              options.Name,
		Symbol:            options.Symbol,
		TreasuryAccountID: options.Treasury.AccountID,
		AdminKey:          options.Treasury.PrivateKey.PublicKey(),
		SupplyKey:         supplyKey.PublicKey(),
	}, options.Treasury.PrivateKey)
	if err != nil {
		return Collection{}, err
	}

	collection := Collection{TokenID: tokenID, SupplyKey: supplyKey}

	minted, err := l.MintToken(ctx, tokenID, options.Metadata, supplyKey)
	if err != nil {
		return collection, fmt.Errorf("collection %s created but mint failed: %w", tokenID.String(), err)
	}
	if len(minted.Serials) != len(options.Metadata) {
		return collection, shared.ContractViolation(
			"mint of %d entries returned %d serial numbers",
			len(options.Metadata),
			len(minted.Serials),
		)
	}
	for index, serial := range minted.Serials {
		if serial != int64(index+1) {
			return collection, shared.ContractViolation(
				"metadata entry %d was assigned serial %d, expected %d",
				index,
				serial,
				index+1,
			)
		}
	}

	collection.Serials = minted.Serials
	collection.MintStatus = minted.Status
	return collection, nil
}
