package shared

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

// ParsePrivateKey accepts ED25519, ECDSA or DER encoded private keys.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}

// ParseAccountID parses a shard.realm.num account identifier.
func ParseAccountID(raw string) (hedera.AccountID, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.AccountID{}, fmt.Errorf("account ID cannot be empty")
	}
	accountID, err := hedera.AccountIDFromString(candidate)
	if err != nil {
		return hedera.AccountID{}, fmt.Errorf("invalid account ID %q: %w", candidate, err)
	}
	return accountID, nil
}

// ParseTokenID parses a shard.realm.num token identifier.
func ParseTokenID(raw string) (hedera.TokenID, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.TokenID{}, fmt.Errorf("token ID cannot be empty")
	}
	tokenID, err := hedera.TokenIDFromString(candidate)
	if err != nil {
		return hedera.TokenID{}, fmt.Errorf("invalid token ID %q: %w", candidate, err)
	}
	return tokenID, nil
}
