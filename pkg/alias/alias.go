package alias

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hashgraph-online/hip542-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	DefaultShard uint64 = 0
	DefaultRealm uint64 = 0
)

type Alias struct {
	PrivateKey hedera.PrivateKey
	PublicKey  hedera.PublicKey
	AccountID  hedera.AccountID
	EVMAddress string
	hasPrivate bool
}

// HasPrivateKey reports whether the alias was derived from a private key.
func (a Alias) HasPrivateKey() bool {
	return a.hasPrivate
}

// AliasKey returns the public key carried by the alias account ID.
func (a Alias) AliasKey() hedera.PublicKey {
	if a.AccountID.AliasKey == nil {
		return hedera.PublicKey{}
	}
	return *a.AccountID.AliasKey
}

// Generate creates a fresh ECDSA key pair and derives its alias account ID.
func Generate(shard, realm uint64) (Alias, error) {
	privateKey, err := hedera.PrivateKeyGenerateEcdsa()
	if err != nil {
		return Alias{}, fmt.Errorf("failed to generate ecdsa private key: %w", err)
	}
	return FromPrivateKey(privateKey, shard, realm)
}

func FromPrivateKey(privateKey hedera.PrivateKey, shard, realm uint64) (Alias, error) {
	derived, err := FromPublicKey(privateKey.PublicKey(), shard, realm)
	if err != nil {
		return Alias{}, err
	}
	derived.PrivateKey = privateKey
	derived.hasPrivate = true
	return derived, nil
}

// FromPublicKey derives the alias for an existing ECDSA public key.
func FromPublicKey(publicKey hedera.PublicKey, shard, realm uint64) (Alias, error) {
	evmAddress, err := EVMAddress(publicKey)
	if err != nil {
		return Alias{}, err
	}

	accountID := publicKey.ToAccountID(shard, realm)
	if accountID == nil || accountID.AliasKey == nil {
		return Alias{}, shared.ContractViolation("alias account ID for %s has no alias key", publicKey.String())
	}

	sdkAddress := strings.TrimPrefix(strings.ToLower(publicKey.ToEvmAddress()), "0x")
	if sdkAddress != strings.ToLower(strings.TrimPrefix(evmAddress, "0x")) {
		return Alias{}, shared.ContractViolation(
			"evm address mismatch for %s: sdk reported %s, derived %s",
			publicKey.String(),
			sdkAddress,
			evmAddress,
		)
	}

	return Alias{
		PublicKey:  publicKey,
		AccountID:  *accountID,
		EVMAddress: evmAddress,
	}, nil
}

// ParsePublicKey parses a hex or DER encoded ECDSA public key.
func ParsePublicKey(raw string) (hedera.PublicKey, error) {
	candidate := strings.TrimPrefix(strings.TrimSpace(raw), "0x")
	if candidate == "" {
		return hedera.PublicKey{}, fmt.Errorf("public key cannot be empty")
	}

	publicKey, err := hedera.PublicKeyFromStringECDSA(candidate)
	if err == nil {
		return publicKey, nil
	}
	publicKey, genericErr := hedera.PublicKeyFromString(candidate)
	if genericErr != nil {
		return hedera.PublicKey{}, fmt.Errorf("invalid ecdsa public key: %w", err)
	}
	return publicKey, nil
}

// EVMAddress returns the EIP-55 checksummed address of an ECDSA public key.
func EVMAddress(publicKey hedera.PublicKey) (string, error) {
	raw := publicKey.BytesRaw()
	parsed, err := btcec.ParsePubKey(raw)
	if err != nil {
		return "", fmt.Errorf("alias key is not a secp256k1 public key: %w", err)
	}

	uncompressed := parsed.SerializeUncompressed()
	digest := crypto.Keccak256(uncompressed[1:])
	return common.BytesToAddress(digest[12:]).Hex(), nil
}
