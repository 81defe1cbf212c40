// Package alias derives HIP-542 public-key aliases. An alias is an
// account-ID-shaped value built from an ECDSA(secp256k1) public key and a
// shard/realm pair; it only becomes a real account once the network sees a
// transfer addressed to it.
//
// Derivation is purely local. Each derived alias is checked against the SDK
// contract: the alias account ID must carry the alias key, the key must be a
// valid compressed secp256k1 point, and the EVM address computed here must
// match the one the SDK reports.
package alias
