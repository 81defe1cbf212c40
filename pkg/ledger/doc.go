// Package ledger wraps the Hedera Go SDK with the operations the HIP-542
// flow needs: account creation, non-fungible token collection creation,
// batch minting, single NFT transfers, alias resolution and NFT ownership
// queries.
//
// Each Build*Tx function returns an unsigned, unfrozen transaction so it can
// be inspected offline. Client methods freeze, sign, execute and wait for
// the receipt; they never retry.
package ledger
