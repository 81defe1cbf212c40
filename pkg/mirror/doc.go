// Package mirror provides a small Hedera Mirror Node REST client. It reads
// account state (by account ID, public-key alias or EVM address) and NFT
// ownership, giving a read-only view of the ledger that can be compared with
// what the consensus nodes reported during a run.
//
// Responses may be brotli or gzip encoded; both are decoded transparently.
//
// # Hedera Mirror Node
//
// REST API reference: https://docs.hedera.com/hedera/sdks-and-apis/rest-api
package mirror
