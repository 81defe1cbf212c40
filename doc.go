// hip542-go demonstrates HIP-542 automatic account creation on Hedera
// testnet: an NFT transferred to an ECDSA public-key alias creates the
// receiving account, which is then resolved and checked against the NFT owner.
//
// # Packages
//
//   - pkg/shared: operator configuration, network, key and id parsing
//   - pkg/ledger: the Hedera session (account create, token create, mint,
//     transfer, alias resolution, NFT owner query)
//   - pkg/alias: ECDSA alias generation and EVM address derivation
//   - pkg/mirror: read-only mirror node client
//   - pkg/hip542: the staged flow, its report and mirror cross-checks
//
// HIP-542: https://hips.hedera.com/hip/hip-542
//
// # Usage
//
//	OPERATOR_ACCOUNT_ID=0.0.1234 OPERATOR_PRIVATE_KEY=302e... \
//	  go run ./examples/hip542-account-creation run
package hip542go
