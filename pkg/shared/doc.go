// Package shared provides the common building blocks of the HIP-542 example:
// network normalization, operator environment variable loading, Hedera client
// construction, key parsing helpers, explorer links and the error taxonomy
// shared by every other package.
//
// # Environment Variables
//
// The operator identity is read from OPERATOR_ACCOUNT_ID and
// OPERATOR_PRIVATE_KEY (HEDERA_ACCOUNT_ID / HEDERA_PRIVATE_KEY and the
// OPERATOR_ID / OPERATOR_KEY pair are accepted as fallbacks). A .env file in
// the working directory or any parent directory is loaded first; variables
// already present in the process environment are never overridden.
//
// # HIP-542
//
// HIP-542: https://hips.hedera.com/hip/hip-542
package shared
