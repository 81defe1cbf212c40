// Package hip542 runs the HIP-542 "account creation with NFT" flow as a
// linear pipeline of named stages:
//
//  1. provision-treasury: create a funded treasury account
//  2. issue-collection: create a NonFungibleUnique token and mint a batch
//  3. generate-alias: derive an ECDSA public-key alias account ID locally
//  4. transfer-nft: send one NFT from the treasury to the alias
//  5. resolve-alias: ask the network which account the alias became
//  6. verify-owner: check that account now owns the NFT
//
// Stages run strictly in order. The first failing stage aborts the run and
// every later stage is reported as skipped. An ownership mismatch is not an
// error; it is recorded in the Report.
//
// HIP-542: https://hips.hedera.com/hip/hip-542
package hip542
