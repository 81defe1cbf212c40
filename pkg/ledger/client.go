package ledger

import (
	"context"
	"fmt"

	"github.com/hashgraph-online/hip542-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"go.uber.org/zap"
)

type Client struct {
	hederaClient      *hedera.Client
	operatorAccountID hedera.AccountID
	network           string
	logger            *zap.Logger
}

// NewClient builds a session bound to the network with the operator as the
// default payer and signer. Close must be called to release the connections.
func NewClient(config ClientConfig) (*Client, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}

	operatorID, err := shared.ParseAccountID(config.OperatorAccountID)
	if err != nil {
		return nil, fmt.Errorf("invalid operator account ID: %w", err)
	}
	operatorKey, err := shared.ParsePrivateKey(config.OperatorPrivateKey)
	if err != nil {
		return nil, fmt.Errorf("invalid operator private key: %w", err)
	}

	hederaClient, err := shared.NewHederaClient(network)
	if err != nil {
		return nil, err
	}
	hederaClient.SetOperator(operatorID, operatorKey)

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		hederaClient:      hederaClient,
		operatorAccountID: operatorID,
		network:           network,
		logger:            logger,
	}, nil
}

func (c *Client) HederaClient() *hedera.Client {
	return c.hederaClient
}

func (c *Client) OperatorAccountID() hedera.AccountID {
	return c.operatorAccountID
}

func (c *Client) Network() string {
	return c.network
}

func (c *Client) Close() error {
	if c.hederaClient == nil {
		return nil
	}
	err := c.hederaClient.Close()
	c.hederaClient = nil
	return err
}

// CreateAccount creates an account with a freshly generated ED25519 key.
func (c *Client) CreateAccount(ctx context.Context, initialBalanceHbar float64) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}

	privateKey, err := hedera.PrivateKeyGenerateEd25519()
	if err != nil {
		return Identity{}, fmt.Errorf("failed to generate ed25519 private key: %w", err)
	}

	transaction, err := BuildAccountCreateTx(privateKey.PublicKey(), initialBalanceHbar)
	if err != nil {
		return Identity{}, err
	}

	response, err := transaction.Execute(c.hederaClient)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to execute account create transaction: %w", err)
	}
	receipt, err := c.receipt(response, "account create")
	if err != nil {
		return Identity{}, err
	}
	if receipt.AccountID == nil {
		return Identity{}, shared.ContractViolation("account create receipt for %s did not include account ID", response.TransactionID.String())
	}

	c.logger.Debug("account created",
		zap.String("account_id", receipt.AccountID.String()),
		zap.String("transaction_id", response.TransactionID.String()),
	)

	return Identity{
		AccountID:  *receipt.AccountID,
		PrivateKey: privateKey,
	}, nil
}

// CreateNonFungibleToken creates the collection. The transaction is co-signed
// by treasuryKey; the operator signs and pays on execute.
func (c *Client) CreateNonFungibleToken(
	ctx context.Context,
	params TokenCreateParams,
	treasuryKey hedera.PrivateKey,
) (hedera.TokenID, error) {
	if err := ctx.Err(); err != nil {
		return hedera.TokenID{}, err
	}

	transaction, err := BuildNonFungibleTokenCreateTx(params)
	if err != nil {
		return hedera.TokenID{}, err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return hedera.TokenID{}, fmt.Errorf("failed to freeze token create transaction: %w", err)
	}

	response, err := frozenTransaction.Sign(treasuryKey).Execute(c.hederaClient)
	if err != nil {
		return hedera.TokenID{}, fmt.Errorf("failed to execute token create transaction: %w", err)
	}
	receipt, err := c.receipt(response, "token create")
	if err != nil {
		return hedera.TokenID{}, err
	}
	if receipt.TokenID == nil {
		return hedera.TokenID{}, shared.ContractViolation("token create receipt for %s did not include token ID", response.TransactionID.String())
	}

	c.logger.Info("token type creation finished",
		zap.String("status", receipt.Status.String()),
		zap.String("token_id", receipt.TokenID.String()),
		zap.String("solidity_address", receipt.TokenID.ToSolidityAddress()),
	)

	return *receipt.TokenID, nil
}

// MintToken mints every metadata entry in one transaction signed by supplyKey.
func (c *Client) MintToken(
	ctx context.Context,
	tokenID hedera.TokenID,
	metadata [][]byte,
	supplyKey hedera.PrivateKey,
) (MintResult, error) {
	if err := ctx.Err(); err != nil {
		return MintResult{}, err
	}

	transaction, err := BuildMintTx(tokenID, metadata)
	if err != nil {
		return MintResult{}, err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return MintResult{}, fmt.Errorf("failed to freeze mint transaction: %w", err)
	}

	response, err := frozenTransaction.Sign(supplyKey).Execute(c.hederaClient)
	if err != nil {
		return MintResult{}, fmt.Errorf("failed to execute mint transaction: %w", err)
	}
	receipt, err := c.receipt(response, "mint")
	if err != nil {
		return MintResult{}, err
	}

	c.logger.Info("token mint finished",
		zap.String("status", receipt.Status.String()),
		zap.String("token_id", tokenID.String()),
		zap.Int64s("serials", receipt.SerialNumbers),
	)

	return MintResult{
		Status:  receipt.Status.String(),
		Serials: append([]int64(nil), receipt.SerialNumbers...),
	}, nil
}

// TransferNft moves one NFT from sender to receiver, signed by senderKey.
// The receiver may be an alias account ID.
func (c *Client) TransferNft(
	ctx context.Context,
	tokenID hedera.TokenID,
	serial int64,
	sender hedera.AccountID,
	senderKey hedera.PrivateKey,
	receiver hedera.AccountID,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	transaction, err := BuildNftTransferTx(tokenID, serial, sender, receiver)
	if err != nil {
		return err
	}

	frozenTransaction, err := transaction.FreezeWith(c.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to freeze nft transfer transaction: %w", err)
	}

	response, err := frozenTransaction.Sign(senderKey).Execute(c.hederaClient)
	if err != nil {
		return fmt.Errorf("failed to execute nft transfer transaction: %w", err)
	}
	if _, err := c.receipt(response, "nft transfer"); err != nil {
		return err
	}

	c.logger.Debug("nft transferred",
		zap.String("token_id", tokenID.String()),
		zap.Int64("serial", serial),
		zap.String("transaction_id", response.TransactionID.String()),
	)
	return nil
}

// GetAccountIDByAlias asks the network which account the alias is bound to.
func (c *Client) GetAccountIDByAlias(ctx context.Context, aliasAccountID hedera.AccountID) (hedera.AccountID, error) {
	if err := ctx.Err(); err != nil {
		return hedera.AccountID{}, err
	}
	if aliasAccountID.AliasKey == nil && aliasAccountID.AliasEvmAddress == nil {
		return hedera.AccountID{}, fmt.Errorf("alias account ID %s carries no alias", aliasAccountID.String())
	}

	info, err := hedera.NewAccountInfoQuery().
		SetAccountID(aliasAccountID).
		Execute(c.hederaClient)
	if err != nil {
		return hedera.AccountID{}, fmt.Errorf("failed to query account info for alias: %w", err)
	}
	if info.AccountID.AliasKey != nil || info.AccountID.Account == 0 {
		return hedera.AccountID{}, shared.ContractViolation("account info for alias %s did not resolve to an account number", aliasAccountID.String())
	}

	return info.AccountID, nil
}

// GetNftOwner returns the current owner of one NFT.
func (c *Client) GetNftOwner(ctx context.Context, tokenID hedera.TokenID, serial int64) (hedera.AccountID, error) {
	if err := ctx.Err(); err != nil {
		return hedera.AccountID{}, err
	}
	if serial <= 0 {
		return hedera.AccountID{}, fmt.Errorf("serial number must be positive")
	}

	nftInfos, err := hedera.NewTokenNftInfoQuery().
		SetNftID(hedera.NftID{TokenID: tokenID, SerialNumber: serial}).
		Execute(c.hederaClient)
	if err != nil {
		return hedera.AccountID{}, fmt.Errorf("failed to query nft info: %w", err)
	}
	if len(nftInfos) == 0 {
		return hedera.AccountID{}, shared.ContractViolation("nft info query for %s/%d returned no records", tokenID.String(), serial)
	}

	owner := nftInfos[0].AccountID
	c.logger.Info("current nft owner",
		zap.String("owner_account_id", owner.String()),
		zap.Int64("serial", serial),
	)
	return owner, nil
}

func (c *Client) receipt(response hedera.TransactionResponse, operation string) (hedera.TransactionReceipt, error) {
	receipt, err := response.GetReceipt(c.hederaClient)
	if err != nil {
		return hedera.TransactionReceipt{}, fmt.Errorf("failed to retrieve %s receipt: %w", operation, err)
	}
	if receipt.Status != hedera.StatusSuccess {
		return hedera.TransactionReceipt{}, fmt.Errorf("%s transaction failed with status %s", operation, receipt.Status.String())
	}
	return receipt, nil
}
