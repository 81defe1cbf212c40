package hip542

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashgraph-online/hip542-go/pkg/alias"
	"github.com/hashgraph-online/hip542-go/pkg/ledger"
	"github.com/hashgraph-online/hip542-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"go.uber.org/zap"
)

const (
	DefaultInitialBalanceHbar = 100
	DefaultSerial             = 1
)

type Options struct {
	Network            string
	InitialBalanceHbar float64
	CollectionName     string
	CollectionSymbol   string
	Metadata           [][]byte
	Serial             int64
	Shard              uint64
	Realm              uint64
	// RevealKeys logs generated private keys at debug level.
	RevealKeys bool
}

func DefaultOptions() Options {
	return Options{
		Network:            shared.NetworkTestnet,
		InitialBalanceHbar: DefaultInitialBalanceHbar,
		CollectionName:     DefaultCollectionName,
		CollectionSymbol:   DefaultCollectionSymbol,
		Metadata:           DefaultMetadata(),
		Serial:             DefaultSerial,
		Shard:              alias.DefaultShard,
		Realm:              alias.DefaultRealm,
	}
}

// Validate rejects options that would fail a stage after earlier stages
// already spent fees.
func (o Options) Validate() error {
	if o.InitialBalanceHbar < 0 {
		return &shared.ConfigError{Key: "initial-balance", Reason: "cannot be negative"}
	}
	if strings.TrimSpace(o.CollectionName) == "" {
		return &shared.ConfigError{Key: "collection-name"}
	}
	if strings.TrimSpace(o.CollectionSymbol) == "" {
		return &shared.ConfigError{Key: "collection-symbol"}
	}
	if len(o.Metadata) == 0 {
		return &shared.ConfigError{Key: "metadata", Reason: "at least one entry is required"}
	}
	if o.Serial <= 0 || o.Serial > int64(len(o.Metadata)) {
		return &shared.ConfigError{
			Key:    "serial",
			Reason: fmt.Sprintf("must be between 1 and %d", len(o.Metadata)),
		}
	}
	return nil
}

type Pipeline struct {
	ledger   Ledger
	logger   *zap.Logger
	options  Options
	newRunID func() string
}

type runState struct {
	credentials *Credentials
	treasury    hedera.AccountID
	tokenID     hedera.TokenID
	alias       alias.Alias
	resolved    hedera.AccountID
}

func NewPipeline(l Ledger, logger *zap.Logger, options Options) (*Pipeline, error) {
	if l == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if options.Network == "" {
		options.Network = shared.NetworkTestnet
	}

	return &Pipeline{
		ledger:   l,
		logger:   logger,
		options:  options,
		newRunID: func() string { return uuid.NewString() },
	}, nil
}

// Run executes every stage in order. The returned report is populated up to
// the failing stage when an error is returned.
func (p *Pipeline) Run(ctx context.Context) (Report, error) {
	report := Report{
		RunID:   p.newRunID(),
		Network: p.options.Network,
		Stages:  make([]StageResult, 0, len(Stages)),
	}
	state := &runState{credentials: NewCredentials()}
	defer state.credentials.Release()

	logger := p.logger.With(zap.String("run_id", report.RunID))
	steps := map[Stage]func(context.Context, *runState, *Report, *zap.Logger) error{
		StageProvisionTreasury: p.provisionTreasury,
		StageIssueCollection:   p.issueCollection,
		StageGenerateAlias:     p.generateAlias,
		StageTransferNft:       p.transferNft,
		StageResolveAlias:      p.resolveAlias,
		StageVerifyOwner:       p.verifyOwner,
	}

	var runErr error
	for _, stage := range Stages {
		if runErr != nil {
			report.Stages = append(report.Stages, StageResult{Stage: stage, Status: StageSkipped})
			continue
		}

		started := time.Now()
		err := ctx.Err()
		if err == nil {
			err = steps[stage](ctx, state, &report, logger.With(zap.String("stage", string(stage))))
		}
		result := StageResult{Stage: stage, Status: StageSucceeded, Duration: time.Since(started)}
		if err != nil {
			result.Status = StageFailed
			result.Error = err.Error()
			runErr = &StageError{Stage: stage, Err: err}
			logger.Error("stage failed", zap.String("stage", string(stage)), zap.Error(err))
		}
		report.Stages = append(report.Stages, result)
	}

	return report, runErr
}

func (p *Pipeline) provisionTreasury(ctx context.Context, state *runState, report *Report, logger *zap.Logger) error {
	treasury, err := p.ledger.CreateAccount(ctx, p.options.InitialBalanceHbar)
	if err != nil {
		return err
	}
	state.treasury = treasury.AccountID
	state.credentials.Put(credentialTreasury, treasury.PrivateKey)

	report.TreasuryAccountID = treasury.AccountID.String()
	report.TreasuryAccountURL = shared.HashScanAccountURL(p.options.Network, report.TreasuryAccountID)
	logger.Info("treasury account created",
		zap.String("account_id", report.TreasuryAccountID),
		zap.String("url", report.TreasuryAccountURL),
	)
	p.revealKey(logger, credentialTreasury, treasury.PrivateKey)
	return nil
}

func (p *Pipeline) issueCollection(ctx context.Context, state *runState, report *Report, logger *zap.Logger) error {
	treasuryKey, err := state.credentials.Get(credentialTreasury)
	if err != nil {
		return err
	}

	collection, err := IssueCollection(ctx, p.ledger, CollectionOptions{
		Name:     p.options.CollectionName,
		Symbol:   p.options.CollectionSymbol,
		Metadata: p.options.Metadata,
		Treasury: ledger.Identity{AccountID: state.treasury, PrivateKey: treasuryKey},
	})
	if !isZeroToken(collection.TokenID) {
		report.TokenID = collection.TokenID.String()
		report.TokenURL = shared.HashScanTokenURL(p.options.Network, report.TokenID)
		report.TokenSolidityAddress = collection.TokenID.ToSolidityAddress()
	}
	if err != nil {
		return err
	}

	state.tokenID = collection.TokenID
	state.credentials.Put(credentialSupply, collection.SupplyKey)
	report.Serials = collection.Serials

	logger.Info("collection issued",
		zap.String("token_id", report.TokenID),
		zap.String("url", report.TokenURL),
		zap.Int("minted", len(collection.Serials)),
	)
	p.revealKey(logger, credentialSupply, collection.SupplyKey)
	return nil
}

func (p *Pipeline) generateAlias(_ context.Context, state *runState, report *Report, logger *zap.Logger) error {
	logger.Info("creating a new account alias")

	derived, err := alias.Generate(p.options.Shard, p.options.Realm)
	if err != nil {
		return err
	}
	state.alias = derived
	state.credentials.Put(credentialAlias, derived.PrivateKey)

	report.AliasAccountID = derived.AccountID.String()
	report.AliasKey = derived.AliasKey().String()
	report.AliasEVMAddress = derived.EVMAddress
	logger.Info("alias derived",
		zap.String("alias_account_id", report.AliasAccountID),
		zap.String("alias_key", report.AliasKey),
		zap.String("evm_address", report.AliasEVMAddress),
	)
	p.revealKey(logger, credentialAlias, derived.PrivateKey)
	return nil
}

func (p *Pipeline) transferNft(ctx context.Context, state *runState, report *Report, logger *zap.Logger) error {
	treasuryKey, err := state.credentials.Get(credentialTreasury)
	if err != nil {
		return err
	}

	logger.Info("transferring the NFT",
		zap.String("token_id", state.tokenID.String()),
		zap.Int64("serial", p.options.Serial),
		zap.String("to", state.alias.AccountID.String()),
	)
	if err := p.ledger.TransferNft(ctx, state.tokenID, p.options.Serial, state.treasury, treasuryKey, state.alias.AccountID); err != nil {
		return err
	}
	report.TransferredSerial = p.options.Serial
	return nil
}

func (p *Pipeline) resolveAlias(ctx context.Context, state *runState, report *Report, logger *zap.Logger) error {
	resolved, err := p.ledger.GetAccountIDByAlias(ctx, state.alias.AccountID)
	if err != nil {
		return err
	}
	state.resolved = resolved

	report.ResolvedAccountID = resolved.String()
	report.ResolvedAccountURL = shared.HashScanAccountURL(p.options.Network, report.ResolvedAccountID)
	logger.Info("the normal account ID of the given alias",
		zap.String("account_id", report.ResolvedAccountID),
		zap.String("url", report.ResolvedAccountURL),
	)
	return nil
}

func (p *Pipeline) verifyOwner(ctx context.Context, state *runState, report *Report, logger *zap.Logger) error {
	owner, err := p.ledger.GetNftOwner(ctx, state.tokenID, p.options.Serial)
	if err != nil {
		return err
	}

	report.OwnerAccountID = owner.String()
	report.Match = report.OwnerAccountID == state.resolved.String()
	if report.Match {
		logger.Info(report.MatchMessage(), zap.String("account_id", report.OwnerAccountID))
	} else {
		logger.Warn(report.MatchMessage(),
			zap.String("owner_account_id", report.OwnerAccountID),
			zap.String("resolved_account_id", report.ResolvedAccountID),
		)
	}
	return nil
}

func (p *Pipeline) revealKey(logger *zap.Logger, name string, key hedera.PrivateKey) {
	if !p.options.RevealKeys {
		return
	}
	logger.Debug("generated private key", zap.String("key", name), zap.String("private_key", key.String()))
}

func isZeroToken(tokenID hedera.TokenID) bool {
	return tokenID.Shard == 0 && tokenID.Realm == 0 && tokenID.Token == 0
}

// Execute loads the operator configuration, opens a session, runs the
// pipeline and closes the session on every path. No session is opened when
// the configuration or options are invalid.
func Execute(
	ctx context.Context,
	loadConfig func() (shared.OperatorConfig, error),
	openSession SessionFactory,
	logger *zap.Logger,
	options Options,
) (report Report, err error) {
	if err := options.Validate(); err != nil {
		return Report{}, err
	}

	config, err := loadConfig()
	if err != nil {
		return Report{}, err
	}
	if config.Network != "" {
		options.Network = config.Network
	}

	session, err := openSession(config, logger)
	if err != nil {
		return Report{}, fmt.Errorf("failed to open session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close session: %w", closeErr))
		}
	}()

	pipeline, err := NewPipeline(session, logger, options)
	if err != nil {
		return Report{}, err
	}
	return pipeline.Run(ctx)
}
