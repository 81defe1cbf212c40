package hip542

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hashgraph-online/hip542-go/pkg/shared"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

var allOperations = []string{
	"CreateAccount",
	"CreateNonFungibleToken",
	"MintToken",
	"TransferNft",
	"GetAccountIDByAlias",
	"GetNftOwner",
}

func newTestPipeline(t *testing.T, l Ledger, mutate func(*Options)) *Pipeline {
	t.Helper()
	options := DefaultOptions()
	if mutate != nil {
		mutate(&options)
	}
	pipeline, err := NewPipeline(l, zaptest.NewLogger(t), options)
	require.NoError(t, err)
	pipeline.newRunID = func() string { return "run-1" }
	return pipeline
}

func TestRunCompletesAndOwnerMatchesResolvedAccount(t *testing.T) {
	fake := newFakeLedger()
	report, err := newTestPipeline(t, fake, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, allOperations, fake.calls)
	assert.True(t, report.Completed())
	assert.True(t, report.Match)
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, shared.NetworkTestnet, report.Network)
	assert.NotEmpty(t, report.TreasuryAccountID)
	assert.NotEmpty(t, report.TokenID)
	assert.NotEmpty(t, report.TokenSolidityAddress)
	assert.NotEmpty(t, report.AliasKey)
	assert.NotEmpty(t, report.AliasEVMAddress)
	assert.Equal(t, report.ResolvedAccountID, report.OwnerAccountID)
	assert.NotEqual(t, report.TreasuryAccountID, report.ResolvedAccountID)
	assert.Equal(t, int64(1), report.TransferredSerial)
	assert.Equal(t, "https://hashscan.io/testnet/account/"+report.TreasuryAccountID, report.TreasuryAccountURL)

	require.Len(t, report.Stages, len(Stages))
	for index, result := range report.Stages {
		assert.Equal(t, Stages[index], result.Stage)
		assert.Equal(t, StageSucceeded, result.Status)
	}
}

func TestRunMintsBatchInListOrder(t *testing.T) {
	fake := newFakeLedger()
	report, err := newTestPipeline(t, fake, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, report.Serials)

	token := fake.tokens[report.TokenID]
	require.NotNil(t, token)
	require.Len(t, token.nfts, len(defaultMetadataURIs))
	for index, uri := range defaultMetadataURIs {
		assert.Equal(t, uri, string(token.nfts[index].metadata), "serial %d", index+1)
	}
}

func TestRunRoundTripsEverySerial(t *testing.T) {
	for serial := int64(1); serial <= int64(len(defaultMetadataURIs)); serial++ {
		t.Run(fmt.Sprintf("serial-%d", serial), func(t *testing.T) {
			fake := newFakeLedger()
			report, err := newTestPipeline(t, fake, func(o *Options) { o.Serial = serial }).Run(context.Background())
			require.NoError(t, err)
			assert.True(t, report.Match)
			assert.Equal(t, serial, report.TransferredSerial)
		})
	}
}

func TestAliasResolutionIsIdempotent(t *testing.T) {
	fake := newFakeLedger()
	report, err := newTestPipeline(t, fake, nil).Run(context.Background())
	require.NoError(t, err)

	first, err := fake.GetAccountIDByAlias(context.Background(), fake.lastReceiver)
	require.NoError(t, err)
	second, err := fake.GetAccountIDByAlias(context.Background(), fake.lastReceiver)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, report.ResolvedAccountID, first.String())
}

func TestRunReportsMismatchWithoutError(t *testing.T) {
	fake := newFakeLedger()
	fake.ownerOverride = &hedera.AccountID{Account: 42}

	core, logs := observer.New(zapcore.InfoLevel)
	pipeline := newTestPipeline(t, fake, nil)
	pipeline.logger = zap.New(core)

	report, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, report.Completed())
	assert.False(t, report.Match)
	assert.Equal(t, "0.0.42", report.OwnerAccountID)
	assert.Equal(t, 1, logs.FilterMessage("The two account IDs do not match").FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestRunContractViolationAbortsFlow(t *testing.T) {
	fake := newFakeLedger()
	fake.errs["CreateNonFungibleToken"] = shared.ContractViolation("token create receipt did not include token ID")

	report, err := newTestPipeline(t, fake, nil).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrContractViolation)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageIssueCollection, stageErr.Stage)

	assert.Equal(t, []string{"CreateAccount", "CreateNonFungibleToken"}, fake.calls)
	assert.False(t, report.Completed())

	issue, ok := report.Stage(StageIssueCollection)
	require.True(t, ok)
	assert.Equal(t, StageFailed, issue.Status)
	assert.Contains(t, issue.Error, "contract violation")
	for _, stage := range Stages[2:] {
		result, ok := report.Stage(stage)
		require.True(t, ok)
		assert.Equal(t, StageSkipped, result.Status, string(stage))
	}
}

func TestRunMintFailureLeavesEmptyCollection(t *testing.T) {
	fake := newFakeLedger()
	fake.errs["MintToken"] = errors.New("TOKEN_HAS_NO_SUPPLY_KEY")

	report, err := newTestPipeline(t, fake, nil).Run(context.Background())
	require.Error(t, err)

	assert.NotEmpty(t, report.TokenID, "created collection should still be reported")
	assert.Empty(t, report.Serials)
	assert.Empty(t, fake.tokens[report.TokenID].nfts)
	assert.Equal(t, []string{"CreateAccount", "CreateNonFungibleToken", "MintToken"}, fake.calls)
}

func TestRunPropagatesRemoteErrorsUnchanged(t *testing.T) {
	remote := errors.New("PLATFORM_TRANSACTION_NOT_CREATED")
	fake := newFakeLedger()
	fake.errs["TransferNft"] = remote

	_, err := newTestPipeline(t, fake, nil).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, remote)
	assert.NotContains(t, fake.calls, "GetAccountIDByAlias")
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	fake := newFakeLedger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestPipeline(t, fake, nil).Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.calls)

	first, ok := report.Stage(StageProvisionTreasury)
	require.True(t, ok)
	assert.Equal(t, StageFailed, first.Status)
}

func TestRunDoesNotLogPrivateKeysByDefault(t *testing.T) {
	for _, reveal := range []bool{false, true} {
		fake := newFakeLedger()
		core, logs := observer.New(zapcore.DebugLevel)
		pipeline := newTestPipeline(t, fake, func(o *Options) { o.RevealKeys = reveal })
		pipeline.logger = zap.New(core)

		_, err := pipeline.Run(context.Background())
		require.NoError(t, err)

		revealed := logs.FilterMessage("generated private key").Len()
		if reveal {
			assert.Equal(t, 3, revealed)
		} else {
			assert.Zero(t, revealed)
		}
	}
}

func TestNewPipelineValidation(t *testing.T) {
	_, err := NewPipeline(nil, nil, DefaultOptions())
	assert.Error(t, err)

	cases := map[string]func(*Options){
		"negative balance": func(o *Options) { o.InitialBalanceHbar = -1 },
		"empty name":       func(o *Options) { o.CollectionName = " " },
		"empty symbol":     func(o *Options) { o.CollectionSymbol = "" },
		"no metadata":      func(o *Options) { o.Metadata = nil },
		"zero serial":      func(o *Options) { o.Serial = 0 },
		"serial too large": func(o *Options) { o.Serial = 6 },
	}
	for name, mutate := range cases {
		options := DefaultOptions()
		mutate(&options)
		_, err := NewPipeline(newFakeLedger(), nil, options)
		assert.ErrorIs(t, err, shared.ErrConfig, name)
	}
}

func TestExecuteMissingConfigOpensNoSession(t *testing.T) {
	for _, key := range []string{
		"OPERATOR_ACCOUNT_ID", "HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "OPERATOR_ID",
		"OPERATOR_PRIVATE_KEY", "HEDERA_PRIVATE_KEY", "HEDERA_OPERATOR_KEY", "OPERATOR_KEY",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("OPERATOR_ACCOUNT_ID", "0.0.1234")

	opened := 0
	factory := func(shared.OperatorConfig, *zap.Logger) (Session, error) {
		opened++
		return newFakeLedger(), nil
	}

	_, err := Execute(context.Background(), shared.OperatorConfigFromEnv, factory, zaptest.NewLogger(t), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrConfig)
	assert.Zero(t, opened)
}

func TestExecuteInvalidOptionsOpensNoSession(t *testing.T) {
	loaded := 0
	opened := 0
	options := DefaultOptions()
	options.Serial = 10

	_, err := Execute(
		context.Background(),
		func() (shared.OperatorConfig, error) {
			loaded++
			return shared.OperatorConfig{AccountID: "0.0.2", PrivateKey: "k", Network: "testnet"}, nil
		},
		func(shared.OperatorConfig, *zap.Logger) (Session, error) {
			opened++
			return newFakeLedger(), nil
		},
		nil,
		options,
	)
	assert.ErrorIs(t, err, shared.ErrConfig)
	assert.Zero(t, loaded)
	assert.Zero(t, opened)
}

func TestExecuteClosesSessionOnEveryPath(t *testing.T) {
	loadConfig := func() (shared.OperatorConfig, error) {
		return shared.OperatorConfig{AccountID: "0.0.2", PrivateKey: "k", Network: "testnet"}, nil
	}

	t.Run("success", func(t *testing.T) {
		fake := newFakeLedger()
		report, err := Execute(context.Background(), loadConfig, sessionOf(fake), zaptest.NewLogger(t), DefaultOptions())
		require.NoError(t, err)
		assert.True(t, report.Match)
		assert.Equal(t, 1, fake.closed)
	})

	t.Run("stage failure", func(t *testing.T) {
		fake := newFakeLedger()
		fake.errs["GetAccountIDByAlias"] = errors.New("INVALID_ACCOUNT_ID")
		report, err := Execute(context.Background(), loadConfig, sessionOf(fake), zaptest.NewLogger(t), DefaultOptions())
		require.Error(t, err)
		assert.Equal(t, 1, fake.closed)
		assert.NotEmpty(t, report.TokenID, "partial report should be returned")
	})

	t.Run("close failure", func(t *testing.T) {
		fake := newFakeLedger()
		fake.closeErr = errors.New("channel already closed")
		_, err := Execute(context.Background(), loadConfig, sessionOf(fake), zaptest.NewLogger(t), DefaultOptions())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to close session")
		assert.Equal(t, 1, fake.closed)
	})
}

func TestExecuteSessionFactoryError(t *testing.T) {
	_, err := Execute(
		context.Background(),
		func() (shared.OperatorConfig, error) { return shared.OperatorConfig{AccountID: "bad"}, nil },
		func(shared.OperatorConfig, *zap.Logger) (Session, error) {
			return nil, errors.New("invalid operator account ID")
		},
		nil,
		DefaultOptions(),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open session")
}

func TestOpenLedgerSessionRejectsMalformedOperator(t *testing.T) {
	_, err := OpenLedgerSession(shared.OperatorConfig{AccountID: "not-an-id", PrivateKey: "x", Network: "testnet"}, nil)
	assert.Error(t, err)
}

func sessionOf(fake *fakeLedger) SessionFactory {
	return func(shared.OperatorConfig, *zap.Logger) (Session, error) {
		return fake, nil
	}
}
