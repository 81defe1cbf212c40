package hip542

import (
	"fmt"
	"time"
)

type Stage string

const (
	StageProvisionTreasury Stage = "provision-treasury"
	StageIssueCollection   Stage = "issue-collection"
	StageGenerateAlias     Stage = "generate-alias"
	StageTransferNft       Stage = "transfer-nft"
	StageResolveAlias      Stage = "resolve-alias"
	StageVerifyOwner       Stage = "verify-owner"
)

// Stages lists every stage in execution order.
var Stages = []Stage{
	StageProvisionTreasury,
	StageIssueCollection,
	StageGenerateAlias,
	StageTransferNft,
	StageResolveAlias,
	StageVerifyOwner,
}

type StageStatus string

const (
	StageSucceeded StageStatus = "succeeded"
	StageFailed    StageStatus = "failed"
	StageSkipped   StageStatus = "skipped"
)

type StageResult struct {
	Stage    Stage         `json:"stage" yaml:"stage"`
	Status   StageStatus   `json:"status" yaml:"status"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// StageError reports which stage aborted a run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
