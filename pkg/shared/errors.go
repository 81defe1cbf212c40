package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks a missing or unusable configuration value. It is
	// always raised before any network call is attempted.
	ErrConfig = errors.New("configuration error")

	// ErrContractViolation marks a collaborator response that lacks a field
	// the ledger contract guarantees, such as a receipt without a token ID.
	ErrContractViolation = errors.New("contract violation")
)

type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is required", e.Key)
	}
	return fmt.Sprintf("%s: %s", e.Key, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ContractViolation returns an error wrapping ErrContractViolation.
func ContractViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
}
