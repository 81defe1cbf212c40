package hip542

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Report struct {
	RunID                string        `json:"run_id" yaml:"run_id"`
	Network              string        `json:"network" yaml:"network"`
	TreasuryAccountID    string        `json:"treasury_account_id,omitempty" yaml:"treasury_account_id,omitempty"`
	TreasuryAccountURL   string        `json:"treasury_account_url,omitempty" yaml:"treasury_account_url,omitempty"`
	TokenID              string        `json:"token_id,omitempty" yaml:"token_id,omitempty"`
	TokenURL             string        `json:"token_url,omitempty" yaml:"token_url,omitempty"`
	TokenSolidityAddress string        `json:"token_solidity_address,omitempty" yaml:"token_solidity_address,omitempty"`
	Serials              []int64       `json:"serials,omitempty" yaml:"serials,omitempty"`
	TransferredSerial    int64         `json:"transferred_serial,omitempty" yaml:"transferred_serial,omitempty"`
	AliasAccountID       string        `json:"alias_account_id,omitempty" yaml:"alias_account_id,omitempty"`
	AliasKey             string        `json:"alias_key,omitempty" yaml:"alias_key,omitempty"`
	AliasEVMAddress      string        `json:"alias_evm_address,omitempty" yaml:"alias_evm_address,omitempty"`
	ResolvedAccountID    string        `json:"resolved_account_id,omitempty" yaml:"resolved_account_id,omitempty"`
	ResolvedAccountURL   string        `json:"resolved_account_url,omitempty" yaml:"resolved_account_url,omitempty"`
	OwnerAccountID       string        `json:"owner_account_id,omitempty" yaml:"owner_account_id,omitempty"`
	Match                bool          `json:"match" yaml:"match"`
	Stages               []StageResult `json:"stages" yaml:"stages"`
}

// Completed reports whether every stage succeeded.
func (r Report) Completed() bool {
	if len(r.Stages) != len(Stages) {
		return false
	}
	for _, result := range r.Stages {
		if result.Status != StageSucceeded {
			return false
		}
	}
	return true
}

func (r Report) Stage(stage Stage) (StageResult, bool) {
	for _, result := range r.Stages {
		if result.Stage == stage {
			return result, true
		}
	}
	return StageResult{}, false
}

func (r Report) MatchMessage() string {
	if r.Match {
		return "The NFT owner account ID matches the account ID created with the HTS"
	}
	return "The two account IDs do not match"
}

// Render encodes the report as text, json or yaml.
func (r Report) Render(format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return []byte(r.text()), nil
	case FormatJSON:
		encoded, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as json: %w", err)
		}
		return append(encoded, '\n'), nil
	case FormatYAML:
		encoded, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to encode report as yaml: %w", err)
		}
		return encoded, nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

func (r Report) text() string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "run %s on %s\n", r.RunID, r.Network)
	for _, result := range r.Stages {
		line := fmt.Sprintf("  %-20s %-9s %s", result.Stage, result.Status, result.Duration.Round(time.Millisecond))
		if result.Error != "" {
			line += "  " + result.Error
		}
		builder.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	if r.TreasuryAccountURL != "" {
		fmt.Fprintf(&builder, "- Treasury's account: %s\n", r.TreasuryAccountURL)
	}
	if r.TokenURL != "" {
		fmt.Fprintf(&builder, "- Collection: %s\n", r.TokenURL)
	}
	if r.AliasAccountID != "" {
		fmt.Fprintf(&builder, "- Alias account ID: %s\n", r.AliasAccountID)
	}
	if r.ResolvedAccountID != "" {
		fmt.Fprintf(&builder, "- Resolved account ID: %s\n", r.ResolvedAccountID)
	}
	if r.OwnerAccountID != "" {
		fmt.Fprintf(&builder, "- Current owner of serial %d: %s\n", r.TransferredSerial, r.OwnerAccountID)
	}
	if r.Completed() {
		builder.WriteString(r.MatchMessage() + "\n")
	}
	return builder.String()
}
