package shared

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	NetworkTestnet = "testnet"
)

// NormalizeNetwork lower-cases and validates a network name. An empty value
// selects testnet, the only profile this example targets.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkTestnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

// NewHederaClient creates a Hedera client for the given network without an operator.
func NewHederaClient(network string) (*hedera.Client, error) {
	if _, err := NormalizeNetwork(network); err != nil {
		return nil, err
	}

	return hedera.ClientForTestnet(), nil
}
