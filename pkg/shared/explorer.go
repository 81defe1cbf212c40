package shared

import "fmt"

const hashScanBaseURL = "https://hashscan.io"

// HashScanAccountURL returns the explorer link for an account.
func HashScanAccountURL(network string, accountID string) string {
	return fmt.Sprintf("%s/%s/account/%s", hashScanBaseURL, explorerNetwork(network), accountID)
}

// HashScanTokenURL returns the explorer link for a token.
func HashScanTokenURL(network string, tokenID string) string {
	return fmt.Sprintf("%s/%s/token/%s", hashScanBaseURL, explorerNetwork(network), tokenID)
}

func explorerNetwork(network string) string {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return NetworkTestnet
	}
	return normalized
}
