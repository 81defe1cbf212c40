package shared

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type OperatorConfig struct {
	AccountID  string
	PrivateKey string
	Network    string
}

var (
	accountIDKeys  = []string{"OPERATOR_ACCOUNT_ID", "HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "OPERATOR_ID"}
	privateKeyKeys = []string{"OPERATOR_PRIVATE_KEY", "HEDERA_PRIVATE_KEY", "HEDERA_OPERATOR_KEY", "OPERATOR_KEY"}
)

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv reads the operator identity from the environment,
// loading a .env file first when one is present. It only checks presence;
// malformed values are reported when the ledger client is built.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	loadDotEnvIfPresent()

	network := firstNonEmptyEnv("HEDERA_NETWORK")
	if network == "" {
		network = NetworkTestnet
	}

	accountID := firstNonEmptyEnv(accountIDKeys...)
	if accountID == "" {
		return OperatorConfig{}, &ConfigError{Key: accountIDKeys[0]}
	}
	privateKey := firstNonEmptyEnv(privateKeyKeys...)
	if privateKey == "" {
		return OperatorConfig{}, &ConfigError{Key: privateKeyKeys[0]}
	}

	return OperatorConfig{
		AccountID:  accountID,
		PrivateKey: privateKey,
		Network:    network,
	}, nil
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}

		current := cwd
		for {
			candidate := filepath.Join(current, ".env")
			if _, statErr := os.Stat(candidate); statErr == nil {
				loadDotEnvFile(candidate)
				return
			}

			parent := filepath.Dir(current)
			if parent == current {
				return
			}
			current = parent
		}
	})
}

func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

		separator := strings.Index(line, "=")
		if separator <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:separator])
		if !isValidEnvKey(key) {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}

		if setErr := os.Setenv(key, unquote(strings.TrimSpace(line[separator+1:]))); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first := value[0]
	last := value[len(value)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}
