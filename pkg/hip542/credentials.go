package hip542

import (
	"fmt"
	"sort"
	"sync"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	credentialTreasury = "treasury"
	credentialSupply   = "supply"
	credentialAlias    = "alias"
)

// Credentials holds the private keys generated during one run. Release drops
// every key; Get fails afterwards.
type Credentials struct {
	mu       sync.Mutex
	keys     map[string]hedera.PrivateKey
	released bool
}

func NewCredentials() *Credentials {
	return &Credentials{keys: map[string]hedera.PrivateKey{}}
}

func (c *Credentials) Put(name string, key hedera.PrivateKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.keys[name] = key
}

func (c *Credentials) Get(name string) (hedera.PrivateKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return hedera.PrivateKey{}, fmt.Errorf("credentials already released")
	}
	key, ok := c.keys[name]
	if !ok {
		return hedera.PrivateKey{}, fmt.Errorf("no %s key held", name)
	}
	return key, nil
}

func (c *Credentials) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.keys))
	for name := range c.keys {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Credentials) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

func (c *Credentials) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.keys)
	c.released = true
}
