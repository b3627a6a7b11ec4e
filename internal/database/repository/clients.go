package repository

import (
	"fmt"
	"sync"

	appErrors "github.com/GCrispino/ledger/internal/errors"
	"github.com/GCrispino/ledger/internal/ledger"
)

// Clients is the in-memory registry of individual clients keyed by national ID.
type Clients struct {
	mu    sync.RWMutex
	byID  map[string]*ledger.Client
	order []string
}

func NewClients() *Clients {
	return &Clients{byID: make(map[string]*ledger.Client)}
}

// Save registers an individual client. Generic clients have no key and are rejected.
func (c *Clients) Save(client *ledger.Client) error {
	ind := client.Individual()
	if ind == nil {
		return fmt.Errorf("only individual clients can be registered")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.byID[ind.NationalID]; ok {
		return appErrors.ErrClientAlreadyExists
	}
	c.byID[ind.NationalID] = client
	c.order = append(c.order, ind.NationalID)
	return nil
}

func (c *Clients) FindByNationalID(nationalID string) (*ledger.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	client, ok := c.byID[nationalID]
	if !ok {
		return nil, appErrors.ErrClientNotFound
	}
	return client, nil
}

// List returns clients in registration order.
func (c *Clients) List() []*ledger.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*ledger.Client, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}
