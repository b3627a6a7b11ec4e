package ledger

import "time"

// Individual carries the personal fields of a client that is a natural person.
type Individual struct {
	FullName   string
	BirthDate  time.Time
	NationalID string
}

type Client struct {
	Address    string
	accounts   []*Account
	individual *Individual
}

func NewClient(address string) *Client {
	return &Client{Address: address}
}

func NewIndividualClient(fullName string, birthDate time.Time, nationalID, address string) *Client {
	c := NewClient(address)
	c.individual = &Individual{
		FullName:   fullName,
		BirthDate:  birthDate,
		NationalID: nationalID,
	}
	return c
}

// Individual returns the personal fields, or nil for a generic client.
func (c *Client) Individual() *Individual {
	return c.individual
}

func (c *Client) Name() string {
	if c.individual != nil {
		return c.individual.FullName
	}
	return c.Address
}

// AddAccount appends account to the client. Account numbers are not checked
// for duplicates.
func (c *Client) AddAccount(account *Account) {
	c.accounts = append(c.accounts, account)
}

func (c *Client) Accounts() []*Account {
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// PerformTransaction applies tx to account. Validation belongs to the account.
func (c *Client) PerformTransaction(account *Account, tx Transaction) error {
	return tx.Apply(account)
}
