package ledger

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"
)

// Snapshot is the full, already-validated record set for one customer,
// treated as an immutable point-in-time value for the lifetime of one
// metrics computation. Version is a fingerprint over the record contents
// and serves as the data-version component of cache keys: two snapshots
// with identical records share a version, any change produces a new one.
type Snapshot struct {
	Customer     Customer      `json:"customer" validate:"required"`
	Accounts     []Account     `json:"accounts" validate:"dive"`
	Transactions []Transaction `json:"transactions" validate:"dive"`
	Categories   []Category    `json:"categories" validate:"dive"`
	Version      string        `json:"version"`
}

// NewSnapshot builds a snapshot and computes its version fingerprint.
func NewSnapshot(customer Customer, accounts []Account, transactions []Transaction, categories []Category) *Snapshot {
	s := &Snapshot{
		Customer:     customer,
		Accounts:     accounts,
		Transactions: transactions,
		Categories:   categories,
	}
	s.Version = s.fingerprint()
	return s
}

// CategoryNames resolves category ids to semantic names. Transactions whose
// category id has no entry are uncategorized.
func (s *Snapshot) CategoryNames() map[uuid.UUID]CategoryName {
	names := make(map[uuid.UUID]CategoryName, len(s.Categories))
	for _, c := range s.Categories {
		names[c.ID] = c.Name
	}
	return names
}

func (s *Snapshot) fingerprint() string {
	h := fnv.New64a()
	write := func(b []byte) { _, _ = h.Write(b) }
	writeInt := func(n int64) {
		var buf [8]byte
		binary.BigEndian.PutUint64(buf[:], uint64(n))
		write(buf[:])
	}

	write(s.Customer.ID[:])
	writeInt(int64(s.Customer.Age))
	write([]byte(s.Customer.Location))
	for _, a := range s.Accounts {
		write(a.ID[:])
		write([]byte(a.Kind))
		write([]byte(a.Institution))
		write([]byte(a.Balance.String()))
		write([]byte(a.CreditLimit.String()))
		writeInt(a.CreatedAt.UnixNano())
	}
	for _, t := range s.Transactions {
		write(t.ID[:])
		write(t.AccountID[:])
		writeInt(t.Date.UnixNano())
		write([]byte(t.Amount.String()))
		write([]byte(t.Description))
		write(t.CategoryID[:])
		flags := byte(0)
		if t.Debit {
			flags |= 1
		}
		if t.Bill {
			flags |= 2
		}
		if t.Subscription {
			flags |= 4
		}
		write([]byte{flags})
	}
	for _, c := range s.Categories {
		write(c.ID[:])
		write([]byte(c.Name))
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
