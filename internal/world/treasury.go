package world

import "time"

// LedgerEntry is one credit movement, journaled for the economic WAL.
type LedgerEntry struct {
	Owner  OwnerID
	Amount int64 // negative = charge
	Kind   string
	At     time.Time
}

// Treasury holds per-overseer credit balances in memory. The persistence
// phase flushes balances and drains the journal to the database.
// Implements CreditProvider. Simulation-loop goroutine only.
type Treasury struct {
	balances map[OwnerID]int64
	starting int64
	journal  []LedgerEntry
}

func NewTreasury(startingCredits int64) *Treasury {
	return &Treasury{
		balances: make(map[OwnerID]int64, 16),
		starting: startingCredits,
	}
}

// Balance returns the owner's balance, seeding new owners with the
// configured starting credits.
func (t *Treasury) Balance(owner OwnerID) int64 {
	if b, ok := t.balances[owner]; ok {
		return b
	}
	t.balances[owner] = t.starting
	return t.starting
}

// SetBalance overwrites a balance (boot-time load from the database).
func (t *Treasury) SetBalance(owner OwnerID, amount int64) {
	t.balances[owner] = amount
}

// DeductCredits removes amount from the owner's balance. All-or-nothing:
// insufficient funds leaves the balance untouched and returns false.
func (t *Treasury) DeductCredits(owner OwnerID, amount int64) bool {
	if amount < 0 {
		return false
	}
	bal := t.Balance(owner)
	if bal < amount {
		return false
	}
	t.balances[owner] = bal - amount
	if amount > 0 {
		t.journal = append(t.journal, LedgerEntry{
			Owner:  owner,
			Amount: -amount,
			Kind:   "charge",
			At:     time.Now(),
		})
	}
	return true
}

// Grant adds credits to the owner's balance.
func (t *Treasury) Grant(owner OwnerID, amount int64, kind string) {
	if amount <= 0 {
		return
	}
	t.balances[owner] = t.Balance(owner) + amount
	t.journal = append(t.journal, LedgerEntry{
		Owner:  owner,
		Amount: amount,
		Kind:   kind,
		At:     time.Now(),
	})
}

// DrainJournal returns the pending ledger entries and clears the journal.
func (t *Treasury) DrainJournal() []LedgerEntry {
	if len(t.journal) == 0 {
		return nil
	}
	out := t.journal
	t.journal = nil
	return out
}

// Balances exposes the balance map for the persistence flush.
func (t *Treasury) Balances() map[OwnerID]int64 {
	return t.balances
}
