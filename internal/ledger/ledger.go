// Package ledger turns a group's full expense and settlement history
// into balances, and reduces balances into suggested repayments.
// Everything here is pure: balances are recomputed from history on
// every query, never cached or incrementally maintained.
package ledger

import "github.com/opensplit/opensplit/pkg/money"

// Share is one member's share of an expense.
type Share struct {
	MemberID int64
	Amount   money.Amount
}

// Expense is the slice of an expense the ledger needs: who paid, how
// much, and the per-member shares.
type Expense struct {
	PayerID int64
	Amount  money.Amount
	Shares  []Share
}

// Transfer is a directed payment: settlements on the way in,
// suggestions on the way out.
type Transfer struct {
	FromID int64
	ToID   int64
	Amount money.Amount
}

// Balances is a derived snapshot of a group's ledger.
//
// Net maps each member to their overall position (positive = is owed).
// Pairwise[a][b] is the outstanding directed debt a -> b: charges from
// expense shares minus settlements a -> b. It is NOT netted against the
// reverse entry Pairwise[b][a]; callers wanting a net figure subtract
// it themselves. Members preserves roster order so iteration is
// deterministic.
type Balances struct {
	Members  []int64
	Net      map[int64]money.Amount
	Pairwise map[int64]map[int64]money.Amount
}

// Aggregate folds a group's history into a balance snapshot.
//
// For each expense share (m, amt): net[m] -= amt and
// pairwise[m][payer] += amt; then net[payer] += expense amount.
// For each settlement: net[from] += amt, net[to] -= amt,
// pairwise[from][to] -= amt. A settlement pays debt down, so it moves
// the payer's net toward zero and shrinks the directed debt it targets;
// validation caps settlements at the outstanding pairwise amount, which
// keeps Pairwise entries non-negative.
//
// For histories whose shares sum exactly to their expense amounts the
// net values sum to zero; EQUAL splits with inexact division drift by
// up to n-1 cents (see the split package).
func Aggregate(roster []int64, expenses []Expense, settlements []Transfer) *Balances {
	b := &Balances{
		Members:  roster,
		Net:      make(map[int64]money.Amount, len(roster)),
		Pairwise: make(map[int64]map[int64]money.Amount),
	}
	for _, m := range roster {
		b.Net[m] = money.Zero
	}

	for _, e := range expenses {
		for _, s := range e.Shares {
			b.Net[s.MemberID] = b.Net[s.MemberID].Sub(s.Amount)
			b.addPairwise(s.MemberID, e.PayerID, s.Amount)
		}
		b.Net[e.PayerID] = b.Net[e.PayerID].Add(e.Amount)
	}

	for _, s := range settlements {
		b.Net[s.FromID] = b.Net[s.FromID].Add(s.Amount)
		b.Net[s.ToID] = b.Net[s.ToID].Sub(s.Amount)
		b.addPairwise(s.FromID, s.ToID, s.Amount.Neg())
	}

	return b
}

func (b *Balances) addPairwise(from, to int64, amount money.Amount) {
	row, ok := b.Pairwise[from]
	if !ok {
		row = make(map[int64]money.Amount)
		b.Pairwise[from] = row
	}
	row[to] = row[to].Add(amount)
}

// AmountOwed looks up the outstanding amount from owes to. Absent entries are
// zero, not an error.
func AmountOwed(pairwise map[int64]map[int64]money.Amount, from, to int64) money.Amount {
	row, ok := pairwise[from]
	if !ok {
		return money.Zero
	}
	return row[to]
}
