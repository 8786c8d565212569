package ledger

import (
	"sort"

	"github.com/opensplit/opensplit/pkg/money"
)

type party struct {
	memberID  int64
	remaining money.Amount // magnitude, always positive
}

// Suggest produces transfers that would bring every net balance to
// zero, matching the largest debtor against the largest creditor.
//
// This is a greedy heuristic, not a minimal solution to the underlying
// (NP-hard) minimum-transaction problem. Output order is the order the
// transfers are generated in; ties between equal magnitudes keep roster
// encounter order, so repeated calls on the same snapshot give
// identical output.
func Suggest(b *Balances) []Transfer {
	var debtors, creditors []party
	for _, m := range b.Members {
		net := b.Net[m]
		switch {
		case net.IsNegative():
			debtors = append(debtors, party{memberID: m, remaining: net.Neg()})
		case net.IsPositive():
			creditors = append(creditors, party{memberID: m, remaining: net})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].remaining.GreaterThan(debtors[j].remaining)
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].remaining.GreaterThan(creditors[j].remaining)
	})

	var suggestions []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]

		paid := d.remaining
		if c.remaining.LessThan(paid) {
			paid = c.remaining
		}

		suggestions = append(suggestions, Transfer{
			FromID: d.memberID,
			ToID:   c.memberID,
			Amount: paid,
		})

		d.remaining = d.remaining.Sub(paid)
		c.remaining = c.remaining.Sub(paid)
		if d.remaining.IsZero() {
			i++
		}
		if c.remaining.IsZero() {
			j++
		}
	}

	return suggestions
}
