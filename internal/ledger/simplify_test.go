package ledger

import (
	"testing"

	"github.com/opensplit/opensplit/pkg/money"
)

func balances(members []int64, nets map[int64]string) *Balances {
	b := &Balances{
		Members:  members,
		Net:      make(map[int64]money.Amount, len(members)),
		Pairwise: make(map[int64]map[int64]money.Amount),
	}
	for _, m := range members {
		b.Net[m] = money.MustParse(nets[m])
	}
	return b
}

func TestSuggestMatchesLargestDebtorToLargestCreditor(t *testing.T) {
	// A owes 50, B owes 30, C is owed 80.
	b := balances([]int64{1, 2, 3}, map[int64]string{1: "-50.00", 2: "-30.00", 3: "80.00"})

	got := Suggest(b)

	want := []Transfer{
		{FromID: 1, ToID: 3, Amount: amt("50.00")},
		{FromID: 2, ToID: 3, Amount: amt("30.00")},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d transfers, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].FromID != want[i].FromID || got[i].ToID != want[i].ToID || !got[i].Amount.Equal(want[i].Amount) {
			t.Fatalf("transfer %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSuggestEmptyForSettledGroup(t *testing.T) {
	b := balances([]int64{1, 2}, map[int64]string{1: "0.00", 2: "0.00"})
	if got := Suggest(b); len(got) != 0 {
		t.Fatalf("expected no transfers, got %v", got)
	}
}

func TestSuggestCreditorSplitAcrossDebtors(t *testing.T) {
	// One creditor larger than any single debtor keeps receiving until
	// drained.
	b := balances([]int64{1, 2, 3, 4}, map[int64]string{
		1: "100.00", 2: "-60.00", 3: "-30.00", 4: "-10.00",
	})

	got := Suggest(b)

	want := []Transfer{
		{FromID: 2, ToID: 1, Amount: amt("60.00")},
		{FromID: 3, ToID: 1, Amount: amt("30.00")},
		{FromID: 4, ToID: 1, Amount: amt("10.00")},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d transfers, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].FromID != want[i].FromID || got[i].ToID != want[i].ToID || !got[i].Amount.Equal(want[i].Amount) {
			t.Fatalf("transfer %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSuggestZeroesEveryBalance(t *testing.T) {
	b := balances([]int64{1, 2, 3, 4, 5}, map[int64]string{
		1: "-12.34", 2: "45.00", 3: "-20.16", 4: "-7.50", 5: "-5.00",
	})

	remaining := make(map[int64]money.Amount, len(b.Net))
	for m, n := range b.Net {
		remaining[m] = n
	}
	for _, tr := range Suggest(b) {
		remaining[tr.FromID] = remaining[tr.FromID].Add(tr.Amount)
		remaining[tr.ToID] = remaining[tr.ToID].Sub(tr.Amount)
	}
	for m, n := range remaining {
		if !n.IsZero() {
			t.Fatalf("member %d: expected zero after applying transfers, got %s", m, n)
		}
	}
}

func TestSuggestTieKeepsRosterOrder(t *testing.T) {
	// Members 1 and 2 owe the same amount; the one earlier in the
	// roster pays first.
	b := balances([]int64{1, 2, 3}, map[int64]string{1: "-25.00", 2: "-25.00", 3: "50.00"})

	got := Suggest(b)
	if len(got) != 2 || got[0].FromID != 1 || got[1].FromID != 2 {
		t.Fatalf("expected roster order on ties, got %v", got)
	}

	// Reversed roster reverses the tie break.
	b = balances([]int64{2, 1, 3}, map[int64]string{1: "-25.00", 2: "-25.00", 3: "50.00"})
	got = Suggest(b)
	if len(got) != 2 || got[0].FromID != 2 || got[1].FromID != 1 {
		t.Fatalf("expected roster order on ties, got %v", got)
	}
}

func TestSuggestIsDeterministic(t *testing.T) {
	b := balances([]int64{1, 2, 3, 4}, map[int64]string{
		1: "-10.00", 2: "-10.00", 3: "10.00", 4: "10.00",
	})

	first := Suggest(b)
	for run := 0; run < 10; run++ {
		again := Suggest(b)
		if len(again) != len(first) {
			t.Fatalf("run %d: length changed: %v vs %v", run, again, first)
		}
		for i := range first {
			if again[i].FromID != first[i].FromID || again[i].ToID != first[i].ToID || !again[i].Amount.Equal(first[i].Amount) {
				t.Fatalf("run %d: output changed: %v vs %v", run, again, first)
			}
		}
	}
}
