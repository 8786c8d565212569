package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/opensplit/opensplit/pkg/money"
)

type stubStore struct {
	roster      []int64
	expenses    []Expense
	settlements []Transfer
	err         error
}

func (s *stubStore) ListRoster(ctx context.Context, groupID int64) ([]int64, error) {
	return s.roster, s.err
}

func (s *stubStore) ListExpenses(ctx context.Context, groupID int64) ([]Expense, error) {
	return s.expenses, s.err
}

func (s *stubStore) ListSettlements(ctx context.Context, groupID int64) ([]Transfer, error) {
	return s.settlements, s.err
}

func TestComputeBalancesReadsThroughStore(t *testing.T) {
	store := &stubStore{
		roster: []int64{1, 2},
		expenses: []Expense{{
			PayerID: 1,
			Amount:  money.MustParse("40.00"),
			Shares: []Share{
				{MemberID: 1, Amount: money.MustParse("20.00")},
				{MemberID: 2, Amount: money.MustParse("20.00")},
			},
		}},
	}

	b, err := NewService(store).ComputeBalances(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if b.Net[1].String() != "20.00" || b.Net[2].String() != "-20.00" {
		t.Fatalf("unexpected nets: 1=%s 2=%s", b.Net[1], b.Net[2])
	}
}

func TestSuggestTransfersEndToEnd(t *testing.T) {
	store := &stubStore{
		roster: []int64{1, 2, 3},
		expenses: []Expense{{
			PayerID: 3,
			Amount:  money.MustParse("80.00"),
			Shares: []Share{
				{MemberID: 1, Amount: money.MustParse("50.00")},
				{MemberID: 2, Amount: money.MustParse("30.00")},
				{MemberID: 3, Amount: money.MustParse("0.00")},
			},
		}},
	}

	got, err := NewService(store).SuggestTransfers(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
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

func TestComputeBalancesPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("connection reset")
	if _, err := NewService(&stubStore{err: boom}).ComputeBalances(context.Background(), 1); !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
