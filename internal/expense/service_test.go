package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/opensplit/opensplit/internal/audit"
	"github.com/opensplit/opensplit/internal/expense/split"
	"github.com/opensplit/opensplit/internal/group"
	"github.com/opensplit/opensplit/pkg/apperr"
	"github.com/opensplit/opensplit/pkg/money"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, NewRepository(db), group.NewRepository(db), split.NewFactory(),
		audit.NewService(audit.NewRepository(db), nil))
	return svc, mock
}

func expectGroupLookup(mock sqlmock.Sqlmock, currency string) {
	mock.ExpectQuery("SELECT id, name, base_currency, created_at").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "base_currency", "created_at"}).
			AddRow(int64(1), "trip", currency, time.Now()))
}

func expectRosterLookup(mock sqlmock.Sqlmock) {
	rows := sqlmock.NewRows([]string{"id", "group_id", "user_id", "role", "joined_at", "name", "email"})
	for i, name := range []string{"ana", "ben", "cam"} {
		rows.AddRow(int64(i+1), int64(1), int64(i+1), "MEMBER", time.Now(), name, name+"@example.com")
	}
	mock.ExpectQuery("SELECT gm.id, gm.group_id, gm.user_id").
		WithArgs(int64(1)).
		WillReturnRows(rows)
}

func TestCreateExpensePersistsHeaderAndSharesAtomically(t *testing.T) {
	svc, mock := newTestService(t)

	expectGroupLookup(mock, "USD")
	expectRosterLookup(mock)

	mock.ExpectBegin()

	mock.ExpectQuery("INSERT INTO expenses").
		WithArgs(int64(1), int64(1), "100.00", "USD", "EQUAL", "dinner", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "group_id", "payer_id", "amount", "currency", "split_type", "description", "expense_date", "created_at",
		}).AddRow(int64(5), int64(1), int64(1), "100.00", "USD", "EQUAL", "dinner", time.Now(), time.Now()))

	// One share per roster member, ascending user id, 33.33 each.
	for _, userID := range []int64{1, 2, 3} {
		mock.ExpectQuery("INSERT INTO expense_shares").
			WithArgs(int64(5), userID, "33.33", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "expense_id", "user_id", "share_amount", "share_percent"}).
				AddRow(userID, int64(5), userID, "33.33", nil))
	}

	mock.ExpectQuery("INSERT INTO audit_events").
		WithArgs(sqlmock.AnyArg(), int64(1), audit.EventTypeExpense, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	mock.ExpectCommit()

	result, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		GroupID:     1,
		PayerID:     1,
		Amount:      money.MustParse("100.00"),
		Currency:    "USD",
		SplitType:   "EQUAL",
		Description: "dinner",
		ExpenseDate: "2026-08-28",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if result.Expense.ID != 5 {
		t.Fatalf("unexpected expense: %+v", result.Expense)
	}
	if len(result.Shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(result.Shares))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateExpenseRejectsCurrencyMismatch(t *testing.T) {
	svc, mock := newTestService(t)

	expectGroupLookup(mock, "USD")

	_, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		GroupID:   1,
		PayerID:   1,
		Amount:    money.MustParse("10.00"),
		Currency:  "EUR",
		SplitType: "EQUAL",
	})
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}

	// No transaction was ever opened.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateExpenseRejectsInvalidSplitInput(t *testing.T) {
	svc, mock := newTestService(t)

	expectGroupLookup(mock, "USD")
	expectRosterLookup(mock)

	// EXACT shares that do not sum to the amount never reach the store.
	_, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		GroupID:   1,
		PayerID:   1,
		Amount:    money.MustParse("100.00"),
		Currency:  "USD",
		SplitType: "EXACT",
		ExactShares: []money.Amount{
			money.MustParse("50.00"),
			money.MustParse("30.00"),
			money.MustParse("20.01"),
		},
	})
	if !errors.Is(err, split.ErrSumMismatch) {
		t.Fatalf("expected ErrSumMismatch, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateExpenseRejectsBadDate(t *testing.T) {
	svc, mock := newTestService(t)

	expectGroupLookup(mock, "USD")

	_, err := svc.CreateExpense(context.Background(), &CreateExpenseRequest{
		GroupID:     1,
		PayerID:     1,
		Amount:      money.MustParse("10.00"),
		Currency:    "USD",
		SplitType:   "EQUAL",
		ExpenseDate: "28/08/2026",
	})
	if !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
