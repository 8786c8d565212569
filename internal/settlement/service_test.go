package settlement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/opensplit/opensplit/internal/audit"
	"github.com/opensplit/opensplit/internal/group"
	"github.com/opensplit/opensplit/pkg/money"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, NewRepository(db), group.NewRepository(db), audit.NewService(audit.NewRepository(db), nil))
	return svc, mock
}

// expectGroupLookup wires the base-currency fetch that precedes the
// transaction.
func expectGroupLookup(mock sqlmock.Sqlmock, currency string) {
	mock.ExpectQuery("SELECT id, name, base_currency, created_at").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "base_currency", "created_at"}).
			AddRow(int64(1), "trip", currency, time.Now()))
}

// expectLedgerReads wires the in-transaction history reads for a group
// where member 1 paid 100.00 split equally across [1, 2, 3].
func expectLedgerReads(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT gm.user_id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).
			AddRow(int64(1)).AddRow(int64(2)).AddRow(int64(3)))

	mock.ExpectQuery("SELECT e.id, e.payer_id, e.amount").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "payer_id", "amount"}).
			AddRow(int64(1), int64(1), "100.00"))

	mock.ExpectQuery("SELECT es.expense_id, es.user_id, es.share_amount").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"expense_id", "user_id", "share_amount"}).
			AddRow(int64(1), int64(1), "33.33").
			AddRow(int64(1), int64(2), "33.33").
			AddRow(int64(1), int64(3), "33.33"))

	mock.ExpectQuery("SELECT s.from_user_id, s.to_user_id, s.amount").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"from_user_id", "to_user_id", "amount"}))
}

func TestCreateValidatesAndPersistsInOneTransaction(t *testing.T) {
	svc, mock := newTestService(t)

	expectGroupLookup(mock, "USD")
	mock.ExpectBegin()
	expectLedgerReads(mock)

	mock.ExpectQuery("INSERT INTO settlements").
		WithArgs(int64(1), int64(2), int64(1), "33.33", "USD", SettlementStatusCompleted, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "group_id", "from_user_id", "to_user_id", "amount", "currency", "status", "reference", "created_at",
		}).AddRow(int64(7), int64(1), int64(2), int64(1), "33.33", "USD", "COMPLETED", "ref", time.Now()))

	mock.ExpectQuery("INSERT INTO audit_events").
		WithArgs(sqlmock.AnyArg(), int64(1), audit.EventTypeSettlement, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	mock.ExpectCommit()

	created, err := svc.Create(context.Background(), &CreateSettlementRequest{
		GroupID:    1,
		FromUserID: 2,
		ToUserID:   1,
		Amount:     money.MustParse("33.33"),
		Currency:   "USD",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != 7 || created.Status != SettlementStatusCompleted {
		t.Fatalf("unexpected settlement: %+v", created)
	}
	if !created.Amount.Equal(money.MustParse("33.33")) {
		t.Fatalf("unexpected amount: %s", created.Amount)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRollsBackOnOverdraw(t *testing.T) {
	svc, mock := newTestService(t)

	expectGroupLookup(mock, "USD")
	mock.ExpectBegin()
	expectLedgerReads(mock)
	// Validation fails inside the transaction; nothing is inserted.
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), &CreateSettlementRequest{
		GroupID:    1,
		FromUserID: 2,
		ToUserID:   1,
		Amount:     money.MustParse("33.34"),
		Currency:   "USD",
	})
	if !errors.Is(err, ErrExceedsOwed) {
		t.Fatalf("expected ErrExceedsOwed, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRejectsCurrencyMismatchBeforeInsert(t *testing.T) {
	svc, mock := newTestService(t)

	expectGroupLookup(mock, "USD")
	mock.ExpectBegin()
	expectLedgerReads(mock)
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), &CreateSettlementRequest{
		GroupID:    1,
		FromUserID: 2,
		ToUserID:   1,
		Amount:     money.MustParse("10.00"),
		Currency:   "EUR",
	})
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("expected ErrCurrencyMismatch, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUnknownGroup(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, name, base_currency, created_at").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "base_currency", "created_at"}))

	_, err := svc.Create(context.Background(), &CreateSettlementRequest{
		GroupID:    99,
		FromUserID: 2,
		ToUserID:   1,
		Amount:     money.MustParse("10.00"),
		Currency:   "USD",
	})
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
