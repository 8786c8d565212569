package group

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewService(NewRepository(db)), mock
}

func TestCreateAddsCreatorAsAdmin(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("INSERT INTO groups").
		WithArgs("trip", "USD").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "base_currency", "created_at"}).
			AddRow(int64(1), "trip", "USD", time.Now()))

	mock.ExpectQuery("INSERT INTO group_members").
		WithArgs(int64(1), int64(42), MemberRoleAdmin).
		WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "user_id", "role", "joined_at"}).
			AddRow(int64(1), int64(1), int64(42), "ADMIN", time.Now()))

	group, err := svc.Create(context.Background(), &CreateGroupRequest{
		Name:         "trip",
		BaseCurrency: "USD",
		CreatorID:    42,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if group.ID != 1 || group.BaseCurrency != "USD" {
		t.Fatalf("unexpected group: %+v", group)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRejectsInvalidCurrency(t *testing.T) {
	svc, mock := newTestService(t)

	for _, currency := range []string{"usd", "US", "DOLLARS", ""} {
		_, err := svc.Create(context.Background(), &CreateGroupRequest{
			Name:         "trip",
			BaseCurrency: currency,
			CreatorID:    42,
		})
		if !errors.Is(err, ErrInvalidCurrency) {
			t.Fatalf("%q: expected ErrInvalidCurrency, got %v", currency, err)
		}
	}

	// Nothing reached the store.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddMemberRejectsDuplicate(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, name, base_currency, created_at").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "base_currency", "created_at"}).
			AddRow(int64(1), "trip", "USD", time.Now()))

	mock.ExpectQuery("SELECT gm.id, gm.group_id, gm.user_id, gm.role, gm.joined_at").
		WithArgs(int64(1), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "user_id", "role", "joined_at", "name", "email"}).
			AddRow(int64(3), int64(1), int64(7), "MEMBER", time.Now(), "ben", "ben@example.com"))

	_, err := svc.AddMember(context.Background(), 1, &AddMemberRequest{UserID: 7})
	if !errors.Is(err, ErrMemberAlreadyExists) {
		t.Fatalf("expected ErrMemberAlreadyExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetMembersUnknownGroup(t *testing.T) {
	svc, mock := newTestService(t)

	mock.ExpectQuery("SELECT id, name, base_currency, created_at").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "base_currency", "created_at"}))

	_, err := svc.GetMembers(context.Background(), 9)
	if !errors.Is(err, ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
