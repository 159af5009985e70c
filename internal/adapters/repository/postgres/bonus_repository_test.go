package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/bonus"
	pgdb "github.com/ogurasousui/codex-grpc-payroll/internal/platform/db/postgres"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
)

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}

func TestBonusRepository_SumDepartmentSales(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewBonusRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta(sumDepartmentSalesQuery)).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow("750000.50"))

	total, err := repo.SumDepartmentSales(context.Background(), 10)
	if err != nil {
		t.Fatalf("SumDepartmentSales returned error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("750000.50")) {
		t.Fatalf("unexpected total: %s", total)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBonusService_CommitsAllRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	svc := bonus.NewService(NewBonusRepository(mock), stubClock{now: now}, pgdb.NewTransactionManager(mock), nil)

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectQuery(regexp.QuoteMeta(sumDepartmentSalesQuery)).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow("2000000.00"))
	mock.ExpectQuery(regexp.QuoteMeta(listDepartmentEmployeesQuery)).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"employee_id", "coalesce"}).
			AddRow(int64(1), "2000000.00").
			AddRow(int64(2), "0"))
	mock.ExpectExec(regexp.QuoteMeta(insertBonusQuery)).
		WithArgs(int64(1), "200000", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertBonusQuery)).
		WithArgs(int64(2), "0", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	result, err := svc.CalculateBonuses(context.Background(), 10)
	if err != nil {
		t.Fatalf("CalculateBonuses returned error: %v", err)
	}
	if len(result.Bonuses) != 2 {
		t.Fatalf("expected two bonuses, got %d", len(result.Bonuses))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBonusService_RollsBackWhenSecondInsertFails(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	svc := bonus.NewService(NewBonusRepository(mock), stubClock{now: now}, pgdb.NewTransactionManager(mock), nil)
	pgErr := &pgconn.PgError{Code: checkViolationCode, ConstraintName: "employee_bonuses_bonus_amount_check"}

	mock.ExpectBeginTx(pgx.TxOptions{AccessMode: pgx.ReadWrite})
	mock.ExpectQuery(regexp.QuoteMeta(sumDepartmentSalesQuery)).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow("600000.00"))
	mock.ExpectQuery(regexp.QuoteMeta(listDepartmentEmployeesQuery)).
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"employee_id", "coalesce"}).
			AddRow(int64(1), "300000.00").
			AddRow(int64(2), "300000.00"))
	mock.ExpectExec(regexp.QuoteMeta(insertBonusQuery)).
		WithArgs(int64(1), "15000", now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertBonusQuery)).
		WithArgs(int64(2), "15000", now).
		WillReturnError(pgErr)
	mock.ExpectRollback()

	_, err = svc.CalculateBonuses(context.Background(), 10)
	if !errors.Is(err, apperr.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	var got *pgconn.PgError
	if !errors.As(err, &got) || got != pgErr {
		t.Fatalf("expected original PgError to be re-raised, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslateConstraintError(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: uniqueViolationCode}
	if !errors.Is(translateConstraintError(uniqueErr, bonus.ErrBonusRejected), bonus.ErrBonusRejected) {
		t.Fatalf("expected unique violation to map to ErrBonusRejected")
	}

	otherPg := &pgconn.PgError{Code: "40001"}
	if translateConstraintError(otherPg, bonus.ErrBonusRejected) != otherPg {
		t.Fatalf("serialization failures must not be translated")
	}

	other := errors.New("other")
	if translateConstraintError(other, bonus.ErrBonusRejected) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}
