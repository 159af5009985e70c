package bonus

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
	"github.com/shopspring/decimal"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeBonusRepo struct {
	employees map[int64][]EmployeeSales
	bonuses   []*Bonus
	failOnNth int
	insertErr error
	inserts   int
}

func (r *fakeBonusRepo) SumDepartmentSales(_ context.Context, departmentID int64) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, e := range r.employees[departmentID] {
		total = total.Add(e.SalesYTD)
	}
	return total, nil
}

func (r *fakeBonusRepo) ListDepartmentEmployees(_ context.Context, departmentID int64) ([]EmployeeSales, error) {
	return append([]EmployeeSales(nil), r.employees[departmentID]...), nil
}

func (r *fakeBonusRepo) InsertBonus(_ context.Context, b *Bonus) error {
	r.inserts++
	if r.failOnNth > 0 && r.inserts == r.failOnNth {
		return r.insertErr
	}
	clone := *b
	r.bonuses = append(r.bonuses, &clone)
	return nil
}

// fakeTx は fn の失敗時に追記済みの賞与を破棄します。
type fakeTx struct {
	repo      *fakeBonusRepo
	commits   int
	rollbacks int
}

func (tx *fakeTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	saved := len(tx.repo.bonuses)
	if err := fn(ctx); err != nil {
		tx.repo.bonuses = tx.repo.bonuses[:saved]
		tx.rollbacks++
		return err
	}
	tx.commits++
	return nil
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestRateFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		total int64
		want  string
	}{
		{total: 1000001, want: "0.1"},
		{total: 1000000, want: "0.05"},
		{total: 500001, want: "0.05"},
		{total: 500000, want: "0.02"},
		{total: 0, want: "0.02"},
	}

	for _, tc := range cases {
		got := RateFor(dec(tc.total))
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("RateFor(%d) = %s, want %s", tc.total, got, tc.want)
		}
	}
}

func TestService_CalculateBonuses_HighTier(t *testing.T) {
	t.Parallel()

	repo := &fakeBonusRepo{employees: map[int64][]EmployeeSales{
		10: {{EmployeeID: 1, SalesYTD: dec(2000000)}, {EmployeeID: 2, SalesYTD: dec(0)}},
	}}
	tx := &fakeTx{repo: repo}
	now := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	svc := NewService(repo, &stubClock{now: now}, tx, nil)

	result, err := svc.CalculateBonuses(context.Background(), 10)
	if err != nil {
		t.Fatalf("CalculateBonuses returned error: %v", err)
	}

	if !result.TotalSales.Equal(dec(2000000)) {
		t.Fatalf("unexpected total sales: %s", result.TotalSales)
	}
	if !result.Rate.Equal(decimal.RequireFromString("0.10")) {
		t.Fatalf("unexpected rate: %s", result.Rate)
	}
	if tx.commits != 1 || tx.rollbacks != 0 {
		t.Fatalf("expected single commit, got commits=%d rollbacks=%d", tx.commits, tx.rollbacks)
	}
	if len(repo.bonuses) != 2 {
		t.Fatalf("expected two bonus rows, got %d", len(repo.bonuses))
	}
	if !repo.bonuses[0].Amount.Equal(dec(200000)) || !repo.bonuses[1].Amount.Equal(dec(0)) {
		t.Fatalf("unexpected amounts: %s, %s", repo.bonuses[0].Amount, repo.bonuses[1].Amount)
	}
	for _, b := range repo.bonuses {
		if !b.BonusDate.Equal(now) {
			t.Fatalf("expected bonus date %v, got %v", now, b.BonusDate)
		}
	}
}

func TestService_CalculateBonuses_LowTierRounding(t *testing.T) {
	t.Parallel()

	repo := &fakeBonusRepo{employees: map[int64][]EmployeeSales{
		3: {{EmployeeID: 9, SalesYTD: decimal.RequireFromString("1234.56")}},
	}}
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, &fakeTx{repo: repo}, nil)

	result, err := svc.CalculateBonuses(context.Background(), 3)
	if err != nil {
		t.Fatalf("CalculateBonuses returned error: %v", err)
	}
	// 1234.56 * 0.02 = 24.6912
	if !result.Bonuses[0].Amount.Equal(decimal.RequireFromString("24.69")) {
		t.Fatalf("unexpected amount: %s", result.Bonuses[0].Amount)
	}
}

func TestService_CalculateBonuses_NegativeSalesCommitted(t *testing.T) {
	t.Parallel()

	repo := &fakeBonusRepo{employees: map[int64][]EmployeeSales{
		30: {{EmployeeID: 1, SalesYTD: dec(1000)}, {EmployeeID: 2, SalesYTD: dec(-100)}},
	}}
	tx := &fakeTx{repo: repo}
	svc := NewService(repo, &stubClock{now: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)}, tx, nil)

	result, err := svc.CalculateBonuses(context.Background(), 30)
	if err != nil {
		t.Fatalf("CalculateBonuses returned error: %v", err)
	}
	if tx.commits != 1 || len(repo.bonuses) != 2 {
		t.Fatalf("expected both rows committed, commits=%d rows=%d", tx.commits, len(repo.bonuses))
	}
	if !result.Bonuses[1].Amount.Equal(decimal.RequireFromString("-2.00")) {
		t.Fatalf("expected -2.00 for negative sales, got %s", result.Bonuses[1].Amount)
	}
}

func TestService_CalculateBonuses_EmptyDepartment(t *testing.T) {
	t.Parallel()

	repo := &fakeBonusRepo{employees: map[int64][]EmployeeSales{}}
	tx := &fakeTx{repo: repo}
	svc := NewService(repo, nil, tx, nil)

	result, err := svc.CalculateBonuses(context.Background(), 42)
	if err != nil {
		t.Fatalf("CalculateBonuses returned error: %v", err)
	}
	if !result.TotalSales.IsZero() || len(result.Bonuses) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if !result.Rate.Equal(decimal.RequireFromString("0.02")) {
		t.Fatalf("expected base rate, got %s", result.Rate)
	}
	if tx.commits != 1 {
		t.Fatalf("expected commit for empty department")
	}
}

func TestService_CalculateBonuses_RollbackOnSecondInsert(t *testing.T) {
	t.Parallel()

	insertErr := fmt.Errorf("check violation: %w", apperr.ErrConstraintViolation)
	repo := &fakeBonusRepo{
		employees: map[int64][]EmployeeSales{
			10: {{EmployeeID: 1, SalesYTD: dec(300000)}, {EmployeeID: 2, SalesYTD: dec(300000)}},
		},
		failOnNth: 2,
		insertErr: insertErr,
	}
	tx := &fakeTx{repo: repo}
	svc := NewService(repo, &stubClock{now: time.Now().UTC()}, tx, nil)

	_, err := svc.CalculateBonuses(context.Background(), 10)
	if !errors.Is(err, insertErr) {
		t.Fatalf("expected original insert error, got %v", err)
	}
	if !errors.Is(err, apperr.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation kind, got %v", err)
	}
	if tx.rollbacks != 1 {
		t.Fatalf("expected rollback, got %d", tx.rollbacks)
	}
	if len(repo.bonuses) != 0 {
		t.Fatalf("expected no persisted bonuses, got %d", len(repo.bonuses))
	}
}

func TestService_CalculateBonuses_InvalidDepartment(t *testing.T) {
	t.Parallel()

	svc := NewService(&fakeBonusRepo{}, nil, nil, nil)

	if _, err := svc.CalculateBonuses(context.Background(), -1); !errors.Is(err, ErrInvalidDepartmentID) {
		t.Fatalf("expected ErrInvalidDepartmentID, got %v", err)
	}
}
