package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/bonus"
	pgdb "github.com/ogurasousui/codex-grpc-payroll/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	sumDepartmentSalesQuery = `
        SELECT COALESCE(SUM(sales_ytd), 0)::text
          FROM employees
         WHERE department_id = $1
    `

	listDepartmentEmployeesQuery = `
        SELECT employee_id, COALESCE(sales_ytd, 0)::text
          FROM employees
         WHERE department_id = $1
    `

	insertBonusQuery = `
        INSERT INTO employee_bonuses (employee_id, bonus_amount, bonus_date)
        VALUES ($1, $2::numeric, $3)
    `
)

// BonusRepository は賞与計算を支える PostgreSQL 実装です。
type BonusRepository struct {
	pool pgdb.Queryer
}

// NewBonusRepository は BonusRepository を生成します。
func NewBonusRepository(pool pgdb.Queryer) *BonusRepository {
	return &BonusRepository{pool: pool}
}

// SumDepartmentSales は部署の年初来売上合計を返します。
func (r *BonusRepository) SumDepartmentSales(ctx context.Context, departmentID int64) (decimal.Decimal, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	var raw string
	if err := exec.QueryRow(ctx, sumDepartmentSalesQuery, departmentID).Scan(&raw); err != nil {
		return decimal.Zero, err
	}

	total, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("postgres: parse sales total %q: %w", raw, err)
	}
	return total, nil
}

// ListDepartmentEmployees は部署の社員と売上を取得します。売上が NULL の社員は 0 として扱います。
func (r *BonusRepository) ListDepartmentEmployees(ctx context.Context, departmentID int64) ([]bonus.EmployeeSales, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listDepartmentEmployeesQuery, departmentID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanEmployeeSales)
}

// InsertBonus は賞与を 1 行追記します。
func (r *BonusRepository) InsertBonus(ctx context.Context, b *bonus.Bonus) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, insertBonusQuery, b.EmployeeID, b.Amount.String(), b.BonusDate); err != nil {
		return translateConstraintError(err, bonus.ErrBonusRejected)
	}
	return nil
}

func scanEmployeeSales(row pgx.CollectableRow) (bonus.EmployeeSales, error) {
	var (
		id  int64
		raw string
	)
	if err := row.Scan(&id, &raw); err != nil {
		return bonus.EmployeeSales{}, err
	}

	sales, err := decimal.NewFromString(raw)
	if err != nil {
		return bonus.EmployeeSales{}, fmt.Errorf("postgres: parse sales_ytd %q for employee %d: %w", raw, id, err)
	}
	return bonus.EmployeeSales{EmployeeID: id, SalesYTD: sales}, nil
}
