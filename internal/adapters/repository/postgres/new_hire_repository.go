package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/newhire"
	pgdb "github.com/ogurasousui/codex-grpc-payroll/internal/platform/db/postgres"
)

const (
	listStartedAfterQuery = `
        SELECT employee_id, employee_name, department_id, start_date
          FROM employees
         WHERE start_date > $1
    `

	appendEmployeeLogQuery = `
        INSERT INTO employee_logs (log_id, employee_id, message, created_at)
        VALUES ($1, $2, $3, $4)
    `
)

// NewHireRepository は入社者の検索と社員ログの追記を行う PostgreSQL 実装です。
type NewHireRepository struct {
	pool pgdb.Queryer
}

// NewNewHireRepository は NewHireRepository を生成します。
func NewNewHireRepository(pool pgdb.Queryer) *NewHireRepository {
	return &NewHireRepository{pool: pool}
}

// ListStartedAfter は start_date が cutoff より後の社員を取得します。
// 後続の追記と同じ接続を使えるよう、結果はすべて読み切ってから返します。
func (r *NewHireRepository) ListStartedAfter(ctx context.Context, cutoff time.Time) ([]newhire.Hire, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listStartedAfterQuery, cutoff)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanHire)
}

// AppendLog は社員ログを 1 行追記します。
func (r *NewHireRepository) AppendLog(ctx context.Context, log *newhire.EmployeeLog) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, appendEmployeeLogQuery,
		log.ID.String(),
		log.EmployeeID,
		log.Message,
		log.CreatedAt,
	); err != nil {
		if isForeignKeyViolation(err) {
			return translateConstraintError(err, newhire.ErrUnknownEmployee)
		}
		return translateConstraintError(err, newhire.ErrLogRejected)
	}
	return nil
}

func scanHire(row pgx.CollectableRow) (newhire.Hire, error) {
	var (
		h    newhire.Hire
		dept pgtype.Int8
	)
	if err := row.Scan(&h.EmployeeID, &h.EmployeeName, &dept, &h.StartDate); err != nil {
		return newhire.Hire{}, err
	}
	if dept.Valid {
		id := dept.Int64
		h.DepartmentID = &id
	}
	return h, nil
}
