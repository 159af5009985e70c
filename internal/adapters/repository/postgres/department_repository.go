package postgres

import (
	"context"

	pgdb "github.com/ogurasousui/codex-grpc-payroll/internal/platform/db/postgres"
)

const findDepartmentNamesQuery = `
        SELECT department_name
          FROM departments
         WHERE department_id = $1
         LIMIT $2
    `

// DepartmentRepository は PostgreSQL を利用した部署参照の実装です。
type DepartmentRepository struct {
	pool pgdb.Queryer
}

// NewDepartmentRepository は DepartmentRepository を生成します。
func NewDepartmentRepository(pool pgdb.Queryer) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// FindNames は部署 ID に一致する部署名を最大 limit 件返します。
func (r *DepartmentRepository) FindNames(ctx context.Context, id int64, limit int) ([]string, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, findDepartmentNamesQuery, id, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make([]string, 0, limit)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}
