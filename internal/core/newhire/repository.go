package newhire

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository は入社者の検索と社員ログの追記を担う永続化の抽象です。
type Repository interface {
	// ListStartedAfter は start_date が cutoff より後の社員を返します。順序は保証しません。
	ListStartedAfter(ctx context.Context, cutoff time.Time) ([]Hire, error)
	AppendLog(ctx context.Context, log *EmployeeLog) error
}

// DepartmentLookup は部署名の参照です。
type DepartmentLookup interface {
	GetDepartmentName(ctx context.Context, departmentID int64) (string, error)
}

// IDGenerator はログ ID の採番を提供します。
type IDGenerator interface {
	NewID() (uuid.UUID, error)
}
