package newhire

import (
	"time"

	"github.com/google/uuid"
)

// Hire は集計対象となる入社者です。部署未所属の場合 DepartmentID は nil です。
type Hire struct {
	EmployeeID   int64
	EmployeeName string
	DepartmentID *int64
	StartDate    time.Time
}

// EmployeeLog は社員ログの 1 行です。追記専用で更新・削除はしません。
type EmployeeLog struct {
	ID         uuid.UUID
	EmployeeID int64
	Message    string
	CreatedAt  time.Time
}

// SkippedHire は FailurePolicySkip で処理を飛ばした入社者です。
type SkippedHire struct {
	EmployeeID   int64
	DepartmentID *int64
	Err          error
}

// Result は ProcessNewHires の実行結果です。
type Result struct {
	Cutoff  time.Time
	Logs    []*EmployeeLog
	Skipped []SkippedHire
}
