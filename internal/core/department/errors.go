package department

import (
	"fmt"

	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
)

var (
	// ErrInvalidDepartmentID は部署 ID が正でない場合に返却されます。
	ErrInvalidDepartmentID = fmt.Errorf("department: invalid id: %w", apperr.ErrInvalidArgument)
	// ErrDepartmentNotFound は部署が存在しない場合に返却されます。
	ErrDepartmentNotFound = fmt.Errorf("department: %w", apperr.ErrNotFound)
	// ErrDepartmentAmbiguous は同じ部署 ID の行が複数存在する場合に返却されます。
	ErrDepartmentAmbiguous = fmt.Errorf("department: multiple rows for id: %w", apperr.ErrAmbiguous)
)
