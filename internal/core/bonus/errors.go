package bonus

import (
	"fmt"

	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
)

var (
	// ErrInvalidDepartmentID は部署 ID が正でない場合に返却されます。
	ErrInvalidDepartmentID = fmt.Errorf("bonus: invalid department id: %w", apperr.ErrInvalidArgument)
	// ErrBonusRejected は賞与の追記が制約により拒否された場合に返却されます。
	ErrBonusRejected = fmt.Errorf("bonus: insert rejected: %w", apperr.ErrConstraintViolation)
)
