package newhire

import (
	"fmt"

	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
)

var (
	// ErrInvalidNow は基準時刻がゼロ値の場合に返却されます。
	ErrInvalidNow = fmt.Errorf("newhire: invalid reference time: %w", apperr.ErrInvalidArgument)
	// ErrInvalidFailurePolicy は未対応の失敗時ポリシーが指定された場合に返却されます。
	ErrInvalidFailurePolicy = fmt.Errorf("newhire: invalid failure policy: %w", apperr.ErrInvalidArgument)
	// ErrNoDepartment は入社者に部署が設定されていない場合に返却されます。
	ErrNoDepartment = fmt.Errorf("newhire: employee has no department: %w", apperr.ErrNotFound)
	// ErrUnknownEmployee はログ対象の社員が存在しない場合に返却されます。
	ErrUnknownEmployee = fmt.Errorf("newhire: employee does not exist: %w", apperr.ErrConstraintViolation)
	// ErrLogRejected は社員ログの追記が制約により拒否された場合に返却されます。
	ErrLogRejected = fmt.Errorf("newhire: log insert rejected: %w", apperr.ErrConstraintViolation)
)
