package salaryband

import (
	"fmt"

	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
)

// ErrInvalidSalary は給与額を 10 進数として解釈できない場合に返却されます。
var ErrInvalidSalary = fmt.Errorf("salaryband: invalid salary: %w", apperr.ErrInvalidArgument)
