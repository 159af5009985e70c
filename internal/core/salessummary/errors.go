package salessummary

import (
	"fmt"

	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
)

var (
	// ErrInvalidLimit は件数上限が負の場合に返却されます。
	ErrInvalidLimit = fmt.Errorf("salessummary: invalid limit: %w", apperr.ErrInvalidArgument)
	// ErrInvalidOrderBy は未対応の並び順が指定された場合に返却されます。
	ErrInvalidOrderBy = fmt.Errorf("salessummary: invalid order_by: %w", apperr.ErrInvalidArgument)
)
