package handler

import (
	"errors"

	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatusError はドメインエラーを gRPC ステータスに変換します。
// 依存先の失敗は元のエラー種別を優先して返します。
func toStatusError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperr.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, apperr.ErrAmbiguous), errors.Is(err, apperr.ErrConstraintViolation):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, apperr.ErrDependencyFailure):
		return status.Error(codes.Aborted, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
