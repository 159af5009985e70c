package department

import (
	"context"
	"fmt"
)

// 単一行取得で複数行を検知するには 2 行読めば十分です。
const lookupProbeSize = 2

// UseCase は部署参照ユースケースの公開インターフェースです。
type UseCase interface {
	GetDepartmentName(ctx context.Context, departmentID int64) (string, error)
}

// Service は部署名の参照を提供します。
type Service struct {
	repo Repository
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetDepartmentName は部署 ID から部署名を 1 件だけ取得します。
// 0 件なら ErrDepartmentNotFound、2 件以上なら ErrDepartmentAmbiguous を返します。
func (s *Service) GetDepartmentName(ctx context.Context, departmentID int64) (string, error) {
	if departmentID <= 0 {
		return "", ErrInvalidDepartmentID
	}

	names, err := s.repo.FindNames(ctx, departmentID, lookupProbeSize)
	if err != nil {
		return "", err
	}

	switch len(names) {
	case 0:
		return "", fmt.Errorf("id %d: %w", departmentID, ErrDepartmentNotFound)
	case 1:
		return names[0], nil
	default:
		return "", fmt.Errorf("id %d: %w", departmentID, ErrDepartmentAmbiguous)
	}
}
