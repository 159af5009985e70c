package salessummary

import (
	"context"
	"fmt"
)

// UseCase は売上サマリーユースケースの公開インターフェースです。
type UseCase interface {
	ListSalesSummary(ctx context.Context, in ListInput) ([]*Row, error)
}

// ListInput は一覧取得時の入力です。
//
// OrderBy を省略した場合、どの 100 行が返るかはデータベースの走査順に依存します。
// 決定的な結果が必要な呼び出し側は OrderBy を指定してください。
type ListInput struct {
	OrderBy    OrderBy
	Descending bool
	Limit      int
}

// Service は売上サマリーを提供します。
type Service struct {
	repo Repository
}

// NewService は Service を生成します。
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListSalesSummary は注文・顧客・商品を結合した売上サマリーを最大 MaxRows 行返します。
func (s *Service) ListSalesSummary(ctx context.Context, in ListInput) ([]*Row, error) {
	if !in.OrderBy.valid() {
		return nil, fmt.Errorf("%q: %w", in.OrderBy, ErrInvalidOrderBy)
	}
	if in.OrderBy == OrderByNone && in.Descending {
		return nil, fmt.Errorf("descending requires order_by: %w", ErrInvalidOrderBy)
	}

	limit, err := normalizeLimit(in.Limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, ListFilter{
		OrderBy:    in.OrderBy,
		Descending: in.Descending,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func normalizeLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, ErrInvalidLimit
	case limit == 0, limit > MaxRows:
		return MaxRows, nil
	default:
		return limit, nil
	}
}
