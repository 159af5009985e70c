package salessummary

import "context"

// Repository は売上サマリーの読み取りです。
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]*Row, error)
}

// ListFilter は一覧取得用フィルタです。Limit は 1 以上 MaxRows 以下です。
type ListFilter struct {
	OrderBy    OrderBy
	Descending bool
	Limit      int
}
