package department

import "context"

// Repository は部署参照の抽象です。
type Repository interface {
	// FindNames は指定 ID に一致する部署名を最大 limit 件返します。
	FindNames(ctx context.Context, id int64, limit int) ([]string, error)
}
