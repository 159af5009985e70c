package salessummary

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxRows は売上サマリーが返す最大行数です。
const MaxRows = 100

// Row は売上サマリーの 1 行です。顧客が存在しない注文は CustomerName が nil になります。
type Row struct {
	OrderID      int64
	OrderDate    time.Time
	CustomerName *string
	ProductName  string
	Quantity     int64
	Price        decimal.Decimal
	TotalSale    decimal.Decimal
}

// OrderBy は並び順に使える列です。空文字列は並び順を指定しないことを表します。
type OrderBy string

const (
	OrderByNone      OrderBy = ""
	OrderByOrderID   OrderBy = "order_id"
	OrderByOrderDate OrderBy = "order_date"
	OrderByTotalSale OrderBy = "total_sale"
)

func (o OrderBy) valid() bool {
	switch o {
	case OrderByNone, OrderByOrderID, OrderByOrderDate, OrderByTotalSale:
		return true
	default:
		return false
	}
}
