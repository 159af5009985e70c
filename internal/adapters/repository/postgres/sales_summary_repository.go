package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/salessummary"
	pgdb "github.com/ogurasousui/codex-grpc-payroll/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	// ビューの行番号付けは走査順に依存するため、並び順の指定がない場合のみビューを読みます。
	listSalesSummaryViewQuery = `
        SELECT order_id, order_date, customer_name, product_name, quantity, price::text, total_sale::text
          FROM sales_summary
         LIMIT $1
    `

	listSalesSummaryOrderedQuery = `
        SELECT o.order_id,
               o.order_date,
               c.customer_name,
               p.product_name,
               o.quantity,
               p.price::text,
               (o.quantity * p.price)::text AS total_sale
          FROM orders o
          LEFT JOIN customers c ON c.customer_id = o.customer_id
          JOIN products p ON p.product_id = o.product_id
         ORDER BY %s
         LIMIT $1
    `
)

var salesSummaryOrderColumns = map[salessummary.OrderBy]string{
	salessummary.OrderByOrderID:   "o.order_id",
	salessummary.OrderByOrderDate: "o.order_date",
	salessummary.OrderByTotalSale: "o.quantity * p.price",
}

// SalesSummaryRepository は売上サマリーを読み取る PostgreSQL 実装です。
type SalesSummaryRepository struct {
	pool pgdb.Queryer
}

// NewSalesSummaryRepository は SalesSummaryRepository を生成します。
func NewSalesSummaryRepository(pool pgdb.Queryer) *SalesSummaryRepository {
	return &SalesSummaryRepository{pool: pool}
}

// List は売上サマリーを取得します。
func (r *SalesSummaryRepository) List(ctx context.Context, filter salessummary.ListFilter) ([]*salessummary.Row, error) {
	if filter.Limit <= 0 || filter.Limit > salessummary.MaxRows {
		return nil, salessummary.ErrInvalidLimit
	}

	query, err := buildSalesSummaryQuery(filter)
	if err != nil {
		return nil, err
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, filter.Limit)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, scanSalesSummaryRow)
}

func buildSalesSummaryQuery(filter salessummary.ListFilter) (string, error) {
	if filter.OrderBy == salessummary.OrderByNone {
		return listSalesSummaryViewQuery, nil
	}

	column, ok := salesSummaryOrderColumns[filter.OrderBy]
	if !ok {
		return "", salessummary.ErrInvalidOrderBy
	}

	direction := "ASC"
	if filter.Descending {
		direction = "DESC"
	}

	orderClause := column + " " + direction
	if filter.OrderBy != salessummary.OrderByOrderID {
		orderClause += ", o.order_id " + direction
	}

	return fmt.Sprintf(listSalesSummaryOrderedQuery, orderClause), nil
}

func scanSalesSummaryRow(row pgx.CollectableRow) (*salessummary.Row, error) {
	var (
		orderID      int64
		orderDate    time.Time
		customerName sql.NullString
		productName  string
		quantity     int64
		priceRaw     string
		totalRaw     string
	)

	if err := row.Scan(&orderID, &orderDate, &customerName, &productName, &quantity, &priceRaw, &totalRaw); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(priceRaw)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse price %q for order %d: %w", priceRaw, orderID, err)
	}
	total, err := decimal.NewFromString(totalRaw)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse total_sale %q for order %d: %w", totalRaw, orderID, err)
	}

	var customerPtr *string
	if customerName.Valid {
		name := customerName.String
		customerPtr = &name
	}

	return &salessummary.Row{
		OrderID:      orderID,
		OrderDate:    orderDate,
		CustomerName: customerPtr,
		ProductName:  productName,
		Quantity:     quantity,
		Price:        price,
		TotalSale:    total,
	}, nil
}
