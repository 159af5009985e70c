package salessummary

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

type fakeSummaryRepo struct {
	rows       []*Row
	lastFilter ListFilter
	calls      int
}

func (r *fakeSummaryRepo) List(_ context.Context, filter ListFilter) ([]*Row, error) {
	r.calls++
	r.lastFilter = filter
	return r.rows, nil
}

func makeRows(n int) []*Row {
	rows := make([]*Row, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &Row{
			OrderID:   int64(i + 1),
			Quantity:  1,
			Price:     decimal.NewFromInt(10),
			TotalSale: decimal.NewFromInt(10),
		})
	}
	return rows
}

func TestService_ListSalesSummary_DefaultLimit(t *testing.T) {
	t.Parallel()

	repo := &fakeSummaryRepo{rows: makeRows(3)}
	svc := NewService(repo)

	rows, err := svc.ListSalesSummary(context.Background(), ListInput{})
	if err != nil {
		t.Fatalf("ListSalesSummary returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if repo.lastFilter.Limit != MaxRows {
		t.Fatalf("expected default limit %d, got %d", MaxRows, repo.lastFilter.Limit)
	}
	if repo.lastFilter.OrderBy != OrderByNone {
		t.Fatalf("expected no ordering, got %q", repo.lastFilter.OrderBy)
	}
}

func TestService_ListSalesSummary_NeverExceedsMaxRows(t *testing.T) {
	t.Parallel()

	repo := &fakeSummaryRepo{rows: makeRows(150)}
	svc := NewService(repo)

	rows, err := svc.ListSalesSummary(context.Background(), ListInput{Limit: 500, OrderBy: OrderByOrderID})
	if err != nil {
		t.Fatalf("ListSalesSummary returned error: %v", err)
	}
	if repo.lastFilter.Limit != MaxRows {
		t.Fatalf("expected limit clamped to %d, got %d", MaxRows, repo.lastFilter.Limit)
	}
	if len(rows) != MaxRows {
		t.Fatalf("expected %d rows, got %d", MaxRows, len(rows))
	}
}

func TestService_ListSalesSummary_ExplicitOrder(t *testing.T) {
	t.Parallel()

	repo := &fakeSummaryRepo{rows: makeRows(1)}
	svc := NewService(repo)

	if _, err := svc.ListSalesSummary(context.Background(), ListInput{OrderBy: OrderByTotalSale, Descending: true, Limit: 10}); err != nil {
		t.Fatalf("ListSalesSummary returned error: %v", err)
	}
	want := ListFilter{OrderBy: OrderByTotalSale, Descending: true, Limit: 10}
	if repo.lastFilter != want {
		t.Fatalf("unexpected filter: %+v", repo.lastFilter)
	}
}

func TestService_ListSalesSummary_InvalidInput(t *testing.T) {
	t.Parallel()

	repo := &fakeSummaryRepo{}
	svc := NewService(repo)

	if _, err := svc.ListSalesSummary(context.Background(), ListInput{Limit: -1}); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}
	if _, err := svc.ListSalesSummary(context.Background(), ListInput{OrderBy: "customer_name; DROP TABLE orders"}); !errors.Is(err, ErrInvalidOrderBy) {
		t.Fatalf("expected ErrInvalidOrderBy, got %v", err)
	}
	if _, err := svc.ListSalesSummary(context.Background(), ListInput{Descending: true}); !errors.Is(err, ErrInvalidOrderBy) {
		t.Fatalf("expected ErrInvalidOrderBy for descending without column, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("repository must not be called for invalid input")
	}
}
