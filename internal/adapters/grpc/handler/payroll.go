package handler

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ogurasousui/codex-grpc-payroll/internal/core/bonus"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/department"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/newhire"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/salaryband"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/salessummary"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/metrics"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// PayrollGrpcHandler は PayrollService の gRPC 実装です。
type PayrollGrpcHandler struct {
	departments department.UseCase
	newHires    newhire.UseCase
	bonuses     bonus.UseCase
	sales       salessummary.UseCase
	clock       Clock
}

// NewPayrollGrpcHandler は PayrollGrpcHandler を生成します。clock が nil の場合は UTC の現在時刻を使います。
func NewPayrollGrpcHandler(
	departments department.UseCase,
	newHires newhire.UseCase,
	bonuses bonus.UseCase,
	sales salessummary.UseCase,
	clock Clock,
) *PayrollGrpcHandler {
	if clock == nil {
		clock = realClock{}
	}
	return &PayrollGrpcHandler{
		departments: departments,
		newHires:    newHires,
		bonuses:     bonuses,
		sales:       sales,
		clock:       clock,
	}
}

// ClassifySalary は給与額 (10 進文字列) を等級に分類します。空文字列は NULL として扱います。
func (h *PayrollGrpcHandler) ClassifySalary(_ context.Context, req *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	band, err := salaryband.Parse(req.GetValue())
	if err != nil {
		return nil, toStatusError(err)
	}
	return wrapperspb.String(string(band)), nil
}

// GetDepartmentName は部署名を返します。
func (h *PayrollGrpcHandler) GetDepartmentName(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.StringValue, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	name, err := h.departments.GetDepartmentName(ctx, req.GetValue())
	if err != nil {
		return nil, toStatusError(err)
	}
	return wrapperspb.String(name), nil
}

// ProcessNewHires は基準時刻 (省略時はサーバー時刻) から入社者処理を実行します。
func (h *PayrollGrpcHandler) ProcessNewHires(ctx context.Context, req *timestamppb.Timestamp) (*structpb.Struct, error) {
	now := h.clock.Now()
	if req != nil && (req.GetSeconds() != 0 || req.GetNanos() != 0) {
		if err := req.CheckValid(); err != nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("now: %v", err))
		}
		now = req.AsTime()
	}

	result, err := h.newHires.ProcessNewHires(ctx, now)
	if err != nil {
		return nil, toStatusError(err)
	}
	metrics.ObserveNewHires(len(result.Logs), len(result.Skipped))

	processed := make([]any, 0, len(result.Logs))
	for _, l := range result.Logs {
		processed = append(processed, map[string]any{
			"log_id":      l.ID.String(),
			"employee_id": l.EmployeeID,
			"message":     l.Message,
		})
	}

	skipped := make([]any, 0, len(result.Skipped))
	for _, s := range result.Skipped {
		var departmentID any
		if s.DepartmentID != nil {
			departmentID = *s.DepartmentID
		}
		skipped = append(skipped, map[string]any{
			"employee_id":   s.EmployeeID,
			"department_id": departmentID,
			"error":         s.Err.Error(),
		})
	}

	return newStruct(map[string]any{
		"cutoff":    result.Cutoff.Format(time.RFC3339),
		"processed": processed,
		"skipped":   skipped,
	})
}

// CalculateBonuses は部署の賞与を計算して記録します。
func (h *PayrollGrpcHandler) CalculateBonuses(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.bonuses.CalculateBonuses(ctx, req.GetValue())
	if err != nil {
		metrics.ObserveBonusRun(err, 0)
		return nil, toStatusError(err)
	}
	metrics.ObserveBonusRun(nil, len(result.Bonuses))

	rows := make([]any, 0, len(result.Bonuses))
	for _, b := range result.Bonuses {
		rows = append(rows, map[string]any{
			"employee_id":  b.EmployeeID,
			"bonus_amount": b.Amount.StringFixed(2),
			"bonus_date":   b.BonusDate.Format(time.RFC3339),
		})
	}

	return newStruct(map[string]any{
		"department_id": result.DepartmentID,
		"total_sales":   result.TotalSales.StringFixed(2),
		"bonus_rate":    result.Rate.StringFixed(2),
		"bonuses":       rows,
	})
}

// ListSalesSummary は売上サマリーを返します。
// リクエストは order_by (文字列)、descending (真偽値)、limit (数値) を受け付けます。
func (h *PayrollGrpcHandler) ListSalesSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	in, err := parseListSalesSummary(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	rows, err := h.sales.ListSalesSummary(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	out := make([]any, 0, len(rows))
	for _, r := range rows {
		var customer any
		if r.CustomerName != nil {
			customer = *r.CustomerName
		}
		out = append(out, map[string]any{
			"order_id":      r.OrderID,
			"order_date":    r.OrderDate.Format(time.RFC3339),
			"customer_name": customer,
			"product_name":  r.ProductName,
			"quantity":      r.Quantity,
			"price":         r.Price.StringFixed(2),
			"total_sale":    r.TotalSale.StringFixed(2),
		})
	}

	return newStruct(map[string]any{"rows": out})
}

func parseListSalesSummary(req *structpb.Struct) (salessummary.ListInput, error) {
	var in salessummary.ListInput
	fields := req.GetFields()

	if v, ok := fields["order_by"]; ok {
		if _, isString := v.GetKind().(*structpb.Value_StringValue); !isString {
			return in, fmt.Errorf("order_by must be a string")
		}
		in.OrderBy = salessummary.OrderBy(v.GetStringValue())
	}

	if v, ok := fields["descending"]; ok {
		if _, isBool := v.GetKind().(*structpb.Value_BoolValue); !isBool {
			return in, fmt.Errorf("descending must be a boolean")
		}
		in.Descending = v.GetBoolValue()
	}

	if v, ok := fields["limit"]; ok {
		if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
			return in, fmt.Errorf("limit must be a number")
		}
		n := v.GetNumberValue()
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return in, fmt.Errorf("limit must be an integer")
		}
		in.Limit = int(n)
	}

	return in, nil
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode response: %v", err))
	}
	return s, nil
}
