package bonus

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository は賞与計算に必要な永続化の抽象です。
type Repository interface {
	// SumDepartmentSales は部署の年初来売上合計を返します。社員がいない場合は 0 です。
	SumDepartmentSales(ctx context.Context, departmentID int64) (decimal.Decimal, error)
	// ListDepartmentEmployees は部署の社員を返します。順序は保証しません。
	ListDepartmentEmployees(ctx context.Context, departmentID int64) ([]EmployeeSales, error)
	InsertBonus(ctx context.Context, bonus *Bonus) error
}
