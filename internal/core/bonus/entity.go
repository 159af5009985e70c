package bonus

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeSales は部署に所属する社員の年初来売上です。
type EmployeeSales struct {
	EmployeeID int64
	SalesYTD   decimal.Decimal
}

// Bonus は社員賞与の 1 行です。追記専用です。
type Bonus struct {
	EmployeeID int64
	Amount     decimal.Decimal
	BonusDate  time.Time
}

// Result は CalculateBonuses の実行結果です。
type Result struct {
	DepartmentID int64
	TotalSales   decimal.Decimal
	Rate         decimal.Decimal
	Bonuses      []*Bonus
}
