package bonus

import "github.com/shopspring/decimal"

var (
	highTierThreshold = decimal.NewFromInt(1000000)
	midTierThreshold  = decimal.NewFromInt(500000)

	highTierRate = decimal.RequireFromString("0.10")
	midTierRate  = decimal.RequireFromString("0.05")
	baseRate     = decimal.RequireFromString("0.02")
)

// amountScale は employee_bonuses.bonus_amount の小数桁数です。
const amountScale = 2

// RateFor は部署の売上合計から賞与率を決めます。閾値ちょうどは下位の率です。
func RateFor(totalSales decimal.Decimal) decimal.Decimal {
	switch {
	case totalSales.GreaterThan(highTierThreshold):
		return highTierRate
	case totalSales.GreaterThan(midTierThreshold):
		return midTierRate
	default:
		return baseRate
	}
}

// AmountFor は社員の売上と賞与率から賞与額を求めます。
func AmountFor(sales, rate decimal.Decimal) decimal.Decimal {
	return sales.Mul(rate).Round(amountScale)
}
