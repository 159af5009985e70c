package salaryband

import "github.com/shopspring/decimal"

// Band は給与から導出される等級ラベルです。
type Band string

const (
	BandSeniorExecutive Band = "Senior Executive"
	BandManager         Band = "Manager"
	BandTeamLead        Band = "Team Lead"
	BandStaff           Band = "Staff"
)

var (
	seniorExecutiveThreshold = decimal.NewFromInt(150000)
	managerThreshold         = decimal.NewFromInt(100000)
	teamLeadThreshold        = decimal.NewFromInt(50000)
)

// Classify は給与額を等級に分類します。閾値ちょうどの値は下位の等級になります。
func Classify(salary decimal.Decimal) Band {
	switch {
	case salary.GreaterThan(seniorExecutiveThreshold):
		return BandSeniorExecutive
	case salary.GreaterThan(managerThreshold):
		return BandManager
	case salary.GreaterThan(teamLeadThreshold):
		return BandTeamLead
	default:
		return BandStaff
	}
}

// ClassifyNullable は NULL を許容する給与額を分類します。
// NULL はどの閾値とも比較できないため Staff になります。
func ClassifyNullable(salary decimal.NullDecimal) Band {
	if !salary.Valid {
		return BandStaff
	}
	return Classify(salary.Decimal)
}

// Parse は文字列表現の給与額を分類します。空文字列は NULL として扱います。
func Parse(raw string) (Band, error) {
	if raw == "" {
		return ClassifyNullable(decimal.NullDecimal{}), nil
	}
	salary, err := decimal.NewFromString(raw)
	if err != nil {
		return "", ErrInvalidSalary
	}
	return Classify(salary), nil
}
