package salaryband

import (
	"errors"
	"testing"

	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
	"github.com/shopspring/decimal"
)

func TestClassify_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		salary int64
		want   Band
	}{
		{salary: 150001, want: BandSeniorExecutive},
		{salary: 150000, want: BandTeamLead},
		{salary: 100001, want: BandManager},
		{salary: 100000, want: BandTeamLead},
		{salary: 50001, want: BandTeamLead},
		{salary: 50000, want: BandStaff},
		{salary: 0, want: BandStaff},
		{salary: -10, want: BandStaff},
	}

	for _, tc := range cases {
		if got := Classify(decimal.NewFromInt(tc.salary)); got != tc.want {
			t.Errorf("Classify(%d) = %q, want %q", tc.salary, got, tc.want)
		}
	}
}

func TestClassify_100000IsTeamLead(t *testing.T) {
	t.Parallel()

	// 100000 は Manager の閾値を超えないが Team Lead の閾値は超える。
	if got := Classify(decimal.NewFromInt(100000)); got != BandTeamLead {
		t.Fatalf("expected Team Lead, got %q", got)
	}
	if got := Classify(decimal.RequireFromString("100000.01")); got != BandManager {
		t.Fatalf("expected Manager for fractional salary, got %q", got)
	}
}

func TestClassifyNullable(t *testing.T) {
	t.Parallel()

	if got := ClassifyNullable(decimal.NullDecimal{}); got != BandStaff {
		t.Fatalf("expected Staff for null salary, got %q", got)
	}

	valid := decimal.NullDecimal{Decimal: decimal.NewFromInt(200000), Valid: true}
	if got := ClassifyNullable(valid); got != BandSeniorExecutive {
		t.Fatalf("expected Senior Executive, got %q", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	band, err := Parse("")
	if err != nil {
		t.Fatalf("Parse(\"\") returned error: %v", err)
	}
	if band != BandStaff {
		t.Fatalf("expected Staff for empty input, got %q", band)
	}

	band, err = Parse("120000.50")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if band != BandManager {
		t.Fatalf("expected Manager, got %q", band)
	}

	if _, err := Parse("abc"); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
