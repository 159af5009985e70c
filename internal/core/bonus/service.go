package bonus

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase は賞与計算ユースケースの公開インターフェースです。
type UseCase interface {
	CalculateBonuses(ctx context.Context, departmentID int64) (*Result, error)
}

// Service は部署単位の賞与を計算して記録します。
type Service struct {
	repo   Repository
	clock  Clock
	tx     TransactionManager
	logger *zap.Logger
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager, logger *zap.Logger) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, clock: clock, tx: tx, logger: logger}
}

// CalculateBonuses は部署の売上合計から賞与率を決め、所属社員ごとに賞与を 1 行追記します。
// すべての追記は 1 トランザクションで行い、途中で失敗した場合は 1 行も残しません。
func (s *Service) CalculateBonuses(ctx context.Context, departmentID int64) (*Result, error) {
	if departmentID <= 0 {
		return nil, ErrInvalidDepartmentID
	}

	ctx, span := otel.Tracer("payroll/bonus").Start(ctx, "CalculateBonuses")
	defer span.End()
	span.SetAttributes(attribute.Int64("bonus.department_id", departmentID))

	var result *Result
	err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		total, err := s.repo.SumDepartmentSales(txCtx, departmentID)
		if err != nil {
			return fmt.Errorf("bonus: sum sales for department %d: %w", departmentID, err)
		}
		rate := RateFor(total)

		employees, err := s.repo.ListDepartmentEmployees(txCtx, departmentID)
		if err != nil {
			return fmt.Errorf("bonus: list employees for department %d: %w", departmentID, err)
		}

		now := s.clock.Now()
		bonuses := make([]*Bonus, 0, len(employees))
		for _, e := range employees {
			b := &Bonus{
				EmployeeID: e.EmployeeID,
				Amount:     AmountFor(e.SalesYTD, rate),
				BonusDate:  now,
			}
			if err := s.repo.InsertBonus(txCtx, b); err != nil {
				return fmt.Errorf("bonus: insert for employee %d: %w", e.EmployeeID, err)
			}
			bonuses = append(bonuses, b)
		}

		result = &Result{
			DepartmentID: departmentID,
			TotalSales:   total,
			Rate:         rate,
			Bonuses:      bonuses,
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("bonus calculation rolled back", zap.Int64("department_id", departmentID), zap.Error(err))
		return nil, err
	}

	span.SetAttributes(attribute.Int("bonus.rows", len(result.Bonuses)))
	s.logger.Info("bonuses calculated",
		zap.Int64("department_id", departmentID),
		zap.String("total_sales", result.TotalSales.String()),
		zap.String("rate", result.Rate.String()),
		zap.Int("rows", len(result.Bonuses)),
	)
	return result, nil
}
