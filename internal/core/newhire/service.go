package newhire

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/apperr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// DefaultWindow は入社者とみなす期間です。
const DefaultWindow = 30 * 24 * time.Hour

const messagePrefix = "New hire processed for "

// FailurePolicy は部署参照に失敗したときの振る舞いです。
type FailurePolicy string

const (
	// FailurePolicyFailFast は最初の失敗で中断します。それまでに追記したログは呼び出し側のスコープに残ります。
	FailurePolicyFailFast FailurePolicy = "fail_fast"
	// FailurePolicyRollback は全体を 1 トランザクションで実行し、失敗時はすべて取り消します。
	FailurePolicyRollback FailurePolicy = "rollback"
	// FailurePolicySkip は失敗した入社者を記録して処理を続けます。
	FailurePolicySkip FailurePolicy = "skip"
)

// ParseFailurePolicy は設定値を FailurePolicy に変換します。空文字列は fail_fast です。
func ParseFailurePolicy(raw string) (FailurePolicy, error) {
	switch FailurePolicy(raw) {
	case "":
		return FailurePolicyFailFast, nil
	case FailurePolicyFailFast, FailurePolicyRollback, FailurePolicySkip:
		return FailurePolicy(raw), nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidFailurePolicy)
	}
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

type randomIDGenerator struct{}

func (randomIDGenerator) NewID() (uuid.UUID, error) {
	return uuid.NewRandom()
}

// UseCase は入社者処理ユースケースの公開インターフェースです。
type UseCase interface {
	ProcessNewHires(ctx context.Context, now time.Time) (*Result, error)
}

// Options は Service の任意設定です。
type Options struct {
	Window        time.Duration
	FailurePolicy FailurePolicy
	IDs           IDGenerator
	Tx            TransactionManager
	Logger        *zap.Logger
}

// Service は直近の入社者ごとに社員ログを追記します。
type Service struct {
	repo        Repository
	departments DepartmentLookup
	ids         IDGenerator
	tx          TransactionManager
	window      time.Duration
	policy      FailurePolicy
	logger      *zap.Logger
}

// NewService は Service を生成します。
func NewService(repo Repository, departments DepartmentLookup, opts Options) *Service {
	s := &Service{
		repo:        repo,
		departments: departments,
		ids:         opts.IDs,
		tx:          opts.Tx,
		window:      opts.Window,
		policy:      opts.FailurePolicy,
		logger:      opts.Logger,
	}
	if s.ids == nil {
		s.ids = randomIDGenerator{}
	}
	if s.tx == nil {
		s.tx = noopTransactionManager{}
	}
	if s.window <= 0 {
		s.window = DefaultWindow
	}
	if s.policy == "" {
		s.policy = FailurePolicyFailFast
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// ProcessNewHires は now から Window 以内に入社した社員それぞれについて
// "New hire processed for <部署名>" のログを 1 行追記します。
func (s *Service) ProcessNewHires(ctx context.Context, now time.Time) (*Result, error) {
	if now.IsZero() {
		return nil, ErrInvalidNow
	}

	ctx, span := otel.Tracer("payroll/newhire").Start(ctx, "ProcessNewHires")
	defer span.End()

	cutoff := now.Add(-s.window)
	span.SetAttributes(
		attribute.String("newhire.failure_policy", string(s.policy)),
		attribute.String("newhire.cutoff", cutoff.Format(time.RFC3339)),
	)

	var result *Result
	run := func(runCtx context.Context) error {
		r, err := s.process(runCtx, now, cutoff)
		if err != nil {
			return err
		}
		result = r
		return nil
	}

	var err error
	if s.policy == FailurePolicyRollback {
		err = s.tx.WithinReadWrite(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.Int("newhire.processed", len(result.Logs)),
		attribute.Int("newhire.skipped", len(result.Skipped)),
	)
	s.logger.Info("new hires processed",
		zap.Time("cutoff", cutoff),
		zap.Int("processed", len(result.Logs)),
		zap.Int("skipped", len(result.Skipped)),
	)
	return result, nil
}

func (s *Service) process(ctx context.Context, now, cutoff time.Time) (*Result, error) {
	hires, err := s.repo.ListStartedAfter(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	result := &Result{Cutoff: cutoff, Logs: make([]*EmployeeLog, 0, len(hires))}
	for _, hire := range hires {
		name, err := s.departmentName(ctx, hire)
		if err != nil {
			if s.policy == FailurePolicySkip {
				s.logger.Warn("skipping new hire",
					zap.Int64("employee_id", hire.EmployeeID),
					zap.Int64p("department_id", hire.DepartmentID),
					zap.Error(err),
				)
				result.Skipped = append(result.Skipped, SkippedHire{
					EmployeeID:   hire.EmployeeID,
					DepartmentID: hire.DepartmentID,
					Err:          err,
				})
				continue
			}
			return nil, fmt.Errorf("newhire: employee %d: %w: %w", hire.EmployeeID, apperr.ErrDependencyFailure, err)
		}

		id, err := s.ids.NewID()
		if err != nil {
			return nil, fmt.Errorf("newhire: generate log id: %w", err)
		}

		entry := &EmployeeLog{
			ID:         id,
			EmployeeID: hire.EmployeeID,
			Message:    messagePrefix + name,
			CreatedAt:  now,
		}
		if err := s.repo.AppendLog(ctx, entry); err != nil {
			return nil, err
		}
		result.Logs = append(result.Logs, entry)
	}

	return result, nil
}

func (s *Service) departmentName(ctx context.Context, hire Hire) (string, error) {
	if hire.DepartmentID == nil {
		return "", ErrNoDepartment
	}
	return s.departments.GetDepartmentName(ctx, *hire.DepartmentID)
}
