// Package app はリポジトリとユースケースを組み立てます。
package app

import (
	"fmt"

	"github.com/ogurasousui/codex-grpc-payroll/internal/adapters/repository/postgres"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/bonus"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/department"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/newhire"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/salessummary"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/config"
	pgdb "github.com/ogurasousui/codex-grpc-payroll/internal/platform/db/postgres"
	"go.uber.org/zap"
)

// Database はリポジトリとトランザクション管理が必要とする接続です。
// *pgxpool.Pool がこれを満たします。
type Database interface {
	pgdb.Queryer
	pgdb.TxStarter
}

// Services は公開ユースケースの集合です。
type Services struct {
	Departments *department.Service
	NewHires    *newhire.Service
	Bonuses     *bonus.Service
	Sales       *salessummary.Service
}

// NewServices は設定に従ってユースケースを組み立てます。
func NewServices(db Database, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	policy, err := newhire.ParseFailurePolicy(cfg.NewHire.FailurePolicy)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	tx := pgdb.NewTransactionManager(db, pgdb.WithIsolation(cfg.Database.TxIsolation))

	departments := department.NewService(postgres.NewDepartmentRepository(db))

	newHires := newhire.NewService(postgres.NewNewHireRepository(db), departments, newhire.Options{
		Window:        cfg.NewHire.Window,
		FailurePolicy: policy,
		Tx:            tx,
		Logger:        logger.Named("newhire"),
	})

	bonuses := bonus.NewService(postgres.NewBonusRepository(db), nil, tx, logger.Named("bonus"))

	sales := salessummary.NewService(postgres.NewSalesSummaryRepository(db))

	return &Services{
		Departments: departments,
		NewHires:    newHires,
		Bonuses:     bonuses,
		Sales:       sales,
	}, nil
}
