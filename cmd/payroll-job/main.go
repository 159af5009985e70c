package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/ogurasousui/codex-grpc-payroll/internal/app"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/bonus"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/salaryband"
	"github.com/ogurasousui/codex-grpc-payroll/internal/core/salessummary"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/config"
	pg "github.com/ogurasousui/codex-grpc-payroll/internal/platform/db/postgres"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/logging"
	"github.com/ogurasousui/codex-grpc-payroll/internal/platform/tracing"
	"go.uber.org/zap"
)

const usage = `usage: payroll-job [-config path] <command> [flags]

commands:
  new-hires      [-now RFC3339]
  bonuses        -department ID
  band           -salary AMOUNT
  department     -id ID
  sales-summary  [-order-by column] [-desc] [-limit N]
`

func main() {
	configPath := flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// band は DB を必要としない。
	if flag.Arg(0) == "band" {
		if err := runBand(flag.Args()[1:], os.Stdout); err != nil {
			log.Fatalf("band: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	cfg, err := config.Load(effectiveConfigPath(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn("failed to flush traces", zap.Error(err))
		}
	}()

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize database pool", zap.Error(err))
	}
	defer dbPool.Close()

	services, err := app.NewServices(dbPool, cfg, logger)
	if err != nil {
		logger.Fatal("failed to build services", zap.Error(err))
	}

	cmd, args := flag.Arg(0), flag.Args()[1:]
	if err := run(ctx, services, cmd, args, os.Stdout); err != nil {
		logger.Fatal("job failed", zap.String("command", cmd), zap.Error(err))
	}
}

func effectiveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		return env
	}
	return "assets/local.yaml"
}

func run(ctx context.Context, services *app.Services, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "new-hires":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		nowRaw := fs.String("now", "", "reference time in RFC3339 (defaults to current time)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		now := time.Now().UTC()
		if *nowRaw != "" {
			parsed, err := time.Parse(time.RFC3339, *nowRaw)
			if err != nil {
				return fmt.Errorf("parse -now: %w", err)
			}
			now = parsed
		}
		result, err := services.NewHires.ProcessNewHires(ctx, now)
		if err != nil {
			return err
		}
		view := newHiresView{Cutoff: result.Cutoff}
		for _, l := range result.Logs {
			view.Processed = append(view.Processed, processedView{LogID: l.ID.String(), EmployeeID: l.EmployeeID, Message: l.Message})
		}
		for _, s := range result.Skipped {
			view.Skipped = append(view.Skipped, skippedView{EmployeeID: s.EmployeeID, DepartmentID: s.DepartmentID, Error: s.Err.Error()})
		}
		return writeJSON(out, view)

	case "bonuses":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		deptID := fs.Int64("department", 0, "department id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		result, err := services.Bonuses.CalculateBonuses(ctx, *deptID)
		if err != nil {
			return err
		}
		return writeJSON(out, newBonusesView(result))

	case "department":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		id := fs.Int64("id", 0, "department id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		name, err := services.Departments.GetDepartmentName(ctx, *id)
		if err != nil {
			return err
		}
		return writeJSON(out, map[string]any{"department_id": *id, "department_name": name})

	case "sales-summary":
		fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
		orderBy := fs.String("order-by", "", "order_id, order_date or total_sale")
		desc := fs.Bool("desc", false, "sort descending")
		limit := fs.Int("limit", 0, "maximum rows (0 means 100)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		rows, err := services.Sales.ListSalesSummary(ctx, salessummary.ListInput{
			OrderBy:    salessummary.OrderBy(*orderBy),
			Descending: *desc,
			Limit:      *limit,
		})
		if err != nil {
			return err
		}
		return writeJSON(out, newSalesSummaryView(rows))

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runBand(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("band", flag.ContinueOnError)
	salary := fs.String("salary", "", "salary amount (empty means NULL)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	band, err := salaryband.Parse(*salary)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, band)
	return err
}

type newHiresView struct {
	Cutoff    time.Time       `json:"cutoff"`
	Processed []processedView `json:"processed"`
	Skipped   []skippedView   `json:"skipped,omitempty"`
}

type processedView struct {
	LogID      string `json:"log_id"`
	EmployeeID int64  `json:"employee_id"`
	Message    string `json:"message"`
}

type skippedView struct {
	EmployeeID   int64  `json:"employee_id"`
	DepartmentID *int64 `json:"department_id"`
	Error        string `json:"error"`
}

type bonusesView struct {
	DepartmentID int64       `json:"department_id"`
	TotalSales   string      `json:"total_sales"`
	BonusRate    string      `json:"bonus_rate"`
	Bonuses      []bonusView `json:"bonuses"`
}

type bonusView struct {
	EmployeeID  int64     `json:"employee_id"`
	BonusAmount string    `json:"bonus_amount"`
	BonusDate   time.Time `json:"bonus_date"`
}

func newBonusesView(r *bonus.Result) bonusesView {
	v := bonusesView{
		DepartmentID: r.DepartmentID,
		TotalSales:   r.TotalSales.StringFixed(2),
		BonusRate:    r.Rate.StringFixed(2),
		Bonuses:      make([]bonusView, 0, len(r.Bonuses)),
	}
	for _, b := range r.Bonuses {
		v.Bonuses = append(v.Bonuses, bonusView{EmployeeID: b.EmployeeID, BonusAmount: b.Amount.StringFixed(2), BonusDate: b.BonusDate})
	}
	return v
}

type salesSummaryRowView struct {
	OrderID      int64     `json:"order_id"`
	OrderDate    time.Time `json:"order_date"`
	CustomerName *string   `json:"customer_name"`
	ProductName  string    `json:"product_name"`
	Quantity     int64     `json:"quantity"`
	Price        string    `json:"price"`
	TotalSale    string    `json:"total_sale"`
}

func newSalesSummaryView(rows []*salessummary.Row) []salesSummaryRowView {
	out := make([]salesSummaryRowView, 0, len(rows))
	for _, r := range rows {
		out = append(out, salesSummaryRowView{
			OrderID:      r.OrderID,
			OrderDate:    r.OrderDate,
			CustomerName: r.CustomerName,
			ProductName:  r.ProductName,
			Quantity:     r.Quantity,
			Price:        r.Price.StringFixed(2),
			TotalSale:    r.TotalSale.StringFixed(2),
		})
	}
	return out
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
