package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Tracing  TracingConfig  `yaml:"tracing"`
	NewHire  NewHireConfig  `yaml:"new_hire"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" env:"PAYROLL_LISTEN_ADDR"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host" env:"PAYROLL_DB_HOST"`
	Port               int           `yaml:"port" env:"PAYROLL_DB_PORT"`
	User               string        `yaml:"user" env:"PAYROLL_DB_USER"`
	Password           string        `yaml:"password" env:"PAYROLL_DB_PASSWORD"`
	Name               string        `yaml:"name" env:"PAYROLL_DB_NAME"`
	SSLMode            string        `yaml:"ssl_mode" env:"PAYROLL_DB_SSL_MODE"`
	MaxOpenConns       int           `yaml:"max_open_conns"`
	MaxIdleConns       int           `yaml:"max_idle_conns"`
	TxIsolation        string        `yaml:"tx_isolation" env:"PAYROLL_DB_TX_ISOLATION"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time"`
}

// LoggingConfig は zap ロガーの設定です。
type LoggingConfig struct {
	Level       string `yaml:"level" env:"PAYROLL_LOG_LEVEL"`
	Development bool   `yaml:"development" env:"PAYROLL_LOG_DEVELOPMENT"`
}

// MetricsConfig は Prometheus エンドポイントの設定です。ListenAddr が空なら無効です。
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr" env:"PAYROLL_METRICS_ADDR"`
}

// TracingConfig は OpenTelemetry の設定です。Endpoint が空なら無効です。
type TracingConfig struct {
	Endpoint    string `yaml:"endpoint" env:"PAYROLL_OTEL_ENDPOINT"`
	ServiceName string `yaml:"service_name" env:"PAYROLL_OTEL_SERVICE_NAME"`
}

// NewHireConfig は入社者処理の設定です。
type NewHireConfig struct {
	Window        time.Duration `yaml:"-"`
	WindowRaw     string        `yaml:"window" env:"PAYROLL_NEW_HIRE_WINDOW"`
	FailurePolicy string        `yaml:"failure_policy" env:"PAYROLL_NEW_HIRE_FAILURE_POLICY"`
}

const (
	defaultNewHireWindow = 30 * 24 * time.Hour
	defaultServiceName   = "payroll"
)

var (
	validIsolationLevels = map[string]struct{}{
		"":                 {},
		"read committed":   {},
		"repeatable read":  {},
		"serializable":     {},
		"read uncommitted": {},
	}
	validFailurePolicies = map[string]struct{}{
		"fail_fast": {},
		"rollback":  {},
		"skip":      {},
	}
)

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書きします。
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	if err := c.Database.validateAndNormalize(); err != nil {
		return err
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Tracing.ServiceName == "" {
		c.Tracing.ServiceName = defaultServiceName
	}

	if err := c.NewHire.validateAndNormalize(); err != nil {
		return err
	}

	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	d.TxIsolation = strings.ToLower(strings.TrimSpace(d.TxIsolation))
	if _, ok := validIsolationLevels[d.TxIsolation]; !ok {
		return fmt.Errorf("config: database.tx_isolation %q is not supported", d.TxIsolation)
	}

	lifetime, err := parseDurationAllowEmpty(d.ConnMaxLifetimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationAllowEmpty(d.ConnMaxIdleTimeRaw)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (n *NewHireConfig) validateAndNormalize() error {
	window, err := parseDurationAllowEmpty(n.WindowRaw)
	if err != nil {
		return fmt.Errorf("config: new_hire.window: %w", err)
	}
	if window < 0 {
		return fmt.Errorf("config: new_hire.window must not be negative")
	}
	if window == 0 {
		window = defaultNewHireWindow
	}
	n.Window = window

	if n.FailurePolicy == "" {
		n.FailurePolicy = "fail_fast"
	}
	if _, ok := validFailurePolicies[n.FailurePolicy]; !ok {
		return fmt.Errorf("config: new_hire.failure_policy %q is not supported", n.FailurePolicy)
	}

	return nil
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。認証情報は URL エスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + strconv.Itoa(d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
