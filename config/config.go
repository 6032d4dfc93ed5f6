package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultHTTPPort      = "4000"
	defaultMetricsPort   = "9000"
	defaultMaxConn       = 10
	defaultLoanDays      = 14
	defaultAttemptsRetry = 2000
	defaultLogValue      = true
	defaultCORSOrigins   = "*"

	defaultOutboxWorkers       = 1
	defaultOutboxBatchSize     = 100
	defaultOutboxWaitTimeMS    = 1000
	defaultOutboxInProgressTTL = 30000
)

type (
	Config struct {
		HTTP struct {
			Port        string   `env:"HTTP_PORT"`
			CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
		}

		PG struct {
			URL      string
			Host     string `env:"POSTGRES_HOST"`
			Port     string `env:"POSTGRES_PORT"`
			DB       string `env:"POSTGRES_DB"`
			User     string `env:"POSTGRES_USER"`
			Password string `env:"POSTGRES_PASSWORD"`
			MaxConn  int32  `env:"POSTGRES_MAX_CONN"`
		}

		Loan struct {
			DefaultDays int `env:"LOAN_DEFAULT_DAYS"`
		}

		Outbox struct {
			Enabled         bool          `env:"OUTBOX_ENABLED"`
			Workers         int           `env:"OUTBOX_WORKERS"`
			BatchSize       int           `env:"OUTBOX_BATCH_SIZE"`
			WaitTimeMS      time.Duration `env:"OUTBOX_WAIT_TIME_MS"`
			InProgressTTLMS time.Duration `env:"OUTBOX_IN_PROGRESS_TTL_MS"`
			BorrowSendURL   string        `env:"OUTBOX_BORROW_SEND_URL"`
			ReturnSendURL   string        `env:"OUTBOX_RETURN_SEND_URL"`
			AttemptsRetry   int           `env:"OUTBOX_ATTEMPTS_RETRY"`
		}

		Log struct {
			File            string `env:"LOG_FILE"`
			LogController   bool   `env:"LOG_CONTROLLER_ENABLED"`
			LogTransactor   bool   `env:"LOG_TRANSACTOR_ENABLED"`
			LogUseCase      bool   `env:"LOG_USECASE_ENABLED"`
			LogDBRepo       bool   `env:"LOG_DB_REPO_ENABLED"`
			LogOutboxWorker bool   `env:"LOG_OUTBOX_WORKER_ENABLED"`
		}

		Observability struct {
			MetricsPort string `env:"METRICS_PORT"`
			JaegerURL   string `env:"JAEGER_URL"`
		}
	}
)

func NewConfig() (*Config, error) {
	cfg := &Config{}
	v := viper.New()

	var err error
	if cfg.HTTP.Port, err = parseEnvString(v, "http_port", "HTTP_PORT", defaultHTTPPort); err != nil {
		return nil, err
	}

	origins, err := parseEnvString(v, "cors_origins", "CORS_ALLOWED_ORIGINS", defaultCORSOrigins)
	if err != nil {
		return nil, err
	}
	cfg.HTTP.CORSOrigins = splitList(origins)

	if cfg.PG.Host, err = parseEnvString(v, "pg_host", "POSTGRES_HOST"); err != nil {
		return nil, err
	}
	if cfg.PG.Port, err = parseEnvString(v, "pg_port", "POSTGRES_PORT"); err != nil {
		return nil, err
	}
	if cfg.PG.DB, err = parseEnvString(v, "pg_db", "POSTGRES_DB"); err != nil {
		return nil, err
	}
	if cfg.PG.User, err = parseEnvString(v, "pg_user", "POSTGRES_USER"); err != nil {
		return nil, err
	}
	if cfg.PG.Password, err = parseEnvString(v, "pg_password", "POSTGRES_PASSWORD"); err != nil {
		return nil, err
	}

	maxConn, err := parseEnvInt(v, "db_MaxCon", "POSTGRES_MAX_CONN", defaultMaxConn)
	if err != nil {
		return nil, err
	}
	if maxConn <= 0 {
		return nil, fmt.Errorf("POSTGRES_MAX_CONN must be positive, got %d", maxConn)
	}
	cfg.PG.MaxConn = int32(maxConn)

	cfg.PG.URL = (&url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.PG.User, cfg.PG.Password),
		Host:     net.JoinHostPort(cfg.PG.Host, cfg.PG.Port),
		Path:     "/" + cfg.PG.DB,
		RawQuery: "sslmode=disable",
	}).String()

	if cfg.Loan.DefaultDays, err = parseEnvInt(v, "loan_days", "LOAN_DEFAULT_DAYS", defaultLoanDays); err != nil {
		return nil, err
	}
	if cfg.Loan.DefaultDays <= 0 {
		cfg.Loan.DefaultDays = defaultLoanDays
	}

	if cfg.Outbox.Enabled, err = parseEnvBool(v, "outbox", "OUTBOX_ENABLED", false); err != nil {
		return nil, err
	}

	if cfg.Outbox.Enabled {
		if cfg.Outbox.Workers, err = parseEnvInt(v, "outbox_workers", "OUTBOX_WORKERS", defaultOutboxWorkers); err != nil {
			return nil, err
		}

		if cfg.Outbox.BatchSize, err = parseEnvInt(v, "outbox_batch", "OUTBOX_BATCH_SIZE", defaultOutboxBatchSize); err != nil {
			return nil, err
		}

		if cfg.Outbox.WaitTimeMS, err = parseEnvMillis(v, "outbox_wait", "OUTBOX_WAIT_TIME_MS", defaultOutboxWaitTimeMS); err != nil {
			return nil, err
		}

		if cfg.Outbox.InProgressTTLMS, err = parseEnvMillis(v, "outbox_ttl", "OUTBOX_IN_PROGRESS_TTL_MS", defaultOutboxInProgressTTL); err != nil {
			return nil, err
		}

		if cfg.Outbox.BorrowSendURL, err = parseEnvString(v, "outbox_borrow_url", "OUTBOX_BORROW_SEND_URL"); err != nil {
			return nil, err
		}

		if cfg.Outbox.ReturnSendURL, err = parseEnvString(v, "outbox_return_url", "OUTBOX_RETURN_SEND_URL"); err != nil {
			return nil, err
		}

		if cfg.Outbox.AttemptsRetry, err = parseEnvInt(v, "attempts", "OUTBOX_ATTEMPTS_RETRY", defaultAttemptsRetry); err != nil {
			return nil, err
		}
	}

	if cfg.Log.File, err = parseEnvString(v, "log_file", "LOG_FILE"); err != nil {
		return nil, err
	}

	if cfg.Log.LogController, err = parseEnvBool(v, "log_controller", "LOG_CONTROLLER_ENABLED", defaultLogValue); err != nil {
		return nil, err
	}

	if cfg.Log.LogTransactor, err = parseEnvBool(v, "log_transactor", "LOG_TRANSACTOR_ENABLED", defaultLogValue); err != nil {
		return nil, err
	}

	if cfg.Log.LogUseCase, err = parseEnvBool(v, "log_usecase", "LOG_USECASE_ENABLED", defaultLogValue); err != nil {
		return nil, err
	}

	if cfg.Log.LogDBRepo, err = parseEnvBool(v, "log_db", "LOG_DB_REPO_ENABLED", defaultLogValue); err != nil {
		return nil, err
	}

	if cfg.Log.LogOutboxWorker, err = parseEnvBool(v, "log_outbox_worker", "LOG_OUTBOX_WORKER_ENABLED", defaultLogValue); err != nil {
		return nil, err
	}

	if cfg.Observability.MetricsPort, err = parseEnvString(v, "metrics_port", "METRICS_PORT", defaultMetricsPort); err != nil {
		return nil, err
	}

	if cfg.Observability.JaegerURL, err = parseEnvString(v, "jaeger_url", "JAEGER_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

func parseEnvMillis(v *viper.Viper, key, envVar string, defaultValue int) (time.Duration, error) {
	ms, err := parseEnvInt(v, key, envVar, defaultValue)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func parseEnvBool(v *viper.Viper, key, envVar string, defaultValue ...bool) (bool, error) {
	err := v.BindEnv(key, envVar)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0], err
		}
		return false, err
	}
	if len(defaultValue) > 0 {
		v.SetDefault(key, defaultValue[0])
	}
	return v.GetBool(key), nil
}

func parseEnvInt(v *viper.Viper, key, envVar string, defaultValue ...int) (int, error) {
	err := v.BindEnv(key, envVar)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0], err
		}
		return 0, err
	}
	if len(defaultValue) > 0 {
		v.SetDefault(key, defaultValue[0])
	}
	return v.GetInt(key), nil
}

func parseEnvString(v *viper.Viper, key, envVar string, defaultValue ...string) (string, error) {
	err := v.BindEnv(key, envVar)
	if err != nil {
		if len(defaultValue) > 0 {
			return defaultValue[0], err
		}
		return "", err
	}
	if len(defaultValue) > 0 {
		v.SetDefault(key, defaultValue[0])
	}
	return v.GetString(key), nil
}
