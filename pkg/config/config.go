package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	Dataset   DatasetConfig
	Generator GeneratorConfig
	Forecast  ForecastConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Dataset.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Generator.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BIZPREDICT_APP_ENV" default:"dev"`
	Port         string `envconfig:"BIZPREDICT_APP_PORT" default:"8000"`
	LogLevel     string `envconfig:"BIZPREDICT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BIZPREDICT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DatasetConfig selects where the transaction table is loaded from at startup.
// Source "csv" reads CSVPath, "sqlite" reads SQLitePath, "generate" builds the
// table in memory from the generator settings.
type DatasetConfig struct {
	Source     string `envconfig:"BIZPREDICT_DATASET_SOURCE" default:"generate"`
	CSVPath    string `envconfig:"BIZPREDICT_DATASET_CSV_PATH" default:"data/raw/ethiopia_sales_raw.csv"`
	SQLitePath string `envconfig:"BIZPREDICT_DATASET_SQLITE_PATH" default:"data/raw/ethiopia_sales.db"`
}

func (d DatasetConfig) validate() error {
	switch strings.ToLower(d.Source) {
	case "csv", "sqlite", "generate":
		return nil
	}
	return fmt.Errorf("invalid dataset source %q", d.Source)
}

type GeneratorConfig struct {
	StartDate string `envconfig:"BIZPREDICT_GENERATOR_START_DATE" default:"2020-01-01"`
	EndDate   string `envconfig:"BIZPREDICT_GENERATOR_END_DATE" default:"2024-10-31"`
	Seed      int64  `envconfig:"BIZPREDICT_GENERATOR_SEED" default:"42"`
}

func (g GeneratorConfig) validate() error {
	start, err := time.Parse("2006-01-02", g.StartDate)
	if err != nil {
		return fmt.Errorf("invalid generator start date %q", g.StartDate)
	}
	end, err := time.Parse("2006-01-02", g.EndDate)
	if err != nil {
		return fmt.Errorf("invalid generator end date %q", g.EndDate)
	}
	if end.Before(start) {
		return fmt.Errorf("generator end date %q before start date %q", g.EndDate, g.StartDate)
	}
	return nil
}

// Range returns the parsed generator date window. validate must have passed.
func (g GeneratorConfig) Range() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", g.StartDate)
	end, _ := time.Parse("2006-01-02", g.EndDate)
	return start.UTC(), end.UTC()
}

type ForecastConfig struct {
	HoldoutDays           int     `envconfig:"BIZPREDICT_FORECAST_HOLDOUT_DAYS" default:"90"`
	DefaultPeriods        int     `envconfig:"BIZPREDICT_FORECAST_DEFAULT_PERIODS" default:"90"`
	ChangepointPriorScale float64 `envconfig:"BIZPREDICT_FORECAST_CHANGEPOINT_PRIOR_SCALE" default:"0.05"`
	MinFilteredObs        int     `envconfig:"BIZPREDICT_FORECAST_MIN_FILTERED_OBS" default:"14"`
}
