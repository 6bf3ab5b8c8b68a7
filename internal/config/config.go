package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	DB         DBConfig         `mapstructure:"db"`
	Cron       CronConfig       `mapstructure:"cron"`
	Exchange   ExchangeConfig   `mapstructure:"exchange"`
	Collector  CollectorConfig  `mapstructure:"collector"`
	Ledger     LedgerConfig     `mapstructure:"ledger"`
	MarkStream MarkStreamConfig `mapstructure:"mark_stream"`
	Retention  RetentionConfig  `mapstructure:"retention"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	SnapshotSweep string `mapstructure:"snapshot_sweep"`
	Retention     string `mapstructure:"retention"`
}

type ExchangeConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RecvWindow int           `mapstructure:"recv_window"`
}

type CollectorConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LedgerConfig struct {
	PortfolioWindow time.Duration `mapstructure:"portfolio_window"`
}

type MarkStreamConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
}

type RetentionConfig struct {
	SnapshotDays int `mapstructure:"snapshot_days"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.snapshot_sweep", "@every 5m")
	v.SetDefault("cron.retention", "@every 6h")
	v.SetDefault("exchange.base_url", "https://fapi.asterdex.com")
	v.SetDefault("exchange.timeout", "15s")
	v.SetDefault("exchange.recv_window", 5000)
	v.SetDefault("collector.enabled", true)
	v.SetDefault("ledger.portfolio_window", "24h")
	v.SetDefault("mark_stream.enabled", false)
	v.SetDefault("mark_stream.url", "wss://fstream.asterdex.com/ws/!markPrice@arr")
	v.SetDefault("retention.snapshot_days", 90)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
