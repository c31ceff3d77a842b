package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host        string
	Port        int
	CORSOrigins []string
}

type AuthConfig struct {
	AccessSecret string
}

func (a AuthConfig) Enabled() bool {
	return a.AccessSecret != ""
}

type DataConfig struct {
	InvoicePath string
	FuelPath    string
}

type ExportConfig struct {
	Dir     string
	Scale   int
	Padding int
}

type BatchConfig struct {
	SettleDelay   time.Duration
	ThrottleDelay time.Duration
	RateMin       float64
	RateMax       float64
	AmountMin     float64
	AmountMax     float64
	Timezone      string
	Location      *time.Location
}

type InvoiceConfig struct {
	RenumberOnDelete bool
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Auth        AuthConfig
	Data        DataConfig
	Export      ExportConfig
	Batch       BatchConfig
	Invoice     InvoiceConfig
}

func Load() (*Config, error) {
	// configs/.env is optional; variables already set in the environment win.
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	v.SetDefault("BATCH_SETTLE_DELAY", "200ms")
	v.SetDefault("BATCH_THROTTLE_DELAY", "800ms")
	v.SetDefault("EXPORT_SCALE", 2)
	v.SetDefault("EXPORT_PADDING", 12)

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:        v.GetString("HTTP_HOST"),
			Port:        v.GetInt("HTTP_PORT"),
			CORSOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Data: DataConfig{
			InvoicePath: v.GetString("DATA_INVOICE_PATH"),
			FuelPath:    v.GetString("DATA_FUEL_PATH"),
		},
		Export: ExportConfig{
			Dir:     v.GetString("EXPORT_DIR"),
			Scale:   v.GetInt("EXPORT_SCALE"),
			Padding: v.GetInt("EXPORT_PADDING"),
		},
		Batch: BatchConfig{
			SettleDelay:   v.GetDuration("BATCH_SETTLE_DELAY"),
			ThrottleDelay: v.GetDuration("BATCH_THROTTLE_DELAY"),
			RateMin:       v.GetFloat64("BATCH_RATE_MIN"),
			RateMax:       v.GetFloat64("BATCH_RATE_MAX"),
			AmountMin:     v.GetFloat64("BATCH_AMOUNT_MIN"),
			AmountMax:     v.GetFloat64("BATCH_AMOUNT_MAX"),
			Timezone:      v.GetString("BATCH_TIMEZONE"),
		},
		Invoice: InvoiceConfig{
			RenumberOnDelete: v.GetBool("INVOICE_RENUMBER_ON_DELETE"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if len(cfg.HTTP.CORSOrigins) == 0 {
		cfg.HTTP.CORSOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}
	if cfg.Data.InvoicePath == "" {
		cfg.Data.InvoicePath = "config/invoice.sample.yaml"
	}
	if cfg.Data.FuelPath == "" {
		cfg.Data.FuelPath = "config/fuel.sample.yaml"
	}
	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "exports"
	}
	if cfg.Batch.RateMin == 0 && cfg.Batch.RateMax == 0 {
		cfg.Batch.RateMin, cfg.Batch.RateMax = 100, 106
	}
	if cfg.Batch.AmountMin == 0 && cfg.Batch.AmountMax == 0 {
		cfg.Batch.AmountMin, cfg.Batch.AmountMax = 500, 5000
	}
	if cfg.Batch.Timezone == "" {
		cfg.Batch.Timezone = "Asia/Kolkata"
	}

	loc, err := time.LoadLocation(cfg.Batch.Timezone)
	if err != nil {
		return nil, fmt.Errorf("BATCH_TIMEZONE: %w", err)
	}
	cfg.Batch.Location = loc

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Export.Scale < 1 {
		return fmt.Errorf("EXPORT_SCALE must be at least 1")
	}
	if cfg.Export.Padding < 0 {
		return fmt.Errorf("EXPORT_PADDING must not be negative")
	}
	if cfg.Batch.SettleDelay < 0 || cfg.Batch.ThrottleDelay < 0 {
		return fmt.Errorf("batch delays must not be negative")
	}
	if cfg.Batch.RateMin <= 0 || cfg.Batch.RateMax < cfg.Batch.RateMin {
		return fmt.Errorf("BATCH_RATE_MIN/BATCH_RATE_MAX must satisfy 0 < min <= max")
	}
	if cfg.Batch.AmountMin < 0 || cfg.Batch.AmountMax < cfg.Batch.AmountMin {
		return fmt.Errorf("BATCH_AMOUNT_MIN/BATCH_AMOUNT_MAX must satisfy 0 <= min <= max")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
