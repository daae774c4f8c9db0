package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/email"
	"github.com/de-tools/roi-atlas/pkg/services/format"
	"github.com/de-tools/roi-atlas/pkg/services/report"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const EnvPrefix = "ROI"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Report    ReportConfig    `mapstructure:"report"`
	Email     EmailConfig     `mapstructure:"email"`
	Scenarios ScenariosConfig `mapstructure:"scenarios"`
	Export    ExportConfig    `mapstructure:"export"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type ReportConfig struct {
	Locale         string  `mapstructure:"locale"`
	CurrencySymbol string  `mapstructure:"currency_symbol"`
	PageWidth      float64 `mapstructure:"page_width"`
	PageHeight     float64 `mapstructure:"page_height"`
}

type EmailConfig struct {
	Provider  string        `mapstructure:"provider"`
	Delay     time.Duration `mapstructure:"delay"`
	From      string        `mapstructure:"from"`
	Region    string        `mapstructure:"region"`
	Retention time.Duration `mapstructure:"retention"`
}

type ScenariosConfig struct {
	Path string `mapstructure:"path"`
}

type ExportConfig struct {
	Region string `mapstructure:"region"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("report.locale", format.DefaultLocale)
	v.SetDefault("report.currency_symbol", format.DefaultSymbol)
	v.SetDefault("report.page_width", report.A4.Width)
	v.SetDefault("report.page_height", report.A4.Height)
	v.SetDefault("email.provider", email.ProviderSimulated)
	v.SetDefault("email.delay", email.DefaultSimulatedDelay)
	v.SetDefault("email.from", "reports@roi-atlas.local")
	v.SetDefault("email.region", "")
	v.SetDefault("email.retention", email.DefaultRetention)
	v.SetDefault("scenarios.path", "")
	v.SetDefault("export.region", "")
}

// LoadConfig reads defaults, then the optional file at path, then ROI_*
// environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || c.Log.Level == "" {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) Formatter() format.Formatter {
	return format.New(c.Report.Locale, c.Report.CurrencySymbol)
}

func (c *Config) Layout() report.Layout {
	return report.LayoutFor(domain.PageSize{Width: c.Report.PageWidth, Height: c.Report.PageHeight})
}

func (c *Config) Dispatcher() email.Config {
	return email.Config{
		Provider: c.Email.Provider,
		Delay:    c.Email.Delay,
		From:     c.Email.From,
		Region:   c.Email.Region,
	}
}
