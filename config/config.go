package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the application configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Term     TermConfig     `mapstructure:"term"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Planner  PlannerConfig  `mapstructure:"planner"`
	Export   ExportConfig   `mapstructure:"export"`
}

// LogConfig controls zap output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StorageConfig locates the planner state database and the catalog
// snapshot.
type StorageConfig struct {
	StatePath   string `mapstructure:"state_path"`
	CatalogPath string `mapstructure:"catalog_path"`
}

// TermConfig describes the academic term. Start and End are Jalali
// "YYYY/MM/DD" dates; the week starts on Saturday.
type TermConfig struct {
	Start     string `mapstructure:"start"`
	End       string `mapstructure:"end"`
	Timezone  string `mapstructure:"timezone"`
	UTCOffset string `mapstructure:"utc_offset"`
}

// CalendarConfig is the visible time window of the day axis.
type CalendarConfig struct {
	DayStartHour int `mapstructure:"day_start_hour"`
	DayEndHour   int `mapstructure:"day_end_hour"`
}

// PlannerConfig bounds the schedule collection.
type PlannerConfig struct {
	MaxSchedules int `mapstructure:"max_schedules"`
}

// ExportConfig carries the calendar product identifier.
type ExportConfig struct {
	ProductID string `mapstructure:"product_id"`
}

// Load reads configuration from the given file (or the default search
// path), environment, and defaults. Precedence: env > file > defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── Defaults ──
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("storage.state_path", defaultStatePath())
	v.SetDefault("storage.catalog_path", "catalog.json")

	// Fall 1403: Saturday 1403/06/31 through Thursday 1403/10/20.
	v.SetDefault("term.start", "1403/06/31")
	v.SetDefault("term.end", "1403/10/20")
	v.SetDefault("term.timezone", "Asia/Tehran")
	v.SetDefault("term.utc_offset", "+0330")

	v.SetDefault("calendar.day_start_hour", 7)
	v.SetDefault("calendar.day_end_hour", 20)

	v.SetDefault("planner.max_schedules", 5)

	v.SetDefault("export.product_id", "-//course-plan//EN")

	// ── Config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── Environment ──
	v.SetEnvPrefix("COURSEPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file: defaults and environment only.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that would corrupt derived views rather
// than fail loudly later.
func (c *Config) Validate() error {
	if c.Calendar.DayStartHour < 0 || c.Calendar.DayEndHour > 24 ||
		c.Calendar.DayStartHour >= c.Calendar.DayEndHour {
		return fmt.Errorf("config: calendar window %d-%d is invalid",
			c.Calendar.DayStartHour, c.Calendar.DayEndHour)
	}
	if c.Planner.MaxSchedules < 1 {
		return fmt.Errorf("config: planner.max_schedules must be at least 1")
	}
	if c.Term.Start == "" || c.Term.End == "" {
		return fmt.Errorf("config: term.start and term.end are required")
	}
	return nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "planner.db"
	}
	return filepath.Join(home, ".course-plan", "planner.db")
}
