package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("log defaults wrong: %+v", cfg.Log)
	}
	if cfg.Term.Start != "1403/06/31" || cfg.Term.End != "1403/10/20" {
		t.Errorf("term defaults wrong: %+v", cfg.Term)
	}
	if cfg.Term.Timezone != "Asia/Tehran" || cfg.Term.UTCOffset != "+0330" {
		t.Errorf("timezone defaults wrong: %+v", cfg.Term)
	}
	if cfg.Calendar.DayStartHour != 7 || cfg.Calendar.DayEndHour != 20 {
		t.Errorf("calendar defaults wrong: %+v", cfg.Calendar)
	}
	if cfg.Planner.MaxSchedules != 5 {
		t.Errorf("max schedules = %d, want 5", cfg.Planner.MaxSchedules)
	}
	if cfg.Export.ProductID != "-//course-plan//EN" {
		t.Errorf("product id = %q", cfg.Export.ProductID)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
log:
  level: debug
planner:
  max_schedules: 3
term:
  start: 1403/11/12
  end: 1404/03/20
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Planner.MaxSchedules != 3 {
		t.Errorf("max schedules = %d, want 3", cfg.Planner.MaxSchedules)
	}
	if cfg.Term.Start != "1403/11/12" {
		t.Errorf("term start = %q", cfg.Term.Start)
	}
	// Untouched keys keep their defaults.
	if cfg.Term.Timezone != "Asia/Tehran" {
		t.Errorf("timezone should default, got %q", cfg.Term.Timezone)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load("")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Calendar.DayStartHour = 20
	cfg.Calendar.DayEndHour = 7
	if err := cfg.Validate(); err == nil {
		t.Error("inverted calendar window must be rejected")
	}

	cfg = base()
	cfg.Planner.MaxSchedules = 0
	if err := cfg.Validate(); err == nil {
		t.Error("zero max_schedules must be rejected")
	}

	cfg = base()
	cfg.Term.Start = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty term boundaries must be rejected")
	}
}
