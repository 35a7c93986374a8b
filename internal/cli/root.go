// Package cli implements the courseplan commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CS-UT/course-plan-sub000/config"
	"github.com/CS-UT/course-plan-sub000/internal/catalog"
	"github.com/CS-UT/course-plan-sub000/internal/export"
	"github.com/CS-UT/course-plan-sub000/internal/planner"
	"github.com/CS-UT/course-plan-sub000/internal/repository"
	"github.com/CS-UT/course-plan-sub000/pkg/logger"
)

var (
	cfgPath     string
	statePath   string
	catalogPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "courseplan",
	Short:         "Plan university course schedules for one term",
	Long:          "Browse the offered sections of an academic term, assemble up to five weekly schedules, spot time and exam clashes, and export the plan as ICS or XLSX.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path (default: ./config/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Planner state database path (overrides config)")
	RootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog snapshot path (overrides config)")
}

// app bundles everything a command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	repo    repository.StateRepository
	store   planner.Store
	catalog *catalog.Catalog
}

// newApp wires config → logger → repository → store, plus the catalog
// snapshot when the command browses or adds courses.
func newApp(cmd *cobra.Command, needCatalog bool) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if statePath != "" {
		cfg.Storage.StatePath = statePath
	}
	if catalogPath != "" {
		cfg.Storage.CatalogPath = catalogPath
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, err
	}

	repo, err := repository.NewSQLite(cfg.Storage.StatePath)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: log,
		repo:   repo,
		store:  planner.New(cmd.Context(), repo, cfg.Planner.MaxSchedules, log),
	}

	if needCatalog {
		cat, err := catalog.Load(cfg.Storage.CatalogPath)
		if err != nil {
			repo.Close()
			return nil, err
		}
		a.catalog = cat
	}
	return a, nil
}

func (a *app) Close() {
	a.repo.Close()
	_ = a.logger.Sync()
}

func (a *app) term() (export.Term, error) {
	return export.NewTerm(
		a.cfg.Term.Start,
		a.cfg.Term.End,
		a.cfg.Term.Timezone,
		a.cfg.Term.UTCOffset,
		a.cfg.Export.ProductID,
	)
}

// Execute runs the root command and reports failures on stderr.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
