package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ledgerdash/internal/clients/actual"
	"ledgerdash/internal/common"
	"ledgerdash/internal/interfaces"
	"ledgerdash/internal/services/dashboard"
)

// App holds all initialized services and clients. It is the shared core
// used by cmd/ledgerdash-server and by handler tests.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Client      interfaces.LedgerClient
	Hub         *dashboard.Hub
	Dashboard   interfaces.DashboardService
	StartupTime time.Time

	schedulerCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes config, logging, the upstream client, and the
// dashboard service. configPath may be empty, in which case the default
// resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	// Load configuration - check provided path, LDASH_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("LDASH_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(getBinaryDir(), "ledgerdash.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/ledgerdash.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLogger(config.Logging.Level)

	// Without an API key there is no upstream to call; the dashboard
	// service serves the demo dataset instead.
	var client interfaces.LedgerClient
	if config.Actual.APIKey != "" {
		client = actual.NewClient(config.Actual.APIKey, config.Actual.BudgetID,
			actual.WithBaseURL(config.Actual.BaseURL),
			actual.WithLogger(logger),
			actual.WithRateLimit(config.Actual.RateLimit),
			actual.WithTimeout(config.Actual.GetTimeout()),
		)
	} else {
		logger.Warn().Msg("No Actual API key configured - serving demo dataset")
	}

	hub := dashboard.NewHub(logger)
	go hub.Run()

	dashboardService := dashboard.NewService(client, config.AccountGroups, hub, logger)

	a := &App{
		Config:      config,
		Logger:      logger,
		Client:      client,
		Hub:         hub,
		Dashboard:   dashboardService,
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// StartScheduler launches the background refresh goroutine.
func (a *App) StartScheduler() {
	ctx, cancel := context.WithCancel(context.Background())
	a.schedulerCancel = cancel
	go startRefreshScheduler(ctx, a.Dashboard, a.Logger, a.Config.Refresh.GetInterval())
}

// Close releases all resources held by the App.
func (a *App) Close() {
	if a.schedulerCancel != nil {
		a.schedulerCancel()
		a.schedulerCancel = nil
	}
	if a.Hub != nil {
		a.Hub.Stop()
	}
}
