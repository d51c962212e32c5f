package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	version := GetVersion()
	commit := GetGitCommit()
	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` 888      8888888b.        d8888  .d8888b.  888    888`,
		` 888      888  "Y88b      d88888 d88P  Y88b 888    888`,
		` 888      888    888     d88P888 Y88b.      888    888`,
		` 888      888    888    d88P 888  "Y888b.   8888888888`,
		` 888      888    888   d88P  888     "Y88b. 888    888`,
		` 888      888    888  d88P   888       "888 888    888`,
		` 888      888  .d88P d8888888888 Y88b  d88P 888    888`,
		` 88888888 8888888P" d88P     888  "Y8888P"  888    888`,
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  %sLedgerdash%s - budgeting ledger dashboard\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "  version: %s (%s)\n", version, commit)
	fmt.Fprintf(os.Stderr, "  env:     %s\n", config.Environment)
	fmt.Fprintf(os.Stderr, "  api:     %s\n", serviceURL)
	if config.Actual.APIKey == "" {
		fmt.Fprintf(os.Stderr, "  ledger:  demo dataset (no upstream configured)\n")
	} else {
		fmt.Fprintf(os.Stderr, "  ledger:  %s\n", config.Actual.BaseURL)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")

	logger.Info().
		Str("version", version).
		Str("environment", config.Environment).
		Msg("Ledgerdash starting")
}
