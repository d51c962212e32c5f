package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "http://localhost:5007/v1", config.Actual.BaseURL)
	assert.Empty(t, config.Actual.APIKey)
	assert.Equal(t, 30*time.Second, config.Actual.GetTimeout())
	assert.Equal(t, 15*time.Minute, config.Refresh.GetInterval())
	assert.Equal(t, "info", config.Logging.Level)
	assert.Contains(t, config.AccountGroups, "assets_liquid")
	require.NoError(t, config.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledgerdash.toml")

	content := `
environment = "production"

[server]
port = 9090

[actual]
base_url = "http://budget.local/v1"
api_key = "secret"
budget_id = "My-Budget"

[refresh]
interval = "5m"

[account_groups]
assets_cash = ["Wallet"]
liabilities_card = ["Visa"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "http://budget.local/v1", config.Actual.BaseURL)
	assert.Equal(t, "secret", config.Actual.APIKey)
	assert.Equal(t, "My-Budget", config.Actual.BudgetID)
	assert.Equal(t, 5*time.Minute, config.Refresh.GetInterval())
	assert.Equal(t, []string{"Wallet"}, config.AccountGroups["assets_cash"])

	// File-defined groups replace the defaults rather than merging
	assert.NotContains(t, config.AccountGroups, "assets_liquid")
	assert.Len(t, config.AccountGroups, 2)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("/nonexistent/ledgerdash.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LDASH_ENV", "production")
	t.Setenv("LDASH_PORT", "7070")
	t.Setenv("LDASH_ACTUAL_API_KEY", "env-key")
	t.Setenv("LDASH_REFRESH_INTERVAL", "1m")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, config.IsProduction())
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "env-key", config.Actual.APIKey)
	assert.Equal(t, time.Minute, config.Refresh.GetInterval())
}

func TestValidateRejectsReservedGroupName(t *testing.T) {
	config := NewDefaultConfig()
	config.AccountGroups = map[string][]string{
		"assets": {"Checking"},
	}

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestValidateRejectsOverlappingAccounts(t *testing.T) {
	config := NewDefaultConfig()
	config.AccountGroups = map[string][]string{
		"assets_liquid": {"Checking"},
		"assets_invest": {"Checking"},
	}

	err := config.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Checking")
}

func TestValidateRejectsEmptyGroupName(t *testing.T) {
	config := NewDefaultConfig()
	config.AccountGroups = map[string][]string{
		"  ": {"Checking"},
	}
	assert.Error(t, config.Validate())
}

func TestGetIntervalFallsBackOnGarbage(t *testing.T) {
	r := RefreshConfig{Interval: "soon"}
	assert.Equal(t, 15*time.Minute, r.GetInterval())

	r = RefreshConfig{Interval: "-5m"}
	assert.Equal(t, 15*time.Minute, r.GetInterval())
}

func TestGroupClassification(t *testing.T) {
	assert.True(t, IsAssetGroup("assets_liquid"))
	assert.False(t, IsAssetGroup("assets"))
	assert.True(t, IsLiabilityGroup("liabilities_loan"))
	assert.False(t, IsLiabilityGroup("loans"))
}
