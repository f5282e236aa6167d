package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contas/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/services"
)

func TestLoad_Defaults(t *testing.T) {
	settings := services.NewSettingsService(memory.NewConfigStore())

	cfg, err := load(context.Background(), settings, envconfig.MapLookuper(nil))

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), cfg)
}

func TestLoad_StoredValuesSurviveWithoutEnv(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(services.KeyUserID, "ana")
	_ = store.Set(services.KeyGoogleSpreadsheet, "sheet-1")
	settings := services.NewSettingsService(store)

	cfg, err := load(context.Background(), settings, envconfig.MapLookuper(map[string]string{}))

	require.NoError(t, err)
	assert.Equal(t, "ana", cfg.UserID)
	assert.Equal(t, "sheet-1", cfg.Google.SpreadsheetID)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(services.KeyUserID, "ana")
	_ = store.Set(services.KeyGoogleClientID, "file-client")
	settings := services.NewSettingsService(store)

	cfg, err := load(context.Background(), settings, envconfig.MapLookuper(map[string]string{
		"CONTAS_USER_ID":               "bia",
		"CONTAS_TOKEN_REFRESH_MARGIN":  "1m",
		"CONTAS_EXTRACT_MAX_AMOUNT":    "5000",
		"CONTAS_EXTRACT_DUE_SOON_DAYS": "7",
		"CONTAS_GMAIL_MAX_RESULTS":     "50",
		"CONTAS_GOOGLE_CLIENT_ID":      "env-client",
		"CONTAS_GOOGLE_CLIENT_SECRET":  "env-secret",
	}))

	require.NoError(t, err)
	assert.Equal(t, "bia", cfg.UserID)
	assert.Equal(t, time.Minute, cfg.Token.RefreshMargin)
	assert.Equal(t, domain.DefaultTokenTTL, cfg.Token.DefaultTTL)
	assert.InDelta(t, 5000.0, cfg.Extract.MaxAmount, 0)
	assert.Equal(t, 7, cfg.Extract.DueSoonDays)
	assert.Equal(t, int64(50), cfg.Gmail.MaxResults)
	assert.Equal(t, "env-client", cfg.Google.ClientID)
	assert.True(t, cfg.Google.HasOAuthClient())
}

func TestLoad_WorkspaceAndReminders(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(services.KeyImportReminders, true)
	settings := services.NewSettingsService(store)

	cfg, err := load(context.Background(), settings, envconfig.MapLookuper(nil))
	require.NoError(t, err)
	assert.True(t, cfg.Import.Reminders)
	assert.Equal(t, domain.NewScopeKey("local", ""), cfg.Scope())

	cfg, err = load(context.Background(), settings, envconfig.MapLookuper(map[string]string{
		"CONTAS_WORKSPACE_ID":     "acme",
		"CONTAS_IMPORT_REMINDERS": "false",
	}))
	require.NoError(t, err)
	assert.False(t, cfg.Import.Reminders)
	assert.Equal(t, domain.NewScopeKey("local", "acme"), cfg.Scope())
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	settings := services.NewSettingsService(memory.NewConfigStore())

	_, err := load(context.Background(), settings, envconfig.MapLookuper(map[string]string{
		"CONTAS_TOKEN_DEFAULT_TTL": "forever",
	}))
	assert.Error(t, err)

	_, err = load(context.Background(), settings, envconfig.MapLookuper(map[string]string{
		"CONTAS_EXTRACT_MAX_AMOUNT": "-10",
	}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoad_OSEnvironment(t *testing.T) {
	t.Setenv("CONTAS_GMAIL_QUERY", "subject:fatura")
	settings := services.NewSettingsService(memory.NewConfigStore())

	cfg, err := Load(context.Background(), settings)

	require.NoError(t, err)
	assert.Equal(t, "subject:fatura", cfg.Gmail.Query)
}

func TestLoad_SettingsError(t *testing.T) {
	_, err := Load(context.Background(), services.NewSettingsService(nil))
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestConfigDir(t *testing.T) {
	dir, err := configDir(context.Background(), envconfig.MapLookuper(map[string]string{
		"CONTAS_CONFIG_DIR": "/tmp/contas-test",
	}))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/contas-test", dir)

	dir, err = configDir(context.Background(), envconfig.MapLookuper(nil))
	require.NoError(t, err)
	assert.Empty(t, dir)
}
