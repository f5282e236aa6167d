// Package config resolves the effective application settings: defaults,
// then the TOML config file, then CONTAS_* environment variables.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
)

// Env mirrors AppSettings as environment variables. Variables that are not
// set leave the stored value untouched.
type Env struct {
	UserID      string `env:"CONTAS_USER_ID, overwrite"`
	WorkspaceID string `env:"CONTAS_WORKSPACE_ID, overwrite"`
	DataDir     string `env:"CONTAS_DATA_DIR, overwrite"`

	Token   TokenEnv
	Extract ExtractEnv
	Gmail   GmailEnv
	Google  GoogleEnv
	Import  ImportEnv
}

// TokenEnv overrides the token cache timings.
type TokenEnv struct {
	RefreshMargin time.Duration `env:"CONTAS_TOKEN_REFRESH_MARGIN, overwrite"`
	DefaultTTL    time.Duration `env:"CONTAS_TOKEN_DEFAULT_TTL, overwrite"`
}

// ExtractEnv overrides the extractor bounds.
type ExtractEnv struct {
	MaxAmount   float64 `env:"CONTAS_EXTRACT_MAX_AMOUNT, overwrite"`
	DueSoonDays int     `env:"CONTAS_EXTRACT_DUE_SOON_DAYS, overwrite"`
}

// GmailEnv overrides the import search.
type GmailEnv struct {
	Query      string `env:"CONTAS_GMAIL_QUERY, overwrite"`
	MaxResults int64  `env:"CONTAS_GMAIL_MAX_RESULTS, overwrite"`
}

// GoogleEnv overrides the OAuth client and export targets.
type GoogleEnv struct {
	ClientID      string `env:"CONTAS_GOOGLE_CLIENT_ID, overwrite"`
	ClientSecret  string `env:"CONTAS_GOOGLE_CLIENT_SECRET, overwrite"`
	CalendarID    string `env:"CONTAS_GOOGLE_CALENDAR_ID, overwrite"`
	SpreadsheetID string `env:"CONTAS_GOOGLE_SPREADSHEET_ID, overwrite"`
}

// ImportEnv overrides import command defaults.
type ImportEnv struct {
	Reminders bool `env:"CONTAS_IMPORT_REMINDERS, overwrite"`
}

// Home locates the config file before any settings can be read.
type Home struct {
	ConfigDir string `env:"CONTAS_CONFIG_DIR"`
}

// ConfigDir returns CONTAS_CONFIG_DIR, or "" for the default ~/.contas.
func ConfigDir(ctx context.Context) (string, error) {
	return configDir(ctx, nil)
}

func configDir(ctx context.Context, lookup envconfig.Lookuper) (string, error) {
	var home Home
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &home, Lookuper: lookup}); err != nil {
		return "", fmt.Errorf("reading environment: %w", err)
	}
	return home.ConfigDir, nil
}

// Load reads stored settings and applies the OS environment on top.
func Load(ctx context.Context, settings driving.SettingsService) (domain.AppSettings, error) {
	return load(ctx, settings, nil) // load from OS environment
}

func load(ctx context.Context, settings driving.SettingsService, lookup envconfig.Lookuper) (domain.AppSettings, error) {
	stored, err := settings.Get()
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("reading settings: %w", err)
	}

	env := fromSettings(*stored)
	err = envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookup, // nil defaults to OS environment
	})
	if err != nil {
		return domain.AppSettings{}, fmt.Errorf("reading environment: %w", err)
	}

	cfg := env.settings()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func fromSettings(s domain.AppSettings) Env {
	return Env{
		UserID:      s.UserID,
		WorkspaceID: s.WorkspaceID,
		DataDir:     s.DataDir,
		Token: TokenEnv{
			RefreshMargin: s.Token.RefreshMargin,
			DefaultTTL:    s.Token.DefaultTTL,
		},
		Extract: ExtractEnv{
			MaxAmount:   s.Extract.MaxAmount,
			DueSoonDays: s.Extract.DueSoonDays,
		},
		Gmail: GmailEnv{
			Query:      s.Gmail.Query,
			MaxResults: s.Gmail.MaxResults,
		},
		Google: GoogleEnv{
			ClientID:      s.Google.ClientID,
			ClientSecret:  s.Google.ClientSecret,
			CalendarID:    s.Google.CalendarID,
			SpreadsheetID: s.Google.SpreadsheetID,
		},
		Import: ImportEnv{Reminders: s.Import.Reminders},
	}
}

func (e Env) settings() domain.AppSettings {
	return domain.AppSettings{
		UserID:      e.UserID,
		WorkspaceID: e.WorkspaceID,
		DataDir:     e.DataDir,
		Token: domain.TokenSettings{
			RefreshMargin: e.Token.RefreshMargin,
			DefaultTTL:    e.Token.DefaultTTL,
		},
		Extract: domain.ExtractionSettings{
			MaxAmount:   e.Extract.MaxAmount,
			DueSoonDays: e.Extract.DueSoonDays,
		},
		Gmail: domain.GmailSettings{
			Query:      e.Gmail.Query,
			MaxResults: e.Gmail.MaxResults,
		},
		Google: domain.GoogleSettings{
			ClientID:      e.Google.ClientID,
			ClientSecret:  e.Google.ClientSecret,
			CalendarID:    e.Google.CalendarID,
			SpreadsheetID: e.Google.SpreadsheetID,
		},
		Import: domain.ImportSettings{Reminders: e.Import.Reminders},
	}
}
