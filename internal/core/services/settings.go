package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyUserID             = "user.id"
	KeyWorkspaceID        = "workspace.id"
	KeyDataDir            = "data_dir"
	KeyTokenRefreshMargin = "token.refresh_margin"
	KeyTokenDefaultTTL    = "token.default_ttl"
	KeyExtractMaxAmount   = "extract.max_amount"
	KeyExtractDueSoonDays = "extract.due_soon_days"
	KeyGmailQuery         = "gmail.query"
	KeyGmailMaxResults    = "gmail.max_results"
	KeyGoogleClientID     = "google.client_id"
	KeyGoogleClientSecret = "google.client_secret"
	KeyGoogleCalendarID   = "google.calendar_id"
	KeyGoogleSpreadsheet  = "google.spreadsheet_id"
	KeyImportReminders    = "import.reminders"
)

var settingKeys = []string{
	KeyUserID,
	KeyWorkspaceID,
	KeyDataDir,
	KeyTokenRefreshMargin,
	KeyTokenDefaultTTL,
	KeyExtractMaxAmount,
	KeyExtractDueSoonDays,
	KeyGmailQuery,
	KeyGmailMaxResults,
	KeyGoogleClientID,
	KeyGoogleClientSecret,
	KeyGoogleCalendarID,
	KeyGoogleSpreadsheet,
	KeyImportReminders,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		UserID:      s.getString(KeyUserID, defaults.UserID),
		WorkspaceID: s.configStore.GetString(KeyWorkspaceID),
		DataDir:     s.configStore.GetString(KeyDataDir),
		Token: domain.TokenSettings{
			RefreshMargin: s.getDuration(KeyTokenRefreshMargin, defaults.Token.RefreshMargin),
			DefaultTTL:    s.getDuration(KeyTokenDefaultTTL, defaults.Token.DefaultTTL),
		},
		Extract: domain.ExtractionSettings{
			MaxAmount:   s.getFloat(KeyExtractMaxAmount, defaults.Extract.MaxAmount),
			DueSoonDays: s.getInt(KeyExtractDueSoonDays, defaults.Extract.DueSoonDays),
		},
		Gmail: domain.GmailSettings{
			Query:      s.getString(KeyGmailQuery, defaults.Gmail.Query),
			MaxResults: int64(s.getInt(KeyGmailMaxResults, int(defaults.Gmail.MaxResults))),
		},
		Google: domain.GoogleSettings{
			ClientID:      s.configStore.GetString(KeyGoogleClientID),
			ClientSecret:  s.configStore.GetString(KeyGoogleClientSecret),
			CalendarID:    s.getString(KeyGoogleCalendarID, defaults.Google.CalendarID),
			SpreadsheetID: s.configStore.GetString(KeyGoogleSpreadsheet),
		},
		Import: domain.ImportSettings{
			Reminders: s.configStore.GetBool(KeyImportReminders),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyUserID, settings.UserID},
		{KeyWorkspaceID, settings.WorkspaceID},
		{KeyDataDir, settings.DataDir},
		{KeyTokenRefreshMargin, settings.Token.RefreshMargin.String()},
		{KeyTokenDefaultTTL, settings.Token.DefaultTTL.String()},
		{KeyExtractMaxAmount, settings.Extract.MaxAmount},
		{KeyExtractDueSoonDays, settings.Extract.DueSoonDays},
		{KeyGmailQuery, settings.Gmail.Query},
		{KeyGmailMaxResults, settings.Gmail.MaxResults},
		{KeyGoogleCalendarID, settings.Google.CalendarID},
		{KeyGoogleSpreadsheet, settings.Google.SpreadsheetID},
		{KeyGoogleClientID, settings.Google.ClientID},
		{KeyImportReminders, settings.Import.Reminders},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Never blank out a stored secret.
	if settings.Google.ClientSecret != "" {
		if err := s.configStore.Set(KeyGoogleClientSecret, settings.Google.ClientSecret); err != nil {
			return fmt.Errorf("save %s: %w", KeyGoogleClientSecret, err)
		}
	}

	return nil
}

// Set parses value according to key and persists the result.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch key {
	case KeyUserID:
		settings.UserID = value
	case KeyWorkspaceID:
		settings.WorkspaceID = value
	case KeyDataDir:
		settings.DataDir = value
	case KeyTokenRefreshMargin:
		settings.Token.RefreshMargin, err = parseDuration(key, value)
	case KeyTokenDefaultTTL:
		settings.Token.DefaultTTL, err = parseDuration(key, value)
	case KeyExtractMaxAmount:
		settings.Extract.MaxAmount, err = strconv.ParseFloat(value, 64)
	case KeyExtractDueSoonDays:
		settings.Extract.DueSoonDays, err = strconv.Atoi(value)
	case KeyGmailQuery:
		settings.Gmail.Query = value
	case KeyGmailMaxResults:
		settings.Gmail.MaxResults, err = strconv.ParseInt(value, 10, 64)
	case KeyGoogleClientID:
		settings.Google.ClientID = value
	case KeyGoogleClientSecret:
		settings.Google.ClientSecret = value
	case KeyGoogleCalendarID:
		settings.Google.CalendarID = value
	case KeyGoogleSpreadsheet:
		settings.Google.SpreadsheetID = value
	case KeyImportReminders:
		settings.Import.Reminders, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}

	return s.Save(settings)
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseDuration(key, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s", key)
	}
	return d, nil
}
