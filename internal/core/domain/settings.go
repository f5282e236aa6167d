package domain

import (
	"fmt"
	"time"
)

// Token cache defaults.
const (
	// DefaultRefreshMargin is subtracted from a token's stated expiry.
	DefaultRefreshMargin = 5 * time.Minute
	// DefaultTokenTTL bounds caching of tokens without a stated expiry.
	DefaultTokenTTL = 55 * time.Minute
)

// Extraction defaults.
const (
	// DefaultMaxAmount rejects numbers that are more likely phone numbers or years.
	DefaultMaxAmount = 1_000_000
	// DefaultDueSoonDays is the last day difference still classified as due soon.
	DefaultDueSoonDays = 3
)

// Gmail defaults.
const (
	DefaultGmailQuery      = "subject:(boleto OR fatura OR vencimento OR invoice OR pix) newer_than:60d"
	DefaultGmailMaxResults = 25
	// MaxGmailResults is the largest page the Gmail API returns.
	MaxGmailResults = 500
)

// TokenSettings configures the access-token cache.
type TokenSettings struct {
	RefreshMargin time.Duration
	DefaultTTL    time.Duration
}

// ExtractionSettings configures the invoice text extractor.
type ExtractionSettings struct {
	// MaxAmount is an exclusive upper bound on accepted amounts.
	MaxAmount float64
	// DueSoonDays is the inclusive upper bound of the due_soon bucket.
	DueSoonDays int
}

// GmailSettings configures invoice searches.
type GmailSettings struct {
	Query      string
	MaxResults int64
}

// GoogleSettings holds the OAuth client and optional export targets.
type GoogleSettings struct {
	ClientID      string
	ClientSecret  string
	CalendarID    string
	SpreadsheetID string
}

// ImportSettings holds defaults for the import command.
type ImportSettings struct {
	// Reminders schedules a Calendar reminder per imported transaction.
	Reminders bool
}

// HasOAuthClient returns true if an OAuth client is configured.
func (g GoogleSettings) HasOAuthClient() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// AppSettings holds all user-configurable settings.
type AppSettings struct {
	UserID string
	// WorkspaceID selects a workspace integration; empty means personal.
	WorkspaceID string
	DataDir     string
	Token       TokenSettings
	Extract     ExtractionSettings
	Gmail       GmailSettings
	Google      GoogleSettings
	Import      ImportSettings
}

// Scope returns the scope key the settings select.
func (s AppSettings) Scope() ScopeKey {
	return NewScopeKey(s.UserID, s.WorkspaceID)
}

// DefaultAppSettings returns sensible defaults for new installations.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		UserID: "local",
		Token: TokenSettings{
			RefreshMargin: DefaultRefreshMargin,
			DefaultTTL:    DefaultTokenTTL,
		},
		Extract: ExtractionSettings{
			MaxAmount:   DefaultMaxAmount,
			DueSoonDays: DefaultDueSoonDays,
		},
		Gmail: GmailSettings{
			Query:      DefaultGmailQuery,
			MaxResults: DefaultGmailMaxResults,
		},
		Google: GoogleSettings{
			CalendarID: "primary",
		},
	}
}

// Validate reports the first out-of-range setting.
func (s AppSettings) Validate() error {
	switch {
	case s.UserID == "":
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	case s.Token.RefreshMargin <= 0:
		return fmt.Errorf("%w: token refresh margin must be positive", ErrInvalidInput)
	case s.Token.DefaultTTL <= 0:
		return fmt.Errorf("%w: token default ttl must be positive", ErrInvalidInput)
	case s.Extract.MaxAmount <= 0:
		return fmt.Errorf("%w: max amount must be positive", ErrInvalidInput)
	case s.Extract.DueSoonDays <= 0:
		return fmt.Errorf("%w: due soon days must be positive", ErrInvalidInput)
	case s.Gmail.MaxResults <= 0 || s.Gmail.MaxResults > MaxGmailResults:
		return fmt.Errorf("%w: gmail max results must be between 1 and %d", ErrInvalidInput, MaxGmailResults)
	}
	return nil
}
