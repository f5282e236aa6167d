// Package cli implements the contas command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
	"github.com/custodia-labs/contas/internal/logger"
)

// version is set at build time via ldflags or SetVersion.
var version = "dev"

var (
	verbose   bool
	workspace string
)

// Services wired by the composition root.
var (
	scope              domain.ScopeKey
	connectionService  driving.ConnectionService
	importService      driving.ImportService
	transactionService driving.TransactionService
	extractionService  driving.ExtractionService
	settingsService    driving.SettingsService
	oauthClient        driven.OAuthClient
	defaultSheetID     string
	defaultReminders   bool
)

// Services holds everything the commands need.
type Services struct {
	Scope        domain.ScopeKey
	Connections  driving.ConnectionService
	Import       driving.ImportService
	Transactions driving.TransactionService
	Extraction   driving.ExtractionService
	Settings     driving.SettingsService
	// OAuth is nil when no OAuth client is configured; connect then
	// requires manual tokens.
	OAuth driven.OAuthClient
	// SpreadsheetID is the default target of import --sheet.
	SpreadsheetID string
	// ImportReminders is the default of import --reminders.
	ImportReminders bool
}

// SetServices installs the services used by every command.
func SetServices(s Services) {
	scope = s.Scope
	connectionService = s.Connections
	importService = s.Import
	transactionService = s.Transactions
	extractionService = s.Extraction
	settingsService = s.Settings
	oauthClient = s.OAuth
	defaultSheetID = s.SpreadsheetID
	defaultReminders = s.ImportReminders
}

// activeScope returns the configured scope, with the workspace replaced
// when --workspace is given. An empty --workspace selects the personal
// integration.
func activeScope() domain.ScopeKey {
	if rootCmd.PersistentFlags().Changed("workspace") {
		return domain.NewScopeKey(scope.UserID, workspace)
	}
	return scope
}

// SetVersion sets the version printed by "contas version".
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "contas",
	Short: "Track bills and incomes found in your Gmail",
	Long: `contas reads invoice emails from Gmail, extracts amount, due date and
category, and keeps a local ledger of bills and incomes.

Connect your Google account first with "contas connect", then run
"contas import" to review and store new invoices.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "",
		"workspace integration to use (default from workspace.id; empty for personal)")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
