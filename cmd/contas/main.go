// Command contas tracks bills and incomes found in Gmail.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/custodia-labs/contas/internal/adapters/driven/cache"
	"github.com/custodia-labs/contas/internal/adapters/driven/config/file"
	"github.com/custodia-labs/contas/internal/adapters/driven/oauth"
	"github.com/custodia-labs/contas/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/contas/internal/adapters/driving/cli"
	"github.com/custodia-labs/contas/internal/config"
	"github.com/custodia-labs/contas/internal/connectors"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/core/services"
	"github.com/custodia-labs/contas/internal/extractors/invoice"
	"github.com/custodia-labs/contas/internal/logger"
)

// version is set via -ldflags "-X main.version=...".
var version = ""

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configDir, err := config.ConfigDir(ctx)
	if err != nil {
		return report(err)
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return report(fmt.Errorf("opening config: %w", err))
	}
	settings := services.NewSettingsService(configStore)

	cfg, err := config.Load(ctx, settings)
	if err != nil {
		return report(err)
	}

	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return report(fmt.Errorf("opening database: %w", err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing database: %v", err)
		}
	}()

	tokens := services.NewTokenCache(
		store.IntegrationStore(),
		cache.NewTokens(cfg.Token.DefaultTTL, cache.DefaultMaxTokens),
		cfg.Token,
	)
	extractor := invoice.New(invoice.WithSettings(cfg.Extract))
	transactions := store.TransactionStore()

	var oauthClient driven.OAuthClient
	if cfg.Google.HasOAuthClient() {
		oauthClient = oauth.NewGoogle(cfg.Google.ClientID, cfg.Google.ClientSecret)
	}

	cli.SetVersion(buildVersion())
	cli.SetServices(cli.Services{
		Scope:       cfg.Scope(),
		Connections: tokens,
		Import: services.NewImportService(
			tokens,
			connectors.NewGoogleFactory(cfg.Google.CalendarID),
			extractor,
			transactions,
			cfg.Gmail,
		),
		Transactions:    services.NewTransactionService(transactions, extractor),
		Extraction:      extractor,
		Settings:        settings,
		OAuth:           oauthClient,
		SpreadsheetID:   cfg.Google.SpreadsheetID,
		ImportReminders: cfg.Import.Reminders,
	})

	return cli.Execute(ctx)
}

// report prints startup failures; command errors are printed by cobra.
func report(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}

// buildVersion prefers the linker-set version, then the module version.
func buildVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
