package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contas/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change stored settings",
	Long: `Settings are stored in ~/.contas/config.toml. Environment variables
prefixed with CONTAS_ (for example CONTAS_GMAIL_QUERY) override stored
values for a single run.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a stored setting. Run "contas config keys" for the list of keys.

Examples:
  contas config set user.id ana
  contas config set workspace.id acme
  contas config set import.reminders true
  contas config set token.refresh_margin 10m
  contas config set google.spreadsheet_id 1AbC...`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runConfigKeys,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	s, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("[user]")
	cmd.Printf("  id = %s\n", s.UserID)
	cmd.Printf("  data_dir = %s\n", orDefault(s.DataDir, "~/.contas/data"))
	cmd.Println()
	cmd.Println("[workspace]")
	cmd.Printf("  id = %s\n", orDefault(s.WorkspaceID, "(pessoal)"))
	cmd.Println()
	cmd.Println("[token]")
	cmd.Printf("  refresh_margin = %s\n", s.Token.RefreshMargin)
	cmd.Printf("  default_ttl = %s\n", s.Token.DefaultTTL)
	cmd.Println()
	cmd.Println("[extract]")
	cmd.Printf("  max_amount = %.0f\n", s.Extract.MaxAmount)
	cmd.Printf("  due_soon_days = %d\n", s.Extract.DueSoonDays)
	cmd.Println()
	cmd.Println("[gmail]")
	cmd.Printf("  query = %s\n", s.Gmail.Query)
	cmd.Printf("  max_results = %d\n", s.Gmail.MaxResults)
	cmd.Println()
	cmd.Println("[google]")
	cmd.Printf("  client_id = %s\n", orDefault(s.Google.ClientID, "(não definido)"))
	cmd.Printf("  client_secret = %s\n", maskSecret(s.Google.ClientSecret))
	cmd.Printf("  calendar_id = %s\n", orDefault(s.Google.CalendarID, "primary"))
	cmd.Printf("  spreadsheet_id = %s\n", orDefault(s.Google.SpreadsheetID, "(não definido)"))
	cmd.Println()
	cmd.Println("[import]")
	cmd.Printf("  reminders = %t\n", s.Import.Reminders)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%w (keys: %s)", err, strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to save setting: %w", err)
	}
	if strings.Contains(key, "secret") {
		value = maskSecret(value)
	}
	cmd.Printf("%s = %s\n", key, value)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
