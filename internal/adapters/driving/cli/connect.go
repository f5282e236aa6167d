package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contas/internal/adapters/driving/oauth"
	"github.com/custodia-labs/contas/internal/core/domain"
)

var (
	connectManual       bool
	connectNoBrowser    bool
	connectAccessToken  string
	connectRefreshToken string
	connectExpiresAt    string
	connectEmail        string
	statusJSON          bool
)

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect your Google account",
	Long: `Authorize contas to read Gmail, create Calendar reminders and append to
Sheets. Opens the Google consent page in your browser and waits for the
redirect on a local port.

Tokens are never refreshed automatically: when the access token expires,
run "contas connect" again.

Use --manual (or pass --access-token) to store a token obtained elsewhere.
Without --access-token the token is read from the terminal without echo.`,
	RunE: runConnect,
}

var disconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect your Google account",
	RunE:  runDisconnect,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the Google connection status",
	RunE:  runStatus,
}

func init() {
	connectCmd.Flags().BoolVar(&connectManual, "manual", false, "store a token instead of opening the browser")
	connectCmd.Flags().BoolVar(&connectNoBrowser, "no-browser", false, "print the consent URL without opening it")
	connectCmd.Flags().StringVar(&connectAccessToken, "access-token", "", "access token (manual mode)")
	connectCmd.Flags().StringVar(&connectRefreshToken, "refresh-token", "", "refresh token (manual mode, stored only)")
	connectCmd.Flags().StringVar(&connectExpiresAt, "expires-at", "",
		"token expiry as RFC 3339 time or a duration such as 55m (manual mode)")
	connectCmd.Flags().StringVar(&connectEmail, "email", "", "account email (manual mode)")
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output status as JSON")

	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(disconnectCmd)
	rootCmd.AddCommand(statusCmd)
}

func runConnect(cmd *cobra.Command, _ []string) error {
	if connectionService == nil {
		return errors.New("connection service not configured")
	}

	if connectManual || connectAccessToken != "" || oauthClient == nil {
		return runConnectManual(cmd)
	}

	flow := &oauth.Flow{
		Client:      oauthClient,
		Connections: connectionService,
		Out:         cmd.OutOrStdout(),
		PortStart:   oauth.DefaultPortStart,
		PortEnd:     oauth.DefaultPortEnd,
	}
	if !connectNoBrowser {
		flow.Open = oauth.OpenBrowser
	}

	status, err := flow.Run(cmd.Context(), activeScope())
	if err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}
	printStatus(cmd, status)
	return nil
}

func runConnectManual(cmd *cobra.Command) error {
	if oauthClient == nil && !connectManual && connectAccessToken == "" {
		cmd.Println("OAuth client não configurado (google.client_id); usando modo manual.")
	}

	token := connectAccessToken
	if token == "" {
		token = newPrompter(cmd).secret("Access token: ")
	}
	if token == "" {
		return fmt.Errorf("%w: access token is required", domain.ErrInvalidInput)
	}

	scope := activeScope()
	integration := domain.Integration{
		UserID:       scope.UserID,
		WorkspaceID:  scope.WorkspaceID,
		Provider:     domain.ProviderGoogle,
		AccountEmail: connectEmail,
		AccessToken:  token,
		RefreshToken: connectRefreshToken,
	}
	if connectExpiresAt != "" {
		expires, err := parseExpiry(connectExpiresAt, time.Now())
		if err != nil {
			return err
		}
		integration.ExpiresAt = &expires
	}

	ctx := cmd.Context()
	if err := connectionService.Connect(ctx, integration); err != nil {
		return fmt.Errorf("connect failed: %w", err)
	}
	status, err := connectionService.Status(ctx, scope)
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}
	printStatus(cmd, status)
	return nil
}

// parseExpiry accepts an RFC 3339 time or a duration from now.
func parseExpiry(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return now.Add(d), nil
	}
	return time.Time{}, fmt.Errorf("%w: expires-at %q is neither RFC 3339 nor a positive duration",
		domain.ErrInvalidInput, s)
}

func runDisconnect(cmd *cobra.Command, _ []string) error {
	if connectionService == nil {
		return errors.New("connection service not configured")
	}
	scope := activeScope()
	if err := connectionService.Disconnect(cmd.Context(), scope); err != nil {
		return fmt.Errorf("disconnect failed: %w", err)
	}
	cmd.Printf("Conta Google desconectada (%s).\n", scope)
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if connectionService == nil {
		return errors.New("connection service not configured")
	}
	status, err := connectionService.Status(cmd.Context(), activeScope())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	if statusJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printStatus(cmd, status)
	return nil
}

func printStatus(cmd *cobra.Command, status *domain.ConnectionStatus) {
	cmd.Printf("Escopo: %s\n", status.Scope)
	switch {
	case status.NeedsReconnection:
		cmd.Println("Status: reconexão necessária")
	case status.Connected:
		cmd.Println("Status: conectado")
	default:
		cmd.Println("Status: desconectado")
	}
	if status.AccountEmail != "" {
		cmd.Printf("Conta: %s\n", status.AccountEmail)
	}
	if status.ExpiresAt != nil {
		cmd.Printf("Expira em: %s\n", status.ExpiresAt.Local().Format("02/01/2006 15:04"))
	}
	if status.NeedsReconnection {
		cmd.Println()
		cmd.Println(reconnectHint)
	}
}

const reconnectHint = `Sua conexão com o Google expirou. Execute "contas connect" para reconectar.`
