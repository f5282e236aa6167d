package oauth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
	"github.com/custodia-labs/contas/internal/logger"
)

// Loopback ports tried for the callback server.
const (
	DefaultPortStart = 8085
	DefaultPortEnd   = 8099
	DefaultTimeout   = 5 * time.Minute
)

// Flow connects a Google account through the system browser.
type Flow struct {
	Client      driven.OAuthClient
	Connections driving.ConnectionService
	// Open launches the consent page. Nil only prints the URL.
	Open    func(url string) error
	Out     io.Writer
	Timeout time.Duration
	// PortStart and PortEnd bound the callback port. Zero picks any free port.
	PortStart int
	PortEnd   int
}

// Run performs the authorization-code flow and stores the resulting
// integration for scope.
func (f *Flow) Run(ctx context.Context, scope domain.ScopeKey) (*domain.ConnectionStatus, error) {
	if f.Client == nil || f.Connections == nil {
		return nil, domain.ErrNotImplemented
	}
	out := f.Out
	if out == nil {
		out = io.Discard
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	state, err := GenerateState()
	if err != nil {
		return nil, err
	}
	port := 0
	if f.PortStart > 0 {
		port, err = FindAvailablePort(f.PortStart, f.PortEnd)
		if err != nil {
			return nil, err
		}
	}

	server := NewCallbackServer(port, state)
	if err := server.Start(); err != nil {
		return nil, err
	}
	defer func() {
		if err := server.Stop(); err != nil {
			logger.Warn("stopping callback server: %v", err)
		}
	}()

	redirectURI := server.RedirectURI()
	verifier := oauth2.GenerateVerifier()
	authURL := f.Client.AuthCodeURL(redirectURI, state, verifier)

	fmt.Fprintf(out, "Abra este endereço para autorizar o acesso:\n\n  %s\n\n", authURL)
	if f.Open != nil {
		if err := f.Open(authURL); err != nil {
			logger.Warn("could not open browser: %v", err)
		}
	}
	fmt.Fprintln(out, "Aguardando autorização...")

	code, err := server.WaitForCode(ctx, timeout)
	if err != nil {
		return nil, err
	}
	logger.Debug("authorization code received on %s", redirectURI)

	grant, err := f.Client.Exchange(ctx, code, redirectURI, verifier)
	if err != nil {
		return nil, err
	}
	if grant.AccessToken == "" {
		return nil, errors.New("provider returned no access token")
	}

	if err := f.Connections.Connect(ctx, grant.Integration(scope)); err != nil {
		return nil, err
	}
	return f.Connections.Status(ctx, scope)
}
