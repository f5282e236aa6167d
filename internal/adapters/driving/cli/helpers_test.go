package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/contas/internal/adapters/driven/cache"
	"github.com/custodia-labs/contas/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
	"github.com/custodia-labs/contas/internal/core/services"
	"github.com/custodia-labs/contas/internal/extractors/invoice"
)

var testScope = domain.NewScopeKey("ana", "")

// fakeMail serves canned messages once a token is available.
type fakeMail struct {
	tokens   driven.TokenProvider
	messages []domain.MailMessage
}

func (m *fakeMail) Search(ctx context.Context, _ string, limit int64) ([]domain.MailMessage, error) {
	tok, err := m.tokens.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, domain.ErrNotConnected
	}
	if int64(len(m.messages)) > limit {
		return m.messages[:limit], nil
	}
	return m.messages, nil
}

type fakeReminders struct{ scheduled []string }

func (r *fakeReminders) Schedule(_ context.Context, tx domain.Transaction) (string, error) {
	r.scheduled = append(r.scheduled, tx.ID)
	return "evt-" + tx.ID, nil
}

type fakeLedger struct {
	target string
	rows   int
}

func (l *fakeLedger) Append(_ context.Context, target string, txs []domain.Transaction) error {
	l.target = target
	l.rows += len(txs)
	return nil
}

type fakeConnectors struct {
	messages  []domain.MailMessage
	reminders *fakeReminders
	ledger    *fakeLedger
}

func (f *fakeConnectors) MailSource(_ context.Context, tokens driven.TokenProvider) (driven.MailSource, error) {
	return &fakeMail{tokens: tokens, messages: f.messages}, nil
}

func (f *fakeConnectors) Reminders(_ context.Context, _ driven.TokenProvider) (driven.ReminderScheduler, error) {
	return f.reminders, nil
}

func (f *fakeConnectors) Ledger(_ context.Context, _ driven.TokenProvider) (driven.LedgerExporter, error) {
	return f.ledger, nil
}

// testEnv is a fully wired command line over in-memory stores.
type testEnv struct {
	tokens     *services.TokenCache
	txs        *memory.TransactionStore
	connectors *fakeConnectors
	settings   *services.SettingsService
}

func sampleMessages() []domain.MailMessage {
	return []domain.MailMessage{
		{
			ID:      "m1",
			From:    "Enel <boleto@enel.com.br>",
			Subject: "Sua conta de energia chegou",
			Snippet: "Valor: R$ 187,45. Vencimento: 03/03/2025.",
		},
		{
			ID:      "m2",
			From:    "avisos@condominio.com.br",
			Subject: "Lembrete do condomínio",
			Snippet: "Sua conta está disponível",
		},
	}
}

func setupCLI(t *testing.T) *testEnv {
	t.Helper()

	extractor := invoice.New()
	txStore := memory.NewTransactionStore()
	tokens := services.NewTokenCache(memory.NewIntegrationStore(), cache.NewTokens(0, 0), domain.TokenSettings{})
	connectors := &fakeConnectors{
		messages:  sampleMessages(),
		reminders: &fakeReminders{},
		ledger:    &fakeLedger{},
	}
	settings := services.NewSettingsService(memory.NewConfigStore())

	SetServices(Services{
		Scope:        testScope,
		Connections:  tokens,
		Import:       services.NewImportService(tokens, connectors, extractor, txStore, domain.GmailSettings{}),
		Transactions: services.NewTransactionService(txStore, extractor),
		Extraction:   extractor,
		Settings:     settings,
	})
	t.Cleanup(func() { SetServices(Services{}) })

	return &testEnv{tokens: tokens, txs: txStore, connectors: connectors, settings: settings}
}

func (e *testEnv) connect(t *testing.T, expiresIn time.Duration) {
	t.Helper()
	expires := time.Now().Add(expiresIn)
	require.NoError(t, e.tokens.Connect(context.Background(), domain.Integration{
		UserID:       testScope.UserID,
		AccountEmail: "ana@example.com",
		AccessToken:  "ya29.test",
		ExpiresAt:    &expires,
	}))
}

// resetFlags restores every flag to its default so tests do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args, feeding in as stdin.
func execute(t *testing.T, in string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(in))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
