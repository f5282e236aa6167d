package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
	"github.com/custodia-labs/contas/internal/extractors/invoice"
)

var (
	importQuery     string
	importLimit     int64
	importDryRun    bool
	importYes       bool
	importReminders bool
	importSheet     bool
	importSheetID   string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import invoices from Gmail",
	Long: `Search Gmail for invoice emails, extract amount, due date, category and
direction from each one, and store the confirmed ones as transactions.

Messages imported before are skipped. Drafts without an amount ask for one
interactively; with --yes they are skipped.

Examples:
  contas import --dry-run
  contas import --query "subject:boleto newer_than:7d" --limit 20
  contas import --yes --reminders --sheet`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importQuery, "query", "q", "", "Gmail search query (default from config)")
	importCmd.Flags().Int64VarP(&importLimit, "limit", "n", 0, "maximum messages to read (default from config)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "show drafts without storing anything")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "import without asking")
	importCmd.Flags().BoolVar(&importReminders, "reminders", false, "create a Google Calendar reminder per bill (default from import.reminders)")
	importCmd.Flags().BoolVar(&importSheet, "sheet", false, "append imported rows to the configured spreadsheet")
	importCmd.Flags().StringVar(&importSheetID, "sheet-id", "", "spreadsheet to append to (implies --sheet)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}
	ctx := cmd.Context()

	sheetID := importSheetID
	if sheetID == "" && importSheet {
		if defaultSheetID == "" {
			return fmt.Errorf("%w: no spreadsheet configured; set google.spreadsheet_id or pass --sheet-id",
				domain.ErrInvalidInput)
		}
		sheetID = defaultSheetID
	}

	scope := activeScope()
	reminders := defaultReminders
	if cmd.Flags().Changed("reminders") {
		reminders = importReminders
	}

	drafts, err := importService.Preview(ctx, scope, importQuery, importLimit)
	if err != nil {
		return importError(cmd, err)
	}
	if len(drafts) == 0 {
		cmd.Println("Nenhuma fatura nova encontrada.")
		return nil
	}

	printDrafts(cmd, drafts)
	if importDryRun {
		return nil
	}

	if !importYes {
		p := newPrompter(cmd)
		askMissingAmounts(cmd, p, drafts)
		if !p.confirm(fmt.Sprintf("Importar %d lançamento(s)?", countImportable(drafts))) {
			cmd.Println("Nada foi importado.")
			return nil
		}
	}

	result, err := importService.Confirm(ctx, scope, drafts, driving.ConfirmOptions{
		Reminders:     reminders,
		SpreadsheetID: sheetID,
	})
	if err != nil {
		return importError(cmd, err)
	}

	cmd.Printf("\nImportados: %d  Ignorados: %d\n", len(result.Imported), len(result.Skipped))
	for _, w := range result.Warnings {
		cmd.Printf("  aviso: %s\n", w)
	}
	return nil
}

// importError adds the reconnect hint to auth failures.
func importError(cmd *cobra.Command, err error) error {
	if errors.Is(err, domain.ErrNotConnected) {
		cmd.Println(`Nenhuma conta Google conectada. Execute "contas connect".`)
	} else if domain.IsReconnectRequired(err) {
		cmd.Println(reconnectHint)
	}
	return fmt.Errorf("import failed: %w", err)
}

func printDrafts(cmd *cobra.Command, drafts []domain.InvoiceDraft) {
	cmd.Printf("%d fatura(s) encontrada(s):\n\n", len(drafts))
	for i, d := range drafts {
		amount := "valor?"
		if !d.Fields.NeedsAmount() {
			amount = invoice.FormatAmount(d.Fields.Amount)
		}
		cmd.Printf("%3d. %s\n", i+1, subjectOf(d.Message))
		cmd.Printf("     %s  vence %s  %s  %s (%s)\n",
			amount,
			d.Fields.DueDate.Format("02/01/2006"),
			d.Fields.Category,
			directionLabel(d.Fields.Direction),
			d.Fields.Urgency.Label)
	}
	cmd.Println()
}

func askMissingAmounts(cmd *cobra.Command, p *prompter, drafts []domain.InvoiceDraft) {
	for i := range drafts {
		if !drafts[i].Fields.NeedsAmount() {
			continue
		}
		for {
			answer := p.line(fmt.Sprintf("Valor para %q (enter para pular): ", subjectOf(drafts[i].Message)))
			if answer == "" {
				break
			}
			v, err := parseAmount(answer)
			if err != nil {
				cmd.Println(err)
				continue
			}
			drafts[i].Fields.Amount = v
			break
		}
	}
}

func countImportable(drafts []domain.InvoiceDraft) int {
	n := 0
	for _, d := range drafts {
		if !d.Fields.NeedsAmount() {
			n++
		}
	}
	return n
}

func subjectOf(msg domain.MailMessage) string {
	if msg.Subject != "" {
		return msg.Subject
	}
	if msg.From != "" {
		return msg.From
	}
	return "(sem assunto)"
}

func directionLabel(d domain.Direction) string {
	if d == domain.DirectionIncome {
		return "receita"
	}
	return "despesa"
}
