package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/extractors/invoice"
)

var (
	extractFrom    string
	extractSubject string
	extractJSON    bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [text...]",
	Short: "Extract invoice fields from text",
	Long: `Run the invoice extractor on text given on the command line, without
touching Gmail or the local ledger.

Example:
  contas extract --from boleto@enel.com.br "Sua conta vence em 10/03/2025 - R$ 187,45"`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractFrom, "from", "", "sender address")
	extractCmd.Flags().StringVar(&extractSubject, "subject", "", "email subject")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output fields as JSON")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if extractionService == nil {
		return errors.New("extraction service not configured")
	}

	msg := domain.MailMessage{
		From:    extractFrom,
		Subject: extractSubject,
		Snippet: strings.Join(args, " "),
	}
	if strings.TrimSpace(msg.Subject+msg.Snippet) == "" {
		return fmt.Errorf("%w: text or --subject is required", domain.ErrInvalidInput)
	}

	fields := extractionService.Extract(msg)

	if extractJSON {
		data, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal fields: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	amount := "não encontrado"
	if !fields.NeedsAmount() {
		amount = invoice.FormatAmount(fields.Amount)
	}
	cmd.Printf("Valor:      %s\n", amount)
	cmd.Printf("Vencimento: %s\n", fields.DueDate.Format("02/01/2006"))
	cmd.Printf("Categoria:  %s\n", fields.Category)
	cmd.Printf("Tipo:       %s\n", directionLabel(fields.Direction))
	cmd.Printf("Urgência:   %s\n", fields.Urgency.Label)
	return nil
}
