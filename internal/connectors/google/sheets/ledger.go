// Package sheets appends transactions to a Google Sheets ledger.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/contas/internal/connectors/google"
	gmailconn "github.com/custodia-labs/contas/internal/connectors/google/gmail"
	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driven"
)

// DefaultRange appends to the first sheet of the spreadsheet.
const DefaultRange = "A:H"

// Columns is the row layout written by Append.
var Columns = []string{"Vencimento", "Descrição", "Categoria", "Tipo", "Valor", "Pago", "ID", "E-mail"}

// Verify interface compliance.
var _ driven.LedgerExporter = (*Ledger)(nil)

// Ledger implements driven.LedgerExporter.
type Ledger struct {
	svc        *sheets.Service
	writeRange string
	limiter    *google.RateLimiter
}

// NewLedger creates a ledger exporter appending to writeRange
// (DefaultRange when empty).
func NewLedger(svc *sheets.Service, writeRange string) *Ledger {
	if writeRange == "" {
		writeRange = DefaultRange
	}
	return &Ledger{
		svc:        svc,
		writeRange: writeRange,
		limiter:    google.NewRateLimiter(google.ServiceSheets),
	}
}

// Append writes one row per transaction in a single request.
func (l *Ledger) Append(ctx context.Context, spreadsheetID string, txs []domain.Transaction) error {
	if spreadsheetID == "" {
		return fmt.Errorf("%w: spreadsheet id is required", domain.ErrInvalidInput)
	}
	if len(txs) == 0 {
		return nil
	}

	values := make([][]any, 0, len(txs))
	for _, tx := range txs {
		values = append(values, Row(tx))
	}

	err := l.limiter.Do(ctx, func() error {
		_, err := l.svc.Spreadsheets.Values.Append(spreadsheetID, l.writeRange, &sheets.ValueRange{Values: values}).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return fmt.Errorf("append %d rows: %w", len(values), err)
	}
	return nil
}

// Row renders tx in Columns order. The amount stays numeric so the sheet
// can sum it; income is positive and expenses negative.
func Row(tx domain.Transaction) []any {
	amount := -tx.Amount
	kind := "Despesa"
	if tx.Direction == domain.DirectionIncome {
		amount = tx.Amount
		kind = "Receita"
	}
	paid := "Não"
	if tx.Paid {
		paid = "Sim"
	}
	return []any{
		tx.DueDate.Format("2006-01-02"),
		tx.Description,
		string(tx.Category),
		kind,
		amount,
		paid,
		tx.ID,
		gmailconn.WebURL(tx.SourceMessageID),
	}
}
