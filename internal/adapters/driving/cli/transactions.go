package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/extractors/invoice"
)

var (
	txListAll       bool
	txListDirection string
	txListJSON      bool
)

var transactionsCmd = &cobra.Command{
	Use:     "transactions",
	Aliases: []string{"tx"},
	Short:   "Manage stored bills and incomes",
}

var transactionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions with their urgency",
	RunE:  runTransactionsList,
}

var transactionsPayCmd = &cobra.Command{
	Use:   "pay [id]",
	Short: "Mark a transaction as paid",
	Args:  cobra.ExactArgs(1),
	RunE:  runTransactionsPay,
}

var transactionsDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runTransactionsDelete,
}

func init() {
	transactionsListCmd.Flags().BoolVarP(&txListAll, "all", "a", false, "include paid transactions")
	transactionsListCmd.Flags().StringVar(&txListDirection, "direction", "", "expense or income")
	transactionsListCmd.Flags().BoolVar(&txListJSON, "json", false, "output as JSON")

	transactionsCmd.AddCommand(transactionsListCmd)
	transactionsCmd.AddCommand(transactionsPayCmd)
	transactionsCmd.AddCommand(transactionsDeleteCmd)
	rootCmd.AddCommand(transactionsCmd)
}

func runTransactionsList(cmd *cobra.Command, _ []string) error {
	if transactionService == nil {
		return errors.New("transaction service not configured")
	}

	direction := domain.Direction(txListDirection)
	if direction != "" && !direction.IsValid() {
		return fmt.Errorf("%w: direction must be expense or income", domain.ErrInvalidInput)
	}

	views, err := transactionService.List(cmd.Context(), domain.TransactionFilter{
		Scope:       activeScope(),
		IncludePaid: txListAll,
		Direction:   direction,
	})
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	if txListJSON {
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal transactions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(views) == 0 {
		cmd.Println("Nenhum lançamento.")
		return nil
	}

	var open float64
	for _, v := range views {
		mark := " "
		if v.Paid {
			mark = "x"
		}
		cmd.Printf("[%s] %s  %-40s %14s  %-18s %s\n",
			mark,
			v.DueDate.Format("02/01/2006"),
			truncate(v.Description, 40),
			signedAmount(v.Transaction),
			v.Category,
			v.Urgency.Label)
		cmd.Printf("    id: %s\n", v.ID)
		if !v.Paid {
			if v.Direction == domain.DirectionIncome {
				open += v.Amount
			} else {
				open -= v.Amount
			}
		}
	}
	cmd.Printf("\nTotal: %d lançamento(s), saldo em aberto %s\n", len(views), invoice.FormatAmount(open))
	return nil
}

func runTransactionsPay(cmd *cobra.Command, args []string) error {
	if transactionService == nil {
		return errors.New("transaction service not configured")
	}
	tx, err := transactionService.MarkPaid(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to mark paid: %w", err)
	}
	cmd.Printf("Pago: %s (%s)\n", tx.Description, invoice.FormatAmount(tx.Amount))
	return nil
}

func runTransactionsDelete(cmd *cobra.Command, args []string) error {
	if transactionService == nil {
		return errors.New("transaction service not configured")
	}
	if err := transactionService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	cmd.Printf("Lançamento removido: %s\n", args[0])
	return nil
}

func signedAmount(tx domain.Transaction) string {
	if tx.Direction == domain.DirectionIncome {
		return invoice.FormatAmount(tx.Amount)
	}
	return invoice.FormatAmount(-tx.Amount)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
