package mcp

import (
	"github.com/custodia-labs/contas/internal/core/domain"
	"github.com/custodia-labs/contas/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server calls.
type Ports struct {
	// Extraction derives invoice fields from text. Required.
	Extraction driving.ExtractionService

	// Connections reports the Google connection. Optional.
	Connections driving.ConnectionService

	// Transactions lists stored transactions. Optional.
	Transactions driving.TransactionService

	// Scope is the user/workspace every call acts on.
	Scope domain.ScopeKey
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Extraction == nil {
		return ErrMissingExtractionService
	}
	return nil
}
