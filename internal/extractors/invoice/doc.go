// Package invoice extracts amounts, due dates, categories and transaction
// direction from invoice-like email text.
//
// Each field is derived by an ordered list of rules evaluated with early
// return. The order is part of the contract: a broader rule listed later must
// never preempt a more specific one listed earlier.
//
// # Usage
//
//	x := invoice.New(invoice.WithSettings(settings.Extract))
//	fields := x.Extract(msg)
//	if fields.NeedsAmount() {
//		// ask the user
//	}
//
// Package-level functions use default settings and the wall clock.
package invoice
