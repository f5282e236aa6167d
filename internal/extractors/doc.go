// Package extractors provides deterministic text extractors that turn
// free-form provider content (email subjects, snippets, senders) into
// structured domain fields.
//
// Extractors never perform I/O and never fail: a miss always resolves to a
// documented default so callers can present an editable draft.
package extractors
