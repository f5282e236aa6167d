package domain

import "time"

// Category is a spending category label shown to the user.
type Category string

// Known categories, in the order the extractor tests them.
const (
	CategoryEnergy     Category = "Energia"
	CategoryWater      Category = "Água"
	CategoryGas        Category = "Gás"
	CategoryTelecom    Category = "Telecom"
	CategoryHousing    Category = "Moradia"
	CategoryCreditCard Category = "Cartão de Crédito"
	CategoryInsurance  Category = "Seguros"
	CategoryEducation  Category = "Educação"
	CategoryIncome     Category = "Receitas"
	CategoryOther      Category = "Outros"
)

// AllCategories returns every category label.
func AllCategories() []Category {
	return []Category{
		CategoryEnergy, CategoryWater, CategoryGas, CategoryTelecom, CategoryHousing,
		CategoryCreditCard, CategoryInsurance, CategoryEducation, CategoryIncome, CategoryOther,
	}
}

// IsValid returns true if the category is one of the known labels.
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Direction tells whether money comes in or goes out.
type Direction string

const (
	// DirectionExpense is the default for financial emails (bills).
	DirectionExpense Direction = "expense"
	// DirectionIncome marks credits, deposits and received payments.
	DirectionIncome Direction = "income"
)

// IsValid returns true if the direction is recognised.
func (d Direction) IsValid() bool {
	return d == DirectionExpense || d == DirectionIncome
}

// UrgencyStatus buckets a due date relative to today.
type UrgencyStatus string

const (
	UrgencyOverdue UrgencyStatus = "overdue"
	UrgencyDueSoon UrgencyStatus = "due_soon"
	UrgencyPending UrgencyStatus = "pending"
)

// Urgency is the payment urgency derived from a due date.
type Urgency struct {
	Status UrgencyStatus `json:"status"`
	Label  string        `json:"label"`
	// DaysUntilDue is negative when overdue.
	DaysUntilDue int `json:"days_until_due"`
}

// InvoiceFields are the best-effort fields derived from an email.
//
// Amount 0 means nothing was found and the user has to supply a value.
type InvoiceFields struct {
	Amount    float64   `json:"amount"`
	DueDate   time.Time `json:"due_date"`
	Category  Category  `json:"category"`
	Direction Direction `json:"direction"`
	Urgency   Urgency   `json:"urgency"`
}

// NeedsAmount returns true if the amount has to be confirmed by the user.
func (f InvoiceFields) NeedsAmount() bool {
	return f.Amount == 0
}

// InvoiceDraft is an editable preview of a transaction built from an email.
type InvoiceDraft struct {
	Message MailMessage   `json:"message"`
	Fields  InvoiceFields `json:"fields"`
}

// MailMessage is the subset of an email the extractor reads.
type MailMessage struct {
	ID         string    `json:"id"`
	ThreadID   string    `json:"thread_id,omitempty"`
	From       string    `json:"from"`
	Subject    string    `json:"subject"`
	Snippet    string    `json:"snippet"`
	ReceivedAt time.Time `json:"received_at"`
}
