package entities

import "time"

// DocumentType selects the numbering sequence a document draws from.
type DocumentType string

const (
	DocumentTypeQuote      DocumentType = "quote"
	DocumentTypeInvoice    DocumentType = "invoice"
	DocumentTypeCostRecord DocumentType = "cost_record"
)

// StatusChange is one entry of a document's append-only status history.
type StatusChange struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Reason    string    `json:"reason,omitempty"`
}

// ActorSystem marks status changes driven by balance derivation or batch
// sweeps rather than a user action.
const ActorSystem = "system"
