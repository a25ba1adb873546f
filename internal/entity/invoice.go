package entity

import (
	"time"

	"github.com/google/uuid"
)

// Invoice represents one processed invoice for data transfer between layers.
// The four extracted fields stay exactly as the extractor produced them
// (text, possibly empty); persistence adds only identity and timestamps.
type Invoice struct {
	ID          uuid.UUID `json:"id"`
	Amount      string    `json:"amount"`
	Buyer       string    `json:"buyer"`
	Seller      string    `json:"seller"`
	InvoiceDate string    `json:"date"`
	SourcePath  string    `json:"source_path"`
	ProcessedAt time.Time `json:"processed_at"`
	CreatedAt   time.Time `json:"created_at"`
}
