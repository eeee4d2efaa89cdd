package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptItem is a single line item extracted from a receipt image.
type ReceiptItem struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ReceiptRecord is the structured purchase record extracted from a receipt image.
// Date is intended to be YYYY-MM-DD but is not format-validated.
type ReceiptRecord struct {
	Date       string        `json:"date"`
	Total      float64       `json:"total"`
	Items      []ReceiptItem `json:"items"`
	VendorName string        `json:"vendorName"`
}

// AudioClassification is the topic/emotion/tag classification of a transcript.
// Every slice is non-empty once validated.
type AudioClassification struct {
	Topic   []string `json:"topic"`
	Emotion []string `json:"emotion"`
	Tags    []string `json:"tags"`
}

// AudioAnalysis combines a transcription with its validated classification.
type AudioAnalysis struct {
	Transcription string   `json:"transcription"`
	Topic         []string `json:"topic"`
	Emotion       []string `json:"emotion"`
	Tags          []string `json:"tags"`
}

// User is an entry in the user directory. PasswordHash is a bcrypt hash and
// never leaves the directory.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
