package rate

import "time"

// Source records how a silver rate entry was produced.
const (
	SourceManual    = "manual"
	SourceAutomatic = "automatic"
)

// DefaultPricePerGram seeds the store on first read when no rate has ever
// been recorded.
const DefaultPricePerGram = 152.00

// Rate is one entry in the append-only silver price log. Entries are never
// mutated or deleted; the current rate is the newest by CapturedAt.
type Rate struct {
	ID           int       `json:"id"`
	PricePerGram float64   `json:"pricePerGram"`
	Source       string    `json:"source"`
	Currency     string    `json:"currency"`
	CapturedAt   time.Time `json:"capturedAt"`
}
