package pricing

import "fmt"

// InsufficientDataError is returned by Fit when there is too little history
// to support a model. Callers fall back to the pooled model or a default
// price instead of failing the request path.
type InsufficientDataError struct {
	ItemID       string
	Observations int
	Required     int
}

func (e *InsufficientDataError) Error() string {
	if e.ItemID == "" {
		return fmt.Sprintf("insufficient data for pooled model: %d observations, need %d", e.Observations, e.Required)
	}
	return fmt.Sprintf("insufficient data for item %s: %d observations, need %d", e.ItemID, e.Observations, e.Required)
}

// EmptyGridError is returned by BuildGrid when an item has no positive-price
// observations to derive candidates from.
type EmptyGridError struct {
	ItemID string
}

func (e *EmptyGridError) Error() string {
	return fmt.Sprintf("no positive-price observations for item %s", e.ItemID)
}
