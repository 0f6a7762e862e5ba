package domain

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Order is the settlement artifact owned by the checkout service. The
// client core only reads ID and TotalAmount to render confirmation.
type Order struct {
	ID          string `json:"id"`
	TotalAmount Money  `json:"total_amount"`
	Status      Status `json:"status"`
}
