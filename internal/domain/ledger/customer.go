package ledger

import "github.com/google/uuid"

// Customer is the owner of a record set. Age drives the early-withdrawal
// penalty decision for retirement accounts.
type Customer struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Age      int       `json:"age" validate:"gte=0,lte=150"`
	Location string    `json:"location"`
}
