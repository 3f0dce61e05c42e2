package domain

import "context"

// PaymentOutcome is the externally asserted result of a payment attempt. The
// literal values come from the manual bank-transfer flow.
type PaymentOutcome string

const (
	PaymentOutcomeSuccess PaymentOutcome = "exitoso"
	PaymentOutcomePending PaymentOutcome = "pendiente"
	PaymentOutcomeFailed  PaymentOutcome = "fallido"
)

type PaymentResult struct {
	Status  OrderStatus
	Message string
}

// PaymentGateway resolves a payment outcome for an order into the status the
// order should move to. The only implementation is a trust-the-caller
// simulation of the manual bank-transfer flow; a real gateway would verify the
// outcome against the processor before answering.
type PaymentGateway interface {
	Confirm(ctx context.Context, o *Order, outcome PaymentOutcome) (PaymentResult, error)
}
