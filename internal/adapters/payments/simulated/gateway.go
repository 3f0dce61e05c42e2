// Package simulated is a stand-in payment gateway for the manual
// bank-transfer flow: the caller asserts the payment outcome and the gateway
// trusts it. Nothing here talks to a real processor; a production gateway
// would implement domain.PaymentGateway and verify the outcome upstream.
package simulated

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/estilourbano/tienda/internal/domain"
)

type Gateway struct{}

func NewGateway() *Gateway { return &Gateway{} }

func (g *Gateway) Confirm(ctx context.Context, o *domain.Order, outcome domain.PaymentOutcome) (domain.PaymentResult, error) {
	log.Info().Str("order", o.Number).Str("outcome", string(outcome)).Msg("pago simulado")
	switch outcome {
	case domain.PaymentOutcomeSuccess:
		return domain.PaymentResult{Status: domain.OrderStatusPaid, Message: "Pago procesado exitosamente"}, nil
	case domain.PaymentOutcomePending:
		return domain.PaymentResult{Status: domain.OrderStatusPendingPayment, Message: "Pago pendiente de confirmación"}, nil
	case domain.PaymentOutcomeFailed:
		// failure is deliberately not a stored status; the order stays payable
		return domain.PaymentResult{Status: domain.OrderStatusPendingPayment, Message: "Pago fallido, intente nuevamente"}, nil
	default:
		return domain.PaymentResult{Status: domain.OrderStatusPendingPayment, Message: "Estado de pago no válido"}, nil
	}
}
