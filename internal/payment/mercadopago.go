package payment

import (
	"context"
	"fmt"
	"strconv"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	mppayment "github.com/mercadopago/sdk-go/pkg/payment"
	mprefund "github.com/mercadopago/sdk-go/pkg/refund"

	"github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
)

type MercadoPagoGateway struct {
	payments mppayment.Client
	refunds  mprefund.Client
}

func NewMercadoPago(accessToken string) (*MercadoPagoGateway, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPagoGateway{
		payments: mppayment.NewClient(cfg),
		refunds:  mprefund.NewClient(cfg),
	}, nil
}

func (g *MercadoPagoGateway) FetchPayment(ctx context.Context, providerID string) (*PaymentInfo, error) {
	id, err := strconv.Atoi(providerID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id %q: %w", providerID, err)
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment: %w", err)
	}

	return &PaymentInfo{
		ProviderID:        providerID,
		Status:            translateStatus(resp.Status),
		Method:            resp.PaymentMethodID,
		ExternalReference: resp.ExternalReference,
	}, nil
}

func (g *MercadoPagoGateway) RequestRefund(ctx context.Context, providerID string) error {
	id, err := strconv.Atoi(providerID)
	if err != nil {
		return fmt.Errorf("invalid payment id %q: %w", providerID, err)
	}

	if _, err := g.refunds.Create(ctx, id); err != nil {
		return fmt.Errorf("mercadopago refund: %w", err)
	}
	return nil
}

// translateStatus mapeia o vocabulário do Mercado Pago para o do núcleo.
func translateStatus(mpStatus string) string {
	switch mpStatus {
	case "approved":
		return booking.PaymentSucceeded
	case "refunded", "charged_back":
		return booking.PaymentRefunded
	case "rejected", "cancelled":
		return booking.PaymentFailed
	default:
		// pending, in_process, authorized...
		return booking.PaymentProcessing
	}
}

var _ Gateway = (*MercadoPagoGateway)(nil)
