package booking

import (
	"context"
	"strconv"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
	"github.com/PilotarApp/lesson-scheduler/internal/payment"
)

// ApplyPaymentUpdate consome o sinal assíncrono do provedor: busca o
// pagamento no gateway e grava o status reportado na aula referenciada.
// O núcleo não computa status de pagamento, só registra.
type ApplyPaymentUpdate struct {
	repo    domain.Repository
	gateway payment.Gateway
	audit   *audit.Dispatcher
}

func NewApplyPaymentUpdate(
	repo domain.Repository,
	gateway payment.Gateway,
	audit *audit.Dispatcher,
) *ApplyPaymentUpdate {
	return &ApplyPaymentUpdate{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *ApplyPaymentUpdate) Execute(
	ctx context.Context,
	providerPaymentID string,
) (*models.Booking, error) {

	info, err := uc.gateway.FetchPayment(ctx, providerPaymentID)
	if err != nil {
		return nil, err
	}

	bookingID, err := uc.resolveBooking(ctx, info)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.Transition(ctx, bookingID, func(b *models.Booking) error {
		b.PaymentID = info.ProviderID
		return domain.ApplyPaymentStatus(b, info.Status, info.Method)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    domain.ActorSystem,
		Action:   "payment_status_updated",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"payment_status": info.Status},
	})

	return b, nil
}

// resolveBooking: primeiro pela referência externa (id da aula informado
// na criação do pagamento), depois pelo payment_id já gravado.
func (uc *ApplyPaymentUpdate) resolveBooking(
	ctx context.Context,
	info *payment.PaymentInfo,
) (uint, error) {

	if info.ExternalReference != "" {
		if id, err := strconv.ParseUint(info.ExternalReference, 10, 64); err == nil {
			if b, err := uc.repo.GetBooking(ctx, uint(id)); err == nil {
				return b.ID, nil
			}
		}
	}

	if b, err := uc.repo.GetBookingByPaymentID(ctx, info.ProviderID); err == nil {
		return b.ID, nil
	}

	return 0, httperr.ErrBusiness("booking_not_found")
}
