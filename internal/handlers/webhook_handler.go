package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	ucBooking "github.com/PilotarApp/lesson-scheduler/internal/usecase/booking"
	ucPayout "github.com/PilotarApp/lesson-scheduler/internal/usecase/payout"
)

// WebhookHandler recebe os retornos assíncronos dos colaboradores
// externos: status de pagamento (Mercado Pago) e resultado de
// transferência (rail de saque). Webhooks são reentregues; as operações
// por trás são idempotentes ou rejeitam a transição repetida.
type WebhookHandler struct {
	paymentUpdateUC  *ucBooking.ApplyPaymentUpdate
	settleUC         *ucPayout.SettleTransfer
	validateMethodUC *ucPayout.ValidateMethod
}

func NewWebhookHandler(
	paymentUpdateUC *ucBooking.ApplyPaymentUpdate,
	settleUC *ucPayout.SettleTransfer,
	validateMethodUC *ucPayout.ValidateMethod,
) *WebhookHandler {
	return &WebhookHandler{
		paymentUpdateUC:  paymentUpdateUC,
		settleUC:         settleUC,
		validateMethodUC: validateMethodUC,
	}
}

// --------- Mercado Pago ---------

type mercadoPagoNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

func (h *WebhookHandler) MercadoPago(c *gin.Context) {
	var notif mercadoPagoNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		httperr.BadRequest(c, "invalid_notification", "Notificação inválida.")
		return
	}

	if notif.Type != "payment" || notif.Data.ID == "" {
		// outros tópicos não interessam ao núcleo
		c.Status(http.StatusOK)
		return
	}

	if _, err := h.paymentUpdateUC.Execute(c.Request.Context(), notif.Data.ID); err != nil {
		// sem aula correspondente: 200, reentregar não mudaria nada.
		// Falha transiente (gateway, banco): 5xx para o provedor
		// reentregar o sinal.
		if httperr.IsBusiness(err, "booking_not_found") {
			c.Status(http.StatusOK)
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	c.Status(http.StatusOK)
}

// --------- Payout rail ---------

type transferResultNotification struct {
	TransferRef string `json:"transfer_ref" binding:"required"`
	Status      string `json:"status" binding:"required,oneof=completed failed"`
}

func (h *WebhookHandler) TransferResult(c *gin.Context) {
	var notif transferResultNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		httperr.BadRequest(c, "invalid_notification", "Notificação inválida.")
		return
	}

	if _, err := h.settleUC.Execute(c.Request.Context(), notif.TransferRef, notif.Status == "completed"); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// --------- Validação de titularidade ---------

type methodValidationNotification struct {
	InstructorID uint   `json:"instructor_id" binding:"required"`
	Status       string `json:"status" binding:"required,oneof=validated rejected"`
}

func (h *WebhookHandler) MethodValidation(c *gin.Context) {
	var notif methodValidationNotification
	if err := c.ShouldBindJSON(&notif); err != nil {
		httperr.BadRequest(c, "invalid_notification", "Notificação inválida.")
		return
	}

	if _, err := h.validateMethodUC.Execute(c.Request.Context(), notif.InstructorID, notif.Status == "validated"); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
