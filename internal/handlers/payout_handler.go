package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/httpresp"
	"github.com/PilotarApp/lesson-scheduler/internal/middleware"
	ucPayout "github.com/PilotarApp/lesson-scheduler/internal/usecase/payout"
)

// ======================================================
// HANDLER
// ======================================================

type PayoutHandler struct {
	balanceUC    *ucPayout.GetBalance
	listUC       *ucPayout.ListPayouts
	anticipateUC *ucPayout.RequestAnticipation
	withdrawUC   *ucPayout.RequestWithdrawal
	registerUC   *ucPayout.RegisterWithdrawalMethod
}

func NewPayoutHandler(
	balanceUC *ucPayout.GetBalance,
	listUC *ucPayout.ListPayouts,
	anticipateUC *ucPayout.RequestAnticipation,
	withdrawUC *ucPayout.RequestWithdrawal,
	registerUC *ucPayout.RegisterWithdrawalMethod,
) *PayoutHandler {
	return &PayoutHandler{
		balanceUC:    balanceUC,
		listUC:       listUC,
		anticipateUC: anticipateUC,
		withdrawUC:   withdrawUC,
		registerUC:   registerUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RegisterMethodRequest struct {
	MethodType   string `json:"method_type" binding:"required,oneof=pix custody_account"`
	PixKeyType   string `json:"pix_key_type"`
	PixKey       string `json:"pix_key"`
	CustodyEmail string `json:"custody_email"`
}

// ======================================================
// BALANCE / LIST
// ======================================================

func (h *PayoutHandler) GetBalance(c *gin.Context) {
	instructorID := c.MustGet(middleware.ContextUserID).(uint)

	balance, err := h.balanceUC.Execute(c.Request.Context(), instructorID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, balance)
}

func (h *PayoutHandler) List(c *gin.Context) {
	instructorID := c.MustGet(middleware.ContextUserID).(uint)

	entries, err := h.listUC.Execute(c.Request.Context(), instructorID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, entries)
}

// ======================================================
// ANTICIPATION / WITHDRAWAL
// ======================================================

func (h *PayoutHandler) Anticipate(c *gin.Context) {
	instructorID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := entryIDParam(c)
	if !ok {
		return
	}

	entry, err := h.anticipateUC.Execute(c.Request.Context(), instructorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

func (h *PayoutHandler) Withdraw(c *gin.Context) {
	instructorID := c.MustGet(middleware.ContextUserID).(uint)
	id, ok := entryIDParam(c)
	if !ok {
		return
	}

	entry, err := h.withdrawUC.Execute(c.Request.Context(), instructorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

// ======================================================
// WITHDRAWAL METHOD
// ======================================================

func (h *PayoutHandler) RegisterMethod(c *gin.Context) {
	instructorID := c.MustGet(middleware.ContextUserID).(uint)

	var req RegisterMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	m, err := h.registerUC.Execute(c.Request.Context(), ucPayout.RegisterMethodInput{
		InstructorID: instructorID,
		MethodType:   req.MethodType,
		PixKeyType:   req.PixKeyType,
		PixKey:       req.PixKey,
		CustodyEmail: req.CustodyEmail,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, m)
}

func entryIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
