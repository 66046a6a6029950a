package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/PilotarApp/lesson-scheduler/internal/domain/booking"
	"github.com/PilotarApp/lesson-scheduler/internal/dto"
	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
	"github.com/PilotarApp/lesson-scheduler/internal/httpresp"
	"github.com/PilotarApp/lesson-scheduler/internal/middleware"
	ucBooking "github.com/PilotarApp/lesson-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	repo domain.Repository

	createUC           *ucBooking.CreateBooking
	acceptUC           *ucBooking.AcceptBooking
	rejectUC           *ucBooking.RejectBooking
	startUC            *ucBooking.StartLesson
	finishUC           *ucBooking.FinishLesson
	confirmUC          *ucBooking.ConfirmCompletion
	disputeUC          *ucBooking.DisputeBooking
	cancelStudentUC    *ucBooking.CancelByStudent
	cancelInstructorUC *ucBooking.CancelByInstructor
}

func NewBookingHandler(
	repo domain.Repository,
	createUC *ucBooking.CreateBooking,
	acceptUC *ucBooking.AcceptBooking,
	rejectUC *ucBooking.RejectBooking,
	startUC *ucBooking.StartLesson,
	finishUC *ucBooking.FinishLesson,
	confirmUC *ucBooking.ConfirmCompletion,
	disputeUC *ucBooking.DisputeBooking,
	cancelStudentUC *ucBooking.CancelByStudent,
	cancelInstructorUC *ucBooking.CancelByInstructor,
) *BookingHandler {
	return &BookingHandler{
		repo:               repo,
		createUC:           createUC,
		acceptUC:           acceptUC,
		rejectUC:           rejectUC,
		startUC:            startUC,
		finishUC:           finishUC,
		confirmUC:          confirmUC,
		disputeUC:          disputeUC,
		cancelStudentUC:    cancelStudentUC,
		cancelInstructorUC: cancelInstructorUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	InstructorID    uint      `json:"instructor_id" binding:"required"`
	ScheduledDate   time.Time `json:"scheduled_date" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	Location        string    `json:"location" binding:"required"`
}

type ReasonRequest struct {
	ReasonCode string `json:"reason_code" binding:"required"`
	ReasonText string `json:"reason_text"`
}

type StartLessonRequest struct {
	StartCode string `json:"start_code" binding:"required,len=4"`
}

type DisputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}

func actor(c *gin.Context) (uint, string) {
	return c.MustGet(middleware.ContextUserID).(uint),
		c.GetString(middleware.ContextUserRole)
}

// ======================================================
// CREATE (aluno)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	studentID, role := actor(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		StudentID:       studentID,
		InstructorID:    req.InstructorID,
		ScheduledAt:     req.ScheduledDate,
		DurationMinutes: req.DurationMinutes,
		Location:        req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, dto.FromBooking(b, role, time.Now().UTC()))
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	studentID, role := actor(c)

	bookings, err := h.repo.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookings(bookings, role, time.Now().UTC()))
}

func (h *BookingHandler) ListByDate(c *gin.Context) {
	instructorID, role := actor(c)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	start := date
	end := start.Add(24 * time.Hour)

	bookings, err := h.repo.ListByInstructorForPeriod(c.Request.Context(), instructorID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookings(bookings, role, time.Now().UTC()))
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	instructorID, role := actor(c)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	loc := timezoneLocation()
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	bookings, err := h.repo.ListByInstructorForPeriod(c.Request.Context(), instructorID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, gin.H{
		"year":     year,
		"month":    month,
		"bookings": dto.FromBookings(bookings, role, time.Now().UTC()),
	})
}

// ======================================================
// INSTRUCTOR ACTIONS
// ======================================================

func (h *BookingHandler) Accept(c *gin.Context) {
	instructorID, role := actor(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := h.acceptUC.Execute(c.Request.Context(), instructorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b, role, time.Now().UTC()))
}

func (h *BookingHandler) Reject(c *gin.Context) {
	instructorID, role := actor(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.rejectUC.Execute(c.Request.Context(), instructorID, id, domain.ReasonPayload{
		Code: req.ReasonCode,
		Text: req.ReasonText,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b, role, time.Now().UTC()))
}

func (h *BookingHandler) Start(c *gin.Context) {
	instructorID, role := actor(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req StartLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe o código de 4 dígitos.")
		return
	}

	b, err := h.startUC.Execute(c.Request.Context(), instructorID, id, req.StartCode)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b, role, time.Now().UTC()))
}

func (h *BookingHandler) Finish(c *gin.Context) {
	instructorID, role := actor(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := h.finishUC.Execute(c.Request.Context(), instructorID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b, role, time.Now().UTC()))
}

func (h *BookingHandler) CancelByInstructor(c *gin.Context) {
	instructorID, role := actor(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.cancelInstructorUC.Execute(c.Request.Context(), instructorID, id, domain.ReasonPayload{
		Code: req.ReasonCode,
		Text: req.ReasonText,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b, role, time.Now().UTC()))
}

// ======================================================
// STUDENT ACTIONS
// ======================================================

func (h *BookingHandler) CancelByStudent(c *gin.Context) {
	studentID, role := actor(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req ReasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	b, err := h.cancelStudentUC.Execute(c.Request.Context(), studentID, id, domain.ReasonPayload{
		Code: req.ReasonCode,
		Text: req.ReasonText,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b, role, time.Now().UTC()))
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	studentID, role := actor(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := h.confirmUC.Execute(c.Request.Context(), studentID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b, role, time.Now().UTC()))
}

func (h *BookingHandler) Dispute(c *gin.Context) {
	studentID, role := actor(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req DisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe o motivo da contestação.")
		return
	}

	b, err := h.disputeUC.Execute(c.Request.Context(), studentID, id, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b, role, time.Now().UTC()))
}
