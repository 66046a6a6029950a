package routes

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/PilotarApp/lesson-scheduler/internal/audit"
	"github.com/PilotarApp/lesson-scheduler/internal/config"
	payoutdomain "github.com/PilotarApp/lesson-scheduler/internal/domain/payout"
	"github.com/PilotarApp/lesson-scheduler/internal/handlers"
	infraRepo "github.com/PilotarApp/lesson-scheduler/internal/infra/repository"
	"github.com/PilotarApp/lesson-scheduler/internal/locker"
	"github.com/PilotarApp/lesson-scheduler/internal/middleware"
	"github.com/PilotarApp/lesson-scheduler/internal/models"
	"github.com/PilotarApp/lesson-scheduler/internal/payment"
	"github.com/PilotarApp/lesson-scheduler/internal/payoutrail"
	"github.com/PilotarApp/lesson-scheduler/internal/scheduler"
	ucBooking "github.com/PilotarApp/lesson-scheduler/internal/usecase/booking"
	ucPayout "github.com/PilotarApp/lesson-scheduler/internal/usecase/payout"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) *scheduler.Scheduler {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	payoutRepo := infraRepo.NewPayoutGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	gateway, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Fatalf("failed to init mercadopago gateway: %v", err)
	}
	refundDispatcher := payment.NewRefundDispatcher(gateway)

	rail := payoutrail.NewHTTPClient(cfg.PayoutRailURL, cfg.PayoutRailToken)

	policy := payoutdomain.Policy{
		BaseFeePercent:        decimal.NewFromFloat(cfg.BaseFeePercent),
		AnticipationSurcharge: decimal.NewFromFloat(cfg.AnticipationSurcharge),
		StandardWait:          time.Duration(cfg.StandardWaitDays) * 24 * time.Hour,
		AnticipatedWait:       time.Duration(cfg.AnticipatedWaitDays) * 24 * time.Hour,
	}
	confirmWindow := time.Duration(cfg.AutoConfirmHours) * time.Hour

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	acceptBookingUC := ucBooking.NewAcceptBooking(bookingRepo, auditDispatcher)
	rejectBookingUC := ucBooking.NewRejectBooking(bookingRepo, auditDispatcher)
	startLessonUC := ucBooking.NewStartLesson(bookingRepo, auditDispatcher)
	finishLessonUC := ucBooking.NewFinishLesson(bookingRepo, auditDispatcher, confirmWindow)
	confirmUC := ucBooking.NewConfirmCompletion(bookingRepo, payoutRepo, auditDispatcher, policy)
	disputeUC := ucBooking.NewDisputeBooking(bookingRepo, auditDispatcher)
	cancelStudentUC := ucBooking.NewCancelByStudent(bookingRepo, auditDispatcher, refundDispatcher)
	cancelInstructorUC := ucBooking.NewCancelByInstructor(bookingRepo, auditDispatcher, refundDispatcher)
	paymentUpdateUC := ucBooking.NewApplyPaymentUpdate(bookingRepo, gateway, auditDispatcher)

	// ======================================================
	// USE CASES — PAYOUTS
	// ======================================================
	balanceUC := ucPayout.NewGetBalance(payoutRepo)
	listPayoutsUC := ucPayout.NewListPayouts(payoutRepo)
	anticipateUC := ucPayout.NewRequestAnticipation(payoutRepo, auditDispatcher, policy)
	withdrawUC := ucPayout.NewRequestWithdrawal(payoutRepo, auditDispatcher, rail)
	settleUC := ucPayout.NewSettleTransfer(payoutRepo, auditDispatcher)
	registerMethodUC := ucPayout.NewRegisterWithdrawalMethod(payoutRepo, auditDispatcher)
	validateMethodUC := ucPayout.NewValidateMethod(payoutRepo, auditDispatcher)

	// ======================================================
	// SWEEPS
	// ======================================================
	sweepLocker := locker.New(cfg)
	sched := scheduler.New(sweepLocker, time.Duration(cfg.SweepIntervalMinutes)*time.Minute)
	sched.Register("auto_confirm", ucBooking.NewAutoConfirmSweep(bookingRepo, payoutRepo, auditDispatcher, policy))
	sched.Register("no_show", ucBooking.NewNoShowSweep(bookingRepo, auditDispatcher))
	sched.Register("payout_release", ucPayout.NewReleaseSweep(payoutRepo, auditDispatcher))

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		bookingRepo,
		createBookingUC,
		acceptBookingUC,
		rejectBookingUC,
		startLessonUC,
		finishLessonUC,
		confirmUC,
		disputeUC,
		cancelStudentUC,
		cancelInstructorUC,
	)

	payoutHandler := handlers.NewPayoutHandler(
		balanceUC,
		listPayoutsUC,
		anticipateUC,
		withdrawUC,
		registerMethodUC,
	)

	webhookHandler := handlers.NewWebhookHandler(paymentUpdateUC, settleUC, validateMethodUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// WEBHOOKS (sem auth de usuário)
		// ------------------------------
		api.POST("/webhooks/mercadopago", webhookHandler.MercadoPago)
		api.POST("/webhooks/transfers", webhookHandler.TransferResult)
		api.POST("/webhooks/method-validation", webhookHandler.MethodValidation)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// BOOKINGS — aluno
			// ------------------------------
			student := secured.Group("/")
			student.Use(middleware.RequireRole(models.RoleStudent))
			{
				student.POST("/me/bookings", bookingHandler.Create)
				student.GET("/me/bookings", bookingHandler.ListMine)
				student.PATCH("/me/bookings/:id/cancel", bookingHandler.CancelByStudent)
				student.PATCH("/me/bookings/:id/confirm", bookingHandler.Confirm)
				student.PATCH("/me/bookings/:id/dispute", bookingHandler.Dispute)
			}

			// ------------------------------
			// BOOKINGS — instrutor
			// ------------------------------
			instructor := secured.Group("/")
			instructor.Use(middleware.RequireRole(models.RoleInstructor))
			{
				instructor.GET("/me/lessons", bookingHandler.ListByDate)
				instructor.GET("/me/lessons/month", bookingHandler.ListByMonth)
				instructor.PATCH("/me/lessons/:id/accept", bookingHandler.Accept)
				instructor.PATCH("/me/lessons/:id/reject", bookingHandler.Reject)
				instructor.PATCH("/me/lessons/:id/start", bookingHandler.Start)
				instructor.PATCH("/me/lessons/:id/finish", bookingHandler.Finish)
				instructor.PATCH("/me/lessons/:id/cancel", bookingHandler.CancelByInstructor)

				// ------------------------------
				// PAYOUTS
				// ------------------------------
				instructor.GET("/me/balance", payoutHandler.GetBalance)
				instructor.GET("/me/payouts", payoutHandler.List)
				instructor.POST("/me/payouts/:id/anticipate", payoutHandler.Anticipate)
				instructor.POST("/me/payouts/:id/withdraw", payoutHandler.Withdraw)
				instructor.PUT("/me/withdrawal-method", payoutHandler.RegisterMethod)
			}
		}
	}

	return sched
}
