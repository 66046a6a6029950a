package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
)

func respondError(c *gin.Context, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "Registro não encontrado.")
		return
	}

	if be, ok := httperr.AsBusiness(err); ok {
		switch be.Code {
		case "booking_not_found":
			httperr.NotFound(c, be.Code, "Aula não encontrada.")
		case "instructor_not_found":
			httperr.NotFound(c, be.Code, "Instrutor não encontrado.")
		case "payout_entry_not_found":
			httperr.NotFound(c, be.Code, "Repasse não encontrado.")
		case "withdrawal_method_not_found":
			httperr.NotFound(c, be.Code, "Método de saque não encontrado.")
		case "instructor_not_verified":
			httperr.Forbidden(c, be.Code, "Instrutor ainda não verificado.")
		default:
			httperr.WriteBusiness(c, be)
		}
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}
