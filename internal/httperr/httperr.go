package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

// WriteBusiness mapeia um BusinessError para a resposta HTTP padrão,
// com mensagem amigável em português por código.
func WriteBusiness(c *gin.Context, be BusinessError) {
	status := http.StatusUnprocessableEntity
	switch be.Code {
	case CodeValidation:
		status = http.StatusBadRequest
	case CodeInvalidTransition:
		status = http.StatusConflict
	}

	c.JSON(status, HTTPError{
		Code:    be.Code,
		Field:   be.Field,
		Message: messageFor(be.Code),
	})
}

func messageFor(code string) string {
	switch code {
	case CodeValidation:
		return "Dados inválidos."
	case CodeInvalidTransition:
		return "Ação não permitida no estado atual."
	case CodePaymentNotConfirmed:
		return "Aguardando confirmação de pagamento."
	case CodeAlreadyRefunded:
		return "Reembolsado."
	case CodeInvalidCode:
		return "Código de início inválido."
	case CodeCodeAlreadyUsed:
		return "Código de início já utilizado."
	case CodeNotAnticipable:
		return "Este repasse não pode ser antecipado."
	case CodeNoValidatedMethod:
		return "Cadastre e valide um método de saque."
	case CodeInsufficientEntry:
		return "Repasse ainda não disponível para saque."
	}
	return "Operação não permitida."
}
