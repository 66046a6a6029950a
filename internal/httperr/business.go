package httperr

import "errors"

// Códigos de erro de negócio do núcleo. Os handlers traduzem para HTTP;
// o domínio só conhece o código.
const (
	CodeValidation          = "validation_error"
	CodeInvalidTransition   = "invalid_transition"
	CodePaymentNotConfirmed = "payment_not_confirmed"
	CodeAlreadyRefunded     = "already_refunded"
	CodeInvalidCode         = "invalid_code"
	CodeCodeAlreadyUsed     = "code_already_used"
	CodeNotAnticipable      = "not_anticipable"
	CodeNoValidatedMethod   = "no_validated_method"
	CodeInsufficientEntry   = "insufficient_entry"
)

type BusinessError struct {
	Code string
	// Field aponta o campo ofensivo em erros de validação.
	Field string
	// Detail carrega contexto do estado, ex.: "accepted:start".
	Detail string
}

func (e BusinessError) Error() string {
	if e.Field != "" {
		return e.Code + ": " + e.Field
	}
	if e.Detail != "" {
		return e.Code + " (" + e.Detail + ")"
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrValidation(field string) error {
	return BusinessError{Code: CodeValidation, Field: field}
}

// ErrInvalidTransition registra o estado atual e o evento recusado.
func ErrInvalidTransition(status, event string) error {
	return BusinessError{Code: CodeInvalidTransition, Detail: status + ":" + event}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}
