package booking

import "github.com/PilotarApp/lesson-scheduler/internal/httperr"

// ===============================
// Reason Taxonomy
// ===============================

// Vocabulários fechados por ator. Texto livre só é exigido (e validado)
// para OTHER; nos demais códigos o texto é aceito e guardado como veio.

const ReasonOther = "OTHER"

const MaxReasonTextLen = 140

var studentCancelReasons = map[string]bool{
	"SCHEDULE_CONFLICT":  true,
	"FOUND_ANOTHER":      true,
	"PERSONAL_EMERGENCY": true,
	"PRICE":              true,
	ReasonOther:          true,
}

var instructorCancelReasons = map[string]bool{
	"SCHEDULE_CONFLICT":  true,
	"VEHICLE_PROBLEM":    true,
	"PERSONAL_EMERGENCY": true,
	ReasonOther:          true,
}

var instructorRejectReasons = map[string]bool{
	"UNAVAILABLE":       true,
	"OUT_OF_AREA":       true,
	"SCHEDULE_CONFLICT": true,
	ReasonOther:         true,
}

type ReasonPayload struct {
	Code string
	Text string
}

func validateReason(allowed map[string]bool, p ReasonPayload) error {
	if !allowed[p.Code] {
		return httperr.ErrValidation("reason_code")
	}
	if p.Code == ReasonOther {
		if p.Text == "" {
			return httperr.ErrValidation("reason_text")
		}
		if len([]rune(p.Text)) > MaxReasonTextLen {
			return httperr.ErrValidation("reason_text")
		}
	}
	return nil
}

func ValidateStudentCancelReason(p ReasonPayload) error {
	return validateReason(studentCancelReasons, p)
}

func ValidateInstructorCancelReason(p ReasonPayload) error {
	return validateReason(instructorCancelReasons, p)
}

func ValidateInstructorRejectReason(p ReasonPayload) error {
	return validateReason(instructorRejectReasons, p)
}
