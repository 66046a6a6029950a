package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PilotarApp/lesson-scheduler/internal/httperr"
)

func TestValidateReason_ClosedVocabularies(t *testing.T) {
	require.NoError(t, ValidateStudentCancelReason(ReasonPayload{Code: "FOUND_ANOTHER"}))
	require.NoError(t, ValidateInstructorCancelReason(ReasonPayload{Code: "VEHICLE_PROBLEM"}))
	require.NoError(t, ValidateInstructorRejectReason(ReasonPayload{Code: "OUT_OF_AREA"}))

	// código de um vocabulário não vale no outro
	err := ValidateStudentCancelReason(ReasonPayload{Code: "VEHICLE_PROBLEM"})
	assertBusinessCode(t, err, httperr.CodeValidation)

	err = ValidateInstructorRejectReason(ReasonPayload{Code: "PRICE"})
	assertBusinessCode(t, err, httperr.CodeValidation)

	err = ValidateInstructorCancelReason(ReasonPayload{Code: ""})
	assertBusinessCode(t, err, httperr.CodeValidation)
}

func TestValidateReason_Other(t *testing.T) {
	// OTHER sem texto falha
	err := ValidateStudentCancelReason(ReasonPayload{Code: ReasonOther})
	assertBusinessCode(t, err, httperr.CodeValidation)

	// OTHER com texto passa
	require.NoError(t, ValidateStudentCancelReason(ReasonPayload{Code: ReasonOther, Text: "Mudei de cidade"}))

	// limite de 140 runas, não bytes
	atLimit := strings.Repeat("ã", MaxReasonTextLen)
	require.NoError(t, ValidateStudentCancelReason(ReasonPayload{Code: ReasonOther, Text: atLimit}))

	err = ValidateStudentCancelReason(ReasonPayload{Code: ReasonOther, Text: atLimit + "x"})
	assertBusinessCode(t, err, httperr.CodeValidation)

	// fora de OTHER o texto é livre e opcional
	require.NoError(t, ValidateStudentCancelReason(ReasonPayload{Code: "PRICE", Text: ""}))
	require.NoError(t, ValidateStudentCancelReason(ReasonPayload{Code: "PRICE", Text: "caro demais"}))
}

func TestNewStartCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := NewStartCode()
		assert.Len(t, code, 4)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q", code)
		}
	}
}
