package booking

import (
	"fmt"
	"math/rand"
)

// NewStartCode gera o código de 4 dígitos que o aluno apresenta ao
// instrutor no início da aula. Não precisa ser criptográfico; precisa
// ser uniforme e de uso único (ver Start em entity.go).
func NewStartCode() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}
