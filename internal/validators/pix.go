package validators

import (
	"regexp"
	"strings"
)

// Validação sintática de chave PIX por tipo. A validação de titularidade
// é do provedor de transferência; aqui só barramos formato impossível.

const (
	PixKeyCPF    = "cpf"
	PixKeyEmail  = "email"
	PixKeyPhone  = "phone"
	PixKeyRandom = "random"
)

var (
	cpfRe    = regexp.MustCompile(`^\d{11}$`)
	phoneRe  = regexp.MustCompile(`^\+?\d{10,14}$`)
	randomRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

func IsPixKeyTypeValid(keyType string) bool {
	switch keyType {
	case PixKeyCPF, PixKeyEmail, PixKeyPhone, PixKeyRandom:
		return true
	}
	return false
}

func IsPixKeyValid(keyType, key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}

	switch keyType {
	case PixKeyCPF:
		return cpfRe.MatchString(onlyDigits(key))
	case PixKeyEmail:
		at := strings.LastIndex(key, "@")
		return at > 0 && at < len(key)-1
	case PixKeyPhone:
		return phoneRe.MatchString(strings.ReplaceAll(key, " ", ""))
	case PixKeyRandom:
		return randomRe.MatchString(strings.ToLower(key))
	}
	return false
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
