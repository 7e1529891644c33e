package validators

// IsPhoneValid aceita telefones brasileiros com DDD: 10 ou 11 dígitos.
func IsPhoneValid(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits == 10 || digits == 11
}
