package validators

// IsPhoneNumberValid accepts digit-only numbers of at most ten digits.
func IsPhoneNumberValid(phone string) bool {
	if phone == "" || len(phone) > 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
