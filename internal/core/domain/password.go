package domain

// PasswordSpecials is the set of punctuation accepted (and one of which is
// required) in a password.
const PasswordSpecials = "@$!%*?&"

const minPasswordLength = 8

// PasswordPolicyMessage is shown to users whose password is rejected.
const PasswordPolicyMessage = "Password must be at least 8 characters, include one uppercase, one lowercase, one digit, and one special character (@$!%*?&)."

// ValidatePassword reports whether password satisfies the complexity policy:
// at least 8 characters drawn only from ASCII letters, digits and
// PasswordSpecials, with at least one of each of lowercase, uppercase, digit
// and special.
func ValidatePassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}

	var lower, upper, digit, special bool
	for i := 0; i < len(password); i++ {
		switch c := password[i]; {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case isPasswordSpecial(c):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

func isPasswordSpecial(c byte) bool {
	for i := 0; i < len(PasswordSpecials); i++ {
		if PasswordSpecials[i] == c {
			return true
		}
	}
	return false
}
