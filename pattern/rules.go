package pattern

import "strings"

// matchRegexKey recognizes a closed set of pattern keys. Any other key
// never matches — there is no general regex engine here.
func matchRegexKey(key, token string) bool {
	switch key {
	case `^\d+\.\d+\.\d+\.\d+$`:
		return isIPv4(token)
	case `^\d+$`:
		return isAllDigits(token)
	case `^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`:
		return isUUID(token)
	case `^[\w\.]+@[\w\.]+$`:
		return isEmailish(token)
	default:
		return false
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func isIPv4(s string) bool {
	dots := 0
	for _, c := range s {
		if c == '.' {
			dots++
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return dots == 3
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	for i, c := range []byte(s) {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isHex(c) {
				return false
			}
		}
	}
	return true
}

func isWordOrDot(c byte) bool {
	return c == '.' || c == '_' || (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isEmailish(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at >= len(s)-1 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == at {
			continue
		}
		if !isWordOrDot(s[i]) {
			return false
		}
	}
	return true
}

// heuristicVarType applies the fallback classification when no configured
// VariableRule matches a token: digit-first -> number, exactly 3 dots ->
// ip_address, contains '@' -> email. Returns (type, true) when the token
// was classified at all.
func heuristicVarType(token string) (VarType, bool) {
	if token == "" {
		return 0, false
	}
	if token[0] >= '0' && token[0] <= '9' {
		return VarNumber, true
	}
	if strings.Count(token, ".") == 3 {
		return VarIPAddress, true
	}
	if strings.Contains(token, "@") {
		return VarEmail, true
	}
	return 0, false
}

// cleanToken strips leading whitespace and trailing non-alphanumeric
// characters, then lowercases — the normalization used before category
// scoring.
func cleanToken(tok string) string {
	tok = strings.TrimLeft(tok, " \t\n\r")
	tok = strings.TrimRightFunc(tok, func(r rune) bool {
		return !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z')
	})
	return strings.ToLower(tok)
}
