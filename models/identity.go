package models

// Buyer identity documents accepted by the gateway's billing details.
const (
	DocumentDNI = "DNI"
	DocumentCE  = "CE"
	DocumentPS  = "PS"
)

type IdentityDocument struct {
	Type    string `json:"type"`
	Value   string `json:"value"`
	IsValid bool   `json:"is_valid"`
}

// Validate checks length and charset only. The DNI check digit is not part
// of the number buyers type, so no checksum is applied.
func (d *IdentityDocument) Validate() bool {
	switch d.Type {
	case DocumentDNI:
		d.IsValid = len(d.Value) == 8 && isDigits(d.Value)
	case DocumentCE:
		d.IsValid = len(d.Value) >= 9 && len(d.Value) <= 12 && isAlphanumeric(d.Value)
	case DocumentPS:
		d.IsValid = len(d.Value) >= 6 && len(d.Value) <= 12 && isAlphanumeric(d.Value)
	default:
		d.IsValid = false
	}
	return d.IsValid
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isDigit := r >= '0' && r <= '9'
		isUpper := r >= 'A' && r <= 'Z'
		isLower := r >= 'a' && r <= 'z'
		if !isDigit && !isUpper && !isLower {
			return false
		}
	}
	return true
}
