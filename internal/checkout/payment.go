package checkout

import (
	"strings"

	"glassstore/internal/domain"
)

type PaymentMethod string

const (
	MethodCard       PaymentMethod = "card"
	MethodUPI        PaymentMethod = "upi"
	MethodNetBanking PaymentMethod = "netbanking"
)

// Label is the name the backend stores on the order.
func (m PaymentMethod) Label() string {
	switch m {
	case MethodCard:
		return "Credit Card"
	case MethodUPI:
		return "UPI"
	case MethodNetBanking:
		return "Net Banking"
	default:
		return string(m)
	}
}

// ParsePaymentMethod accepts the short form or the label, case-insensitively.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card", "credit card":
		return MethodCard, nil
	case "upi":
		return MethodUPI, nil
	case "netbanking", "net banking":
		return MethodNetBanking, nil
	default:
		return "", domain.Invalid("payment_method", "must be one of card, upi, netbanking")
	}
}

// FormatCardNumber keeps the digits of s and groups them by four. At most 16
// digits are kept. Fewer than four digits are returned ungrouped.
func FormatCardNumber(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < 4 {
		return digits
	}
	if len(digits) > 16 {
		digits = digits[:16]
	}
	var groups []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		groups = append(groups, digits[i:end])
	}
	return strings.Join(groups, " ")
}
