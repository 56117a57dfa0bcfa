package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCardNumber(t *testing.T) {
	cases := map[string]string{
		"4111111111111111":     "4111 1111 1111 1111",
		"4111-1111 1111":       "4111 1111 1111",
		"41":                   "41",
		"abc":                  "",
		"41111111111111112222": "4111 1111 1111 1111",
		"123456":               "1234 56",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCardNumber(in), in)
	}
}

func TestPaymentMethodLabels(t *testing.T) {
	assert.Equal(t, "Credit Card", MethodCard.Label())
	assert.Equal(t, "UPI", MethodUPI.Label())
	assert.Equal(t, "Net Banking", MethodNetBanking.Label())

	m, err := ParsePaymentMethod("Net Banking")
	assert.NoError(t, err)
	assert.Equal(t, MethodNetBanking, m)
}
