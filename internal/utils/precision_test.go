package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundCurrency(t *testing.T) {
	assert.Equal(t, 10.56, RoundCurrency(10.555))
	assert.Equal(t, 10.55, RoundCurrency(10.554))
	assert.Equal(t, -2.34, RoundCurrency(-2.336))
	assert.Equal(t, 0.1, RoundCurrency(0.1))
}

func TestRoundExchangeRate(t *testing.T) {
	assert.Equal(t, 0.9213, RoundExchangeRate(0.92134))
	assert.Equal(t, 1.0, RoundExchangeRate(1.00001))
}

func TestRoundBitcoin(t *testing.T) {
	assert.Equal(t, 0.12345678, RoundBitcoin(0.123456784))
	assert.Equal(t, 0.12345679, RoundBitcoin(0.123456786))
}

func TestRoundPercentage(t *testing.T) {
	assert.Equal(t, 33.3333, RoundPercentage(100.0/3.0))
}
