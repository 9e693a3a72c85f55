package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 59.97, Round2(19.99*3))
	assert.Equal(t, 7.2, Round2(59.97*0.12))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 10.01, Round2(10.006))
}

func TestCalculateTax(t *testing.T) {
	assert.Equal(t, 12.0, CalculateTax(100))
	assert.Equal(t, 7.2, CalculateTax(59.97))
	assert.Equal(t, 0.0, CalculateTax(0))
}

func TestCalculateShippingIsCapped(t *testing.T) {
	assert.Equal(t, 3.0, CalculateShipping(59.97))
	assert.Equal(t, 5.0, CalculateShipping(100))

	// 5% of 1000 is exactly the cap.
	assert.Equal(t, 50.0, CalculateShipping(1000))
	assert.Equal(t, 50.0, CalculateShipping(5000))
}
