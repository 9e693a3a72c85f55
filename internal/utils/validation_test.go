package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Str0ng!Pass", false},
		{"too short", "S1!a", true},
		{"no uppercase", "weak1pass!", true},
		{"no lowercase", "WEAK1PASS!", true},
		{"no digit", "WeakPass!!", true},
		{"no special", "WeakPass11", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tc.password)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("alice_01"))
	assert.False(t, IsValidUsername("ab"))
	assert.False(t, IsValidUsername("has spaces"))
	assert.False(t, IsValidUsername("way_too_long_username_here"))
}

func TestIsValidDiscountCode(t *testing.T) {
	assert.True(t, IsValidDiscountCode("SAVE20AB"))
	assert.True(t, IsValidDiscountCode("save20ab"))
	assert.False(t, IsValidDiscountCode("no"))
	assert.False(t, IsValidDiscountCode("BAD-CODE"))
}

func TestGenerateVoucherCodeShape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateVoucherCode()
		assert.Len(t, code, VoucherCodeLength)
		assert.Regexp(t, `^[A-Z0-9]+$`, code)
		seen[code] = true
	}
	// Collisions in 100 draws from 36^8 would be astonishing.
	assert.Greater(t, len(seen), 99)
}
