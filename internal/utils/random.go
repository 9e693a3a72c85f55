package utils

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const (
	letterBytes  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberBytes  = "0123456789"
	alphanumeric = letterBytes + numberBytes
	codeCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" + numberBytes
)

func GenerateRandomString(length int) string {
	return generateRandom(length, alphanumeric)
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}

func SecureRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

func SecureRandomFloat() float64 {
	max := big.NewInt(1 << 53)
	n, _ := rand.Int(rand.Reader, max)
	return float64(n.Int64()) / float64(1<<53)
}

// GenerateVoucherCode returns an uppercase alphanumeric voucher code.
func GenerateVoucherCode() string {
	return generateRandom(VoucherCodeLength, codeCharset)
}

func GeneratePaymentID() string {
	return "PAY_" + shortUUID(12)
}

func GenerateCartID() string {
	return "CART_" + shortUUID(12)
}

func GenerateTransactionID() string {
	return "TXN_" + shortUUID(16)
}

func GenerateAuthorizationCode() string {
	return "AUTH_" + shortUUID(8)
}

func shortUUID(length int) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(hex[:length])
}
