package service

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"warga-be-svc/internal/config"
)

func midtransSignature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

func TestVerifyNotificationSignature(t *testing.T) {
	gateway := NewMidtransGateway(config.MidtransConfig{ServerKey: "SB-Mid-server-abc123"}, testLogger())

	signature := midtransSignature("BLG-42-a1b2c3d4", "200", "250000.00", "SB-Mid-server-abc123")

	assert.True(t, gateway.VerifyNotificationSignature("BLG-42-a1b2c3d4", "200", "250000.00", signature))

	// A signature computed with another server key fails
	forged := midtransSignature("BLG-42-a1b2c3d4", "200", "250000.00", "attacker-key")
	assert.False(t, gateway.VerifyNotificationSignature("BLG-42-a1b2c3d4", "200", "250000.00", forged))

	// Tampering with any signed field fails
	assert.False(t, gateway.VerifyNotificationSignature("BLG-42-a1b2c3d4", "200", "1.00", signature))
	assert.False(t, gateway.VerifyNotificationSignature("BLG-99-a1b2c3d4", "200", "250000.00", signature))
	assert.False(t, gateway.VerifyNotificationSignature("BLG-42-a1b2c3d4", "200", "250000.00", "not-a-signature"))
}
