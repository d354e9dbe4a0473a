package service

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	"warga-be-svc/internal/config"
	"warga-be-svc/internal/models"
	"warga-be-svc/pkg/logger"
)

// PaymentGateway creates hosted payment pages for outstanding billings and
// verifies the signature the gateway attaches to its HTTP notifications.
type PaymentGateway interface {
	CreatePaymentLink(orderID string, billing *models.Billing, user *models.User) (token string, redirectURL string, err error)
	VerifyNotificationSignature(orderID, statusCode, grossAmount, signatureKey string) bool
}

// midtransGateway implements PaymentGateway on the Midtrans Snap API
type midtransGateway struct {
	client    snap.Client
	serverKey string
	logger    *logger.Logger
}

// NewMidtransGateway creates a Snap client from configuration
func NewMidtransGateway(cfg config.MidtransConfig, logger *logger.Logger) PaymentGateway {
	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}

	var client snap.Client
	client.New(cfg.ServerKey, env)

	return &midtransGateway{
		client:    client,
		serverKey: cfg.ServerKey,
		logger:    logger,
	}
}

// CreatePaymentLink opens a Snap transaction for the billing's outstanding balance
func (g *midtransGateway) CreatePaymentLink(orderID string, billing *models.Billing, user *models.User) (string, string, error) {
	balance := billing.Balance()

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: balance,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    billing.DocumentID,
				Name:  billing.Title,
				Price: balance,
				Qty:   1,
			},
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: user.FullName,
			Email: user.Email,
			Phone: user.Phone,
		},
	}

	resp, midErr := g.client.CreateTransaction(req)
	if midErr != nil {
		return "", "", fmt.Errorf("failed to create snap transaction: %w", midErr)
	}

	g.logger.WithFields(map[string]interface{}{
		"order_id":   orderID,
		"billing_id": billing.ID,
		"amount":     balance,
	}).Info("Payment link created")

	return resp.Token, resp.RedirectURL, nil
}

// VerifyNotificationSignature checks the signature Midtrans puts on every HTTP
// notification: sha512(order_id + status_code + gross_amount + server_key),
// hex encoded.
func (g *midtransGateway) VerifyNotificationSignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + g.serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(signatureKey))) == 1
}
