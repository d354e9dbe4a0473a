package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/models/response"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/repository"
	"warga-be-svc/internal/storage"
	"warga-be-svc/pkg/logger"
)

// ReminderRunSummary reports one reminder scheduler run
type ReminderRunSummary struct {
	Checked      int `json:"checked"`
	DueSoonCount int `json:"due_soon_count"`
	OverdueCount int `json:"overdue_count"`
	SkippedCount int `json:"skipped_count"`
}

// PaymentNotification carries the gateway webhook fields needed to verify and
// record a settled transaction
type PaymentNotification struct {
	OrderID       string
	StatusCode    string
	GrossAmount   string
	SignatureKey  string
	PaymentType   string
	TransactionID string
}

// BillingService defines the interface for billing business operations
type BillingService interface {
	List(userID uint) ([]*response.BillingResponse, error)
	SubmitProof(ctx context.Context, userID uint, billingID uint, note string, image UploadedFile) (*response.BillingResponse, error)
	CreatePaymentLink(userID uint, billingID uint) (*response.PaymentLinkResponse, error)
	ConfirmPayment(notification PaymentNotification) error
	ExportStatement(userID uint) ([]byte, string, error)
	GenerateDueReminders(now time.Time) (*ReminderRunSummary, error)
}

// billingService implements BillingService
type billingService struct {
	billingRepo repository.BillingRepository
	userRepo    repository.UserRepository
	store       storage.ObjectStorage
	gateway     PaymentGateway
	notifier    NotificationService
	hub         *realtime.Hub
	dueSoonDays int
	logger      *logger.Logger
}

// NewBillingService creates a new instance of BillingService
func NewBillingService(
	billingRepo repository.BillingRepository,
	userRepo repository.UserRepository,
	store storage.ObjectStorage,
	gateway PaymentGateway,
	notifier NotificationService,
	hub *realtime.Hub,
	dueSoonDays int,
	logger *logger.Logger,
) BillingService {
	return &billingService{
		billingRepo: billingRepo,
		userRepo:    userRepo,
		store:       store,
		gateway:     gateway,
		notifier:    notifier,
		hub:         hub,
		dueSoonDays: dueSoonDays,
		logger:      logger,
	}
}

// List retrieves the resident's billings with derived fields, newest first
func (s *billingService) List(userID uint) ([]*response.BillingResponse, error) {
	billings, err := listWithOrderFallback(s.logger, "billings",
		func(ordered bool) ([]*models.Billing, error) {
			return s.billingRepo.ListByUser(userID, ordered)
		},
		func(b *models.Billing) time.Time { return b.CreatedAt },
	)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	results := make([]*response.BillingResponse, 0, len(billings))
	for _, billing := range billings {
		results = append(results, response.NewBillingResponse(billing, now, s.dueSoonDays))
	}

	return results, nil
}

// SubmitProof uploads the payment-proof image and applies the proof fields as
// a partial document update. Upload and update are two independent remote
// calls: when the update fails after a successful upload, the error is
// returned and the billing's proof fields stay unchanged.
func (s *billingService) SubmitProof(ctx context.Context, userID uint, billingID uint, note string, image UploadedFile) (*response.BillingResponse, error) {
	billing, err := s.getOwnedBilling(userID, billingID)
	if err != nil {
		return nil, err
	}
	if billing.IsPaid() {
		return nil, ErrBillingAlreadyPaid
	}

	key := fmt.Sprintf("users/%d/billings/%d/%s%s", userID, billingID, uuid.New().String(), image.Ext())
	proofURL, err := s.store.Upload(ctx, key, image.Content, image.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload payment proof: %w", err)
	}

	uploadedAt := time.Now()
	if err := s.billingRepo.UpdateProof(billingID, proofURL, note, uploadedAt); err != nil {
		// The uploaded object stays behind; the billing document is untouched
		// and the resident can retry.
		return nil, fmt.Errorf("failed to attach payment proof: %w", err)
	}

	s.notifier.NotifyAdmins(
		models.NotificationTypeProofSubmitted,
		"Payment proof submitted",
		fmt.Sprintf("Resident #%d submitted a payment proof for %s", userID, billing.Title),
		billing.DocumentID,
	)
	s.hub.Publish(realtime.TopicBillings, userID)

	updated, err := s.billingRepo.GetByID(billingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload billing: %w", err)
	}

	return response.NewBillingResponse(updated, uploadedAt, s.dueSoonDays), nil
}

// CreatePaymentLink opens a hosted payment page for an unsettled billing
func (s *billingService) CreatePaymentLink(userID uint, billingID uint) (*response.PaymentLinkResponse, error) {
	billing, err := s.getOwnedBilling(userID, billingID)
	if err != nil {
		return nil, err
	}
	if billing.IsPaid() || billing.Balance() <= 0 {
		return nil, ErrBillingAlreadyPaid
	}

	user, err := s.userRepo.GetByID(billing.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load billing owner: %w", err)
	}

	orderID := fmt.Sprintf("BLG-%d-%s", billing.ID, uuid.New().String()[:8])
	token, redirectURL, err := s.gateway.CreatePaymentLink(orderID, billing, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment link: %w", err)
	}

	return &response.PaymentLinkResponse{
		BillingID:   billing.ID,
		OrderID:     orderID,
		Token:       token,
		RedirectURL: redirectURL,
		Amount:      billing.Balance(),
	}, nil
}

// ConfirmPayment processes a settled gateway transaction. The notification
// signature is verified against the gateway server key before anything is
// written, and a transaction already recorded against the billing is
// acknowledged without a second payment row, so retried notifications stay
// idempotent. The billing ID is carried in the order ID as "BLG-{id}-{suffix}".
func (s *billingService) ConfirmPayment(notification PaymentNotification) error {
	if !s.gateway.VerifyNotificationSignature(notification.OrderID, notification.StatusCode, notification.GrossAmount, notification.SignatureKey) {
		s.logger.WithField("order_id", notification.OrderID).Warn("Payment notification signature mismatch")
		return ErrInvalidSignature
	}

	billingID, err := billingIDFromOrderID(notification.OrderID)
	if err != nil {
		return err
	}

	grossAmount, err := strconv.ParseFloat(notification.GrossAmount, 64)
	if err != nil {
		return fmt.Errorf("invalid gross amount %q: %w", notification.GrossAmount, err)
	}
	amount := int64(grossAmount)

	billing, err := s.billingRepo.GetByID(billingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load billing: %w", err)
	}

	if notification.TransactionID != "" {
		for _, existing := range billing.Payments {
			if existing.Reference != nil && *existing.Reference == notification.TransactionID {
				s.logger.WithFields(map[string]interface{}{
					"billing_id":     billing.ID,
					"transaction_id": notification.TransactionID,
				}).Info("Duplicate payment notification ignored")
				return nil
			}
		}
	}

	payment := &models.Payment{
		BillingID: billing.ID,
		Amount:    amount,
		Method:    notification.PaymentType,
		Reference: refPtr(notification.TransactionID),
		PaidAt:    time.Now(),
	}
	if err := s.billingRepo.AddPayment(payment); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}

	billing.Payments = append(billing.Payments, *payment)
	if billing.Balance() <= 0 {
		if err := s.billingRepo.UpdateStatus(billing.ID, models.BillingStatusPaid); err != nil {
			return fmt.Errorf("failed to mark billing paid: %w", err)
		}

		s.notifier.NotifyUser(billing.UserID,
			models.NotificationTypeBillingPaid,
			"Billing settled",
			fmt.Sprintf("Your payment for %s has been received", billing.Title),
			billing.DocumentID,
		)
	}

	s.hub.Publish(realtime.TopicBillings, billing.UserID)

	s.logger.WithFields(map[string]interface{}{
		"billing_id": billing.ID,
		"order_id":   notification.OrderID,
		"amount":     amount,
	}).Info("Payment confirmed")

	return nil
}

// ExportStatement renders the resident's billing history as an Excel workbook
func (s *billingService) ExportStatement(userID uint) ([]byte, string, error) {
	billings, err := s.List(userID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Billings"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"Title", "Month", "Year", "Due Date", "Amount", "Paid", "Balance", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write export header: %w", err)
		}
	}

	for row, billing := range billings {
		values := []interface{}{
			billing.Title,
			billing.Month,
			billing.Year,
			billing.DueDate.Format("2006-01-02"),
			billing.Amount,
			billing.TotalPaid,
			billing.Balance,
			billing.Status,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write export row: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render export: %w", err)
	}

	filename := fmt.Sprintf("billing-statement-%d-%s.xlsx", userID, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// GenerateDueReminders classifies every unsettled billing against the due
// date and creates a due-soon or overdue notification for its resident, once
// per billing and class.
func (s *billingService) GenerateDueReminders(now time.Time) (*ReminderRunSummary, error) {
	billings, err := s.billingRepo.ListUnsettled()
	if err != nil {
		return nil, fmt.Errorf("failed to list unsettled billings: %w", err)
	}

	summary := &ReminderRunSummary{Checked: len(billings)}

	for _, billing := range billings {
		var notificationType, subject, message string

		switch billing.RiskLevel(now, s.dueSoonDays) {
		case models.RiskOverdue:
			notificationType = models.NotificationTypeBillingOverdue
			subject = "Billing overdue"
			message = fmt.Sprintf("%s was due on %s and is still unpaid", billing.Title, billing.DueDate.Format("2 January 2006"))
		case models.RiskDueSoon:
			notificationType = models.NotificationTypeBillingDueSoon
			subject = "Billing due soon"
			message = fmt.Sprintf("%s is due on %s", billing.Title, billing.DueDate.Format("2 January 2006"))
		default:
			continue
		}

		exists, err := s.notifier.HasUserNotification(billing.UserID, notificationType, billing.DocumentID)
		if err != nil {
			s.logger.WithError(err).WithField("billing_id", billing.ID).Error("Failed to check existing reminder")
			continue
		}
		if exists {
			summary.SkippedCount++
			continue
		}

		s.notifier.NotifyUser(billing.UserID, notificationType, subject, message, billing.DocumentID)
		if notificationType == models.NotificationTypeBillingOverdue {
			summary.OverdueCount++
		} else {
			summary.DueSoonCount++
		}
	}

	return summary, nil
}

// getOwnedBilling loads a billing and hides other residents' billings behind
// a not-found error.
func (s *billingService) getOwnedBilling(userID uint, billingID uint) (*models.Billing, error) {
	billing, err := s.billingRepo.GetByID(billingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load billing: %w", err)
	}

	if billing.UserID != userID {
		return nil, ErrNotFound
	}

	return billing, nil
}

// billingIDFromOrderID parses the billing ID out of "BLG-{id}-{suffix}"
func billingIDFromOrderID(orderID string) (uint, error) {
	parts := strings.Split(orderID, "-")
	if len(parts) < 2 || parts[0] != "BLG" {
		return 0, fmt.Errorf("unrecognized order id %q", orderID)
	}

	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid billing id in order id %q: %w", orderID, err)
	}

	return uint(id), nil
}
