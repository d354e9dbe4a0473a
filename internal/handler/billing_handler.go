package handler

import (
	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/middleware"
	"warga-be-svc/internal/realtime"
	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// PaymentNotificationRequest represents the payment gateway webhook payload.
// The signature key authenticates the notification against the gateway server
// key; a payload without it is rejected before any lookup.
type PaymentNotificationRequest struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	StatusCode        string `json:"status_code" binding:"required"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
	PaymentType       string `json:"payment_type"`
	TransactionID     string `json:"transaction_id"`
}

// BillingHandler handles billing-related HTTP requests
type BillingHandler struct {
	billingService service.BillingService
	hub            *realtime.Hub
	logger         *logger.Logger
}

// NewBillingHandler creates a new BillingHandler instance
func NewBillingHandler(billingService service.BillingService, hub *realtime.Hub, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		hub:            hub,
		logger:         logger,
	}
}

// List returns the caller's billings with derived balance and risk level
// @Summary List my billings
// @Description List all billings of the authenticated resident, newest first, with computed balance and due-date risk
// @Tags billings
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response.BillingResponse} "Billings"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/billings [get]
func (h *BillingHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	billings, err := h.billingService.List(user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to list billings")
		return
	}

	utils.SuccessResponse(c, "Billings retrieved successfully", billings)
}

// Watch streams billing snapshots for the caller over SSE
// @Summary Watch my billings
// @Description Server-sent event stream; emits the full billing list on connect and after every change
// @Tags billings
// @Produce text/event-stream
// @Success 200 {string} string "SSE stream of billing snapshots"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/billings/watch [get]
func (h *BillingHandler) Watch(c *gin.Context) {
	user := middleware.CurrentUser(c)

	snapshotStream(c, h.hub, h.logger, realtime.TopicBillings, user.ID, func() (interface{}, error) {
		return h.billingService.List(user.ID)
	})
}

// SubmitProof uploads a payment proof image for one billing
// @Summary Submit payment proof
// @Description Upload a transfer receipt for an unpaid billing; the billing moves to waiting_verification and admins are notified
// @Tags billings
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Billing ID"
// @Param proof formData file true "Proof image"
// @Param note formData string false "Optional note for the verifier"
// @Success 200 {object} utils.APIResponse{data=response.BillingResponse} "Updated billing"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Billing not found"
// @Failure 409 {object} utils.APIResponse "Billing already paid"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/billings/{id}/proof [post]
func (h *BillingHandler) SubmitProof(c *gin.Context) {
	user := middleware.CurrentUser(c)

	billingID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid billing ID", err)
		return
	}

	proof, err := readUploadedFile(c, "proof", true)
	if err != nil {
		utils.BadRequestResponse(c, "A proof image is required", err)
		return
	}

	billing, err := h.billingService.SubmitProof(c.Request.Context(), user.ID, billingID, c.PostForm("note"), *proof)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to submit payment proof")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":    user.ID,
		"billing_id": billingID,
	}).Info("Payment proof submitted")

	utils.SuccessResponse(c, "Payment proof submitted successfully", billing)
}

// CreatePaymentLink creates an online payment link for one billing
// @Summary Create payment link
// @Description Create a hosted payment page for the outstanding balance of a billing
// @Tags billings
// @Produce json
// @Param id path int true "Billing ID"
// @Success 200 {object} utils.APIResponse{data=response.PaymentLinkResponse} "Payment link"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 404 {object} utils.APIResponse "Billing not found"
// @Failure 409 {object} utils.APIResponse "Billing already paid"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/billings/{id}/payment-link [post]
func (h *BillingHandler) CreatePaymentLink(c *gin.Context) {
	user := middleware.CurrentUser(c)

	billingID, err := parseIDParam(c, "id")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid billing ID", err)
		return
	}

	link, err := h.billingService.CreatePaymentLink(user.ID, billingID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to create payment link")
		return
	}

	utils.SuccessResponse(c, "Payment link created successfully", link)
}

// ConfirmPayment receives payment gateway notifications
// @Summary Payment gateway webhook
// @Description Record a settled payment reported by the payment gateway. The notification signature is verified against the gateway server key; unsettled statuses are acknowledged and ignored.
// @Tags billings
// @Accept json
// @Produce json
// @Param request body PaymentNotificationRequest true "Gateway notification"
// @Success 200 {object} utils.APIResponse "Notification processed"
// @Failure 400 {object} utils.APIResponse "Invalid notification"
// @Failure 401 {object} utils.APIResponse "Signature mismatch"
// @Router /api/v1/billings/confirm-payment [post]
func (h *BillingHandler) ConfirmPayment(c *gin.Context) {
	var req PaymentNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Notification body must be valid JSON", err)
		return
	}

	if req.TransactionStatus != "settlement" && req.TransactionStatus != "capture" {
		utils.SuccessResponse(c, "Notification acknowledged", nil)
		return
	}

	err := h.billingService.ConfirmPayment(service.PaymentNotification{
		OrderID:       req.OrderID,
		StatusCode:    req.StatusCode,
		GrossAmount:   req.GrossAmount,
		SignatureKey:  req.SignatureKey,
		PaymentType:   req.PaymentType,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to record payment")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"order_id":     req.OrderID,
		"gross_amount": req.GrossAmount,
	}).Info("Payment notification processed")

	utils.SuccessResponse(c, "Payment recorded successfully", nil)
}

// ExportStatement downloads the caller's billing statement as a spreadsheet
// @Summary Export billing statement
// @Description Download all billings of the authenticated resident as an .xlsx workbook
// @Tags billings
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary "Billing statement workbook"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/billings/export [get]
func (h *BillingHandler) ExportStatement(c *gin.Context) {
	user := middleware.CurrentUser(c)

	content, filename, err := h.billingService.ExportStatement(user.ID)
	if err != nil {
		respondServiceError(c, h.logger, err, "Failed to export billing statement")
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
