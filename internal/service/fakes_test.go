package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"warga-be-svc/internal/models"
	"warga-be-svc/internal/models/response"
	"warga-be-svc/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("error", "text")
}

// fakeObjectStorage records uploads and deletions in memory
type fakeObjectStorage struct {
	uploadErr  error
	deleteErr  error
	uploadKeys []string
	deleted    []string
}

func (f *fakeObjectStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadKeys = append(f.uploadKeys, key)
	return "https://cdn.test/" + key, nil
}

func (f *fakeObjectStorage) DeleteByURL(_ context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return f.deleteErr
}

// fakeNotifier records side-effect notifications
type notifyCall struct {
	userID    uint
	notifType string
	subject   string
	reference string
}

type fakeNotifier struct {
	adminCalls []notifyCall
	userCalls  []notifyCall
	existing   map[string]bool
	existsErr  error
}

func notifyKey(userID uint, notifType, reference string) string {
	return fmt.Sprintf("%d/%s/%s", userID, notifType, reference)
}

func (f *fakeNotifier) NotifyAdmins(notificationType, subject, message string, reference string) {
	f.adminCalls = append(f.adminCalls, notifyCall{notifType: notificationType, subject: subject, reference: reference})
}

func (f *fakeNotifier) NotifyUser(userID uint, notificationType, subject, message string, reference string) {
	f.userCalls = append(f.userCalls, notifyCall{userID: userID, notifType: notificationType, subject: subject, reference: reference})
}

func (f *fakeNotifier) HasUserNotification(userID uint, notificationType, reference string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[notifyKey(userID, notificationType, reference)], nil
}

func (f *fakeNotifier) ListForUser(uint, bool) ([]*models.Notification, error) { return nil, nil }
func (f *fakeNotifier) MarkRead(uint, uint, bool) error                        { return nil }
func (f *fakeNotifier) CountUnread(uint) (int64, error)                        { return 0, nil }

// fakeComplaintRepo is an in-memory ComplaintRepository
type fakeComplaintRepo struct {
	activeCount int64
	countErr    error
	byID        map[uint]*models.Complaint
	created     []*models.Complaint
	updated     []*models.Complaint
	list        []*models.Complaint
	orderedErr  error
	nextID      uint
}

func (f *fakeComplaintRepo) GetByID(id uint) (*models.Complaint, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeComplaintRepo) ListByUser(userID uint, ordered bool) ([]*models.Complaint, error) {
	if ordered && f.orderedErr != nil {
		return nil, f.orderedErr
	}
	var out []*models.Complaint
	for _, c := range f.list {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeComplaintRepo) CountActiveByUser(uint) (int64, error) {
	return f.activeCount, f.countErr
}

func (f *fakeComplaintRepo) Create(complaint *models.Complaint) error {
	f.nextID++
	complaint.ID = f.nextID
	f.created = append(f.created, complaint)
	return nil
}

func (f *fakeComplaintRepo) Update(complaint *models.Complaint) error {
	f.updated = append(f.updated, complaint)
	return nil
}

// fakeMaintenanceRepo is an in-memory MaintenanceRepository
type fakeMaintenanceRepo struct {
	activeCount int64
	byID        map[uint]*models.MaintenanceRequest
	created     []*models.MaintenanceRequest
	updated     []*models.MaintenanceRequest
	list        []*models.MaintenanceRequest
	nextID      uint
}

func (f *fakeMaintenanceRepo) GetByID(id uint) (*models.MaintenanceRequest, error) {
	if r, ok := f.byID[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeMaintenanceRepo) ListByUser(userID uint, _ bool) ([]*models.MaintenanceRequest, error) {
	var out []*models.MaintenanceRequest
	for _, r := range f.list {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) CountActiveByUser(uint) (int64, error) {
	return f.activeCount, nil
}

func (f *fakeMaintenanceRepo) Create(request *models.MaintenanceRequest) error {
	f.nextID++
	request.ID = f.nextID
	f.created = append(f.created, request)
	return nil
}

func (f *fakeMaintenanceRepo) Update(request *models.MaintenanceRequest) error {
	f.updated = append(f.updated, request)
	return nil
}

// fakeBillingRepo is an in-memory BillingRepository
type fakeBillingRepo struct {
	byID           map[uint]*models.Billing
	list           []*models.Billing
	unsettled      []*models.Billing
	orderedErr     error
	updateProofErr error
	proofUpdates   []uint
	payments       []*models.Payment
	statusUpdates  map[uint]string
}

func (f *fakeBillingRepo) GetByID(id uint) (*models.Billing, error) {
	if b, ok := f.byID[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBillingRepo) ListByUser(userID uint, ordered bool) ([]*models.Billing, error) {
	if ordered && f.orderedErr != nil {
		return nil, f.orderedErr
	}
	var out []*models.Billing
	for _, b := range f.list {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBillingRepo) ListUnsettled() ([]*models.Billing, error) {
	return f.unsettled, nil
}

func (f *fakeBillingRepo) UpdateProof(id uint, proofURL, proofNote string, uploadedAt time.Time) error {
	if f.updateProofErr != nil {
		return f.updateProofErr
	}
	f.proofUpdates = append(f.proofUpdates, id)
	if b, ok := f.byID[id]; ok {
		b.ProofURL = &proofURL
		b.ProofNote = &proofNote
		b.ProofUploadedAt = &uploadedAt
		b.Status = models.BillingStatusWaitingVerification
	}
	return nil
}

func (f *fakeBillingRepo) AddPayment(payment *models.Payment) error {
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeBillingRepo) UpdateStatus(id uint, status string) error {
	if f.statusUpdates == nil {
		f.statusUpdates = make(map[uint]string)
	}
	f.statusUpdates[id] = status
	if b, ok := f.byID[id]; ok {
		b.Status = status
	}
	return nil
}

// fakeVehicleRepo is an in-memory VehicleRepository
type fakeVehicleRepo struct {
	byID      map[uint]*models.Vehicle
	created   []*models.Vehicle
	updated   []*models.Vehicle
	deleted   []uint
	deleteErr error
	nextID    uint
}

func (f *fakeVehicleRepo) GetByID(id uint) (*models.Vehicle, error) {
	if v, ok := f.byID[id]; ok {
		return v, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVehicleRepo) ListByUser(uint, bool) ([]*models.Vehicle, error) { return nil, nil }

func (f *fakeVehicleRepo) Create(vehicle *models.Vehicle) error {
	f.nextID++
	vehicle.ID = f.nextID
	f.created = append(f.created, vehicle)
	return nil
}

func (f *fakeVehicleRepo) Update(vehicle *models.Vehicle) error {
	f.updated = append(f.updated, vehicle)
	return nil
}

func (f *fakeVehicleRepo) Delete(id uint) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeVehicleRepo) CountByUser(uint) (int64, error) { return int64(len(f.byID)), nil }

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	byID    map[uint]*models.User
	byEmail map[string]*models.User
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// fakeBlacklistRepo is an in-memory TokenBlacklistRepository
type fakeBlacklistRepo struct {
	hashes map[string]time.Time
}

func newFakeBlacklistRepo() *fakeBlacklistRepo {
	return &fakeBlacklistRepo{hashes: make(map[string]time.Time)}
}

func (f *fakeBlacklistRepo) Add(tokenHash string, expiresAt time.Time) error {
	f.hashes[tokenHash] = expiresAt
	return nil
}

func (f *fakeBlacklistRepo) Exists(tokenHash string) (bool, error) {
	_, ok := f.hashes[tokenHash]
	return ok, nil
}

func (f *fakeBlacklistRepo) DeleteExpired(now time.Time) error {
	for hash, exp := range f.hashes {
		if exp.Before(now) {
			delete(f.hashes, hash)
		}
	}
	return nil
}

// fakeGateway returns canned payment links and accepts every notification
// signature unless told otherwise
type fakeGateway struct {
	err             error
	orderIDs        []string
	rejectSignature bool
}

func (f *fakeGateway) CreatePaymentLink(orderID string, _ *models.Billing, _ *models.User) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	f.orderIDs = append(f.orderIDs, orderID)
	return "snap-token", "https://pay.test/" + orderID, nil
}

func (f *fakeGateway) VerifyNotificationSignature(string, string, string, string) bool {
	return !f.rejectSignature
}

// fakeNotificationRepo is an in-memory NotificationRepository
type fakeNotificationRepo struct {
	byID    map[uint]*models.Notification
	created []*models.Notification
	read    []uint
}

func (f *fakeNotificationRepo) Create(notification *models.Notification) error {
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeNotificationRepo) GetByID(id uint) (*models.Notification, error) {
	if n, ok := f.byID[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) ListForUser(uint, bool, bool) ([]*models.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) MarkRead(id uint) error {
	f.read = append(f.read, id)
	return nil
}

func (f *fakeNotificationRepo) CountUnread(uint) (int64, error) { return 0, nil }

func (f *fakeNotificationRepo) ExistsByReference(uint, string, string) (bool, error) {
	return false, nil
}

// fakeDashboardRepo returns a canned summary
type fakeDashboardRepo struct {
	summary *response.DashboardSummaryResponse
	err     error
}

func (f *fakeDashboardRepo) GetResidentSummary(uint, time.Time) (*response.DashboardSummaryResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := *f.summary
	return &out, nil
}

// fakeAnnouncementRepo is an in-memory AnnouncementRepository
type fakeAnnouncementRepo struct {
	active []*models.Announcement
	latest *models.Announcement
}

func (f *fakeAnnouncementRepo) ListActive(bool) ([]*models.Announcement, error) {
	return f.active, nil
}

func (f *fakeAnnouncementRepo) GetLatestActive() (*models.Announcement, error) {
	if f.latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.latest, nil
}
