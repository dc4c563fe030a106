package booking

import (
	"errors"
	"sync"
	"time"

	branchRepo "drivewell/database/repository/branch"
	catalogRepo "drivewell/database/repository/catalog"
	userRepo "drivewell/database/repository/user"
	vehicleRepo "drivewell/database/repository/vehicle"
	"drivewell/models"

	"github.com/stripe/stripe-go/v76"
)

// fakeBookingRepo is an in-memory BookingRepository. createErr fails the next
// Create call once, for exercising transient persistence failures.
type fakeBookingRepo struct {
	mu        sync.Mutex
	bookings  map[string]*models.Booking
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		err := r.createErr
		r.createErr = nil
		return err
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) Update(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return errors.New("not found")
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bookings, id)
	return nil
}

func (r *fakeBookingRepo) GetByCustomer(customerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Customer == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByBranchName(branchName string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Branch.BranchName == branchName {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetSince(date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date >= date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CountAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *fakeBookingRepo) CountForSlot(date, branchName, serviceName string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, b := range r.bookings {
		if b.Date == date && b.Branch.BranchName == branchName && b.Service == serviceName {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) ExistsForVehicleOnDate(date, vehicleID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.Date == date && b.Vehicle.VehicleID == vehicleID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) UnavailableDates(branchName, serviceName string, threshold int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, b := range r.bookings {
		if b.Branch.BranchName == branchName && b.Service == serviceName {
			counts[b.Date]++
		}
	}
	var out []string
	for date, n := range counts {
		if n >= threshold {
			out = append(out, date)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) SetStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("not found")
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) AppendNote(id string, note models.BookingNote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("not found")
	}
	b.Notes = append(b.Notes, note)
	return nil
}

func (r *fakeBookingRepo) RemoveNote(id, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("not found")
	}
	var kept []models.BookingNote
	for _, n := range b.Notes {
		if n.ID != noteID {
			kept = append(kept, n)
		}
	}
	b.Notes = kept
	return nil
}

func (r *fakeBookingRepo) SetBill(id string, bill []models.BillItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("not found")
	}
	b.Bill = bill
	return nil
}

func (r *fakeBookingRepo) MarkBillPaid(id, method string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.BillPayment {
		return false, nil
	}
	now := time.Now()
	b.BillPayment = true
	b.PaymentDate = &now
	b.PaymentMethod = method
	return true, nil
}

// fakeEventRepo tracks event statuses in memory.
type fakeEventRepo struct {
	mu       sync.Mutex
	statuses map[string]string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{statuses: make(map[string]string)}
}

func (r *fakeEventRepo) Claim(event models.ProcessedEvent) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.statuses[event.EventID] == models.EventStatusApplied {
		return false, nil
	}
	r.statuses[event.EventID] = models.EventStatusPending
	return true, nil
}

func (r *fakeEventRepo) MarkApplied(eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[eventID] = models.EventStatusApplied
	return nil
}

// Lookup fakes embed the repository interfaces; only the methods the booking
// service calls are implemented.

type fakeBranchRepo struct {
	branchRepo.BranchRepository
	exists bool
}

func (r *fakeBranchRepo) ExistsByName(string) (bool, error) { return r.exists, nil }

type fakeCatalogRepo struct {
	catalogRepo.CatalogRepository
	exists bool
}

func (r *fakeCatalogRepo) ExistsByName(string) (bool, error) { return r.exists, nil }

type fakeVehicleRepo struct {
	vehicleRepo.VehicleRepository
	owned bool
}

func (r *fakeVehicleRepo) ExistsOwned(string, string) (bool, error) { return r.owned, nil }

type fakeUserRepo struct {
	userRepo.UserRepository
	users map[string]*models.User
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	return r.users[id], nil
}

// fakeIntentStore records saved and consumed intents.
type fakeIntentStore struct {
	mu       sync.Mutex
	saved    map[string]models.PendingIntent
	consumed []string
}

func newFakeIntentStore() *fakeIntentStore {
	return &fakeIntentStore{saved: make(map[string]models.PendingIntent)}
}

func (s *fakeIntentStore) Save(intent models.PendingIntent, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[intent.IntentID] = intent
	return nil
}

func (s *fakeIntentStore) Consume(intentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, intentID)
	s.consumed = append(s.consumed, intentID)
	return nil
}

// fakeCheckout returns a canned session and captures the params it was given.
type fakeCheckout struct {
	lastParams *stripe.CheckoutSessionParams
	url        string
	err        error
}

func (c *fakeCheckout) NewSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	c.lastParams = params
	if c.err != nil {
		return nil, c.err
	}
	url := c.url
	if url == "" {
		url = "https://checkout.test/session"
	}
	return &stripe.CheckoutSession{ID: "cs_test", URL: url}, nil
}

// fakeNotifier records the mails that would have been sent.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (n *fakeNotifier) record(kind string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, kind)
	if n.fail {
		return errors.New("smtp unavailable")
	}
	return nil
}

func (n *fakeNotifier) SendWelcome(string, string) error { return n.record("welcome") }
func (n *fakeNotifier) SendTemporaryPassword(string, string) error {
	return n.record("temporaryPassword")
}
func (n *fakeNotifier) SendBookingConfirmation(string, *models.Booking) error {
	return n.record("bookingConfirmation")
}
func (n *fakeNotifier) SendPaymentConfirmation(string, *models.Booking, float64) error {
	return n.record("paymentConfirmation")
}
func (n *fakeNotifier) SendCashReceipt(string, *models.Booking, float64) error {
	return n.record("cashReceipt")
}
func (n *fakeNotifier) SendServiceCompleted(string, *models.Booking, float64) error {
	return n.record("serviceCompleted")
}

// testService assembles the service over fresh fakes tuned for a valid
// booking request.
type testFixture struct {
	svc      *DefaultBookingService
	repo     *fakeBookingRepo
	events   *fakeEventRepo
	branches *fakeBranchRepo
	catalog  *fakeCatalogRepo
	vehicles *fakeVehicleRepo
	users    *fakeUserRepo
	intents  *fakeIntentStore
	checkout *fakeCheckout
	notifier *fakeNotifier
}

func newTestFixture() *testFixture {
	f := &testFixture{
		repo:     newFakeBookingRepo(),
		events:   newFakeEventRepo(),
		branches: &fakeBranchRepo{exists: true},
		catalog:  &fakeCatalogRepo{exists: true},
		vehicles: &fakeVehicleRepo{owned: true},
		users:    &fakeUserRepo{users: make(map[string]*models.User)},
		intents:  newFakeIntentStore(),
		checkout: &fakeCheckout{},
		notifier: &fakeNotifier{},
	}
	f.svc = &DefaultBookingService{
		Repo:        f.repo,
		Events:      f.events,
		BranchRepo:  f.branches,
		CatalogRepo: f.catalog,
		VehicleRepo: f.vehicles,
		UserRepo:    f.users,
		Intents:     f.intents,
		Checkout:    f.checkout,
		Notifier:    f.notifier,
	}
	return f
}

func validRequest(date string) models.BookingRequest {
	return models.BookingRequest{
		Vehicle:       models.VehicleInput{ID: "veh-1", Name: "Toyota Axio"},
		Service:       "Oil Change",
		Branch:        models.BranchInput{ID: "br-1", Name: "Westlands"},
		Date:          date,
		Description:   "Engine knocking on cold starts",
		CustomerID:    "cust-1",
		CustomerName:  "Jane Wanjiku",
		CustomerEmail: "jane@example.com",
	}
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(models.BookingDateLayout)
}
