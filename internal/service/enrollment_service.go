package service

import (
	"context"
	"errors"
	"math"

	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/rs/zerolog"
)

// Common enrollment errors.
var (
	ErrSelectionNotFound = errors.New("selection not found")
	ErrNotSelectionOwner = errors.New("not the selection owner")
)

// SelectionStore is the data access contract for pending selections.
type SelectionStore interface {
	Create(ctx context.Context, s *model.Selection) error
	GetByID(ctx context.Context, id int64) (*model.Selection, error)
	ListByStudent(ctx context.Context, email string) ([]model.Selection, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// PaymentStore is the data access contract for payment records. Record
// must insert the payment and clear matching selections atomically.
type PaymentStore interface {
	Record(ctx context.Context, p *model.Payment) (int64, error)
	ListByStudent(ctx context.Context, email string) ([]model.Payment, error)
}

// PaymentGateway is the external payment processor boundary.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (clientSecret string, err error)
}

// EnrollmentService handles the select → pay → enroll flow. Seat counters
// are NOT touched here; the client drives the separate updateCount call, so
// seat accounting is eventually consistent with payment by convention.
type EnrollmentService struct {
	selections SelectionStore
	payments   PaymentStore
	classes    ClassStore
	gateway    PaymentGateway
	currency   string
	log        zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(
	selections SelectionStore,
	payments PaymentStore,
	classes ClassStore,
	gateway PaymentGateway,
	currency string,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		selections: selections,
		payments:   payments,
		classes:    classes,
		gateway:    gateway,
		currency:   currency,
		log:        log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Select records a pending selection of a class. Seat availability is not
// checked; a selection is a soft reservation and guarantees nothing.
func (s *EnrollmentService) Select(ctx context.Context, studentEmail string, classID int64) (*model.Selection, error) {
	c, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClassNotFound
	}

	sel := &model.Selection{
		StudentEmail:    studentEmail,
		ClassID:         c.ID,
		ClassName:       c.ClassName,
		Image:           c.Image,
		InstructorEmail: c.InstructorEmail,
		Price:           c.Price,
	}
	if err := s.selections.Create(ctx, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// ListSelections retrieves a student's pending selections.
func (s *EnrollmentService) ListSelections(ctx context.Context, email string) ([]model.Selection, error) {
	return s.selections.ListByStudent(ctx, email)
}

// RemoveSelection deletes a selection. Only the owning student or an admin
// may remove it; holding the id alone is not enough.
func (s *EnrollmentService) RemoveSelection(ctx context.Context, id int64, requesterEmail string, isAdmin bool) error {
	sel, err := s.selections.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sel == nil {
		return ErrSelectionNotFound
	}
	if !isAdmin && sel.StudentEmail != requesterEmail {
		return ErrNotSelectionOwner
	}

	_, err = s.selections.Delete(ctx, id)
	return err
}

// InitiatePayment asks the processor for a payment intent and returns its
// client secret. The amount is what the client reported; it is not checked
// against the class's recorded price.
func (s *EnrollmentService) InitiatePayment(ctx context.Context, price float64) (string, error) {
	// Round to cents: the float product of prices like 19.99 lands just
	// under the true value and truncation would drop a cent.
	amountCents := int64(math.Round(price * 100))
	return s.gateway.CreateIntent(ctx, amountCents, s.currency)
}

// CompletePayment records the payment and clears every selection the
// student holds for that class, atomically. Returns the payment and the
// number of selections removed.
func (s *EnrollmentService) CompletePayment(ctx context.Context, studentEmail string, req *model.RecordPaymentRequest) (*model.Payment, int64, error) {
	p := &model.Payment{
		StudentEmail:  studentEmail,
		ClassID:       req.ClassID,
		ClassName:     req.ClassName,
		Amount:        req.Amount,
		Currency:      s.currency,
		TransactionID: req.TransactionID,
	}

	deleted, err := s.payments.Record(ctx, p)
	if err != nil {
		return nil, 0, err
	}

	s.log.Info().
		Str("student", studentEmail).
		Int64("class_id", req.ClassID).
		Int64("selections_cleared", deleted).
		Msg("Payment recorded")

	return p, deleted, nil
}

// ListPayments retrieves a student's payment history.
func (s *EnrollmentService) ListPayments(ctx context.Context, email string) ([]model.Payment, error) {
	return s.payments.ListByStudent(ctx, email)
}
