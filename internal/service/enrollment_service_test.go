package service

import (
	"context"
	"errors"
	"testing"

	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/rs/zerolog"
)

type enrollmentFixture struct {
	classes    *fakeClassStore
	selections *fakeSelectionStore
	payments   *fakePaymentStore
	gateway    *fakeGateway
	svc        *EnrollmentService
	classSvc   *ClassService
}

func newEnrollmentFixture() *enrollmentFixture {
	classes := newFakeClassStore()
	selections := newFakeSelectionStore()
	payments := newFakePaymentStore(selections)
	gateway := &fakeGateway{secret: "pi_test_secret"}

	return &enrollmentFixture{
		classes:    classes,
		selections: selections,
		payments:   payments,
		gateway:    gateway,
		svc:        NewEnrollmentService(selections, payments, classes, gateway, "usd", zerolog.Nop()),
		classSvc:   NewClassService(classes, deadRedis(), zerolog.Nop()),
	}
}

func TestSelect_SnapshotsClass(t *testing.T) {
	fx := newEnrollmentFixture()
	ctx := context.Background()

	c := seedClass(t, fx.classes, model.Class{
		ClassName:       "Oil Painting",
		Image:           "https://img.example.com/oil.jpg",
		InstructorEmail: "ira@example.com",
		Price:           75.50,
		Status:          model.ClassStatusApproved,
		AvailableSeats:  10,
	})

	sel, err := fx.svc.Select(ctx, "student@example.com", c.ID)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.ClassID != c.ID || sel.ClassName != "Oil Painting" || sel.Price != 75.50 {
		t.Errorf("selection did not snapshot the class: %+v", sel)
	}
	if sel.StudentEmail != "student@example.com" {
		t.Errorf("student = %q", sel.StudentEmail)
	}

	if _, err := fx.svc.Select(ctx, "student@example.com", 999); !errors.Is(err, ErrClassNotFound) {
		t.Errorf("unknown class = %v, want ErrClassNotFound", err)
	}
}

func TestRemoveSelection_Ownership(t *testing.T) {
	fx := newEnrollmentFixture()
	ctx := context.Background()

	c := seedClass(t, fx.classes, model.Class{ClassName: "Ceramics", Status: model.ClassStatusApproved, AvailableSeats: 5})
	sel, err := fx.svc.Select(ctx, "owner@example.com", c.ID)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	if err := fx.svc.RemoveSelection(ctx, sel.ID, "stranger@example.com", false); !errors.Is(err, ErrNotSelectionOwner) {
		t.Fatalf("stranger delete = %v, want ErrNotSelectionOwner", err)
	}
	if err := fx.svc.RemoveSelection(ctx, sel.ID, "owner@example.com", false); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := fx.svc.RemoveSelection(ctx, sel.ID, "owner@example.com", false); !errors.Is(err, ErrSelectionNotFound) {
		t.Errorf("repeat delete = %v, want ErrSelectionNotFound", err)
	}

	// Admins may clean up anyone's selection.
	sel2, _ := fx.svc.Select(ctx, "owner@example.com", c.ID)
	if err := fx.svc.RemoveSelection(ctx, sel2.ID, "admin@example.com", true); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}

func TestInitiatePayment_ConvertsToCents(t *testing.T) {
	fx := newEnrollmentFixture()

	secret, err := fx.svc.InitiatePayment(context.Background(), 19.99)
	if err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}
	if secret != "pi_test_secret" {
		t.Errorf("secret = %q", secret)
	}
	if fx.gateway.lastCurrency != "usd" {
		t.Errorf("currency = %q, want usd", fx.gateway.lastCurrency)
	}

	// Several of these prices have float products a hair under the true
	// cent value; truncating instead of rounding would lose a cent.
	tests := []struct {
		price float64
		cents int64
	}{
		{19.99, 1999},
		{1.15, 115},
		{29.09, 2909},
		{0.07, 7},
		{45.50, 4550},
		{100, 10000},
	}
	for _, tt := range tests {
		if _, err := fx.svc.InitiatePayment(context.Background(), tt.price); err != nil {
			t.Fatalf("InitiatePayment(%v): %v", tt.price, err)
		}
		if fx.gateway.lastAmount != tt.cents {
			t.Errorf("price %v = %d cents, want %d", tt.price, fx.gateway.lastAmount, tt.cents)
		}
	}
}

func TestInitiatePayment_GatewayFailure(t *testing.T) {
	fx := newEnrollmentFixture()
	fx.gateway.err = errors.New("processor unreachable")

	if _, err := fx.svc.InitiatePayment(context.Background(), 10); err == nil {
		t.Fatal("expected gateway error to propagate")
	}
}

func TestCompletePayment_ClearsSelections(t *testing.T) {
	fx := newEnrollmentFixture()
	ctx := context.Background()

	c := seedClass(t, fx.classes, model.Class{ClassName: "Printmaking", Status: model.ClassStatusApproved, AvailableSeats: 5, Price: 40})
	other := seedClass(t, fx.classes, model.Class{ClassName: "Weaving", Status: model.ClassStatusApproved, AvailableSeats: 5, Price: 25})

	// Duplicate selections of the same class plus one for another class.
	fx.svc.Select(ctx, "student@example.com", c.ID)
	fx.svc.Select(ctx, "student@example.com", c.ID)
	fx.svc.Select(ctx, "student@example.com", other.ID)

	p, deleted, err := fx.svc.CompletePayment(ctx, "student@example.com", &model.RecordPaymentRequest{
		ClassID:       c.ID,
		ClassName:     c.ClassName,
		Amount:        40,
		TransactionID: "txn_123",
	})
	if err != nil {
		t.Fatalf("CompletePayment: %v", err)
	}
	if deleted != 2 {
		t.Errorf("cleared %d selections, want 2", deleted)
	}
	if p.Currency != "usd" || p.StudentEmail != "student@example.com" {
		t.Errorf("payment fields: %+v", p)
	}

	remaining, _ := fx.svc.ListSelections(ctx, "student@example.com")
	if len(remaining) != 1 || remaining[0].ClassID != other.ID {
		t.Errorf("remaining selections = %+v, want only the other class", remaining)
	}

	history, err := fx.svc.ListPayments(ctx, "student@example.com")
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(history) != 1 || history[0].TransactionID != "txn_123" {
		t.Errorf("payment history = %+v", history)
	}
}

// The full student journey: select an approved class, pay for it, then claim
// the seat. Afterwards the cart is empty, a payment exists, and the seat
// counters moved together.
func TestEnrollmentJourney(t *testing.T) {
	fx := newEnrollmentFixture()
	ctx := context.Background()

	c := seedClass(t, fx.classes, model.Class{ClassName: "Mosaics", Status: model.ClassStatusApproved, AvailableSeats: 3, Price: 60})

	sel, err := fx.svc.Select(ctx, "student@example.com", c.ID)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}

	if _, err := fx.svc.InitiatePayment(ctx, sel.Price); err != nil {
		t.Fatalf("InitiatePayment: %v", err)
	}

	_, deleted, err := fx.svc.CompletePayment(ctx, "student@example.com", &model.RecordPaymentRequest{
		ClassID:       c.ID,
		ClassName:     c.ClassName,
		Amount:        sel.Price,
		TransactionID: "txn_journey",
	})
	if err != nil {
		t.Fatalf("CompletePayment: %v", err)
	}
	if deleted != 1 {
		t.Errorf("cleared %d selections, want 1", deleted)
	}

	if err := fx.classSvc.IncrementEnrollment(ctx, c.ID); err != nil {
		t.Fatalf("IncrementEnrollment: %v", err)
	}

	got := fx.classes.classes[c.ID]
	if got.AvailableSeats != 2 || got.EnrolledStudents != 1 {
		t.Errorf("seats/enrolled = %d/%d, want 2/1", got.AvailableSeats, got.EnrolledStudents)
	}
	cart, _ := fx.svc.ListSelections(ctx, "student@example.com")
	if len(cart) != 0 {
		t.Errorf("cart not empty after payment: %+v", cart)
	}
}
