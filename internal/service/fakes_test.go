package service

import (
	"context"
	"sort"
	"time"

	"github.com/artoasis/artoasis-backend/internal/model"
)

// In-memory store fakes. They mirror the repository contracts, including
// the (nil, nil) convention for missing rows and the popularity ordering
// of the approved listing.

type fakeUserStore struct {
	users  map[string]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) Create(_ context.Context, u *model.User) error {
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.Email] = &cp
	return nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserStore) ListByRole(_ context.Context, role model.Role) ([]model.User, error) {
	all, _ := f.List(context.Background())
	var out []model.User
	for _, u := range all {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) UpdateRole(_ context.Context, id int64, role model.Role) (int64, error) {
	for _, u := range f.users {
		if u.ID == id {
			u.Role = role
			return 1, nil
		}
	}
	return 0, nil
}

type fakeClassStore struct {
	classes map[int64]*model.Class
	nextID  int64
}

func newFakeClassStore() *fakeClassStore {
	return &fakeClassStore{classes: make(map[int64]*model.Class)}
}

func (f *fakeClassStore) Create(_ context.Context, c *model.Class) error {
	f.nextID++
	c.ID = f.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	f.classes[c.ID] = &cp
	return nil
}

func (f *fakeClassStore) GetByID(_ context.Context, id int64) (*model.Class, error) {
	c, ok := f.classes[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClassStore) List(_ context.Context) ([]model.Class, error) {
	out := make([]model.Class, 0, len(f.classes))
	for _, c := range f.classes {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeClassStore) ListByInstructor(_ context.Context, email string) ([]model.Class, error) {
	all, _ := f.List(context.Background())
	var out []model.Class
	for _, c := range all {
		if c.InstructorEmail == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClassStore) ListApproved(_ context.Context) ([]model.Class, error) {
	all, _ := f.List(context.Background())
	var out []model.Class
	for _, c := range all {
		if c.Status == model.ClassStatusApproved {
			out = append(out, c)
		}
	}
	// Popularity ranking; stable so ties keep insertion order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EnrolledStudents > out[j].EnrolledStudents
	})
	return out, nil
}

func (f *fakeClassStore) UpdateDetails(_ context.Context, id int64, className string, price float64, availableSeats int) (int64, error) {
	c, ok := f.classes[id]
	if !ok {
		return 0, nil
	}
	c.ClassName = className
	c.Price = price
	c.AvailableSeats = availableSeats
	return 1, nil
}

func (f *fakeClassStore) UpdateStatus(_ context.Context, id int64, status model.ClassStatus) (int64, error) {
	c, ok := f.classes[id]
	if !ok {
		return 0, nil
	}
	c.Status = status
	return 1, nil
}

func (f *fakeClassStore) SetFeedback(_ context.Context, id int64, feedback string) (int64, error) {
	c, ok := f.classes[id]
	if !ok {
		return 0, nil
	}
	c.Feedback = feedback
	return 1, nil
}

func (f *fakeClassStore) IncrementEnrollment(_ context.Context, id int64) (int64, error) {
	c, ok := f.classes[id]
	if !ok || c.AvailableSeats <= 0 {
		return 0, nil
	}
	c.AvailableSeats--
	c.EnrolledStudents++
	return 1, nil
}

type fakeSelectionStore struct {
	selections map[int64]*model.Selection
	nextID     int64
}

func newFakeSelectionStore() *fakeSelectionStore {
	return &fakeSelectionStore{selections: make(map[int64]*model.Selection)}
}

func (f *fakeSelectionStore) Create(_ context.Context, s *model.Selection) error {
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	cp := *s
	f.selections[s.ID] = &cp
	return nil
}

func (f *fakeSelectionStore) GetByID(_ context.Context, id int64) (*model.Selection, error) {
	s, ok := f.selections[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSelectionStore) ListByStudent(_ context.Context, email string) ([]model.Selection, error) {
	var out []model.Selection
	for _, s := range f.selections {
		if s.StudentEmail == email {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeSelectionStore) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := f.selections[id]; !ok {
		return 0, nil
	}
	delete(f.selections, id)
	return 1, nil
}

// fakePaymentStore emulates the transactional Record contract by deleting
// matching selections from the shared selection fake.
type fakePaymentStore struct {
	payments   []model.Payment
	selections *fakeSelectionStore
	nextID     int64
}

func newFakePaymentStore(selections *fakeSelectionStore) *fakePaymentStore {
	return &fakePaymentStore{selections: selections}
}

func (f *fakePaymentStore) Record(_ context.Context, p *model.Payment) (int64, error) {
	f.nextID++
	p.ID = f.nextID
	p.PaidAt = time.Now()
	f.payments = append(f.payments, *p)

	var deleted int64
	for id, s := range f.selections.selections {
		if s.StudentEmail == p.StudentEmail && s.ClassID == p.ClassID {
			delete(f.selections.selections, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakePaymentStore) ListByStudent(_ context.Context, email string) ([]model.Payment, error) {
	var out []model.Payment
	for i := len(f.payments) - 1; i >= 0; i-- {
		if f.payments[i].StudentEmail == email {
			out = append(out, f.payments[i])
		}
	}
	return out, nil
}

// fakeGateway captures the last intent request.
type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	secret       string
	err          error
}

func (f *fakeGateway) CreateIntent(_ context.Context, amountCents int64, currency string) (string, error) {
	f.lastAmount = amountCents
	f.lastCurrency = currency
	if f.err != nil {
		return "", f.err
	}
	return f.secret, nil
}
