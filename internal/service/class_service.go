package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/artoasis/artoasis-backend/internal/config"
	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Common class errors.
var (
	ErrClassNotFound    = errors.New("class not found")
	ErrNoSeatsAvailable = errors.New("no seats available")
	ErrNotClassOwner    = errors.New("not the class owner")
)

// approvedCacheTTL bounds staleness of the public listing between
// invalidations.
const approvedCacheTTL = 30 * time.Second

// ClassStore is the data access contract the class service consumes.
type ClassStore interface {
	Create(ctx context.Context, c *model.Class) error
	GetByID(ctx context.Context, id int64) (*model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
	ListByInstructor(ctx context.Context, email string) ([]model.Class, error)
	ListApproved(ctx context.Context) ([]model.Class, error)
	UpdateDetails(ctx context.Context, id int64, className string, price float64, availableSeats int) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status model.ClassStatus) (int64, error)
	SetFeedback(ctx context.Context, id int64, feedback string) (int64, error)
	IncrementEnrollment(ctx context.Context, id int64) (int64, error)
}

// ClassService handles the class lifecycle: creation, approval workflow,
// detail edits, seat accounting, and the ranked public listing. Redis is a
// read cache and event bus only; every failure there degrades to the store.
type ClassService struct {
	store ClassStore
	rdb   *redis.Client
	log   zerolog.Logger
}

// NewClassService creates a new ClassService.
func NewClassService(store ClassStore, rdb *redis.Client, log zerolog.Logger) *ClassService {
	return &ClassService{
		store: store,
		rdb:   rdb,
		log:   log.With().Str("component", "class_service").Logger(),
	}
}

// Create adds a new class owned by the given instructor. Classes start
// pending with nobody enrolled.
func (s *ClassService) Create(ctx context.Context, instructor *model.User, req *model.CreateClassRequest) (*model.Class, error) {
	c := &model.Class{
		ClassName:        req.ClassName,
		Image:            req.Image,
		InstructorName:   instructor.Name,
		InstructorEmail:  instructor.Email,
		Price:            req.Price,
		AvailableSeats:   req.AvailableSeats,
		EnrolledStudents: 0,
		Status:           model.ClassStatusPending,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "created", c.ID, c.ClassName)
	return c, nil
}

// GetByID retrieves a single class.
func (s *ClassService) GetByID(ctx context.Context, id int64) (*model.Class, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClassNotFound
	}
	return c, nil
}

// List retrieves all classes (admin review view).
func (s *ClassService) List(ctx context.Context) ([]model.Class, error) {
	return s.store.List(ctx)
}

// ListByInstructor retrieves an instructor's own classes.
func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]model.Class, error) {
	return s.store.ListByInstructor(ctx, email)
}

// Approve moves a class to approved. Idempotent.
func (s *ClassService) Approve(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.ClassStatusApproved, "approved")
}

// Deny moves a class to denied. Idempotent; also overrides a prior
// approval (last write wins).
func (s *ClassService) Deny(ctx context.Context, id int64) error {
	return s.setStatus(ctx, id, model.ClassStatusDenied, "denied")
}

func (s *ClassService) setStatus(ctx context.Context, id int64, status model.ClassStatus, event string) error {
	rows, err := s.store.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClassNotFound
	}

	s.invalidateApprovedCache(ctx)
	s.publishEvent(ctx, event, id, "")
	return nil
}

// UpdateDetails edits name, price and seat count. Only the owning
// instructor or an admin may edit; status and counters are untouched.
func (s *ClassService) UpdateDetails(ctx context.Context, id int64, req *model.UpdateClassRequest, requesterEmail string, isAdmin bool) (*model.Class, error) {
	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrClassNotFound
	}
	if !isAdmin && c.InstructorEmail != requesterEmail {
		return nil, ErrNotClassOwner
	}

	if _, err := s.store.UpdateDetails(ctx, id, req.ClassName, req.Price, req.AvailableSeats); err != nil {
		return nil, err
	}

	s.invalidateApprovedCache(ctx)
	return s.store.GetByID(ctx, id)
}

// AttachFeedback overwrites the review feedback on a class.
func (s *ClassService) AttachFeedback(ctx context.Context, id int64, feedback string) error {
	rows, err := s.store.SetFeedback(ctx, id, feedback)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClassNotFound
	}
	return nil
}

// IncrementEnrollment claims one seat: available_seats goes down, enrolled
// up, in a single conditional store update. Fails with ErrNoSeatsAvailable
// when the class is sold out rather than driving the counter negative.
func (s *ClassService) IncrementEnrollment(ctx context.Context, id int64) error {
	rows, err := s.store.IncrementEnrollment(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		c, err := s.store.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return ErrClassNotFound
		}
		return ErrNoSeatsAvailable
	}

	s.invalidateApprovedCache(ctx)
	s.publishEvent(ctx, "enrolled", id, "")
	return nil
}

// ListApproved returns the public listing: approved classes ranked by
// enrollment, ties in insertion order. Served from the Redis cache when
// warm; any cache failure falls through to the store.
func (s *ClassService) ListApproved(ctx context.Context) ([]model.Class, error) {
	key := config.CacheKey.ApprovedClassesKey()

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		var classes []model.Class
		if jsonErr := json.Unmarshal([]byte(cached), &classes); jsonErr == nil {
			return classes, nil
		}
		s.log.Warn().Str("key", key).Msg("Corrupt cache entry, refetching")
	} else if !errors.Is(err, redis.Nil) {
		s.log.Debug().Err(err).Msg("Approved-class cache read failed")
	}

	classes, err := s.store.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(classes); jsonErr == nil {
		if setErr := s.rdb.Set(ctx, key, payload, approvedCacheTTL).Err(); setErr != nil {
			s.log.Debug().Err(setErr).Msg("Approved-class cache write failed")
		}
	}
	return classes, nil
}

func (s *ClassService) invalidateApprovedCache(ctx context.Context) {
	if err := s.rdb.Del(ctx, config.CacheKey.ApprovedClassesKey()).Err(); err != nil {
		s.log.Debug().Err(err).Msg("Approved-class cache invalidation failed")
	}
}

func (s *ClassService) publishEvent(ctx context.Context, eventType string, classID int64, className string) {
	payload, err := json.Marshal(model.ClassEvent{
		Type:      eventType,
		ClassID:   classID,
		ClassName: className,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, config.CacheKey.ClassEventsChannel(), payload).Err(); err != nil {
		s.log.Debug().Err(err).Str("event", eventType).Msg("Class event publish failed")
	}
}
