package repository

import (
	"context"
	"errors"

	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClassRepository handles class data access.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classColumns = `id, class_name, image, instructor_name, instructor_email,
	price, available_seats, enrolled_students, status, feedback, created_at, updated_at`

// Create inserts a new class.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO classes (class_name, image, instructor_name, instructor_email,
		                      price, available_seats, enrolled_students, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		c.ClassName, c.Image, c.InstructorName, c.InstructorEmail,
		c.Price, c.AvailableSeats, c.EnrolledStudents, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// GetByID retrieves a class by its ID. Returns (nil, nil) when no class exists.
func (r *ClassRepository) GetByID(ctx context.Context, id int64) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+classColumns+` FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.ClassName, &c.Image, &c.InstructorName, &c.InstructorEmail,
		&c.Price, &c.AvailableSeats, &c.EnrolledStudents, &c.Status, &c.Feedback,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves all classes regardless of status.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

// ListByInstructor retrieves all classes created by an instructor.
func (r *ClassRepository) ListByInstructor(ctx context.Context, email string) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes WHERE instructor_email = $1 ORDER BY id`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

// ListApproved retrieves approved classes ranked by popularity. Ties keep
// insertion order.
func (r *ClassRepository) ListApproved(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+` FROM classes
		 WHERE status = $1
		 ORDER BY enrolled_students DESC, id`, model.ClassStatusApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanClasses(rows)
}

// UpdateDetails modifies the instructor-editable fields of a class. Status
// and enrollment counters are untouched.
func (r *ClassRepository) UpdateDetails(ctx context.Context, id int64, className string, price float64, availableSeats int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes
		 SET class_name = $1, price = $2, available_seats = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		className, price, availableSeats, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// UpdateStatus sets the approval status. The write is unconditional so
// re-applying a transition stays idempotent (last write wins).
func (r *ClassRepository) UpdateStatus(ctx context.Context, id int64, status model.ClassStatus) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		status, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SetFeedback overwrites the review feedback text.
func (r *ClassRepository) SetFeedback(ctx context.Context, id int64, feedback string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes SET feedback = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		feedback, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// IncrementEnrollment atomically moves one seat from available to enrolled.
// The available_seats guard makes concurrent payments for the last seat a
// conflict instead of a lost update; zero rows means sold out or missing.
func (r *ClassRepository) IncrementEnrollment(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classes
		 SET available_seats = available_seats - 1,
		     enrolled_students = enrolled_students + 1,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $1 AND available_seats > 0`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanClasses(rows pgx.Rows) ([]model.Class, error) {
	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.ClassName, &c.Image, &c.InstructorName, &c.InstructorEmail,
			&c.Price, &c.AvailableSeats, &c.EnrolledStudents, &c.Status, &c.Feedback,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
