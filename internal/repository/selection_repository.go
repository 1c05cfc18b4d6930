package repository

import (
	"context"
	"errors"

	"github.com/artoasis/artoasis-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SelectionRepository handles pending class selection data access.
type SelectionRepository struct {
	pool *pgxpool.Pool
}

// NewSelectionRepository creates a new SelectionRepository.
func NewSelectionRepository(pool *pgxpool.Pool) *SelectionRepository {
	return &SelectionRepository{pool: pool}
}

// Create inserts a new selection.
func (r *SelectionRepository) Create(ctx context.Context, s *model.Selection) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO selections (student_email, class_id, class_name, image, instructor_email, price)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		s.StudentEmail, s.ClassID, s.ClassName, s.Image, s.InstructorEmail, s.Price,
	).Scan(&s.ID, &s.CreatedAt)
}

// GetByID retrieves a selection by ID. Returns (nil, nil) when none exists.
func (r *SelectionRepository) GetByID(ctx context.Context, id int64) (*model.Selection, error) {
	s := &model.Selection{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, student_email, class_id, class_name, image, instructor_email, price, created_at
		 FROM selections WHERE id = $1`, id,
	).Scan(&s.ID, &s.StudentEmail, &s.ClassID, &s.ClassName, &s.Image, &s.InstructorEmail, &s.Price, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListByStudent retrieves a student's pending selections.
func (r *SelectionRepository) ListByStudent(ctx context.Context, email string) ([]model.Selection, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, student_email, class_id, class_name, image, instructor_email, price, created_at
		 FROM selections WHERE student_email = $1 ORDER BY id`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var selections []model.Selection
	for rows.Next() {
		var s model.Selection
		if err := rows.Scan(&s.ID, &s.StudentEmail, &s.ClassID, &s.ClassName, &s.Image,
			&s.InstructorEmail, &s.Price, &s.CreatedAt); err != nil {
			return nil, err
		}
		selections = append(selections, s)
	}
	return selections, rows.Err()
}

// Delete removes a selection by ID. Returns the number of rows deleted.
func (r *SelectionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM selections WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
