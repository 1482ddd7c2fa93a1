package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

var teacherColumns = []string{"id", "name", "subject", "qualification", "experience", "image_url", "created_at", "updated_at"}

func scanTeacher(row rowScanner) (*models.Teacher, error) {
	t := &models.Teacher{}
	err := row.Scan(&t.ID, &t.Name, &t.Subject, &t.Qualification, &t.Experience, &t.ImageURL, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// TeacherRepository handles teacher profile database operations
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List returns all teachers ordered by name
func (r *TeacherRepository) List(ctx context.Context) ([]models.Teacher, error) {
	query, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list teachers SQL")
		return nil, fmt.Errorf("failed to build list teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list teachers query")
		return nil, fmt.Errorf("error querying teachers: %w", err)
	}
	defer rows.Close()

	teachers := []models.Teacher{}
	for rows.Next() {
		t, err := scanTeacher(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning teacher row")
			return nil, fmt.Errorf("error scanning teacher row: %w", err)
		}
		teachers = append(teachers, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating teacher rows: %w", err)
	}
	return teachers, nil
}

// GetByID retrieves a teacher by ID
func (r *TeacherRepository) GetByID(ctx context.Context, id string) (*models.Teacher, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrTeacherNotFound
	}

	query, args, err := r.sb.Select(teacherColumns...).
		From("teachers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher SQL")
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	t, err := scanTeacher(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Str("teacherID", id).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error getting teacher: %w", err)
	}
	return t, nil
}

// Create inserts a teacher
func (r *TeacherRepository) Create(ctx context.Context, t *models.Teacher) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query, args, err := r.sb.Insert("teachers").
		Columns("id", "name", "subject", "qualification", "experience", "image_url").
		Values(t.ID, t.Name, t.Subject, t.Qualification, t.Experience, t.ImageURL).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher SQL")
		return fmt.Errorf("failed to build create teacher query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create teacher query")
		return fmt.Errorf("error creating teacher: %w", err)
	}
	return nil
}

// Update overwrites a teacher's profile
func (r *TeacherRepository) Update(ctx context.Context, t *models.Teacher) error {
	if _, err := uuid.Parse(t.ID); err != nil {
		return apperrors.ErrTeacherNotFound
	}

	query, args, err := r.sb.Update("teachers").
		SetMap(map[string]interface{}{
			"name":          t.Name,
			"subject":       t.Subject,
			"qualification": t.Qualification,
			"experience":    t.Experience,
			"image_url":     t.ImageURL,
			"updated_at":    squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": t.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update teacher SQL")
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Str("teacherID", t.ID).Msg("Error executing update teacher query")
		return fmt.Errorf("error updating teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher
func (r *TeacherRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrTeacherNotFound
	}

	query, args, err := r.sb.Delete("teachers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete teacher SQL")
		return fmt.Errorf("failed to build delete teacher query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("teacherID", id).Msg("Error executing delete teacher query")
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}
	return nil
}
