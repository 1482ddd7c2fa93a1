package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/dberrors"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

var resourceColumns = []string{
	"id", "title", "content", "category", "subject", "stream", "class",
	"image_url", "pdf_url", "view_pdf_url", "is_coming_soon", "visibility",
	"created_at", "updated_at",
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (*models.Resource, error) {
	res := &models.Resource{}
	err := row.Scan(
		&res.ID, &res.Title, &res.Content, &res.Category, &res.Subject, &res.Stream, &res.Class,
		&res.ImageURL, &res.PdfURL, &res.ViewPdfURL, &res.IsComingSoon, &res.Visibility,
		&res.CreatedAt, &res.UpdatedAt,
	)
	return res, err
}

// ResourceRepository handles study resource database operations
type ResourceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListAll returns every resource, newest first. Visibility is decided by the caller.
func (r *ResourceRepository) ListAll(ctx context.Context) ([]models.Resource, error) {
	query, args, err := r.sb.Select(resourceColumns...).
		From("resources").
		OrderBy("created_at DESC", "id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list resources SQL")
		return nil, fmt.Errorf("failed to build list resources query: %w", err)
	}
	return r.query(ctx, query, args...)
}

// ListByIDs returns the resources whose ids are given, in no particular order.
// Unknown ids are ignored.
func (r *ResourceRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Resource, error) {
	if len(ids) == 0 {
		return []models.Resource{}, nil
	}
	query, args, err := r.sb.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list resources by ids SQL")
		return nil, fmt.Errorf("failed to build list resources by ids query: %w", err)
	}
	return r.query(ctx, query, args...)
}

func (r *ResourceRepository) query(ctx context.Context, query string, args ...any) ([]models.Resource, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing resources query")
		return nil, fmt.Errorf("error querying resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning resource row")
			return nil, fmt.Errorf("error scanning resource row: %w", err)
		}
		resources = append(resources, *res)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating resource rows")
		return nil, fmt.Errorf("error iterating resource rows: %w", err)
	}
	return resources, nil
}

// GetByID retrieves a resource by its slug
func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	query, args, err := r.sb.Select(resourceColumns...).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get resource SQL")
		return nil, fmt.Errorf("failed to build get resource query: %w", err)
	}

	res, err := scanResource(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudyResourceNotFound
		}
		logger.Error().Err(err).Str("resourceID", id).Msg("Error scanning resource row")
		return nil, fmt.Errorf("error getting resource by ID: %w", err)
	}
	return res, nil
}

// Create inserts a resource. The id must already be set to the title slug.
func (r *ResourceRepository) Create(ctx context.Context, res *models.Resource) error {
	query, args, err := r.sb.Insert("resources").
		Columns("id", "title", "content", "category", "subject", "stream", "class",
			"image_url", "pdf_url", "view_pdf_url", "is_coming_soon", "visibility").
		Values(res.ID, res.Title, res.Content, res.Category, res.Subject, res.Stream, res.Class,
			res.ImageURL, res.PdfURL, res.ViewPdfURL, res.IsComingSoon, res.Visibility).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create resource SQL")
		return fmt.Errorf("failed to build create resource query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "resources_pkey") {
			return apperrors.ErrResourceSlugExists
		}
		logger.Error().Err(err).Str("resourceID", res.ID).Msg("Error executing create resource query")
		return fmt.Errorf("error creating resource: %w", err)
	}
	return nil
}

// Update overwrites every editable field of a resource. The id is immutable.
func (r *ResourceRepository) Update(ctx context.Context, res *models.Resource) error {
	query, args, err := r.sb.Update("resources").
		SetMap(map[string]interface{}{
			"title":          res.Title,
			"content":        res.Content,
			"category":       res.Category,
			"subject":        res.Subject,
			"stream":         res.Stream,
			"class":          res.Class,
			"image_url":      res.ImageURL,
			"pdf_url":        res.PdfURL,
			"view_pdf_url":   res.ViewPdfURL,
			"is_coming_soon": res.IsComingSoon,
			"visibility":     res.Visibility,
			"updated_at":     squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": res.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update resource SQL")
		return fmt.Errorf("failed to build update resource query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrStudyResourceNotFound
		}
		logger.Error().Err(err).Str("resourceID", res.ID).Msg("Error executing update resource query")
		return fmt.Errorf("error updating resource: %w", err)
	}
	return nil
}

// Delete removes a resource. Watchlist rows go with it through the foreign key.
func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete resource SQL")
		return fmt.Errorf("failed to build delete resource query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("resourceID", id).Msg("Error executing delete resource query")
		return fmt.Errorf("error deleting resource: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudyResourceNotFound
	}
	return nil
}
