package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/dberrors"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

var formColumns = []string{
	"id", "title", "description", "teacher_name", "subject", "class_name",
	"year_from", "year_to", "fee", "is_open", "created_at", "updated_at",
}

var applicationColumns = []string{
	"id", "form_id", "student_name", "email", "phone", "parent_name", "parent_phone",
	"address", "previous_school", "status", "payment", "created_at", "updated_at",
}

func scanForm(row rowScanner) (*models.AdmissionForm, error) {
	f := &models.AdmissionForm{}
	err := row.Scan(&f.ID, &f.Title, &f.Description, &f.TeacherName, &f.Subject, &f.ClassName,
		&f.YearFrom, &f.YearTo, &f.Fee, &f.IsOpen, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

func scanApplication(row rowScanner) (*models.AdmissionApplication, error) {
	a := &models.AdmissionApplication{}
	var payment []byte
	err := row.Scan(&a.ID, &a.FormID, &a.StudentName, &a.Email, &a.Phone, &a.ParentName, &a.ParentPhone,
		&a.Address, &a.PreviousSchool, &a.Status, &payment, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(payment) > 0 && string(payment) != "null" {
		a.Payment = &models.PaymentDetails{}
		if err := json.Unmarshal(payment, a.Payment); err != nil {
			return nil, fmt.Errorf("decoding payment details: %w", err)
		}
	}
	return a, nil
}

// AdmissionRepository handles admission forms and their applications
type AdmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAdmissionRepository creates a new AdmissionRepository
func NewAdmissionRepository(db *pgxpool.Pool) *AdmissionRepository {
	return &AdmissionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListForms returns forms newest first, optionally only those accepting applications.
func (r *AdmissionRepository) ListForms(ctx context.Context, openOnly bool) ([]models.AdmissionForm, error) {
	builder := r.sb.Select(formColumns...).From("admission_forms").OrderBy("created_at DESC")
	if openOnly {
		builder = builder.Where(squirrel.Eq{"is_open": true})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list forms SQL")
		return nil, fmt.Errorf("failed to build list forms query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list forms query")
		return nil, fmt.Errorf("error querying admission forms: %w", err)
	}
	defer rows.Close()

	forms := []models.AdmissionForm{}
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning admission form row")
			return nil, fmt.Errorf("error scanning admission form row: %w", err)
		}
		forms = append(forms, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating admission form rows: %w", err)
	}
	return forms, nil
}

// GetForm retrieves a form by ID
func (r *AdmissionRepository) GetForm(ctx context.Context, id string) (*models.AdmissionForm, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrAdmissionFormNotFound
	}

	query, args, err := r.sb.Select(formColumns...).From("admission_forms").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get form SQL")
		return nil, fmt.Errorf("failed to build get form query: %w", err)
	}

	f, err := scanForm(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAdmissionFormNotFound
		}
		logger.Error().Err(err).Str("formID", id).Msg("Error scanning admission form row")
		return nil, fmt.Errorf("error getting admission form: %w", err)
	}
	return f, nil
}

// CreateForm inserts a form
func (r *AdmissionRepository) CreateForm(ctx context.Context, f *models.AdmissionForm) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}

	query, args, err := r.sb.Insert("admission_forms").
		Columns("id", "title", "description", "teacher_name", "subject", "class_name", "year_from", "year_to", "fee", "is_open").
		Values(f.ID, f.Title, f.Description, f.TeacherName, f.Subject, f.ClassName, f.YearFrom, f.YearTo, f.Fee, f.IsOpen).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create form SQL")
		return fmt.Errorf("failed to build create form query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&f.CreatedAt, &f.UpdatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create form query")
		return fmt.Errorf("error creating admission form: %w", err)
	}
	return nil
}

// UpdateForm overwrites a form
func (r *AdmissionRepository) UpdateForm(ctx context.Context, f *models.AdmissionForm) error {
	if _, err := uuid.Parse(f.ID); err != nil {
		return apperrors.ErrAdmissionFormNotFound
	}

	query, args, err := r.sb.Update("admission_forms").
		SetMap(map[string]interface{}{
			"title":        f.Title,
			"description":  f.Description,
			"teacher_name": f.TeacherName,
			"subject":      f.Subject,
			"class_name":   f.ClassName,
			"year_from":    f.YearFrom,
			"year_to":      f.YearTo,
			"fee":          f.Fee,
			"is_open":      f.IsOpen,
			"updated_at":   squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": f.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update form SQL")
		return fmt.Errorf("failed to build update form query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&f.CreatedAt, &f.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrAdmissionFormNotFound
		}
		logger.Error().Err(err).Str("formID", f.ID).Msg("Error executing update form query")
		return fmt.Errorf("error updating admission form: %w", err)
	}
	return nil
}

// DeleteForm removes a form together with its applications
func (r *AdmissionRepository) DeleteForm(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrAdmissionFormNotFound
	}

	query, args, err := r.sb.Delete("admission_forms").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete form SQL")
		return fmt.Errorf("failed to build delete form query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("formID", id).Msg("Error executing delete form query")
		return fmt.Errorf("error deleting admission form: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAdmissionFormNotFound
	}
	return nil
}

// CreateApplication inserts an application. One email may apply once per form.
func (r *AdmissionRepository) CreateApplication(ctx context.Context, a *models.AdmissionApplication) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.ApplicationPending
	}

	query, args, err := r.sb.Insert("admission_applications").
		Columns("id", "form_id", "student_name", "email", "phone", "parent_name", "parent_phone",
			"address", "previous_school", "status").
		Values(a.ID, a.FormID, a.StudentName, a.Email, a.Phone, a.ParentName, a.ParentPhone,
			a.Address, a.PreviousSchool, a.Status).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, "admission_applications_form_email_key"):
			return apperrors.ErrApplicationAlreadyExist
		case dberrors.IsForeignKeyError(err):
			return apperrors.ErrAdmissionFormNotFound
		}
		logger.Error().Err(err).Str("formID", a.FormID).Msg("Error executing create application query")
		return fmt.Errorf("error creating application: %w", err)
	}
	return nil
}

// GetApplication retrieves an application by ID
func (r *AdmissionRepository) GetApplication(ctx context.Context, id string) (*models.AdmissionApplication, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrApplicationNotFound
	}

	query, args, err := r.sb.Select(applicationColumns...).From("admission_applications").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get application SQL")
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	a, err := scanApplication(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Str("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application: %w", err)
	}
	return a, nil
}

// ListApplications returns a form's applications, newest first
func (r *AdmissionRepository) ListApplications(ctx context.Context, formID string) ([]models.AdmissionApplication, error) {
	query, args, err := r.sb.Select(applicationColumns...).
		From("admission_applications").
		Where(squirrel.Eq{"form_id": formID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications SQL")
		return nil, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Str("formID", formID).Msg("Error executing list applications query")
		return nil, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	apps := []models.AdmissionApplication{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning application row")
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		apps = append(apps, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}
	return apps, nil
}

// UpdateStatus sets an application's review status
func (r *AdmissionRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.AdmissionApplication, error) {
	return r.updateApplication(ctx, id, map[string]interface{}{"status": status})
}

// SetPayment attaches payment details read from a screenshot
func (r *AdmissionRepository) SetPayment(ctx context.Context, id string, payment *models.PaymentDetails) (*models.AdmissionApplication, error) {
	raw, err := json.Marshal(payment)
	if err != nil {
		return nil, fmt.Errorf("encoding payment details: %w", err)
	}
	return r.updateApplication(ctx, id, map[string]interface{}{"payment": raw})
}

func (r *AdmissionRepository) updateApplication(ctx context.Context, id string, set map[string]interface{}) (*models.AdmissionApplication, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrApplicationNotFound
	}
	set["updated_at"] = squirrel.Expr("NOW()")

	query, args, err := r.sb.Update("admission_applications").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(applicationColumns)).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update application SQL")
		return nil, fmt.Errorf("failed to build update application query: %w", err)
	}

	a, err := scanApplication(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Str("applicationID", id).Msg("Error executing update application query")
		return nil, fmt.Errorf("error updating application: %w", err)
	}
	return a, nil
}
