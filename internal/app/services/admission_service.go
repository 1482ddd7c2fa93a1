package services

import (
	"context"
	"io"
	"strings"

	"github.com/yigit/studyportal/internal/app/flows"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/logger"
	"github.com/yigit/studyportal/internal/pkg/receipt"
	"github.com/yigit/studyportal/internal/pkg/validation"
)

// AdmissionStore is the persistence of batches and applications
type AdmissionStore interface {
	ListForms(ctx context.Context, openOnly bool) ([]models.AdmissionForm, error)
	GetForm(ctx context.Context, id string) (*models.AdmissionForm, error)
	CreateForm(ctx context.Context, f *models.AdmissionForm) error
	UpdateForm(ctx context.Context, f *models.AdmissionForm) error
	DeleteForm(ctx context.Context, id string) error
	CreateApplication(ctx context.Context, a *models.AdmissionApplication) error
	GetApplication(ctx context.Context, id string) (*models.AdmissionApplication, error)
	ListApplications(ctx context.Context, formID string) ([]models.AdmissionApplication, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.AdmissionApplication, error)
	SetPayment(ctx context.Context, id string, payment *models.PaymentDetails) (*models.AdmissionApplication, error)
}

// AdmissionGenerator is the part of the generation pipeline admissions use
type AdmissionGenerator interface {
	GenerateAdmissionDescription(ctx context.Context, in flows.AdmissionDescriptionInput) (flows.AdmissionDescription, error)
	ExtractPaymentDetails(ctx context.Context, in flows.PaymentInput) (models.PaymentDetails, error)
}

// ErrUnreadablePayment is returned when nothing could be read off a payment screenshot.
var ErrUnreadablePayment = apperrors.NewBadRequestError("no payment details could be read from the screenshot")

// AdmissionService defines the admission batch and application operations
type AdmissionService interface {
	ListForms(ctx context.Context, openOnly bool) ([]models.AdmissionForm, error)
	GetForm(ctx context.Context, id string) (*models.AdmissionForm, error)
	CreateForm(ctx context.Context, req *dto.AdmissionFormRequest) (*models.AdmissionForm, error)
	UpdateForm(ctx context.Context, id string, req *dto.AdmissionFormRequest) (*models.AdmissionForm, error)
	DeleteForm(ctx context.Context, id string) error

	// Apply submits an application to an open batch. An email may apply once per batch.
	Apply(ctx context.Context, formID string, req *dto.ApplicationRequest) (*models.AdmissionApplication, error)
	ListApplications(ctx context.Context, formID string) ([]models.AdmissionApplication, error)
	UpdateStatus(ctx context.Context, id string, req *dto.ApplicationStatusRequest) (*models.AdmissionApplication, error)
	// AttachPayment reads a payment screenshot and stores the details on the application.
	AttachPayment(ctx context.Context, id string, req *dto.PaymentScreenshotRequest) (*models.AdmissionApplication, error)

	ExportCSV(ctx context.Context, formID string, w io.Writer) error
	WriteReceipt(ctx context.Context, applicationID string, w io.Writer) error
}

type admissionServiceImpl struct {
	store     AdmissionStore
	generator AdmissionGenerator
}

// NewAdmissionService creates a new admission service instance
func NewAdmissionService(store AdmissionStore, generator AdmissionGenerator) AdmissionService {
	return &admissionServiceImpl{store: store, generator: generator}
}

func (s *admissionServiceImpl) ListForms(ctx context.Context, openOnly bool) ([]models.AdmissionForm, error) {
	forms, err := s.store.ListForms(ctx, openOnly)
	if err != nil {
		return nil, storeErr("failed to list admission forms", err)
	}
	return forms, nil
}

func (s *admissionServiceImpl) GetForm(ctx context.Context, id string) (*models.AdmissionForm, error) {
	form, err := s.store.GetForm(ctx, id)
	if err != nil {
		return nil, storeErr("failed to load admission form", err)
	}
	return form, nil
}

// prepareForm validates the request and fills an empty description from the model
// when asked to. A failed generation leaves the description empty.
func (s *admissionServiceImpl) prepareForm(ctx context.Context, req *dto.AdmissionFormRequest) (*models.AdmissionForm, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	form := req.ToModel()
	form.Title = strings.TrimSpace(form.Title)
	form.Description = strings.TrimSpace(form.Description)

	if req.GenerateDescription && form.Description == "" && s.generator != nil {
		out, err := s.generator.GenerateAdmissionDescription(ctx, flows.AdmissionDescriptionInput{
			Title:       form.Title,
			TeacherName: strings.TrimSpace(form.TeacherName),
			Subject:     strings.TrimSpace(form.Subject),
			ClassName:   strings.TrimSpace(form.ClassName),
			Year:        form.AcademicYear(),
		})
		if err != nil {
			logger.Warn().Err(err).Str("title", form.Title).Msg("Admission description generation failed")
		} else {
			form.Description = out.Description
		}
	}
	return form, nil
}

func (s *admissionServiceImpl) CreateForm(ctx context.Context, req *dto.AdmissionFormRequest) (*models.AdmissionForm, error) {
	form, err := s.prepareForm(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateForm(ctx, form); err != nil {
		return nil, storeErr("failed to create admission form", err)
	}
	logger.Info().Str("formID", form.ID).Msg("Admission form created")
	return form, nil
}

func (s *admissionServiceImpl) UpdateForm(ctx context.Context, id string, req *dto.AdmissionFormRequest) (*models.AdmissionForm, error) {
	form, err := s.prepareForm(ctx, req)
	if err != nil {
		return nil, err
	}
	form.ID = id
	if err := s.store.UpdateForm(ctx, form); err != nil {
		return nil, storeErr("failed to update admission form", err)
	}
	return form, nil
}

func (s *admissionServiceImpl) DeleteForm(ctx context.Context, id string) error {
	if err := s.store.DeleteForm(ctx, id); err != nil {
		return storeErr("failed to delete admission form", err)
	}
	return nil
}

func (s *admissionServiceImpl) Apply(ctx context.Context, formID string, req *dto.ApplicationRequest) (*models.AdmissionApplication, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	form, err := s.store.GetForm(ctx, formID)
	if err != nil {
		return nil, storeErr("failed to load admission form", err)
	}
	if !form.IsOpen {
		return nil, apperrors.ErrAdmissionClosed
	}

	app := req.ToModel(form.ID)
	app.StudentName = strings.TrimSpace(app.StudentName)
	app.ParentName = strings.TrimSpace(app.ParentName)
	app.Address = strings.TrimSpace(app.Address)
	if err := s.store.CreateApplication(ctx, app); err != nil {
		return nil, storeErr("failed to submit application", err)
	}
	logger.Info().Str("formID", form.ID).Str("applicationID", app.ID).Msg("Admission application submitted")
	return app, nil
}

func (s *admissionServiceImpl) ListApplications(ctx context.Context, formID string) ([]models.AdmissionApplication, error) {
	if _, err := s.store.GetForm(ctx, formID); err != nil {
		return nil, storeErr("failed to load admission form", err)
	}
	apps, err := s.store.ListApplications(ctx, formID)
	if err != nil {
		return nil, storeErr("failed to list applications", err)
	}
	return apps, nil
}

func (s *admissionServiceImpl) UpdateStatus(ctx context.Context, id string, req *dto.ApplicationStatusRequest) (*models.AdmissionApplication, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	app, err := s.store.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, storeErr("failed to update application", err)
	}
	return app, nil
}

func (s *admissionServiceImpl) AttachPayment(ctx context.Context, id string, req *dto.PaymentScreenshotRequest) (*models.AdmissionApplication, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.store.GetApplication(ctx, id); err != nil {
		return nil, storeErr("failed to load application", err)
	}

	details, err := s.generator.ExtractPaymentDetails(ctx, flows.PaymentInput{PhotoDataURI: req.PhotoDataURI})
	if err != nil {
		return nil, err
	}
	if details == (models.PaymentDetails{}) {
		return nil, ErrUnreadablePayment
	}

	app, err := s.store.SetPayment(ctx, id, &details)
	if err != nil {
		return nil, storeErr("failed to store payment details", err)
	}
	return app, nil
}

func (s *admissionServiceImpl) ExportCSV(ctx context.Context, formID string, w io.Writer) error {
	apps, err := s.ListApplications(ctx, formID)
	if err != nil {
		return err
	}
	ptrs := make([]*models.AdmissionApplication, len(apps))
	for i := range apps {
		ptrs[i] = &apps[i]
	}
	return receipt.WriteApplicationsCSV(w, ptrs)
}

func (s *admissionServiceImpl) WriteReceipt(ctx context.Context, applicationID string, w io.Writer) error {
	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return storeErr("failed to load application", err)
	}
	form, err := s.store.GetForm(ctx, app.FormID)
	if err != nil {
		return storeErr("failed to load admission form", err)
	}
	return receipt.RenderPNG(w, form, app)
}
