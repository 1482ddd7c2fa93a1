package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/filestorage"
	"github.com/yigit/studyportal/internal/pkg/logger"
	"github.com/yigit/studyportal/internal/pkg/validation"
)

// TeacherStore is the teacher persistence
type TeacherStore interface {
	List(ctx context.Context) ([]models.Teacher, error)
	GetByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, t *models.Teacher) error
	Update(ctx context.Context, t *models.Teacher) error
	Delete(ctx context.Context, id string) error
}

// TeacherService defines the operations on teacher profiles
type TeacherService interface {
	List(ctx context.Context) ([]models.Teacher, error)
	Get(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, req *dto.TeacherRequest) (*models.Teacher, error)
	Update(ctx context.Context, id string, req *dto.TeacherRequest) (*models.Teacher, error)
	Delete(ctx context.Context, id string) error
	UploadImage(fileHeader *multipart.FileHeader) (string, error)
}

type teacherServiceImpl struct {
	store   TeacherStore
	storage filestorage.Storage
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(store TeacherStore, storage filestorage.Storage) TeacherService {
	return &teacherServiceImpl{store: store, storage: storage}
}

func teacherFromRequest(req *dto.TeacherRequest) *models.Teacher {
	return &models.Teacher{
		Name:          strings.TrimSpace(req.Name),
		Subject:       strings.TrimSpace(req.Subject),
		Qualification: strings.TrimSpace(req.Qualification),
		Experience:    strings.TrimSpace(req.Experience),
		ImageURL:      req.ImageURL,
	}
}

// storeErr passes domain errors through and marks everything else as a store failure.
func storeErr(message string, err error) error {
	if errors.Is(err, apperrors.ErrResourceNotFound) || errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrBadRequest) || errors.Is(err, apperrors.ErrValidationFailed) {
		return err
	}
	return apperrors.NewStoreError(message, err)
}

func (s *teacherServiceImpl) List(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.store.List(ctx)
	if err != nil {
		return nil, storeErr("failed to list teachers", err)
	}
	return teachers, nil
}

func (s *teacherServiceImpl) Get(ctx context.Context, id string) (*models.Teacher, error) {
	t, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("failed to load teacher", err)
	}
	return t, nil
}

func (s *teacherServiceImpl) Create(ctx context.Context, req *dto.TeacherRequest) (*models.Teacher, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	t := teacherFromRequest(req)
	if err := s.store.Create(ctx, t); err != nil {
		return nil, storeErr("failed to create teacher", err)
	}
	return t, nil
}

func (s *teacherServiceImpl) Update(ctx context.Context, id string, req *dto.TeacherRequest) (*models.Teacher, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("failed to load teacher", err)
	}

	t := teacherFromRequest(req)
	t.ID = id
	if err := s.store.Update(ctx, t); err != nil {
		return nil, storeErr("failed to update teacher", err)
	}
	if current.ImageURL != "" && current.ImageURL != t.ImageURL {
		s.removeImage(current.ImageURL)
	}
	return t, nil
}

func (s *teacherServiceImpl) Delete(ctx context.Context, id string) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return storeErr("failed to load teacher", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return storeErr("failed to delete teacher", err)
	}
	s.removeImage(current.ImageURL)
	return nil
}

func (s *teacherServiceImpl) removeImage(url string) {
	if url == "" || !s.storage.Owns(url) {
		return
	}
	if err := s.storage.DeleteFile(url); err != nil {
		logger.Warn().Err(err).Str("url", url).Msg("Failed to remove teacher image")
	}
}

func (s *teacherServiceImpl) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	url, err := s.storage.SaveFile(fileHeader, filestorage.FolderTeacherImages)
	if err != nil {
		return "", uploadErr(err, filestorage.FolderTeacherImages)
	}
	return url, nil
}

// uploadErr reports a rejected file type as a bad request listing the accepted
// extensions; anything else is a store failure.
func uploadErr(err error, folder string) error {
	if errors.Is(err, filestorage.ErrUnsupportedType) {
		return apperrors.NewCustomError(apperrors.ErrBadRequest, err.Error()).
			WithDetails(map[string]interface{}{"allowed": filestorage.AllowedExtensions(folder)})
	}
	return apperrors.NewStoreError("failed to store upload", err)
}
