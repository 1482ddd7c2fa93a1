package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/filestorage"
	"github.com/yigit/studyportal/internal/pkg/helpers"
	"github.com/yigit/studyportal/internal/pkg/logger"
	"github.com/yigit/studyportal/internal/pkg/validation"
)

// ResourceStore is the persistence the resource service needs.
type ResourceStore interface {
	ListAll(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	Create(ctx context.Context, res *models.Resource) error
	Update(ctx context.Context, res *models.Resource) error
	Delete(ctx context.Context, id string) error
	ListByIDs(ctx context.Context, ids []string) ([]models.Resource, error)
}

// UploadKind selects what an admin upload is for.
type UploadKind string

const (
	UploadImage UploadKind = "image"
	UploadPDF   UploadKind = "pdf"
)

// ResourceService defines the operations on the study resource catalog
type ResourceService interface {
	// Fetch returns the resources the caller may see, newest first.
	Fetch(ctx context.Context, role models.ViewerRole) ([]models.Resource, error)
	// FetchByID returns one resource, or ErrStudyResourceNotFound when it is
	// missing or hidden from the caller.
	FetchByID(ctx context.Context, id string, role models.ViewerRole) (*models.Resource, error)
	// Browse filters the visible catalog and returns the requested page.
	Browse(ctx context.Context, role models.ViewerRole, filter ResourceFilter, page, size int) ([]models.Resource, dto.PaginationInfo, error)
	// Facets lists the filter values present in the visible catalog.
	Facets(ctx context.Context, role models.ViewerRole) (dto.FacetsResponse, error)

	Create(ctx context.Context, req *dto.ResourceRequest) (*models.Resource, error)
	Update(ctx context.Context, id string, req *dto.ResourceRequest) (*models.Resource, error)
	Delete(ctx context.Context, id string) error
	Upload(fileHeader *multipart.FileHeader, kind UploadKind) (string, error)
}

type resourceServiceImpl struct {
	store   ResourceStore
	storage filestorage.Storage
}

// NewResourceService creates a new resource service instance
func NewResourceService(store ResourceStore, storage filestorage.Storage) ResourceService {
	return &resourceServiceImpl{store: store, storage: storage}
}

// visibleTo keeps the resources role may see and strips download links from
// unreleased ones for everybody but admins.
func visibleTo(resources []models.Resource, role models.ViewerRole) []models.Resource {
	out := make([]models.Resource, 0, len(resources))
	for i := range resources {
		if !resources[i].VisibleTo(role) {
			continue
		}
		if role == models.ViewerAdmin {
			out = append(out, resources[i])
		} else {
			out = append(out, resources[i].WithoutDownload())
		}
	}
	return out
}

func (s *resourceServiceImpl) Fetch(ctx context.Context, role models.ViewerRole) ([]models.Resource, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("failed to load resources", err)
	}
	return visibleTo(all, role), nil
}

func (s *resourceServiceImpl) FetchByID(ctx context.Context, id string, role models.ViewerRole) (*models.Resource, error) {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		return nil, apperrors.NewStoreError("failed to load resource", err)
	}
	if !res.VisibleTo(role) {
		return nil, apperrors.ErrStudyResourceNotFound
	}
	if role != models.ViewerAdmin {
		stripped := res.WithoutDownload()
		res = &stripped
	}
	return res, nil
}

func (s *resourceServiceImpl) Browse(ctx context.Context, role models.ViewerRole, filter ResourceFilter, page, size int) ([]models.Resource, dto.PaginationInfo, error) {
	visible, err := s.Fetch(ctx, role)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	items, info := helpers.Paginate(filter.Apply(visible), page, size)
	return items, info, nil
}

func (s *resourceServiceImpl) Facets(ctx context.Context, role models.ViewerRole) (dto.FacetsResponse, error) {
	visible, err := s.Fetch(ctx, role)
	if err != nil {
		return dto.FacetsResponse{}, err
	}
	return Facets(visible), nil
}

func (s *resourceServiceImpl) Create(ctx context.Context, req *dto.ResourceRequest) (*models.Resource, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	res := req.ToModel()
	res.ID = helpers.Slugify(res.Title)
	if res.ID == "" {
		return nil, apperrors.NewValidationError(map[string]string{"title": "must contain letters or digits"})
	}

	if err := s.store.Create(ctx, res); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, apperrors.NewStoreError("failed to create resource", err)
	}
	logger.Info().Str("resourceID", res.ID).Msg("Resource created")
	return res, nil
}

func (s *resourceServiceImpl) Update(ctx context.Context, id string, req *dto.ResourceRequest) (*models.Resource, error) {
	if err := validation.Validate(req); err != nil {
		return nil, err
	}
	res := req.ToModel()
	res.ID = id

	if err := s.store.Update(ctx, res); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, err
		}
		return nil, apperrors.NewStoreError("failed to update resource", err)
	}
	return res, nil
}

// Delete removes the resource. Signed-in watchlists lose the entry with it; guest
// lists drop the id the next time they are listed.
func (s *resourceServiceImpl) Delete(ctx context.Context, id string) error {
	res, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		return apperrors.NewStoreError("failed to load resource", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		return apperrors.NewStoreError("failed to delete resource", err)
	}

	for _, url := range localFiles(res) {
		if !s.storage.Owns(url) {
			continue
		}
		if err := s.storage.DeleteFile(url); err != nil {
			logger.Warn().Err(err).Str("resourceID", id).Str("url", url).Msg("Failed to remove resource file")
		}
	}
	logger.Info().Str("resourceID", id).Msg("Resource deleted")
	return nil
}

func localFiles(res *models.Resource) []string {
	urls := []string{}
	if res.ImageURL != "" {
		urls = append(urls, res.ImageURL)
	}
	if pdf := helpers.Deref(res.PdfURL); pdf != "" {
		urls = append(urls, pdf)
	}
	return urls
}

func (s *resourceServiceImpl) Upload(fileHeader *multipart.FileHeader, kind UploadKind) (string, error) {
	var folder string
	switch kind {
	case UploadImage:
		folder = filestorage.FolderResourceImages
	case UploadPDF:
		folder = filestorage.FolderResourcePDFs
	default:
		return "", apperrors.NewBadRequestError(fmt.Sprintf("unknown upload kind %q", kind))
	}

	url, err := s.storage.SaveFile(fileHeader, folder)
	if err != nil {
		return "", uploadErr(err, folder)
	}
	return url, nil
}
