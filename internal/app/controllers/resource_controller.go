package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/app/services"
	"github.com/yigit/studyportal/internal/middleware"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/helpers"
	"github.com/yigit/studyportal/internal/pkg/logger"
)

// ResourceController serves the study-material catalog
type ResourceController struct {
	resourceService  services.ResourceService
	watchlistService services.WatchlistService
	limits           helpers.PageLimits
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService, watchlistService services.WatchlistService, limits helpers.PageLimits) *ResourceController {
	return &ResourceController{
		resourceService:  resourceService,
		watchlistService: watchlistService,
		limits:           limits,
	}
}

// filterFromQuery reads the catalog filter. category and subject accept repeated
// parameters as well as comma separated values.
func filterFromQuery(ctx *gin.Context) services.ResourceFilter {
	return services.ResourceFilter{
		Categories: splitQuery(ctx.QueryArray("category")),
		Subjects:   splitQuery(ctx.QueryArray("subject")),
		Stream:     strings.TrimSpace(ctx.Query("stream")),
		Query:      strings.TrimSpace(ctx.Query("q")),
	}
}

func splitQuery(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// ListResources godoc
// @Summary Browse resources
// @Description Lists the resources visible to the caller, newest first, filtered and paginated. Each item is marked when it is on the caller's watchlist.
// @Tags resources
// @Produce json
// @Param category query []string false "Categories, any match" collectionFormat(multi)
// @Param subject query []string false "Subjects, any match" collectionFormat(multi)
// @Param stream query string false "Stream substring"
// @Param q query string false "Title substring"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size"
// @Param X-Guest-Token header string false "Guest watchlist token"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceListResponse}
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /resources [get]
func (c *ResourceController) ListResources(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx, c.limits)
	role := middleware.Viewer(ctx)

	resources, pagination, err := c.resourceService.Browse(ctx.Request.Context(), role, filterFromQuery(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	saved := map[string]bool{}
	if owner := middleware.WatchlistOwner(ctx); owner.Valid() && len(resources) > 0 {
		ids := make([]string, len(resources))
		for i := range resources {
			ids[i] = resources[i].ID
		}
		// The page still renders when the watchlist is unavailable.
		if saved, err = c.watchlistService.Saved(ctx.Request.Context(), owner, ids); err != nil {
			logger.Warn().Err(err).Msg("Failed to mark saved resources")
			saved = map[string]bool{}
		}
	}

	items := make([]dto.ResourceItem, len(resources))
	for i, r := range resources {
		items[i] = dto.ResourceItem{Resource: r, Saved: saved[r.ID]}
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ResourceListResponse{Items: items, Pagination: pagination}))
}

// GetFacets godoc
// @Summary Filter values
// @Description Lists the distinct categories, subjects and streams of the visible catalog
// @Tags resources
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FacetsResponse}
// @Router /resources/facets [get]
func (c *ResourceController) GetFacets(ctx *gin.Context) {
	facets, err := c.resourceService.Facets(ctx.Request.Context(), middleware.Viewer(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(facets))
}

// GetResource godoc
// @Summary Get a resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource slug"
// @Success 200 {object} dto.APIResponse{data=models.Resource}
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /resources/{id} [get]
func (c *ResourceController) GetResource(ctx *gin.Context) {
	resource, err := c.resourceService.FetchByID(ctx.Request.Context(), ctx.Param("id"), middleware.Viewer(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// CreateResource godoc
// @Summary Create a resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ResourceRequest true "Resource"
// @Success 201 {object} dto.APIResponse{data=models.Resource}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Title already used"
// @Router /admin/resources [post]
func (c *ResourceController) CreateResource(ctx *gin.Context) {
	var req dto.ResourceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	resource, err := c.resourceService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resource))
}

// UpdateResource godoc
// @Summary Update a resource
// @Description The slug stays fixed when the title changes.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource slug"
// @Param request body dto.ResourceRequest true "Resource"
// @Success 200 {object} dto.APIResponse{data=models.Resource}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /admin/resources/{id} [put]
func (c *ResourceController) UpdateResource(ctx *gin.Context) {
	var req dto.ResourceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	resource, err := c.resourceService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resource))
}

// DeleteResource godoc
// @Summary Delete a resource
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource slug"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /admin/resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	if err := c.resourceService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Resource deleted"}))
}

// UploadFile godoc
// @Summary Upload a cover image or PDF
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param kind query string true "image or pdf"
// @Param file formData file true "File"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing or unsupported file"
// @Router /admin/resources/upload [post]
func (c *ResourceController) UploadFile(ctx *gin.Context) {
	kind := services.UploadKind(ctx.DefaultQuery("kind", string(services.UploadImage)))
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("file is required"))
		return
	}
	url, err := c.resourceService.Upload(fileHeader, kind)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.UploadResponse{URL: url}))
}
