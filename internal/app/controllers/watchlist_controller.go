package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/app/services"
	"github.com/yigit/studyportal/internal/middleware"
)

// WatchlistController serves the saved-resource lists of users and guests. Guests
// are identified by the X-Guest-Token header.
type WatchlistController struct {
	watchlistService services.WatchlistService
}

// NewWatchlistController creates a new WatchlistController
func NewWatchlistController(watchlistService services.WatchlistService) *WatchlistController {
	return &WatchlistController{watchlistService: watchlistService}
}

// GetWatchlist godoc
// @Summary Saved resources
// @Description Returns the caller's saved resources, most recently saved first
// @Tags watchlist
// @Produce json
// @Param X-Guest-Token header string false "Guest watchlist token"
// @Success 200 {object} dto.APIResponse{data=[]models.Resource}
// @Failure 400 {object} dto.ErrorResponse "Neither signed in nor a guest token"
// @Router /watchlist [get]
func (c *WatchlistController) GetWatchlist(ctx *gin.Context) {
	resources, err := c.watchlistService.List(ctx.Request.Context(), middleware.WatchlistOwner(ctx), middleware.Viewer(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resources))
}

// GetWatchlistIDs godoc
// @Summary Saved resource ids
// @Tags watchlist
// @Produce json
// @Param X-Guest-Token header string false "Guest watchlist token"
// @Success 200 {object} dto.APIResponse{data=dto.WatchlistIDsResponse}
// @Router /watchlist/ids [get]
func (c *WatchlistController) GetWatchlistIDs(ctx *gin.Context) {
	ids, err := c.watchlistService.IDs(ctx.Request.Context(), middleware.WatchlistOwner(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.WatchlistIDsResponse{ResourceIDs: ids}))
}

// AddToWatchlist godoc
// @Summary Save a resource
// @Description Adding an already saved resource is a no-op.
// @Tags watchlist
// @Accept json
// @Produce json
// @Param X-Guest-Token header string false "Guest watchlist token"
// @Param request body dto.WatchlistRequest true "Resource to save"
// @Success 200 {object} dto.APIResponse{data=dto.WatchlistIDsResponse}
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Router /watchlist [post]
func (c *WatchlistController) AddToWatchlist(ctx *gin.Context) {
	var req dto.WatchlistRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	owner := middleware.WatchlistOwner(ctx)
	if err := c.watchlistService.Add(ctx.Request.Context(), owner, middleware.Viewer(ctx), req.ResourceID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.respondIDs(ctx)
}

// RemoveFromWatchlist godoc
// @Summary Remove a saved resource
// @Description Removing a resource that is not saved is a no-op.
// @Tags watchlist
// @Produce json
// @Param X-Guest-Token header string false "Guest watchlist token"
// @Param resourceId path string true "Resource slug"
// @Success 200 {object} dto.APIResponse{data=dto.WatchlistIDsResponse}
// @Router /watchlist/{resourceId} [delete]
func (c *WatchlistController) RemoveFromWatchlist(ctx *gin.Context) {
	owner := middleware.WatchlistOwner(ctx)
	if err := c.watchlistService.Remove(ctx.Request.Context(), owner, ctx.Param("resourceId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.respondIDs(ctx)
}

func (c *WatchlistController) respondIDs(ctx *gin.Context) {
	ids, err := c.watchlistService.IDs(ctx.Request.Context(), middleware.WatchlistOwner(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.WatchlistIDsResponse{ResourceIDs: ids}))
}

// MergeWatchlist godoc
// @Summary Merge a guest watchlist
// @Description Copies guest-held resource ids into the signed-in account. Entries already saved keep their saved time. A guest token also merges and clears the server-held guest list.
// @Tags watchlist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MergeWatchlistRequest true "Guest ids"
// @Success 200 {object} dto.APIResponse{data=dto.MergeWatchlistResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /watchlist/merge [post]
func (c *WatchlistController) MergeWatchlist(ctx *gin.Context) {
	var req dto.MergeWatchlistRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	if req.GuestToken == "" {
		req.GuestToken = middleware.GuestToken(ctx)
	}
	added, err := c.watchlistService.Merge(ctx.Request.Context(), middleware.UserID(ctx), req.ResourceIDs, req.GuestToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MergeWatchlistResponse{Added: added}))
}
