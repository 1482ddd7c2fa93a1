package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/app/services"
	"github.com/yigit/studyportal/internal/middleware"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
)

// TeacherController handles teacher profile operations
type TeacherController struct {
	teacherService services.TeacherService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService services.TeacherService) *TeacherController {
	return &TeacherController{teacherService: teacherService}
}

// GetAllTeachers godoc
// @Summary List teachers
// @Tags teachers
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Teacher}
// @Router /teachers [get]
func (c *TeacherController) GetAllTeachers(ctx *gin.Context) {
	teachers, err := c.teacherService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teachers))
}

// GetTeacher godoc
// @Summary Get a teacher
// @Tags teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=models.Teacher}
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /teachers/{id} [get]
func (c *TeacherController) GetTeacher(ctx *gin.Context) {
	teacher, err := c.teacherService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teacher))
}

// CreateTeacher godoc
// @Summary Create a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TeacherRequest true "Teacher"
// @Success 201 {object} dto.APIResponse{data=models.Teacher}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/teachers [post]
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req dto.TeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	teacher, err := c.teacherService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(teacher))
}

// UpdateTeacher godoc
// @Summary Update a teacher
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Teacher ID"
// @Param request body dto.TeacherRequest true "Teacher"
// @Success 200 {object} dto.APIResponse{data=models.Teacher}
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /admin/teachers/{id} [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	var req dto.TeacherRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	teacher, err := c.teacherService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(teacher))
}

// DeleteTeacher godoc
// @Summary Delete a teacher
// @Tags teachers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /admin/teachers/{id} [delete]
func (c *TeacherController) DeleteTeacher(ctx *gin.Context) {
	if err := c.teacherService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Teacher deleted"}))
}

// UploadTeacherImage godoc
// @Summary Upload a teacher photo
// @Tags teachers
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse}
// @Router /admin/teachers/upload [post]
func (c *TeacherController) UploadTeacherImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("file is required"))
		return
	}
	url, err := c.teacherService.UploadImage(fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.UploadResponse{URL: url}))
}
