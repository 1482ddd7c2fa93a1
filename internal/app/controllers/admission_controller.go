package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/app/services"
	"github.com/yigit/studyportal/internal/middleware"
)

// AdmissionController handles admission batches and applications
type AdmissionController struct {
	admissionService services.AdmissionService
}

// NewAdmissionController creates a new AdmissionController
func NewAdmissionController(admissionService services.AdmissionService) *AdmissionController {
	return &AdmissionController{admissionService: admissionService}
}

// ListForms godoc
// @Summary List admission batches
// @Description Open batches only, unless the caller is an administrator
// @Tags admissions
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.AdmissionForm}
// @Router /admissions/forms [get]
func (c *AdmissionController) ListForms(ctx *gin.Context) {
	openOnly := middleware.Viewer(ctx) != models.ViewerAdmin
	forms, err := c.admissionService.ListForms(ctx.Request.Context(), openOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(forms))
}

// GetForm godoc
// @Summary Get an admission batch
// @Tags admissions
// @Produce json
// @Param id path string true "Form ID"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionForm}
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /admissions/forms/{id} [get]
func (c *AdmissionController) GetForm(ctx *gin.Context) {
	form, err := c.admissionService.GetForm(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(form))
}

// CreateForm godoc
// @Summary Create an admission batch
// @Description Set generateDescription to have the description written when it is left empty.
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AdmissionFormRequest true "Batch"
// @Success 201 {object} dto.APIResponse{data=models.AdmissionForm}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/admissions/forms [post]
func (c *AdmissionController) CreateForm(ctx *gin.Context) {
	var req dto.AdmissionFormRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	form, err := c.admissionService.CreateForm(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(form))
}

// UpdateForm godoc
// @Summary Update an admission batch
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Param request body dto.AdmissionFormRequest true "Batch"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionForm}
// @Failure 404 {object} dto.ErrorResponse "Form not found"
// @Router /admin/admissions/forms/{id} [put]
func (c *AdmissionController) UpdateForm(ctx *gin.Context) {
	var req dto.AdmissionFormRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	form, err := c.admissionService.UpdateForm(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(form))
}

// DeleteForm godoc
// @Summary Delete an admission batch and its applications
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Router /admin/admissions/forms/{id} [delete]
func (c *AdmissionController) DeleteForm(ctx *gin.Context) {
	if err := c.admissionService.DeleteForm(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Admission form deleted"}))
}

// Apply godoc
// @Summary Apply to an admission batch
// @Tags admissions
// @Accept json
// @Produce json
// @Param id path string true "Form ID"
// @Param request body dto.ApplicationRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=models.AdmissionApplication}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or batch closed"
// @Failure 409 {object} dto.ErrorResponse "Email already applied"
// @Router /admissions/forms/{id}/applications [post]
func (c *AdmissionController) Apply(ctx *gin.Context) {
	var req dto.ApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	app, err := c.admissionService.Apply(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(app))
}

// ListApplications godoc
// @Summary List applications of a batch
// @Tags admissions
// @Produce json
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {object} dto.APIResponse{data=[]models.AdmissionApplication}
// @Router /admin/admissions/forms/{id}/applications [get]
func (c *AdmissionController) ListApplications(ctx *gin.Context) {
	apps, err := c.admissionService.ListApplications(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(apps))
}

// ExportApplications godoc
// @Summary Export applications as CSV
// @Tags admissions
// @Produce text/csv
// @Security BearerAuth
// @Param id path string true "Form ID"
// @Success 200 {file} file
// @Router /admin/admissions/forms/{id}/export [get]
func (c *AdmissionController) ExportApplications(ctx *gin.Context) {
	formID := ctx.Param("id")
	// Buffered so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := c.admissionService.ExportCSV(ctx.Request.Context(), formID, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="applications-%s.csv"`, formID))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// UpdateStatus godoc
// @Summary Review an application
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body dto.ApplicationStatusRequest true "Status"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionApplication}
// @Router /admin/admissions/applications/{id}/status [put]
func (c *AdmissionController) UpdateStatus(ctx *gin.Context) {
	var req dto.ApplicationStatusRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	app, err := c.admissionService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app))
}

// AttachPayment godoc
// @Summary Attach a payment screenshot
// @Description Reads the sender, amount, date, time and transaction id off the screenshot and stores them on the application.
// @Tags admissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param request body dto.PaymentScreenshotRequest true "Screenshot as data URI"
// @Success 200 {object} dto.APIResponse{data=models.AdmissionApplication}
// @Failure 400 {object} dto.ErrorResponse "Nothing readable on the screenshot"
// @Failure 502 {object} dto.ErrorResponse "Extraction failed"
// @Router /admin/admissions/applications/{id}/payment [post]
func (c *AdmissionController) AttachPayment(ctx *gin.Context) {
	var req dto.PaymentScreenshotRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	app, err := c.admissionService.AttachPayment(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app))
}

// Receipt godoc
// @Summary Application receipt
// @Description A PNG card with the applicant details and a QR code identifying the application
// @Tags admissions
// @Produce image/png
// @Param id path string true "Application ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admissions/applications/{id}/receipt.png [get]
func (c *AdmissionController) Receipt(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.admissionService.WriteReceipt(ctx.Request.Context(), ctx.Param("id"), &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Cache-Control", "no-store")
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}
