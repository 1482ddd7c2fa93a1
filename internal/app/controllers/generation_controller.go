package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studyportal/internal/app/models/dto"
	"github.com/yigit/studyportal/internal/app/services"
	"github.com/yigit/studyportal/internal/middleware"
)

// GenerationController exposes the generation flows to administrators
type GenerationController struct {
	generator services.GenerationService
}

// NewGenerationController creates a new GenerationController
func NewGenerationController(generator services.GenerationService) *GenerationController {
	return &GenerationController{generator: generator}
}

// generate binds In, runs the flow and answers with its output.
func generate[In, Out any](ctx *gin.Context, run func(context.Context, In) (Out, error)) {
	var in In
	if !middleware.BindJSON(ctx, &in) {
		return
	}
	out, err := run(ctx.Request.Context(), in)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(out))
}

// GenerateContent godoc
// @Summary Write study content for a title
// @Tags generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body flows.ContentInput true "Title"
// @Success 200 {object} dto.APIResponse{data=flows.GeneratedContent}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 502 {object} dto.ErrorResponse "Generation failed"
// @Router /admin/generate/content [post]
func (c *GenerationController) GenerateContent(ctx *gin.Context) {
	generate(ctx, c.generator.GenerateContent)
}

// GenerateOMRSheet godoc
// @Summary Build a printable OMR answer sheet
// @Tags generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body flows.OMRSheetInput true "Sheet layout"
// @Success 200 {object} dto.APIResponse{data=flows.OMRSheet}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/generate/omr [post]
func (c *GenerationController) GenerateOMRSheet(ctx *gin.Context) {
	generate(ctx, c.generator.GenerateOMRSheet)
}

// GenerateMCQTest godoc
// @Summary Generate a multiple-choice test
// @Tags generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body flows.TestInput true "Source material"
// @Success 200 {object} dto.APIResponse{data=flows.TestPaper}
// @Failure 502 {object} dto.ErrorResponse "Generation failed"
// @Router /admin/generate/mcq-test [post]
func (c *GenerationController) GenerateMCQTest(ctx *gin.Context) {
	generate(ctx, c.generator.GenerateMCQTest)
}

// GenerateSectionedTest godoc
// @Summary Generate a sectioned test
// @Tags generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body flows.TestInput true "Source material"
// @Success 200 {object} dto.APIResponse{data=flows.TestPaper}
// @Failure 502 {object} dto.ErrorResponse "Generation failed"
// @Router /admin/generate/sectioned-test [post]
func (c *GenerationController) GenerateSectionedTest(ctx *gin.Context) {
	generate(ctx, c.generator.GenerateSectionedTest)
}

// GenerateQuestionPaper godoc
// @Summary Generate a question paper
// @Tags generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body flows.QuestionPaperInput true "Paper request"
// @Success 200 {object} dto.APIResponse{data=flows.QuestionPaper}
// @Failure 502 {object} dto.ErrorResponse "Generation failed"
// @Router /admin/generate/question-paper [post]
func (c *GenerationController) GenerateQuestionPaper(ctx *gin.Context) {
	generate(ctx, c.generator.GenerateQuestionPaper)
}

// GenerateAdmissionDescription godoc
// @Summary Write an admission batch description
// @Tags generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body flows.AdmissionDescriptionInput true "Batch details"
// @Success 200 {object} dto.APIResponse{data=flows.AdmissionDescription}
// @Router /admin/generate/admission-description [post]
func (c *GenerationController) GenerateAdmissionDescription(ctx *gin.Context) {
	generate(ctx, c.generator.GenerateAdmissionDescription)
}

// ExtractPaymentDetails godoc
// @Summary Read payment details off a screenshot
// @Tags generate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body flows.PaymentInput true "Screenshot as data URI"
// @Success 200 {object} dto.APIResponse{data=models.PaymentDetails}
// @Router /admin/generate/payment-details [post]
func (c *GenerationController) ExtractPaymentDetails(ctx *gin.Context) {
	generate(ctx, c.generator.ExtractPaymentDetails)
}
