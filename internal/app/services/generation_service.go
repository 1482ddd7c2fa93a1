package services

import (
	"context"

	"github.com/yigit/studyportal/internal/app/flows"
)

// GenerationService exposes the content generation flows to the admin tools.
// *flows.Generator implements it.
type GenerationService interface {
	AdmissionGenerator
	QuestionAnswerer
	GenerateContent(ctx context.Context, in flows.ContentInput) (flows.GeneratedContent, error)
	GenerateOMRSheet(ctx context.Context, in flows.OMRSheetInput) (flows.OMRSheet, error)
	GenerateMCQTest(ctx context.Context, in flows.TestInput) (flows.TestPaper, error)
	GenerateSectionedTest(ctx context.Context, in flows.TestInput) (flows.TestPaper, error)
	GenerateQuestionPaper(ctx context.Context, in flows.QuestionPaperInput) (flows.QuestionPaper, error)
}

var _ GenerationService = (*flows.Generator)(nil)

