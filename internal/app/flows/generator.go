package flows

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/pkg/apperrors"
	"github.com/yigit/studyportal/internal/pkg/filestorage"
	"github.com/yigit/studyportal/internal/pkg/llm"
	"github.com/yigit/studyportal/internal/pkg/logger"
	"github.com/yigit/studyportal/internal/pkg/prompt"
	"github.com/yigit/studyportal/internal/pkg/validation"
)

// Replies used when a question cannot be answered.
const (
	ResourceNotFoundReply = "I'm sorry, I couldn't find the resource you're asking about."
	NoAnswerReply         = "I'm sorry, I couldn't generate a response. Please try again."
	AnswerFailedReply     = "I'm sorry, something went wrong while answering. Please try again."
	ImageAnswerReply      = "Here is the image you asked for."
)

// MaxSuggestions caps the follow-up questions attached to an answer.
const MaxSuggestions = 3

// ResourceLookup resolves a resource as seen by a caller of the given role.
type ResourceLookup interface {
	FetchByID(ctx context.Context, id string, role models.ViewerRole) (*models.Resource, error)
}

// ImageStore keeps generated images and returns their URL.
type ImageStore interface {
	SaveBytes(data []byte, ext, folder string) (string, error)
}

var (
	admissionDescriptionFlow = &Flow[AdmissionDescriptionInput, AdmissionDescription]{
		Name:     "admission-description",
		System:   systemPrompt,
		Prompt:   admissionDescriptionPrompt,
		Schema:   admissionDescriptionSchema,
		Fallback: func() AdmissionDescription { return AdmissionDescription{Description: ""} },
	}

	contentFlow = &Flow[ContentInput, GeneratedContent]{
		Name:     "content",
		System:   systemPrompt,
		Prompt:   contentPrompt,
		Schema:   contentSchema,
		Fallback: func() GeneratedContent { return GeneratedContent{Content: ""} },
	}

	omrSheetFlow = &Flow[OMRSheetInput, OMRSheet]{
		Name:   "omr-sheet",
		System: systemPrompt,
		Prompt: omrSheetPrompt,
		Schema: omrSheetSchema,
		Extend: func(in OMRSheetInput, data prompt.Data) {
			data["tableHtml"] = BuildOMRTable(in.QuestionCount, in.OptionsPerQuestion, in.Columns, in.OptionStyle)
		},
		Fallback: func() OMRSheet { return OMRSheet{HTML: ""} },
	}

	mcqTestFlow = &Flow[TestInput, TestPaper]{
		Name:   "mcq-test",
		System: systemPrompt,
		Prompt: mcqTestPrompt,
		Schema: testPaperSchema,
	}

	sectionedTestFlow = &Flow[TestInput, TestPaper]{
		Name:   "sectioned-test",
		System: systemPrompt,
		Prompt: sectionedTestPrompt,
		Schema: testPaperSchema,
	}

	regularPaperFlow = &Flow[QuestionPaperInput, QuestionPaper]{
		Name:     "regular-paper",
		System:   systemPrompt,
		Prompt:   regularPaperPrompt,
		Schema:   regularPaperSchema,
		Fallback: func() QuestionPaper { return QuestionPaper{} },
	}

	mcqPaperFlow = &Flow[QuestionPaperInput, QuestionPaper]{
		Name:     "mcq-paper",
		System:   systemPrompt,
		Prompt:   mcqPaperPrompt,
		Schema:   mcqPaperSchema,
		Fallback: func() QuestionPaper { return QuestionPaper{} },
	}

	paymentFlow = &Flow[PaymentInput, paymentOutput]{
		Name:     "payment-details",
		Prompt:   paymentPrompt,
		Schema:   paymentSchema,
		Image:    func(in PaymentInput) string { return in.PhotoDataURI },
		Fallback: func() paymentOutput { return paymentOutput{} },
	}

	resourceAnswerFlow = &Flow[resourceQuestion, answerOutput]{
		Name:   "resource-answer",
		System: systemPrompt,
		Prompt: resourceAnswerPrompt,
		Schema: answerSchema,
		Image:  func(in resourceQuestion) string { return in.PhotoDataURI },
	}

	textAnswerFlow = &Flow[QuestionInput, answerOutput]{
		Name:   "text-answer",
		System: systemPrompt,
		Prompt: textAnswerPrompt,
		Schema: answerSchema,
		Image:  func(in QuestionInput) string { return in.PhotoDataURI },
	}

	suggestionsFlow = &Flow[suggestionInput, suggestionOutput]{
		Name:   "follow-up-suggestions",
		System: systemPrompt,
		Prompt: suggestionsPrompt,
		Schema: suggestionsSchema,
	}
)

// Generator runs the content flows against one model.
type Generator struct {
	model     llm.Model
	resources ResourceLookup
	images    ImageStore
}

// NewGenerator creates a Generator. resources and images are only needed by AnswerQuestion.
func NewGenerator(model llm.Model, resources ResourceLookup, images ImageStore) *Generator {
	return &Generator{model: model, resources: resources, images: images}
}

// GenerateAdmissionDescription writes the description of an admission batch.
func (g *Generator) GenerateAdmissionDescription(ctx context.Context, in AdmissionDescriptionInput) (AdmissionDescription, error) {
	return admissionDescriptionFlow.Run(ctx, g.model, in)
}

// GenerateContent writes study content for a title.
func (g *Generator) GenerateContent(ctx context.Context, in ContentInput) (GeneratedContent, error) {
	return contentFlow.Run(ctx, g.model, in)
}

// GenerateOMRSheet builds a printable OMR sheet around a deterministic answer grid.
func (g *Generator) GenerateOMRSheet(ctx context.Context, in OMRSheetInput) (OMRSheet, error) {
	if in.Columns == 0 {
		in.Columns = DefaultOMRColumns
	}
	return omrSheetFlow.Run(ctx, g.model, in)
}

// GenerateMCQTest writes a 20 question MCQ test. Model failures are returned as
// apperrors.ErrGenerationFailed.
func (g *Generator) GenerateMCQTest(ctx context.Context, in TestInput) (TestPaper, error) {
	return mcqTestFlow.Run(ctx, g.model, in)
}

// GenerateSectionedTest writes a four-section (A to D) test. Model failures are
// returned as apperrors.ErrGenerationFailed.
func (g *Generator) GenerateSectionedTest(ctx context.Context, in TestInput) (TestPaper, error) {
	return sectionedTestFlow.Run(ctx, g.model, in)
}

// GenerateQuestionPaper writes a regular or MCQ question paper.
func (g *Generator) GenerateQuestionPaper(ctx context.Context, in QuestionPaperInput) (QuestionPaper, error) {
	if in.QuestionCount == 0 {
		in.QuestionCount = DefaultQuestionCount
	}
	if in.TestType == TestTypeMCQ {
		return mcqPaperFlow.Run(ctx, g.model, in)
	}
	return regularPaperFlow.Run(ctx, g.model, in)
}

// ExtractPaymentDetails reads payment fields off a screenshot.
func (g *Generator) ExtractPaymentDetails(ctx context.Context, in PaymentInput) (models.PaymentDetails, error) {
	return paymentFlow.Run(ctx, g.model, in)
}

// AnswerQuestion answers a chat question. Apart from invalid input it never fails:
// lookup and model problems are reported through the apology replies.
//
// With a resource id the answer is constrained to that resource; otherwise a
// question asking for a picture (and carrying none) goes to image generation, and
// everything else is a plain text answer. A successful answer gets up to
// MaxSuggestions follow-up questions from a second model call.
func (g *Generator) AnswerQuestion(ctx context.Context, in QuestionInput, viewer models.ViewerRole) (*Answer, error) {
	if err := validation.Validate(in); err != nil {
		return nil, err
	}
	log := logger.Component("flows").With().Str("flow", "answer-question").Logger()

	var (
		answer *Answer
		ok     bool
	)
	switch {
	case in.ResourceID != "":
		res, err := g.lookup(ctx, in.ResourceID, viewer)
		if err != nil {
			if !errors.Is(err, apperrors.ErrResourceNotFound) {
				log.Error().Err(err).Str("resourceId", in.ResourceID).Msg("Resource lookup failed")
			}
			return &Answer{Answer: ResourceNotFoundReply}, nil
		}
		answer, ok = answerText(ctx, g.model, resourceAnswerFlow, resourceQuestion{
			Question:        in.Question,
			ResourceTitle:   res.Title,
			ResourceContent: res.Content,
			PhotoDataURI:    in.PhotoDataURI,
		})

	case in.PhotoDataURI == "" && ClassifyIntent(in.Question) == IntentImage:
		answer, ok = g.answerImage(ctx, in.Question)

	default:
		answer, ok = answerText(ctx, g.model, textAnswerFlow, in)
	}

	if ok {
		answer.Suggestions = g.suggest(ctx, in.Question, answer.Answer)
	}
	return answer, nil
}

func (g *Generator) lookup(ctx context.Context, id string, viewer models.ViewerRole) (*models.Resource, error) {
	if g.resources == nil {
		return nil, apperrors.ErrStudyResourceNotFound
	}
	res, err := g.resources.FetchByID(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, apperrors.ErrStudyResourceNotFound
	}
	return res, nil
}

func answerText[In any](ctx context.Context, model llm.Model, flow *Flow[In, answerOutput], in In) (*Answer, bool) {
	out, err := flow.Run(ctx, model, in)
	switch {
	case errors.Is(err, ErrNoOutput):
		return &Answer{Answer: NoAnswerReply}, false
	case err != nil:
		return &Answer{Answer: AnswerFailedReply}, false
	case strings.TrimSpace(out.Answer) == "":
		return &Answer{Answer: NoAnswerReply}, false
	}
	return &Answer{Answer: out.Answer}, true
}

func (g *Generator) answerImage(ctx context.Context, question string) (*Answer, bool) {
	log := logger.Component("flows").With().Str("flow", "image-answer").Logger()
	if g.images == nil {
		log.Warn().Msg("No image store configured")
		return &Answer{Answer: AnswerFailedReply}, false
	}

	img, err := g.model.GenerateImage(ctx, imagePrompt.Render(prompt.Data{"question": question}))
	if err != nil {
		log.Warn().Err(err).Msg("Image generation failed")
		return &Answer{Answer: AnswerFailedReply}, false
	}
	if img == nil || len(img.Data) == 0 {
		return &Answer{Answer: NoAnswerReply}, false
	}

	url, err := g.images.SaveBytes(img.Data, img.Extension(), filestorage.FolderGenerated)
	if err != nil {
		log.Error().Err(err).Msg("Failed to store generated image")
		return &Answer{Answer: AnswerFailedReply}, false
	}
	return &Answer{Answer: ImageAnswerReply, ImageURL: url}, true
}

// suggest returns follow-up questions, or nil when they cannot be produced.
func (g *Generator) suggest(ctx context.Context, question, answer string) []string {
	out, err := suggestionsFlow.Run(ctx, g.model, suggestionInput{Question: question, Answer: answer})
	if err != nil {
		return nil
	}
	suggestions := make([]string, 0, MaxSuggestions)
	for _, s := range out.Suggestions {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		suggestions = append(suggestions, s)
		if len(suggestions) == MaxSuggestions {
			break
		}
	}
	if len(suggestions) == 0 {
		return nil
	}
	return suggestions
}
