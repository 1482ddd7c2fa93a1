package flows

import "github.com/yigit/studyportal/internal/app/models"

// AdmissionDescriptionInput describes an admission batch to write copy for.
type AdmissionDescriptionInput struct {
	Title       string `json:"title" validate:"required,notblank,min=3,max=120"`
	TeacherName string `json:"teacherName" validate:"required,notblank,min=3,max=80"`
	Subject     string `json:"subject" validate:"required,notblank,min=2,max=60"`
	ClassName   string `json:"className" validate:"required,notblank,min=2,max=80"`
	Year        string `json:"year" validate:"required,academicyear"`
}

// AdmissionDescription is the generated batch description.
type AdmissionDescription struct {
	Description string `json:"description"`
}

// ContentInput asks for free study content on a title.
type ContentInput struct {
	Title string `json:"title" validate:"required,notblank,min=3,max=200"`
}

// GeneratedContent is the generated study content.
type GeneratedContent struct {
	Content string `json:"content"`
}

// OptionStyle selects how OMR bubbles are labelled.
type OptionStyle string

const (
	OptionAlphabetic OptionStyle = "alphabetic"
	OptionNumeric    OptionStyle = "numeric"
	OptionRoman      OptionStyle = "roman"
)

// OMRSheetInput describes an answer sheet.
type OMRSheetInput struct {
	Title              string      `json:"title" validate:"required,notblank,min=3,max=120"`
	Subtitle           string      `json:"subtitle,omitempty" validate:"omitempty,max=200"`
	QuestionCount      int         `json:"questionCount" validate:"gte=1,lte=200"`
	OptionsPerQuestion int         `json:"optionsPerQuestion" validate:"gte=2,lte=10"`
	OptionStyle        OptionStyle `json:"optionStyle" validate:"required,oneof=alphabetic numeric roman"`
	Columns            int         `json:"columns,omitempty" validate:"omitempty,gte=1,lte=10"`
}

// OMRSheet is a self-contained printable HTML document.
type OMRSheet struct {
	HTML string `json:"html"`
}

// TestInput is the source material for the fixed-layout test generators.
type TestInput struct {
	Title           string   `json:"title" validate:"required,notblank,min=3,max=200"`
	Class           string   `json:"class,omitempty" validate:"omitempty,max=60"`
	Subjects        []string `json:"subjects,omitempty" validate:"omitempty,dive,notblank"`
	Streams         []string `json:"streams,omitempty" validate:"omitempty,dive,notblank"`
	ResourceContent string   `json:"resourceContent" validate:"required,notblank,min=20"`
}

// TestPaper is formatted test text ready to print.
type TestPaper struct {
	Test string `json:"test"`
}

// TestType selects the question paper format.
type TestType string

const (
	TestTypeRegular TestType = "regular"
	TestTypeMCQ     TestType = "mcq"
)

// DefaultQuestionCount applies when a question paper request leaves the count out.
const DefaultQuestionCount = 5

// QuestionPaperInput asks for N questions over a resource.
type QuestionPaperInput struct {
	Title           string   `json:"title" validate:"required,notblank,min=3,max=200"`
	Subject         string   `json:"subject" validate:"required,notblank,min=2,max=60"`
	Class           string   `json:"class,omitempty" validate:"omitempty,max=60"`
	ResourceContent string   `json:"resourceContent" validate:"required,notblank,min=20"`
	TestType        TestType `json:"testType" validate:"required,oneof=regular mcq"`
	QuestionCount   int      `json:"questionCount,omitempty" validate:"omitempty,gte=1,lte=200"`
}

// PaperQuestion is one generated question. Regular papers fill Answer, MCQ papers
// fill Options and CorrectAnswer.
type PaperQuestion struct {
	Question      string   `json:"question"`
	Answer        string   `json:"answer,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

// QuestionPaper is the structured paper.
type QuestionPaper struct {
	Questions []PaperQuestion `json:"questions,omitempty"`
}

// PaymentInput carries a payment screenshot.
type PaymentInput struct {
	PhotoDataURI string `json:"photoDataUri" validate:"required,datauri"`
}

// QuestionInput is a chat question.
type QuestionInput struct {
	Question     string `json:"question" validate:"required,notblank,max=2000"`
	ResourceID   string `json:"resourceId,omitempty" validate:"omitempty,max=200"`
	PhotoDataURI string `json:"photoDataUri,omitempty" validate:"omitempty,datauri"`
}

// Answer is the reply to a QuestionInput.
type Answer struct {
	Answer      string   `json:"answer"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// resourceQuestion is a question constrained to one resource's content.
type resourceQuestion struct {
	Question        string `json:"question" validate:"required"`
	ResourceTitle   string `json:"resourceTitle"`
	ResourceContent string `json:"resourceContent"`
	PhotoDataURI    string `json:"photoDataUri,omitempty"`
}

type answerOutput struct {
	Answer string `json:"answer"`
}

type suggestionInput struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type suggestionOutput struct {
	Suggestions []string `json:"suggestions"`
}

type imageRequest struct {
	Question string `json:"question" validate:"required"`
}

// paymentOutput reuses the stored payment shape.
type paymentOutput = models.PaymentDetails
