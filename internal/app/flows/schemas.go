package flows

import "github.com/yigit/studyportal/internal/pkg/llm"

var (
	admissionDescriptionSchema = &llm.Schema{
		Name:        "admission_description",
		Description: "Description of an admission batch",
		Definition: llm.Object(map[string]any{
			"description": llm.String("At least 100 characters"),
		}, "description"),
	}

	contentSchema = &llm.Schema{
		Name:        "content",
		Description: "Study content",
		Definition:  llm.Object(map[string]any{"content": llm.String("Markdown content")}, "content"),
	}

	omrSheetSchema = &llm.Schema{
		Name:        "omr_sheet",
		Description: "Printable OMR sheet",
		Definition:  llm.Object(map[string]any{"html": llm.String("Complete HTML document")}, "html"),
	}

	testPaperSchema = &llm.Schema{
		Name:        "test_paper",
		Description: "Formatted test",
		Definition:  llm.Object(map[string]any{"test": llm.String("Plain text test")}, "test"),
	}

	regularPaperSchema = &llm.Schema{
		Name:        "regular_question_paper",
		Description: "Descriptive questions with answers",
		Definition: llm.Object(map[string]any{
			"questions": llm.Array(llm.Object(map[string]any{
				"question": llm.String(""),
				"answer":   llm.String(""),
			}, "question", "answer"), ""),
		}, "questions"),
	}

	mcqPaperSchema = &llm.Schema{
		Name:        "mcq_question_paper",
		Description: "Multiple choice questions",
		Definition: llm.Object(map[string]any{
			"questions": llm.Array(llm.Object(map[string]any{
				"question":      llm.String(""),
				"options":       llm.Array(llm.String(""), "Four options"),
				"correctAnswer": llm.String("One of the options, verbatim"),
			}, "question", "options", "correctAnswer"), ""),
		}, "questions"),
	}

	paymentSchema = &llm.Schema{
		Name:        "payment_details",
		Description: "Fields read from a payment screenshot",
		Definition: llm.Object(map[string]any{
			"sender":        llm.String("Payer name"),
			"amount":        llm.String("Amount with currency"),
			"date":          llm.String(""),
			"time":          llm.String(""),
			"transactionId": llm.String("Transaction or reference id"),
		}),
	}

	answerSchema = &llm.Schema{
		Name:        "answer",
		Description: "Answer to a student's question",
		Definition:  llm.Object(map[string]any{"answer": llm.String("Markdown answer")}, "answer"),
	}

	suggestionsSchema = &llm.Schema{
		Name:        "follow_up_suggestions",
		Description: "Follow-up questions",
		Definition: llm.Object(map[string]any{
			"suggestions": llm.Array(llm.String(""), "At most 3 questions"),
		}, "suggestions"),
	}
)
