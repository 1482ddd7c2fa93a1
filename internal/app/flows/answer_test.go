package flows

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/yigit/studyportal/internal/app/models"
	"github.com/yigit/studyportal/internal/pkg/llm"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		question string
		want     Intent
	}{
		{"Draw the structure of a plant cell", IntentImage},
		{"Can you CREATE a diagram of the heart?", IntentImage},
		{"generate an image of a circuit", IntentImage},
		{"What is an image formed by a convex lens?", IntentImage},
		{"Explain the drawing of ray diagrams", IntentText},
		{"What does regenerate mean in biology?", IntentText},
		{"Define creativity", IntentText},
		{"What is Ohm's law?", IntentText},
	}
	for _, tt := range tests {
		if got := ClassifyIntent(tt.question); got != tt.want {
			t.Errorf("ClassifyIntent(%q) = %s, want %s", tt.question, got, tt.want)
		}
	}
}

func TestAnswerQuestion_ResourceNotFound(t *testing.T) {
	g, model, lookup, _ := newTestGenerator(t)

	got, err := g.AnswerQuestion(context.Background(), QuestionInput{Question: "Summarise this", ResourceID: "does-not-exist"}, models.ViewerAnonymous)
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if got.Answer != "I'm sorry, I couldn't find the resource you're asking about." {
		t.Errorf("got %q", got.Answer)
	}
	if model.Calls() != 0 {
		t.Errorf("model called %d times", model.Calls())
	}
	if lookup.calls != 1 {
		t.Errorf("lookup calls = %d", lookup.calls)
	}

	// A private resource is invisible to anonymous callers.
	got, _ = g.AnswerQuestion(context.Background(), QuestionInput{Question: "What is here?", ResourceID: "private-notes"}, models.ViewerAnonymous)
	if got.Answer != ResourceNotFoundReply || model.Calls() != 0 {
		t.Errorf("private resource leaked: %+v", got)
	}

	lookup.err = errors.New("connection refused")
	got, _ = g.AnswerQuestion(context.Background(), QuestionInput{Question: "Summarise", ResourceID: "newton-laws"}, models.ViewerAdmin)
	if got.Answer != ResourceNotFoundReply {
		t.Errorf("store failure: got %q", got.Answer)
	}
}

func TestAnswerQuestion_ResourceConstrained(t *testing.T) {
	g, model, _, _ := newTestGenerator(t)
	model.Objects[answerSchema.Name] = []byte(`{"answer":"Force equals mass times acceleration."}`)
	model.Objects[suggestionsSchema.Name] = []byte(`{"suggestions":["What is inertia?"," ","What is momentum?","State the third law.","Extra"]}`)

	got, err := g.AnswerQuestion(context.Background(), QuestionInput{Question: "What is the second law?", ResourceID: "newton-laws"}, models.ViewerAnonymous)
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	want := &Answer{
		Answer:      "Force equals mass times acceleration.",
		Suggestions: []string{"What is inertia?", "What is momentum?", "State the third law."},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}

	reqs := model.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected answer + suggestions calls, got %d", len(reqs))
	}
	if reqs[0].Schema != answerSchema || !containsAll(reqs[0].Prompt, sampleMaterial, "What is the second law?") {
		t.Errorf("resource prompt missing material:\n%s", reqs[0].Prompt)
	}
}

func TestAnswerQuestion_SuggestionsFailureIsOmitted(t *testing.T) {
	g, model, _, _ := newTestGenerator(t)
	model.Objects[answerSchema.Name] = []byte(`{"answer":"Ohm's law relates V, I and R."}`)

	got, err := g.AnswerQuestion(context.Background(), QuestionInput{Question: "What is Ohm's law?"}, models.ViewerAuthenticated)
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if got.Answer != "Ohm's law relates V, I and R." || got.Suggestions != nil {
		t.Errorf("got %+v", got)
	}
}

func TestAnswerQuestion_Apologies(t *testing.T) {
	ctx := context.Background()

	g, model, _, _ := newTestGenerator(t)
	got, _ := g.AnswerQuestion(ctx, QuestionInput{Question: "What is Ohm's law?"}, models.ViewerAnonymous)
	if got.Answer != NoAnswerReply || model.Calls() != 1 {
		t.Errorf("null answer: got %+v after %d calls", got, model.Calls())
	}

	g, model, _, _ = newTestGenerator(t)
	model.Objects[answerSchema.Name] = []byte(`{"answer":"   "}`)
	got, _ = g.AnswerQuestion(ctx, QuestionInput{Question: "What is Ohm's law?"}, models.ViewerAnonymous)
	if got.Answer != NoAnswerReply {
		t.Errorf("blank answer: got %q", got.Answer)
	}

	g, model, _, _ = newTestGenerator(t)
	model.ObjectErr = errors.New("rate limited")
	got, err := g.AnswerQuestion(ctx, QuestionInput{Question: "What is Ohm's law?"}, models.ViewerAnonymous)
	if err != nil || got.Answer != AnswerFailedReply || got.Suggestions != nil {
		t.Errorf("model error: got %+v, %v", got, err)
	}
}

func TestAnswerQuestion_ImageBranch(t *testing.T) {
	g, model, _, images := newTestGenerator(t)
	model.Image = &llm.Image{Data: []byte("png"), MIMEType: "image/png"}

	got, err := g.AnswerQuestion(context.Background(), QuestionInput{Question: "Draw a labelled plant cell"}, models.ViewerAnonymous)
	if err != nil {
		t.Fatalf("AnswerQuestion: %v", err)
	}
	if got.ImageURL != "/uploads/generated/img.png" || got.Answer != ImageAnswerReply {
		t.Errorf("got %+v", got)
	}
	if len(images.saved) != 1 || len(model.ImagePrompts()) != 1 {
		t.Errorf("image not generated and stored once")
	}

	// An attached photo keeps the question on the text path.
	model.Objects[answerSchema.Name] = []byte(`{"answer":"This is a mitochondrion."}`)
	photo := llm.DataURI("image/png", []byte("photo"))
	got, _ = g.AnswerQuestion(context.Background(), QuestionInput{Question: "Draw attention to the organelle here", PhotoDataURI: photo}, models.ViewerAnonymous)
	if got.ImageURL != "" || got.Answer != "This is a mitochondrion." {
		t.Errorf("photo question: got %+v", got)
	}
	if len(model.ImagePrompts()) != 1 {
		t.Error("image model called for a question with a photo")
	}
	var sawPhoto bool
	for _, r := range model.Requests() {
		sawPhoto = sawPhoto || r.ImageDataURI == photo
	}
	if !sawPhoto {
		t.Error("photo not forwarded to the model")
	}

	images.err = errors.New("disk full")
	got, _ = g.AnswerQuestion(context.Background(), QuestionInput{Question: "Draw a neuron"}, models.ViewerAnonymous)
	if got.Answer != AnswerFailedReply || got.ImageURL != "" {
		t.Errorf("storage failure: got %+v", got)
	}
}

func TestAnswerQuestion_InvalidInput(t *testing.T) {
	g, model, _, _ := newTestGenerator(t)
	if _, err := g.AnswerQuestion(context.Background(), QuestionInput{Question: "  "}, models.ViewerAnonymous); err == nil {
		t.Fatal("expected validation error")
	}
	if model.Calls() != 0 {
		t.Error("model called for invalid input")
	}
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
