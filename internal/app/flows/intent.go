package flows

import (
	"regexp"
	"strings"
)

// Intent is what a chat question is asking for.
type Intent string

const (
	IntentText  Intent = "text"
	IntentImage Intent = "image"
)

// ImageIntentWords trigger the image branch when they appear as whole words.
var ImageIntentWords = []string{"image", "generate", "create", "draw"}

var imageIntentPattern = regexp.MustCompile(`(?i)\b(?:` + strings.Join(ImageIntentWords, "|") + `)\b`)

// ClassifyIntent decides between a text answer and image generation.
func ClassifyIntent(question string) Intent {
	if imageIntentPattern.MatchString(question) {
		return IntentImage
	}
	return IntentText
}
