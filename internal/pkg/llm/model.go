// Package llm is the generation client used by the content flows. It sends a
// rendered prompt together with a declared output shape to a generative model
// and hands back the raw structured response.
package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// Model is a generative model able to produce structured objects and images.
// Implementations perform no retries; transport and model errors are returned as-is.
type Model interface {
	// GenerateObject returns the model's JSON output for req, or nil when the
	// model produced nothing usable.
	GenerateObject(ctx context.Context, req Request) ([]byte, error)
	// GenerateImage renders an image from a free-text prompt.
	GenerateImage(ctx context.Context, prompt string) (*Image, error)
}

// Request is a single structured generation call.
type Request struct {
	System string
	Prompt string
	// ImageDataURI, when set, makes the call multimodal ("data:image/png;base64,...").
	ImageDataURI string
	Schema       *Schema
}

// Multimodal reports whether the request carries an image.
func (r Request) Multimodal() bool {
	return r.ImageDataURI != ""
}

// Image is a generated picture.
type Image struct {
	Data     []byte
	MIMEType string
}

// Extension returns the file extension matching the image's MIME type.
func (i *Image) Extension() string {
	switch i.MIMEType {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}

// Decode unmarshals raw model output into out. It returns false without error when
// the model produced no output (nil, empty or JSON null).
func Decode(raw []byte, out any) (bool, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return false, fmt.Errorf("decode model output: %w", err)
	}
	return true, nil
}

// ParseDataURI splits a base64 data URI into its MIME type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data uri")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("data uri has no payload")
	}
	mimeType, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, fmt.Errorf("data uri must be base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("data uri payload: %w", err)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return mimeType, data, nil
}

// DataURI encodes data as a base64 data URI.
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
