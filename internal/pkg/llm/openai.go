package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"
)

// OpenAIConfig configures OpenAIModel.
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
	ImageModel  string
}

// OpenAIModel implements Model with the OpenAI chat completions and images APIs.
type OpenAIModel struct {
	client      openai.Client
	model       string
	visionModel string
	imageModel  string
	logger      zerolog.Logger
}

// NewOpenAIModel creates a model client from cfg.
func NewOpenAIModel(cfg OpenAIConfig, logger zerolog.Logger) (*OpenAIModel, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide llm.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	vision := cfg.VisionModel
	if vision == "" {
		vision = cfg.Model
	}
	return &OpenAIModel{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		visionModel: vision,
		imageModel:  cfg.ImageModel,
		logger:      logger.With().Str("component", "llm").Logger(),
	}, nil
}

// GenerateObject implements Model.
func (m *OpenAIModel) GenerateObject(ctx context.Context, req Request) ([]byte, error) {
	var msgs []openai.ChatCompletionMessageParamUnion
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}

	model := m.model
	if req.Multimodal() {
		model = m.visionModel
		msgs = append(msgs, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(req.Prompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: req.ImageDataURI}),
		}))
	} else {
		msgs = append(msgs, openai.UserMessage(req.Prompt))
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: msgs,
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        req.Schema.Name,
					Description: openai.String(req.Schema.Description),
					Schema:      req.Schema.Definition,
				},
			},
		}
	}

	start := time.Now()
	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	m.logger.Debug().
		Str("model", model).
		Bool("multimodal", req.Multimodal()).
		Dur("latency", time.Since(start)).
		Msg("structured generation finished")

	if len(resp.Choices) == 0 {
		return nil, nil
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, nil
	}
	return []byte(content), nil
}

// GenerateImage implements Model.
func (m *OpenAIModel) GenerateImage(ctx context.Context, prompt string) (*Image, error) {
	if m.imageModel == "" {
		return nil, errors.New("no image model configured")
	}
	resp, err := m.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(m.imageModel),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		N:              openai.Int(1),
	})
	if err != nil {
		return nil, fmt.Errorf("openai image generation: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, errors.New("openai image generation returned no data")
	}
	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode generated image: %w", err)
	}
	return &Image{Data: data, MIMEType: "image/png"}, nil
}
