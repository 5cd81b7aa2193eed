package ocr

import (
	"context"
	"errors"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/Epistemic-Technology/ocr-eval/internal/config"
	"github.com/Epistemic-Technology/ocr-eval/internal/logger"
	"github.com/Epistemic-Technology/ocr-eval/models"
)

const (
	// MaxTokens leaves room for large structured layouts.
	MaxTokens = 24000
	// Temperature keeps decoding near-deterministic.
	Temperature = 0.1
)

var errNoChoices = errors.New("response contained no choices")

// RemoteClient calls an OpenAI-compatible chat completion endpoint.
type RemoteClient struct {
	client openai.Client
	model  string
	log    logger.Logger
}

// NewRemoteClient builds a client from cfg. SDK retries are disabled: a failed
// request is recorded once as an error page.
func NewRemoteClient(cfg config.Config, log logger.Logger) *RemoteClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.APIURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.APIURL))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultModel
	}
	return &RemoteClient{
		client: openai.NewClient(opts...),
		model:  model,
		log:    log,
	}
}

func (c *RemoteClient) Name() string { return "remote:" + c.model }

func (c *RemoteClient) ExtractPage(ctx context.Context, imageB64 string, pageNumber int) models.PageResult {
	c.log.Debug("Calling %s for page %d (image length: %d)", c.model, pageNumber, len(imageB64))
	content, err := c.complete(ctx, imageB64)
	if err != nil {
		c.log.Warn("OCR request for page %d failed: %v", pageNumber, err)
		return models.ErrorPage(err.Error(), pageNumber)
	}
	return ParseContent(content)
}

func (c *RemoteClient) complete(ctx context.Context, imageB64 string) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(Prompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: DataURL(imageB64),
				}),
			}),
		},
		MaxTokens:   openai.Int(MaxTokens),
		Temperature: openai.Float(Temperature),
	})
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", errNoChoices
	}
	return response.Choices[0].Message.Content, nil
}
