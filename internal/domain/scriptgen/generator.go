package scriptgen

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"podcastforge-server-go/internal/platform/config"
	"podcastforge-server-go/internal/platform/errors"
	"podcastforge-server-go/internal/platform/logging"
)

// Generator produces raw dialogue text from a topic request. The output
// follows the formatting rules the parser accepts.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// OpenAIGenerator backs Generator with a chat-completion model. BaseURL is
// configurable so OpenAI-compatible endpoints work too.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	logger      *logging.Logger
}

func NewOpenAIGenerator(cfg config.ScriptGenConfig, logger *logging.Logger) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.KindConfig, "scriptgen.NewOpenAIGenerator", "missing script generation API key")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.ModelName
	if model == "" {
		model = openai.GPT4oMini
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}, nil
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) (string, error) {
	prompt := BuildPrompt(req)
	g.logger.InfoTag(logging.TagLLM, "generating %s script about %q with model %s", req.Format, req.Topic, g.model)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an experienced podcast script writer. Produce only the dialogue script, no commentary.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", errors.Wrap(errors.KindScriptGen, "scriptgen.Generate", "chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.KindScriptGen, "scriptgen.Generate", "model returned no choices")
	}

	text := resp.Choices[0].Message.Content
	g.logger.InfoTag(logging.TagLLM, "generated script with %d characters", len(text))
	return text, nil
}
