// Package llm wraps the model-completion service behind a narrow producer
// interface: prompt text in, text out, failure reported as an empty string.
// The orchestration core never sees transport errors, so it can be tested
// with deterministic stub producers and no network or credential dependency.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/config"
	"github.com/itsviv0/Ai-gnu-unit-test-gen/internal/log"
)

// DefaultEndpoint is the OpenAI-compatible inference endpoint used when
// TESTGEN_LLM_ENDPOINT is not set.
const DefaultEndpoint = "https://models.github.ai/inference"

// TokenEnvVar is the environment variable holding the model service
// credential. Its absence is a fatal startup error.
const TokenEnvVar = "GITHUB_TOKEN"

// ErrMissingToken is returned by NewClient when no credential is present.
var ErrMissingToken = errors.New(TokenEnvVar + " environment variable is not set")

// systemPrompt is the fixed system message sent with every completion.
const systemPrompt = "You are a helpful assistant."

// Client is a thin wrapper around the chat-completion API. All completion
// methods swallow transport errors and return an empty string; the retry
// orchestrator treats empty output as a failed attempt.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	topP        float32
	timeout     time.Duration
	logger      *log.Logger
}

// NewClient constructs a Client from the generator config. The credential is
// read from GITHUB_TOKEN; the endpoint may be overridden with
// TESTGEN_LLM_ENDPOINT for self-hosted gateways.
func NewClient(cfg *config.GeneratorConfig, logger *log.Logger) (*Client, error) {
	token := strings.TrimSpace(os.Getenv(TokenEnvVar))
	if token == "" {
		return nil, ErrMissingToken
	}

	endpoint := os.Getenv("TESTGEN_LLM_ENDPOINT")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	apiCfg := openai.DefaultConfig(token)
	apiCfg.BaseURL = endpoint

	return &Client{
		api:         openai.NewClientWithConfig(apiCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		timeout:     time.Duration(cfg.TimeoutSeconds) * time.Second,
		logger:      logger,
	}, nil
}

// Complete sends one chat completion and returns the response text.
// Any transport, auth, or quota error is logged and reported as an empty
// string — never propagated. Each call carries its own timeout so a hung
// request cannot block the pipeline indefinitely.
func (c *Client) Complete(ctx context.Context, userPrompt string) string {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: c.temperature,
		TopP:        c.topP,
	})
	if err != nil {
		c.logger.Warning(fmt.Sprintf("LLM call failed: %v", err))
		return ""
	}
	if len(resp.Choices) == 0 {
		c.logger.Warning("LLM returned no choices")
		return ""
	}
	return resp.Choices[0].Message.Content
}

// RefactorProducer returns a producer that asks the model to refactor C++
// source for clarity without changing behavior. The rules argument is unused
// for refactoring.
func (c *Client) RefactorProducer(ctx context.Context) func(input, rules string) string {
	return func(input, _ string) string {
		return c.Complete(ctx, refactorPrompt(input))
	}
}

// GenerateProducer returns a producer that asks the model to generate
// Google Test unit tests for the input code, constrained by the YAML rule
// document.
func (c *Client) GenerateProducer(ctx context.Context) func(input, rules string) string {
	return func(input, rules string) string {
		return c.Complete(ctx, generatePrompt(input, rules))
	}
}

// RefineProducer returns a producer that asks the model to refine previously
// generated tests, constrained by the YAML rule document.
func (c *Client) RefineProducer(ctx context.Context) func(input, rules string) string {
	return func(input, rules string) string {
		return c.Complete(ctx, refinePrompt(input, rules))
	}
}
