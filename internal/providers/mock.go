package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

const MockClientName = "mock"

// MockClient is an LLMClient for testing.
type MockClient struct {
	// Configurable behavior
	ShouldFail   bool
	FailOn       map[int]bool // 1-based request numbers that fail
	ResponseText string
	ResponseJSON json.RawMessage

	// ResponseFor maps a substring of the user prompt to a canned JSON
	// reply, overriding ResponseJSON when it matches.
	ResponseFor map[string]json.RawMessage

	mu       sync.Mutex
	requests []ChatRequest
}

// NewMockClient creates a new mock client with sensible defaults.
func NewMockClient() *MockClient {
	return &MockClient{
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockClient) Name() string {
	return MockClientName
}

// Requests returns a copy of all requests received so far, in order.
func (c *MockClient) Requests() []ChatRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ChatRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// Chat sends a mock chat request.
func (c *MockClient) Chat(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	c.mu.Lock()
	c.requests = append(c.requests, *req)
	count := len(c.requests)
	c.mu.Unlock()

	result := &ChatResult{
		RequestID: fmt.Sprintf("mock-%d", count),
		Provider:  MockClientName,
		ModelUsed: req.Model,
	}

	if c.ShouldFail || c.FailOn[count] {
		result.ErrorType = "mock_failure"
		result.ErrorMessage = "mock client configured to fail"
		return result, fmt.Errorf("mock client configured to fail")
	}

	if err := ctx.Err(); err != nil {
		result.ErrorType = "context_cancelled"
		result.ErrorMessage = err.Error()
		return result, err
	}

	// Build response
	result.Success = true
	result.Content = c.ResponseText
	if body := c.responseBody(req); body != nil {
		result.Content = string(body)
		result.ParsedJSON = body
	}

	return result, nil
}

func (c *MockClient) responseBody(req *ChatRequest) json.RawMessage {
	for substr, body := range c.ResponseFor {
		for _, m := range req.Messages {
			if m.Role == "user" && strings.Contains(m.Content, substr) {
				return body
			}
		}
	}
	return c.ResponseJSON
}
