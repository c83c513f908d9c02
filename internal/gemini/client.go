// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the remote generation client for the Gemini
// generateContent API, including the tool-call continuation loop.
//
// The client sends the retained conversation history plus any attachments,
// then loops: when the model answers with tool-call requests, each call is
// resolved through the dispatcher and its result is appended as a
// function-response turn before resubmitting, until the model produces
// plain text.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/chalkboard-tui/internal/audio"
	"github.com/jeranaias/chalkboard-tui/internal/model"
)

// Configuration constants for the Gemini API.
const (
	// DefaultBaseURL is the base URL for the Gemini API.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gemini-flash-latest"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 120 * time.Second

	// MaxToolIterations bounds the continuation loop. A well-behaved model
	// plays at most a couple of sounds before answering; past this many
	// round-trips the session is stuck and the call fails terminally.
	MaxToolIterations = 8

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 32 * 1024 * 1024
)

// sharedHTTPClient is the pooled HTTP client for all Gemini requests.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// Error variables for common Gemini client errors.
var (
	// ErrNotConfigured indicates the API key is not set.
	ErrNotConfigured = errors.New("Gemini API key not configured")

	// ErrAuthFailed indicates authentication failed (invalid API key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates too many requests were made.
	ErrRateLimited = errors.New("rate limited")

	// ErrNoResponse indicates the service returned no candidates.
	ErrNoResponse = errors.New("no response from Gemini API")

	// ErrEmptyCandidate indicates a candidate with neither text nor tool
	// calls; the finish reason is included in the wrapped message.
	ErrEmptyCandidate = errors.New("response missing text and tool calls")

	// ErrTooManyToolIterations indicates the model kept requesting tools
	// without ever producing text.
	ErrTooManyToolIterations = errors.New("too many tool iterations")
)

// APIError represents an error response from the Gemini API.
type APIError struct {
	Code    int
	Status  string
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("Gemini error [%s] (HTTP %d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("Gemini error (HTTP %d): %s", e.Code, e.Message)
}

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher resolves one tool-call request into the structured result fed
// back to the remote model. Implementations never return an error: failures
// are expressed inside the result so the conversation stays well-formed.
type Dispatcher interface {
	HandleFunctionCall(name string) audio.Result
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Gemini generateContent API for one character session.
//
// A client is bound to a system instruction and generation parameters at
// construction; switching characters means building a new client.
type Client struct {
	apiKey            string
	baseURL           string
	model             string
	systemInstruction string
	genConfig         generationConfig
	dispatcher        Dispatcher
	httpClient        *http.Client
}

// Options holds the generation parameters for a client.
type Options struct {
	Model       string
	Temperature float64
	TopP        float64
	TopK        int
}

// NewClient creates a client with the given credentials, persona system
// instruction, and generation parameters.
func NewClient(apiKey, systemInstruction string, opts Options, dispatcher Dispatcher) *Client {
	modelName := opts.Model
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Client{
		apiKey:            strings.TrimSpace(apiKey),
		baseURL:           DefaultBaseURL,
		model:             modelName,
		systemInstruction: systemInstruction,
		genConfig: generationConfig{
			Temperature: opts.Temperature,
			TopP:        opts.TopP,
			TopK:        opts.TopK,
		},
		dispatcher: dispatcher,
		httpClient: sharedHTTPClient,
	}
}

// WithBaseURL sets a custom base URL for the API.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithHTTPClient sets a custom HTTP client.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// IsConfigured returns true if the client has an API key.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate sends the retained history (and any attachments) to the remote
// model and runs the continuation loop until text comes back.
//
// Attachment validation happens before the first submission; a bad
// attachment fails the whole call with no remote side effects. Transport
// and protocol failures are terminal — no retry here.
func (c *Client) Generate(ctx context.Context, turns []model.Turn, attachments []string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	contents := make([]content, 0, len(turns)+1)
	for _, t := range turns {
		contents = append(contents, content{
			Role:  wireRole(t.Role),
			Parts: []part{{Text: t.Text}},
		})
	}

	if len(attachments) > 0 {
		attachParts, labels, err := buildAttachmentParts(attachments)
		if err != nil {
			return "", err
		}
		contents = appendAttachments(contents, attachParts, labels)
	}

	for iter := 0; iter < MaxToolIterations; iter++ {
		resp, err := c.submit(ctx, contents)
		if err != nil {
			return "", err
		}
		if len(resp.Candidates) == 0 {
			return "", ErrNoResponse
		}

		cand := resp.Candidates[0]
		var toolCalls []functionCall
		var fragments []string
		for _, p := range cand.Content.Parts {
			if p.FunctionCall != nil {
				toolCalls = append(toolCalls, *p.FunctionCall)
			}
			if p.Text != "" {
				fragments = append(fragments, p.Text)
			}
		}

		// Tool calls take priority even when text is also present: the
		// model is not done until it has seen the side-effect outcomes.
		if len(toolCalls) > 0 {
			contents = append(contents, cand.Content)
			for _, call := range toolCalls {
				result := c.dispatcher.HandleFunctionCall(call.Name)
				contents = append(contents, content{
					Role: roleFunction,
					Parts: []part{{
						FunctionResponse: &functionResponse{
							Name:     call.Name,
							Response: resultPayload(result),
						},
					}},
				})
			}
			continue
		}

		if len(fragments) > 0 {
			return strings.TrimSpace(strings.Join(fragments, "")), nil
		}

		return "", fmt.Errorf("%w (finish_reason=%s)", ErrEmptyCandidate, cand.FinishReason)
	}

	return "", fmt.Errorf("%w: no text after %d submissions", ErrTooManyToolIterations, MaxToolIterations)
}

// wireRole maps a history role to its wire representation.
func wireRole(r model.Role) string {
	switch r {
	case model.RoleUser:
		return roleUser
	case model.RoleModel:
		return roleModel
	default:
		return roleFunction
	}
}

// appendAttachments attaches the prepared parts to the last user turn, or a
// new synthetic user turn when the list does not end with one. Attachments
// never float without a carrier turn: the protocol associates content with
// a speaker role.
func appendAttachments(contents []content, attachParts []part, labels []string) []content {
	intro := "Bookshelf documents attached:\n- " + strings.Join(labels, "\n- ")

	if n := len(contents); n > 0 && contents[n-1].Role == roleUser {
		target := &contents[n-1]
		target.Parts = append(target.Parts, part{Text: intro})
		target.Parts = append(target.Parts, attachParts...)
		return contents
	}

	carrier := content{Role: roleUser, Parts: append([]part{{Text: intro}}, attachParts...)}
	return append(contents, carrier)
}

// resultPayload converts a dispatch result into the JSON object fed back to
// the model.
func resultPayload(r audio.Result) map[string]any {
	payload := map[string]any{"status": r.Status}
	if r.Reason != "" {
		payload["reason"] = r.Reason
	}
	if r.File != "" {
		payload["file"] = r.File
	}
	if r.Platform != "" {
		payload["platform"] = r.Platform
	}
	if r.Blocking != "" {
		payload["blocking"] = r.Blocking
	}
	return payload
}

// =============================================================================
// TRANSPORT
// =============================================================================

// submit performs one generateContent call.
func (c *Client) submit(ctx context.Context, contents []content) (*generateResponse, error) {
	reqBody := generateRequest{
		Contents:         contents,
		GenerationConfig: c.genConfig,
		Tools:            []toolDecl{{FunctionDeclarations: toolDeclarations()}},
		ToolConfig: &toolConfig{
			FunctionCallingConfig: functionCallingConfig{Mode: "AUTO"},
		},
	}
	if c.systemInstruction != "" {
		reqBody.SystemInstruction = &content{
			Parts: []part{{Text: c.systemInstruction}},
		}
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.logRequest(req)
	start := time.Now()
	resp, err := c.httpClient.Do(req)

	// SECURITY: Clear the key header immediately after the request so it
	// cannot leak through request dumps.
	req.Header.Del("x-goog-api-key")

	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp.StatusCode, body)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &genResp, nil
}

// toolDeclarations builds the fixed tool set declared on every request.
func toolDeclarations() []functionDeclaration {
	return []functionDeclaration{
		{
			Name: "play_great_job_sound",
			Description: "Play the teacher's celebratory 'great job' sound to reward " +
				"correct answers.",
			Parameters: emptyObjectSchema(),
		},
		{
			Name: "play_wrong_sound",
			Description: "Play the teacher's disappointed 'wrong answer' buzzer when a " +
				"student makes a mistake.",
			Parameters: emptyObjectSchema(),
		},
		{
			Name: "play_mad_sounds",
			Description: "Play the teacher's comedic frustrated muttering to emphasise " +
				"a point.",
			Parameters: emptyObjectSchema(),
		},
	}
}

// readResponse reads the response body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to Go errors.
func handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		gerr := &APIError{
			Code:    statusCode,
			Status:  apiErr.Error.Status,
			Message: apiErr.Error.Message,
		}
		switch statusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrAuthFailed, gerr.Message)
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", ErrRateLimited, gerr.Message)
		default:
			return gerr
		}
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthFailed
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &APIError{Code: statusCode, Message: string(body)}
	}
}

// =============================================================================
// LOGGING (without sensitive data)
// =============================================================================

// logRequest logs an API request without exposing the key or body.
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs status and duration only.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}
