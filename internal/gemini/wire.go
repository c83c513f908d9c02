// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// wire.go - Request/response structures for the Gemini generateContent API.
package gemini

// =============================================================================
// ROLES
// =============================================================================

// Wire roles recognized by the generateContent API.
const (
	roleUser  = "user"
	roleModel = "model"
	// roleFunction tags synthetic turns carrying tool-call results back to
	// the model.
	roleFunction = "function"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// generateRequest is the body of a generateContent call.
type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	Tools             []toolDecl       `json:"tools,omitempty"`
	ToolConfig        *toolConfig      `json:"toolConfig,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

// content is one role-tagged entry in the request content list.
type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

// part is a single content fragment: exactly one field is set.
type part struct {
	Text             string            `json:"text,omitempty"`
	InlineData       *blob             `json:"inlineData,omitempty"`
	FunctionCall     *functionCall     `json:"functionCall,omitempty"`
	FunctionResponse *functionResponse `json:"functionResponse,omitempty"`
}

// blob carries inline binary data. Data marshals as base64 per the API.
type blob struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// functionCall is a tool-call request emitted by the model.
type functionCall struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// functionResponse carries a tool-call result back to the model.
type functionResponse struct {
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// toolDecl declares the invocable tools for a request.
type toolDecl struct {
	FunctionDeclarations []functionDeclaration `json:"functionDeclarations"`
}

// functionDeclaration describes one invocable tool. All tools in this
// system take no parameters, so Parameters is always an empty object schema.
type functionDeclaration struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Parameters  objectSchema `json:"parameters"`
}

// objectSchema is the empty-object parameter schema.
type objectSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// emptyObjectSchema returns the schema for a parameterless tool.
func emptyObjectSchema() objectSchema {
	return objectSchema{Type: "object", Properties: map[string]any{}}
}

// toolConfig selects the function-calling mode.
type toolConfig struct {
	FunctionCallingConfig functionCallingConfig `json:"functionCallingConfig"`
}

type functionCallingConfig struct {
	Mode string `json:"mode"`
}

// generationConfig holds the sampling parameters.
type generationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP"`
	TopK        int     `json:"topK"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// generateResponse is the body of a generateContent response.
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Usage      *usage      `json:"usageMetadata,omitempty"`
}

// candidate is one generated answer.
type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// usage reports token accounting for a call.
type usage struct {
	PromptTokens     int `json:"promptTokenCount"`
	CandidatesTokens int `json:"candidatesTokenCount"`
	TotalTokens      int `json:"totalTokenCount"`
}

// apiErrorResponse is the error envelope returned on non-2xx statuses.
type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
