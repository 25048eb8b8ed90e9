package tools

import "encoding/json"

// Result statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ToolCall is one tool invocation request extracted from a model
// response. Arguments holds the raw JSON-encoded argument object; it is
// parsed at execution time so malformed model output surfaces as an
// execution error rather than a dropped call.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Result is the normalized outcome of one executed tool call. Exactly
// one of Data and Error is meaningful, selected by Status.
type Result struct {
	ToolCallID string `json:"tool_call_id"`
	Function   string `json:"function"`
	Status     string `json:"status"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ToolMessage is an OpenAI-style role="tool" follow-up message.
type ToolMessage struct {
	Role       string `json:"role"`
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
}

// Processed is the batch outcome for an OpenAI-shaped response. Handled
// is true iff at least one extracted tool call belonged to the catalog.
// Results and Messages preserve the order calls appeared in the response.
type Processed struct {
	Handled  bool
	Results  []Result
	Messages []ToolMessage
}

// ToolResultBlock is an Anthropic tool_result content block.
type ToolResultBlock struct {
	Type      string `json:"type"`
	ToolUseID string `json:"tool_use_id"`
	Content   string `json:"content"`
}

// AnthropicMessage is the follow-up user message carrying tool results.
type AnthropicMessage struct {
	Role    string            `json:"role"`
	Content []ToolResultBlock `json:"content"`
}

// AnthropicProcessed is the batch outcome for an Anthropic-shaped
// response. The Anthropic protocol expects all tool results of one turn
// in a single user message, so Messages holds at most one entry whose
// blocks preserve call order.
type AnthropicProcessed struct {
	Handled  bool
	Results  []Result
	Messages []AnthropicMessage
}

// outcomePayload is the provider-neutral content serialized into
// follow-up messages for both providers.
type outcomePayload struct {
	Success   bool          `json:"success"`
	Operation string        `json:"operation"`
	Data      any           `json:"data,omitempty"`
	Error     *outcomeError `json:"error,omitempty"`
}

type outcomeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// outcomeContent serializes one Result into message content.
func outcomeContent(r Result) string {
	payload := outcomePayload{
		Success:   r.Status == StatusSuccess,
		Operation: r.Function,
	}
	if r.Status == StatusSuccess {
		payload.Data = r.Data
	} else {
		payload.Error = &outcomeError{Code: "EXECUTION_ERROR", Message: r.Error}
	}
	b, err := json.Marshal(payload)
	if err != nil {
		// Data contained something unmarshalable; report that instead of
		// silently dropping the outcome.
		b, _ = json.Marshal(outcomePayload{
			Success:   false,
			Operation: r.Function,
			Error:     &outcomeError{Code: "EXECUTION_ERROR", Message: "failed to serialize tool result: " + err.Error()},
		})
	}
	return string(b)
}
