package tools

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// callSource extracts the ordered tool calls from one provider response
// shape. Only extraction knows about response shapes; the processing
// loop sees a flat []ToolCall.
type callSource interface {
	toolCalls() []ToolCall
}

// --- OpenAI-shaped responses ---

// ChatResponse mirrors the slice of an OpenAI chat completion this
// package reads. Callers holding a provider SDK response can decode it
// into this shape or hand over the raw JSON instead.
type ChatResponse struct {
	Choices []Choice `json:"choices"`
}

// Choice is one completion choice.
type Choice struct {
	Message AssistantMessage `json:"message"`
}

// AssistantMessage is the assistant turn holding tool calls.
type AssistantMessage struct {
	Role      string         `json:"role,omitempty"`
	Content   string         `json:"content,omitempty"`
	ToolCalls []ChatToolCall `json:"tool_calls,omitempty"`
}

// ChatToolCall is one tool call in an assistant message.
type ChatToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type,omitempty"`
	Function FunctionCall `json:"function"`
}

// FunctionCall names the function and carries its JSON-encoded arguments.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// chatStructSource extracts from the typed mirror.
type chatStructSource struct {
	resp *ChatResponse
}

func (s chatStructSource) toolCalls() []ToolCall {
	if s.resp == nil || len(s.resp.Choices) == 0 {
		return nil
	}
	raw := s.resp.Choices[0].Message.ToolCalls
	calls := make([]ToolCall, 0, len(raw))
	for _, tc := range raw {
		if tc.Function.Name == "" {
			continue
		}
		calls = append(calls, ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: tc.Function.Arguments})
	}
	return calls
}

// chatMapSource extracts from a decoded map tree.
type chatMapSource struct {
	resp map[string]any
}

func (s chatMapSource) toolCalls() []ToolCall {
	choices, _ := s.resp["choices"].([]any)
	if len(choices) == 0 {
		return nil
	}
	choice, _ := choices[0].(map[string]any)
	message, _ := choice["message"].(map[string]any)
	rawCalls, _ := message["tool_calls"].([]any)

	var calls []ToolCall
	for _, item := range rawCalls {
		tc, _ := item.(map[string]any)
		fn, _ := tc["function"].(map[string]any)
		name, _ := fn["name"].(string)
		if name == "" {
			continue
		}
		id, _ := tc["id"].(string)
		calls = append(calls, ToolCall{ID: id, Name: name, Arguments: argumentsString(fn["arguments"])})
	}
	return calls
}

// chatJSONSource extracts from raw JSON bytes without a full decode.
type chatJSONSource struct {
	data []byte
}

func (s chatJSONSource) toolCalls() []ToolCall {
	var calls []ToolCall
	gjson.GetBytes(s.data, "choices.0.message.tool_calls").ForEach(func(_, tc gjson.Result) bool {
		name := tc.Get("function.name").String()
		if name == "" {
			return true
		}
		args := tc.Get("function.arguments")
		raw := args.String()
		if args.IsObject() {
			// some gateways inline the argument object instead of
			// encoding it as a string
			raw = args.Raw
		}
		calls = append(calls, ToolCall{ID: tc.Get("id").String(), Name: name, Arguments: raw})
		return true
	})
	return calls
}

// --- Anthropic-shaped responses ---

// AnthropicResponse mirrors the slice of an Anthropic message this
// package reads.
type AnthropicResponse struct {
	ID         string           `json:"id,omitempty"`
	Content    []AnthropicBlock `json:"content"`
	StopReason string           `json:"stop_reason,omitempty"`
}

// AnthropicBlock is one content block; tool_use blocks carry an
// invocation with an object-valued input.
type AnthropicBlock struct {
	Type  string          `json:"type"`
	Text  string          `json:"text,omitempty"`
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`
}

type anthropicStructSource struct {
	resp *AnthropicResponse
}

func (s anthropicStructSource) toolCalls() []ToolCall {
	if s.resp == nil {
		return nil
	}
	var calls []ToolCall
	for _, block := range s.resp.Content {
		if block.Type != "tool_use" || block.Name == "" {
			continue
		}
		args := string(block.Input)
		if args == "" {
			args = "{}"
		}
		calls = append(calls, ToolCall{ID: block.ID, Name: block.Name, Arguments: args})
	}
	return calls
}

type anthropicMapSource struct {
	resp map[string]any
}

func (s anthropicMapSource) toolCalls() []ToolCall {
	blocks, _ := s.resp["content"].([]any)
	var calls []ToolCall
	for _, item := range blocks {
		block, _ := item.(map[string]any)
		if t, _ := block["type"].(string); t != "tool_use" {
			continue
		}
		name, _ := block["name"].(string)
		if name == "" {
			continue
		}
		id, _ := block["id"].(string)
		calls = append(calls, ToolCall{ID: id, Name: name, Arguments: argumentsString(block["input"])})
	}
	return calls
}

type anthropicJSONSource struct {
	data []byte
}

func (s anthropicJSONSource) toolCalls() []ToolCall {
	var calls []ToolCall
	gjson.GetBytes(s.data, "content").ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() != "tool_use" {
			return true
		}
		name := block.Get("name").String()
		if name == "" {
			return true
		}
		args := block.Get("input").Raw
		if args == "" {
			args = "{}"
		}
		calls = append(calls, ToolCall{ID: block.Get("id").String(), Name: name, Arguments: args})
		return true
	})
	return calls
}

// argumentsString normalizes an argument value that may arrive as a
// JSON-encoded string or as an already-decoded object.
func argumentsString(v any) string {
	switch args := v.(type) {
	case string:
		return args
	case nil:
		return "{}"
	default:
		b, err := json.Marshal(args)
		if err != nil {
			return "{}"
		}
		return string(b)
	}
}

// openAISource picks the extraction adapter for an OpenAI-shaped
// response value.
func openAISource(response any) (callSource, error) {
	switch v := response.(type) {
	case *ChatResponse:
		return chatStructSource{resp: v}, nil
	case ChatResponse:
		return chatStructSource{resp: &v}, nil
	case map[string]any:
		return chatMapSource{resp: v}, nil
	case []byte:
		return chatJSONSource{data: v}, nil
	case json.RawMessage:
		return chatJSONSource{data: v}, nil
	case string:
		return chatJSONSource{data: []byte(v)}, nil
	default:
		return nil, fmt.Errorf("unsupported response type %T", response)
	}
}

// anthropicSource picks the extraction adapter for an Anthropic-shaped
// response value.
func anthropicSource(response any) (callSource, error) {
	switch v := response.(type) {
	case *AnthropicResponse:
		return anthropicStructSource{resp: v}, nil
	case AnthropicResponse:
		return anthropicStructSource{resp: &v}, nil
	case map[string]any:
		return anthropicMapSource{resp: v}, nil
	case []byte:
		return anthropicJSONSource{data: v}, nil
	case json.RawMessage:
		return anthropicJSONSource{data: v}, nil
	case string:
		return anthropicJSONSource{data: []byte(v)}, nil
	default:
		return nil, fmt.Errorf("unsupported response type %T", response)
	}
}
