package tools

import "context"

// AnthropicProcessor handles Anthropic-shaped message responses: extract
// the tool_use blocks, execute the ones that belong to the catalog, and
// build the tool_result follow-up message.
type AnthropicProcessor struct {
	tools *Tools
}

// Definitions returns the tool list for the request's "tools" field.
func (p *AnthropicProcessor) Definitions() []AnthropicTool {
	return AnthropicDefinitions()
}

// ProcessToolCalls executes the catalog tool calls found in response and
// returns their outcomes. The response may be an *AnthropicResponse (or
// value), a decoded map[string]any, or raw JSON as []byte,
// json.RawMessage or string. All outcomes of the batch are packed into a
// single user message, one tool_result block per call in call order, as
// the messages API requires. Execution failures become error outcomes;
// the error return covers only unsupported response types.
func (p *AnthropicProcessor) ProcessToolCalls(ctx context.Context, response any) (*AnthropicProcessed, error) {
	source, err := anthropicSource(response)
	if err != nil {
		return nil, err
	}

	handled, results := p.tools.run(ctx, source.toolCalls())

	processed := &AnthropicProcessed{Handled: handled, Results: results}
	if len(results) > 0 {
		msg := AnthropicMessage{Role: "user"}
		for _, r := range results {
			msg.Content = append(msg.Content, ToolResultBlock{
				Type:      "tool_result",
				ToolUseID: r.ToolCallID,
				Content:   outcomeContent(r),
			})
		}
		processed.Messages = []AnthropicMessage{msg}
	}
	return processed, nil
}
