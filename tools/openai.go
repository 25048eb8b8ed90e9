package tools

import "context"

// OpenAIProcessor handles OpenAI-shaped chat completion responses:
// extract the tool calls, execute the ones that belong to the catalog,
// and build the role="tool" follow-up messages.
type OpenAIProcessor struct {
	tools *Tools
}

// Definitions returns the tool list for the request's "tools" field.
func (p *OpenAIProcessor) Definitions() []OpenAITool {
	return Definitions()
}

// ProcessToolCalls executes the catalog tool calls found in response and
// returns their outcomes. The response may be a *ChatResponse (or value),
// a decoded map[string]any, or raw JSON as []byte, json.RawMessage or
// string. Calls for tools outside the catalog are left to the caller.
// Execution failures become error outcomes, not returned errors; the
// error return covers only unsupported response types.
func (p *OpenAIProcessor) ProcessToolCalls(ctx context.Context, response any) (*Processed, error) {
	source, err := openAISource(response)
	if err != nil {
		return nil, err
	}

	handled, results := p.tools.run(ctx, source.toolCalls())

	processed := &Processed{Handled: handled, Results: results}
	for _, r := range results {
		processed.Messages = append(processed.Messages, ToolMessage{
			Role:       "tool",
			ToolCallID: r.ToolCallID,
			Content:    outcomeContent(r),
		})
	}
	return processed, nil
}
