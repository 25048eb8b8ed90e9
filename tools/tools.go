package tools

import (
	"context"
	"encoding/json"
	"time"

	"openfiles/core"
)

// FileOperation describes one completed file operation, delivered to the
// OnFileOperation callback.
type FileOperation struct {
	Action  string
	Path    string
	Version int
	Success bool
	Error   string
}

// ToolExecution describes one tool call attempt, delivered to the
// OnToolExecution callback.
type ToolExecution struct {
	ToolCallID string
	Function   string
	Success    bool
	Error      string
	Duration   time.Duration
}

type callbacks struct {
	onFileOperation func(FileOperation)
	onToolExecution func(ToolExecution)
	onError         func(error)
}

// Tools binds the tool catalog to a transport client and exposes one
// processor per provider wire format. A Tools value is immutable after
// construction; WithBasePath derives a narrowed copy.
type Tools struct {
	OpenAI    *OpenAIProcessor
	Anthropic *AnthropicProcessor

	client    Client
	basePath  string
	callbacks callbacks
}

// Option configures a Tools value at construction time.
type Option func(*Tools)

// WithBasePath scopes every tool operation under the given path prefix.
func WithBasePath(p string) Option {
	return func(t *Tools) { t.basePath = core.ResolvePath("", "", p) }
}

// WithOnFileOperation registers a callback invoked after each file
// operation a tool call performs.
func WithOnFileOperation(fn func(FileOperation)) Option {
	return func(t *Tools) { t.callbacks.onFileOperation = fn }
}

// WithOnToolExecution registers a callback invoked after each tool call
// attempt, successful or not.
func WithOnToolExecution(fn func(ToolExecution)) Option {
	return func(t *Tools) { t.callbacks.onToolExecution = fn }
}

// WithOnError registers a callback invoked with each tool execution error.
func WithOnError(fn func(error)) Option {
	return func(t *Tools) { t.callbacks.onError = fn }
}

// New creates a Tools value over the given client.
func New(c Client, opts ...Option) *Tools {
	t := &Tools{client: c}
	for _, opt := range opts {
		opt(t)
	}
	t.OpenAI = &OpenAIProcessor{tools: t}
	t.Anthropic = &AnthropicProcessor{tools: t}
	return t
}

// WithBasePath returns a derived Tools value whose base path is this
// value's base path joined with p. The receiver is unchanged.
func (t *Tools) WithBasePath(p string) *Tools {
	derived := New(t.client,
		WithOnFileOperation(t.callbacks.onFileOperation),
		WithOnToolExecution(t.callbacks.onToolExecution),
		WithOnError(t.callbacks.onError),
	)
	derived.basePath = core.ResolvePath(t.basePath, "", p)
	return derived
}

// BasePath returns the path prefix tool operations are scoped under.
func (t *Tools) BasePath() string { return t.basePath }

// Execute runs one tool call by name against the transport client. An
// unknown name fails with *UnknownToolError. Errors are never recovered
// here; ProcessToolCalls is the recovery boundary.
func (t *Tools) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	if !IsTool(name) {
		return nil, &UnknownToolError{Name: name}
	}
	return execute(ctx, t.client, name, args, t.basePath)
}

// run drives the shared filter/execute/record loop over extracted calls.
// Calls outside the catalog are skipped without producing outcomes.
// Execution is sequential: later calls in one batch may depend on files
// created by earlier ones. Cancellation stops the batch; outcomes
// already produced remain valid.
func (t *Tools) run(ctx context.Context, calls []ToolCall) (bool, []Result) {
	handled := false
	var results []Result

	for _, call := range calls {
		if !IsTool(call.Name) {
			continue
		}
		handled = true
		if ctx.Err() != nil {
			break
		}

		start := time.Now()
		result := t.runOne(ctx, call)
		t.notify(result, time.Since(start))
		results = append(results, result)
	}

	return handled, results
}

// runOne executes a single catalog call, converting any failure into an
// error Result.
func (t *Tools) runOne(ctx context.Context, call ToolCall) Result {
	result := Result{ToolCallID: call.ID, Function: call.Name}

	var args map[string]any
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		result.Status = StatusError
		result.Error = "invalid tool arguments: " + err.Error()
		return result
	}

	data, err := execute(ctx, t.client, call.Name, args, t.basePath)
	if err != nil {
		result.Status = StatusError
		result.Error = err.Error()
		return result
	}

	result.Status = StatusSuccess
	result.Data = data
	return result
}

// notify fans one result out to the registered callbacks.
func (t *Tools) notify(r Result, d time.Duration) {
	if t.callbacks.onToolExecution != nil {
		t.callbacks.onToolExecution(ToolExecution{
			ToolCallID: r.ToolCallID,
			Function:   r.Function,
			Success:    r.Status == StatusSuccess,
			Error:      r.Error,
			Duration:   d,
		})
	}
	if t.callbacks.onFileOperation != nil {
		op := FileOperation{
			Action:  r.Function,
			Success: r.Status == StatusSuccess,
			Error:   r.Error,
		}
		switch data := r.Data.(type) {
		case *core.FileMetadata:
			op.Path = data.Path
			op.Version = data.Version
		case map[string]any:
			op.Path, _ = data["path"].(string)
			if v, ok := data["version"].(int); ok {
				op.Version = v
			}
		}
		t.callbacks.onFileOperation(op)
	}
	if t.callbacks.onError != nil && r.Status == StatusError {
		t.callbacks.onError(&ExecutionError{ToolCallID: r.ToolCallID, Function: r.Function, Message: r.Error})
	}
}

// ExecutionError is the error form of a failed tool call delivered to
// the OnError callback.
type ExecutionError struct {
	ToolCallID string
	Function   string
	Message    string
}

func (e *ExecutionError) Error() string {
	return "tool call " + e.ToolCallID + " (" + e.Function + ") failed: " + e.Message
}
