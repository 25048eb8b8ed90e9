// Package tools exposes the OpenFiles file operations as callable tools
// for LLM chat APIs. One canonical catalog of descriptors drives the
// OpenAI and Anthropic wire renderings, the membership test and the
// executor; the two renderings are views, never separate copies.
package tools

// Schema is the JSON-schema object describing a tool's parameters.
type Schema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

// Property describes one parameter in a tool schema.
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// Descriptor is one entry in the tool catalog.
type Descriptor struct {
	Name        string
	Description string
	Parameters  Schema
}

// OpenAITool is the OpenAI function-calling rendering of a Descriptor.
type OpenAITool struct {
	Type     string         `json:"type"`
	Function OpenAIFunction `json:"function"`
}

// OpenAIFunction is the nested function object in an OpenAITool.
type OpenAIFunction struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Strict      bool   `json:"strict"`
	Parameters  Schema `json:"parameters"`
}

// AnthropicTool is the Anthropic tool-use rendering of a Descriptor.
type AnthropicTool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"input_schema"`
}

// Supported content type values offered to models in tool schemas.
var contentTypeEnum = []string{
	"text/plain", "text/html", "text/css", "text/csv", "text/markdown",
	"application/json", "application/xml", "application/yaml",
	"application/javascript", "application/pdf",
	"image/png", "image/jpeg", "image/gif", "image/svg+xml", "image/webp",
}

// versionDescription documents the 0-means-latest sentinel. The strict
// schema marks version as a required integer, so "omitted" cannot be
// expressed on the wire; 0 stands in for it.
const versionDescription = "File version to access. Use 0 for the latest version."

// catalog is the fixed, ordered set of file operation tools. Order is
// part of the contract: both wire renderings expose it unchanged.
var catalog = []Descriptor{
	{
		Name:        "write_file",
		Description: "Create a new file with the given content. Fails if the file already exists; use overwrite_file to replace content.",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"path":        {Type: "string", Description: "File path relative to the configured base path, e.g. 'reports/summary.md'"},
				"content":     {Type: "string", Description: "Full content of the file. Base64-encoded when isBase64 is true."},
				"contentType": {Type: "string", Description: "MIME type of the file content", Enum: contentTypeEnum},
				"isBase64":    {Type: "boolean", Description: "Whether content is base64-encoded binary data"},
			},
			Required: []string{"path", "content", "contentType", "isBase64"},
		},
	},
	{
		Name:        "read_file",
		Description: "Read the content of a file, either the latest version or a specific one.",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"path":    {Type: "string", Description: "Path of the file to read"},
				"version": {Type: "integer", Description: versionDescription},
			},
			Required: []string{"path", "version"},
		},
	},
	{
		Name:        "edit_file",
		Description: "Edit a file by replacing an exact string match with new content. The old string must appear in the file.",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"path":      {Type: "string", Description: "Path of the file to edit"},
				"oldString": {Type: "string", Description: "Exact string to find and replace"},
				"newString": {Type: "string", Description: "Replacement string"},
			},
			Required: []string{"path", "oldString", "newString"},
		},
	},
	{
		Name:        "list_files",
		Description: "List files in a directory.",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"directory": {Type: "string", Description: "Directory path to list. Use an empty string for the root."},
				"limit":     {Type: "integer", Description: "Maximum number of files to return"},
				"recursive": {Type: "boolean", Description: "Whether to include files in subdirectories"},
			},
			Required: []string{"directory", "limit", "recursive"},
		},
	},
	{
		Name:        "append_to_file",
		Description: "Append content to the end of an existing file, creating a new version.",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"path":    {Type: "string", Description: "Path of the file to append to"},
				"content": {Type: "string", Description: "Content to append"},
			},
			Required: []string{"path", "content"},
		},
	},
	{
		Name:        "overwrite_file",
		Description: "Replace the entire content of an existing file, creating a new version.",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"path":     {Type: "string", Description: "Path of the file to overwrite"},
				"content":  {Type: "string", Description: "New content of the file. Base64-encoded when isBase64 is true."},
				"isBase64": {Type: "boolean", Description: "Whether content is base64-encoded binary data"},
			},
			Required: []string{"path", "content", "isBase64"},
		},
	},
	{
		Name:        "get_file_metadata",
		Description: "Get metadata for a file (size, content type, timestamps) without its content.",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"path":    {Type: "string", Description: "Path of the file"},
				"version": {Type: "integer", Description: versionDescription},
			},
			Required: []string{"path", "version"},
		},
	},
	{
		Name:        "get_file_versions",
		Description: "Get the version history of a file.",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"path":   {Type: "string", Description: "Path of the file"},
				"limit":  {Type: "integer", Description: "Maximum number of versions to return"},
				"offset": {Type: "integer", Description: "Number of versions to skip"},
			},
			Required: []string{"path", "limit", "offset"},
		},
	},
}

// catalogNames is the membership set derived from the catalog.
var catalogNames = func() map[string]struct{} {
	names := make(map[string]struct{}, len(catalog))
	for _, d := range catalog {
		names[d.Name] = struct{}{}
	}
	return names
}()

// Catalog returns the fixed, ordered tool descriptor list.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

// IsTool reports whether name is one of the catalog's tools.
func IsTool(name string) bool {
	_, ok := catalogNames[name]
	return ok
}

// Definitions renders the catalog in the OpenAI function-calling shape.
func Definitions() []OpenAITool {
	out := make([]OpenAITool, len(catalog))
	for i, d := range catalog {
		out[i] = OpenAITool{
			Type: "function",
			Function: OpenAIFunction{
				Name:        d.Name,
				Description: d.Description,
				Strict:      true,
				Parameters:  d.Parameters,
			},
		}
	}
	return out
}

// AnthropicDefinitions renders the catalog in the Anthropic tool-use shape.
func AnthropicDefinitions() []AnthropicTool {
	out := make([]AnthropicTool, len(catalog))
	for i, d := range catalog {
		out[i] = AnthropicTool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: d.Parameters,
		}
	}
	return out
}
