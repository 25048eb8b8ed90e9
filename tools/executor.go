package tools

import (
	"context"
	"encoding/json"

	"openfiles/core"
)

// Client is the slice of the transport client the executor needs. It is
// implemented by *core.Client and by test fakes.
type Client interface {
	WriteFile(ctx context.Context, req core.WriteFileRequest) (*core.FileMetadata, error)
	ReadFile(ctx context.Context, req core.ReadFileRequest) (*core.FileContent, error)
	EditFile(ctx context.Context, req core.EditFileRequest) (*core.FileMetadata, error)
	ListFiles(ctx context.Context, req core.ListFilesRequest) (*core.FileList, error)
	AppendFile(ctx context.Context, req core.AppendFileRequest) (*core.FileMetadata, error)
	OverwriteFile(ctx context.Context, req core.OverwriteFileRequest) (*core.FileMetadata, error)
	GetMetadata(ctx context.Context, req core.GetMetadataRequest) (*core.FileMetadata, error)
	GetVersions(ctx context.Context, req core.GetVersionsRequest) (*core.VersionList, error)
}

// UnknownToolError reports a tool name absent from the catalog. This is a
// local catalog-mismatch error, not a transport error: it is never
// retried and never reaches the error classifier.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "unknown tool: " + e.Name
}

// execute maps one tool invocation onto the transport client: translate
// the wire-format argument names to typed request fields, normalize the
// version sentinel, and forward the per-batch base path override. Errors
// propagate untouched; the processors convert them to outcomes.
func execute(ctx context.Context, c Client, name string, args map[string]any, basePath string) (any, error) {
	switch name {
	case "write_file":
		return c.WriteFile(ctx, core.WriteFileRequest{
			Path:        stringArg(args, "path"),
			Content:     stringArg(args, "content"),
			ContentType: core.ContentType(stringArg(args, "contentType")),
			IsBase64:    boolArg(args, "isBase64"),
			BasePath:    basePath,
		})

	case "read_file":
		path := stringArg(args, "path")
		// version 0 is the wire sentinel for "latest"; the client treats
		// 0 as no specific version, and the reshaped result echoes the
		// requested value back so the model sees the version it asked for
		version := intArg(args, "version")
		content, err := c.ReadFile(ctx, core.ReadFileRequest{
			Path:     path,
			Version:  version,
			BasePath: basePath,
		})
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"path":    path,
			"content": content.Content,
			"version": version,
		}, nil

	case "edit_file":
		return c.EditFile(ctx, core.EditFileRequest{
			Path:      stringArg(args, "path"),
			OldString: stringArg(args, "oldString"),
			NewString: stringArg(args, "newString"),
			BasePath:  basePath,
		})

	case "list_files":
		return c.ListFiles(ctx, core.ListFilesRequest{
			Directory: stringArg(args, "directory"),
			Limit:     intArg(args, "limit"),
			Recursive: boolArg(args, "recursive"),
			BasePath:  basePath,
		})

	case "append_to_file":
		return c.AppendFile(ctx, core.AppendFileRequest{
			Path:     stringArg(args, "path"),
			Content:  stringArg(args, "content"),
			BasePath: basePath,
		})

	case "overwrite_file":
		return c.OverwriteFile(ctx, core.OverwriteFileRequest{
			Path:        stringArg(args, "path"),
			Content:     stringArg(args, "content"),
			ContentType: core.ContentType(stringArg(args, "contentType")),
			IsBase64:    boolArg(args, "isBase64"),
			BasePath:    basePath,
		})

	case "get_file_metadata":
		return c.GetMetadata(ctx, core.GetMetadataRequest{
			Path:     stringArg(args, "path"),
			Version:  intArg(args, "version"),
			BasePath: basePath,
		})

	case "get_file_versions":
		return c.GetVersions(ctx, core.GetVersionsRequest{
			Path:     stringArg(args, "path"),
			Limit:    intArg(args, "limit"),
			Offset:   intArg(args, "offset"),
			BasePath: basePath,
		})

	default:
		return nil, &UnknownToolError{Name: name}
	}
}

// stringArg reads a string argument, tolerating absence.
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// intArg reads an integer argument. JSON decoding yields float64 for
// numbers; models occasionally send numeric strings too.
func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}

// boolArg reads a boolean argument, tolerating absence.
func boolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}
