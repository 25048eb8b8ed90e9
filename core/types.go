// Package core provides the OpenFiles transport client, path resolution
// and the typed error taxonomy shared by the rest of the SDK.
package core

import (
	"encoding/json"
	"time"
)

// ContentType is a MIME type accepted by the OpenFiles API.
type ContentType string

// Content types supported by the file API.
const (
	ContentTypeText     ContentType = "text/plain"
	ContentTypeHTML     ContentType = "text/html"
	ContentTypeCSS      ContentType = "text/css"
	ContentTypeCSV      ContentType = "text/csv"
	ContentTypeMarkdown ContentType = "text/markdown"
	ContentTypeJSON     ContentType = "application/json"
	ContentTypeXML      ContentType = "application/xml"
	ContentTypeYAML     ContentType = "application/yaml"
	ContentTypeJS       ContentType = "application/javascript"
	ContentTypePDF      ContentType = "application/pdf"
	ContentTypePNG      ContentType = "image/png"
	ContentTypeJPEG     ContentType = "image/jpeg"
	ContentTypeGIF      ContentType = "image/gif"
	ContentTypeSVG      ContentType = "image/svg+xml"
	ContentTypeWebP     ContentType = "image/webp"
)

// FileMetadata describes one version of a remote file, without content.
type FileMetadata struct {
	ID          string    `json:"id"`
	Path        string    `json:"path"`
	Version     int       `json:"version"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FileContent is the payload returned by a read: metadata plus content.
// Binary files carry base64-encoded content.
type FileContent struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Content   string    `json:"content"`
	Version   int       `json:"version"`
	MimeType  string    `json:"mimeType"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FileList is one page of a directory listing.
type FileList struct {
	Files  []FileMetadata `json:"files"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// FileVersion is one entry in a file's version history.
type FileVersion struct {
	Version   int       `json:"version"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// VersionList is one page of a file's version history.
type VersionList struct {
	File     FileMetadata  `json:"file"`
	Versions []FileVersion `json:"versions"`
	Total    int           `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// APIError is the error object inside a failure envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiResponse is the envelope every OpenFiles endpoint responds with.
type apiResponse struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Operation string          `json:"operation,omitempty"`
	Message   string          `json:"message,omitempty"`
	Error     *APIError       `json:"error,omitempty"`
}

// WriteFileRequest creates a new file. Writing to an existing path is
// rejected by the service; use OverwriteFile to replace content.
type WriteFileRequest struct {
	Path        string
	Content     string
	ContentType ContentType // defaults to text/plain
	IsBase64    bool
	BasePath    string // per-call base path override
}

// ReadFileRequest reads file content. Version 0 means latest.
type ReadFileRequest struct {
	Path     string
	Version  int
	BasePath string
}

// EditFileRequest performs a find/replace edit on a file.
type EditFileRequest struct {
	Path      string
	OldString string
	NewString string
	BasePath  string
}

// ListFilesRequest lists files under a directory prefix.
type ListFilesRequest struct {
	Directory string
	Limit     int
	Offset    int
	Recursive bool
	BasePath  string
}

// AppendFileRequest appends content to an existing file.
type AppendFileRequest struct {
	Path     string
	Content  string
	BasePath string
}

// OverwriteFileRequest replaces the entire content of an existing file.
type OverwriteFileRequest struct {
	Path        string
	Content     string
	ContentType ContentType
	IsBase64    bool
	BasePath    string
}

// GetMetadataRequest fetches metadata without content. Version 0 means latest.
type GetMetadataRequest struct {
	Path     string
	Version  int
	BasePath string
}

// GetVersionsRequest fetches a file's version history.
type GetVersionsRequest struct {
	Path     string
	Limit    int
	Offset   int
	BasePath string
}
