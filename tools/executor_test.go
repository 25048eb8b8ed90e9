package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openfiles/core"
)

// fakeClient records the typed requests the executor builds and returns
// canned results.
type fakeClient struct {
	writeReq     *core.WriteFileRequest
	readReq      *core.ReadFileRequest
	editReq      *core.EditFileRequest
	listReq      *core.ListFilesRequest
	appendReq    *core.AppendFileRequest
	overwriteReq *core.OverwriteFileRequest
	metadataReq  *core.GetMetadataRequest
	versionsReq  *core.GetVersionsRequest

	err     error
	content string
	calls   []string
}

func (f *fakeClient) meta(path string) *core.FileMetadata {
	return &core.FileMetadata{ID: "f-1", Path: path, Version: 1, ContentType: "text/plain"}
}

func (f *fakeClient) WriteFile(_ context.Context, req core.WriteFileRequest) (*core.FileMetadata, error) {
	f.writeReq = &req
	f.calls = append(f.calls, "write_file")
	if f.err != nil {
		return nil, f.err
	}
	return f.meta(req.Path), nil
}

func (f *fakeClient) ReadFile(_ context.Context, req core.ReadFileRequest) (*core.FileContent, error) {
	f.readReq = &req
	f.calls = append(f.calls, "read_file")
	if f.err != nil {
		return nil, f.err
	}
	content := f.content
	if content == "" {
		content = "hello"
	}
	return &core.FileContent{Path: req.Path, Content: content, Version: 3}, nil
}

func (f *fakeClient) EditFile(_ context.Context, req core.EditFileRequest) (*core.FileMetadata, error) {
	f.editReq = &req
	f.calls = append(f.calls, "edit_file")
	if f.err != nil {
		return nil, f.err
	}
	return f.meta(req.Path), nil
}

func (f *fakeClient) ListFiles(_ context.Context, req core.ListFilesRequest) (*core.FileList, error) {
	f.listReq = &req
	f.calls = append(f.calls, "list_files")
	if f.err != nil {
		return nil, f.err
	}
	return &core.FileList{Files: []core.FileMetadata{*f.meta("a.txt")}, Total: 1}, nil
}

func (f *fakeClient) AppendFile(_ context.Context, req core.AppendFileRequest) (*core.FileMetadata, error) {
	f.appendReq = &req
	f.calls = append(f.calls, "append_to_file")
	if f.err != nil {
		return nil, f.err
	}
	return f.meta(req.Path), nil
}

func (f *fakeClient) OverwriteFile(_ context.Context, req core.OverwriteFileRequest) (*core.FileMetadata, error) {
	f.overwriteReq = &req
	f.calls = append(f.calls, "overwrite_file")
	if f.err != nil {
		return nil, f.err
	}
	return f.meta(req.Path), nil
}

func (f *fakeClient) GetMetadata(_ context.Context, req core.GetMetadataRequest) (*core.FileMetadata, error) {
	f.metadataReq = &req
	f.calls = append(f.calls, "get_file_metadata")
	if f.err != nil {
		return nil, f.err
	}
	return f.meta(req.Path), nil
}

func (f *fakeClient) GetVersions(_ context.Context, req core.GetVersionsRequest) (*core.VersionList, error) {
	f.versionsReq = &req
	f.calls = append(f.calls, "get_file_versions")
	if f.err != nil {
		return nil, f.err
	}
	return &core.VersionList{Versions: []core.FileVersion{{Version: 1}}, Total: 1}, nil
}

func TestExecute_WriteFile(t *testing.T) {
	fake := &fakeClient{}
	args := map[string]any{
		"path":        "notes.txt",
		"content":     "hello",
		"contentType": "text/markdown",
		"isBase64":    false,
	}

	_, err := execute(context.Background(), fake, "write_file", args, "proj")
	require.NoError(t, err)
	require.NotNil(t, fake.writeReq)
	assert.Equal(t, "notes.txt", fake.writeReq.Path)
	assert.Equal(t, "hello", fake.writeReq.Content)
	assert.Equal(t, core.ContentType("text/markdown"), fake.writeReq.ContentType)
	assert.False(t, fake.writeReq.IsBase64)
	assert.Equal(t, "proj", fake.writeReq.BasePath)
}

func TestExecute_ReadFile_Reshape(t *testing.T) {
	fake := &fakeClient{content: "file body"}
	args := map[string]any{"path": "notes.txt", "version": float64(2)}

	data, err := execute(context.Background(), fake, "read_file", args, "")
	require.NoError(t, err)
	require.NotNil(t, fake.readReq)
	assert.Equal(t, 2, fake.readReq.Version)

	reshaped, ok := data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "notes.txt", reshaped["path"])
	assert.Equal(t, "file body", reshaped["content"])
	assert.Equal(t, 2, reshaped["version"])
}

func TestExecute_ReadFile_VersionSentinel(t *testing.T) {
	fake := &fakeClient{}
	args := map[string]any{"path": "notes.txt", "version": float64(0)}

	data, err := execute(context.Background(), fake, "read_file", args, "")
	require.NoError(t, err)
	assert.Equal(t, 0, fake.readReq.Version)

	reshaped := data.(map[string]any)
	assert.Equal(t, 0, reshaped["version"])
}

func TestExecute_EditFile(t *testing.T) {
	fake := &fakeClient{}
	args := map[string]any{"path": "notes.txt", "oldString": "old", "newString": "new"}

	_, err := execute(context.Background(), fake, "edit_file", args, "")
	require.NoError(t, err)
	require.NotNil(t, fake.editReq)
	assert.Equal(t, "old", fake.editReq.OldString)
	assert.Equal(t, "new", fake.editReq.NewString)
}

func TestExecute_ListFiles(t *testing.T) {
	fake := &fakeClient{}
	args := map[string]any{"directory": "docs", "limit": float64(25), "recursive": true}

	_, err := execute(context.Background(), fake, "list_files", args, "proj")
	require.NoError(t, err)
	require.NotNil(t, fake.listReq)
	assert.Equal(t, "docs", fake.listReq.Directory)
	assert.Equal(t, 25, fake.listReq.Limit)
	assert.True(t, fake.listReq.Recursive)
	assert.Equal(t, "proj", fake.listReq.BasePath)
}

func TestExecute_AppendToFile(t *testing.T) {
	fake := &fakeClient{}
	args := map[string]any{"path": "notes.txt", "content": " more"}

	_, err := execute(context.Background(), fake, "append_to_file", args, "")
	require.NoError(t, err)
	require.NotNil(t, fake.appendReq)
	assert.Equal(t, " more", fake.appendReq.Content)
}

func TestExecute_OverwriteFile(t *testing.T) {
	fake := &fakeClient{}
	args := map[string]any{"path": "notes.txt", "content": "fresh", "isBase64": true}

	_, err := execute(context.Background(), fake, "overwrite_file", args, "")
	require.NoError(t, err)
	require.NotNil(t, fake.overwriteReq)
	assert.Equal(t, "fresh", fake.overwriteReq.Content)
	assert.True(t, fake.overwriteReq.IsBase64)
}

func TestExecute_GetFileMetadata(t *testing.T) {
	fake := &fakeClient{}
	args := map[string]any{"path": "notes.txt", "version": float64(1)}

	_, err := execute(context.Background(), fake, "get_file_metadata", args, "")
	require.NoError(t, err)
	require.NotNil(t, fake.metadataReq)
	assert.Equal(t, 1, fake.metadataReq.Version)
}

func TestExecute_GetFileVersions(t *testing.T) {
	fake := &fakeClient{}
	args := map[string]any{"path": "notes.txt", "limit": float64(5), "offset": float64(10)}

	_, err := execute(context.Background(), fake, "get_file_versions", args, "")
	require.NoError(t, err)
	require.NotNil(t, fake.versionsReq)
	assert.Equal(t, 5, fake.versionsReq.Limit)
	assert.Equal(t, 10, fake.versionsReq.Offset)
}

func TestExecute_UnknownTool(t *testing.T) {
	fake := &fakeClient{}
	_, err := execute(context.Background(), fake, "get_weather", map[string]any{}, "")
	require.Error(t, err)
	var unknown *UnknownToolError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "get_weather", unknown.Name)
	assert.Empty(t, fake.calls)
}

func TestExecute_PropagatesClientError(t *testing.T) {
	fake := &fakeClient{err: core.NewNotFoundError("read_file", "gone.txt", "file not found: gone.txt")}
	_, err := execute(context.Background(), fake, "read_file", map[string]any{"path": "gone.txt"}, "")
	require.Error(t, err)
	var typed *core.Error
	require.ErrorAs(t, err, &typed)
	assert.Equal(t, core.ErrKindNotFound, typed.Kind)
}

func TestIntArg(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want int
	}{
		{"float64", map[string]any{"v": float64(7)}, 7},
		{"int", map[string]any{"v": 7}, 7},
		{"missing", map[string]any{}, 0},
		{"wrong type", map[string]any{"v": "seven"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := intArg(tt.args, "v"); got != tt.want {
				t.Errorf("intArg = %d, want %d", got, tt.want)
			}
		})
	}
}
