package mockserver

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"openfiles/core"
)

// Store errors, mapped to HTTP responses by the server.
var (
	ErrNotFound       = errors.New("file not found")
	ErrExists         = errors.New("file already exists")
	ErrStringNotFound = errors.New("String not found in file")
	ErrBadVersion     = errors.New("version not found")
)

// fileRecord is one stored version of a file.
type fileRecord struct {
	id          string
	content     string
	contentType string
	isBase64    bool
	createdAt   time.Time
}

// MemoryStore keeps versioned files in process memory. Each path maps to
// its version history in ascending order; version numbers are 1-based
// indexes into that history. Data survives across requests but not
// process restarts.
type MemoryStore struct {
	mu    sync.RWMutex
	files map[string][]fileRecord
	clock func() time.Time
}

// NewMemoryStore creates an empty in-memory file store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		files: make(map[string][]fileRecord),
		clock: time.Now,
	}
}

// Write creates a new file at path. Writing to an existing path fails;
// replacing content is Overwrite's job.
func (s *MemoryStore) Write(path, content, contentType string, isBase64 bool) (*core.FileMetadata, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if contentType == "" {
		contentType = "text/plain"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.files[path]; exists {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}
	rec := fileRecord{
		id:          uuid.NewString(),
		content:     content,
		contentType: contentType,
		isBase64:    isBase64,
		createdAt:   s.clock().UTC(),
	}
	s.files[path] = []fileRecord{rec}
	return s.metadataLocked(path, 1), nil
}

// Read returns the content of a file. Version 0 means latest.
func (s *MemoryStore) Read(path string, version int) (*core.FileContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, v, err := s.versionLocked(path, version)
	if err != nil {
		return nil, err
	}
	return &core.FileContent{
		ID:        rec.id,
		Path:      path,
		Content:   rec.content,
		Version:   v,
		MimeType:  rec.contentType,
		Size:      int64(len(rec.content)),
		CreatedAt: s.files[path][0].createdAt,
		UpdatedAt: rec.createdAt,
	}, nil
}

// Edit replaces the first exact occurrence of oldString with newString,
// producing a new version.
func (s *MemoryStore) Edit(path, oldString, newString string) (*core.FileMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	latest := history[len(history)-1]
	if !strings.Contains(latest.content, oldString) {
		return nil, ErrStringNotFound
	}
	return s.appendVersionLocked(path, strings.Replace(latest.content, oldString, newString, 1), latest), nil
}

// Append adds content to the end of the file, producing a new version.
func (s *MemoryStore) Append(path, content string) (*core.FileMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	latest := history[len(history)-1]
	return s.appendVersionLocked(path, latest.content+content, latest), nil
}

// Overwrite replaces the entire content of an existing file, producing a
// new version.
func (s *MemoryStore) Overwrite(path, content, contentType string, isBase64 bool) (*core.FileMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	latest := history[len(history)-1]
	next := fileRecord{
		id:          uuid.NewString(),
		content:     content,
		contentType: latest.contentType,
		isBase64:    isBase64,
		createdAt:   s.clock().UTC(),
	}
	if contentType != "" {
		next.contentType = contentType
	}
	s.files[path] = append(history, next)
	return s.metadataLocked(path, len(history)+1), nil
}

// List returns latest-version metadata for files under directory,
// ordered by path. A non-recursive listing excludes files nested in
// subdirectories of directory.
func (s *MemoryStore) List(directory string, limit, offset int, recursive bool) (*core.FileList, error) {
	if limit <= 0 {
		limit = 100
	}
	prefix := strings.Trim(directory, "/")
	if prefix != "" {
		prefix += "/"
	}

	s.mu.RLock()
	var paths []string
	for path := range s.files {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if !recursive && strings.Contains(path[len(prefix):], "/") {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	files := make([]core.FileMetadata, 0, len(paths))
	for _, path := range paths {
		files = append(files, *s.metadataLocked(path, len(s.files[path])))
	}
	s.mu.RUnlock()

	total := len(files)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return &core.FileList{Files: files[offset:end], Total: total, Limit: limit, Offset: offset}, nil
}

// Metadata returns metadata for a file version without its content.
// Version 0 means latest.
func (s *MemoryStore) Metadata(path string, version int) (*core.FileMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, v, err := s.versionLocked(path, version)
	if err != nil {
		return nil, err
	}
	return s.metadataLocked(path, v), nil
}

// Versions returns the version history of a file, newest first.
func (s *MemoryStore) Versions(path string, limit, offset int) (*core.VersionList, error) {
	if limit <= 0 {
		limit = 10
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	versions := make([]core.FileVersion, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		versions = append(versions, core.FileVersion{
			Version:   i + 1,
			Size:      int64(len(history[i].content)),
			CreatedAt: history[i].createdAt,
		})
	}

	total := len(versions)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return &core.VersionList{
		File:     *s.metadataLocked(path, len(history)),
		Versions: versions[offset:end],
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// appendVersionLocked stores content as a new version of an existing
// file, carrying forward contentType and isBase64 from the previous
// latest record. Callers hold the write lock.
func (s *MemoryStore) appendVersionLocked(path, content string, latest fileRecord) *core.FileMetadata {
	next := fileRecord{
		id:          uuid.NewString(),
		content:     content,
		contentType: latest.contentType,
		isBase64:    latest.isBase64,
		createdAt:   s.clock().UTC(),
	}
	s.files[path] = append(s.files[path], next)
	return s.metadataLocked(path, len(s.files[path]))
}

// versionLocked resolves a version number to its record. Callers hold at
// least the read lock.
func (s *MemoryStore) versionLocked(path string, version int) (fileRecord, int, error) {
	history, ok := s.files[path]
	if !ok {
		return fileRecord{}, 0, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if version == 0 {
		version = len(history)
	}
	if version < 1 || version > len(history) {
		return fileRecord{}, 0, fmt.Errorf("%w: %s v%d", ErrBadVersion, path, version)
	}
	return history[version-1], version, nil
}

// metadataLocked builds metadata for an existing version. Callers hold
// at least the read lock.
func (s *MemoryStore) metadataLocked(path string, version int) *core.FileMetadata {
	history := s.files[path]
	rec := history[version-1]
	return &core.FileMetadata{
		ID:          rec.id,
		Path:        path,
		Version:     version,
		ContentType: rec.contentType,
		SizeBytes:   int64(len(rec.content)),
		CreatedAt:   history[0].createdAt,
		UpdatedAt:   rec.createdAt,
	}
}
