package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"GardenBot/internal/domain"
	"GardenBot/internal/ports"
)

// Shape names the on-disk layout a post log was read from.
type Shape string

const (
	ShapeMissing Shape = "missing"
	ShapeCurrent Shape = "current"
	ShapeLegacy  Shape = "legacy-map"
	ShapeList    Shape = "legacy-list"
	ShapeBroken  Shape = "broken"
)

// FileStore keeps the post log in a JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ ports.PostStore = (*FileStore)(nil)

// NewFileStore keeps the post log in the JSON file at path.
func NewFileStore(path string, log *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: log}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the log. A missing file is an empty log. An unreadable JSON
// document is copied to <path>.broken and treated as empty; if the copy
// cannot be written Load fails so the original is never overwritten.
func (s *FileStore) Load(ctx context.Context) (domain.PostLog, error) {
	log, _, err := s.LoadShape(ctx)
	return log, err
}

// LoadShape is Load that also reports which layout the file had.
func (s *FileStore) LoadShape(_ context.Context) (domain.PostLog, Shape, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.NewPostLog(), ShapeMissing, nil
		}
		return domain.PostLog{}, "", fmt.Errorf("read post log: %w", err)
	}

	log, shape, err := decodePostLog(data)
	if err != nil {
		brokenPath := s.path + ".broken"
		if copyErr := os.WriteFile(brokenPath, data, 0o644); copyErr != nil {
			return domain.PostLog{}, ShapeBroken, fmt.Errorf("keep broken post log: %w", copyErr)
		}
		s.warn("post log unreadable, starting empty", "path", s.path, "copy", brokenPath, "error", err)
		return domain.NewPostLog(), ShapeBroken, nil
	}
	if shape != ShapeCurrent {
		s.info("legacy post log migrated in memory", "path", s.path, "shape", shape, "links", len(log.PublishedLinks))
	}
	return log, shape, nil
}

// Save writes the current shape atomically through a temp file.
func (s *FileStore) Save(_ context.Context, log domain.PostLog) error {
	data, err := encodePostLog(log)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create post log directory: %w", err)
		}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp post log: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp post log: %w", err)
	}
	return nil
}

// decodePostLog accepts the current object, a bare url->true object, or the
// plain url list written by the first bot version.
func decodePostLog(data []byte) (domain.PostLog, Shape, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return domain.PostLog{}, "", errors.New("empty document")
	}

	if trimmed[0] == '[' {
		var urls []string
		if err := json.Unmarshal(trimmed, &urls); err != nil {
			return domain.PostLog{}, "", fmt.Errorf("decode url list: %w", err)
		}
		log := domain.NewPostLog()
		for _, u := range urls {
			log.PublishedLinks[u] = true
		}
		log.PostsCount = len(log.PublishedLinks)
		return log, ShapeList, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return domain.PostLog{}, "", fmt.Errorf("decode post log: %w", err)
	}

	_, hasCount := fields["postsCount"]
	_, hasLinks := fields["publishedLinks"]
	if hasCount || hasLinks {
		var log domain.PostLog
		if err := json.Unmarshal(trimmed, &log); err != nil {
			return domain.PostLog{}, "", fmt.Errorf("decode post log: %w", err)
		}
		if log.PublishedLinks == nil {
			log.PublishedLinks = map[string]bool{}
		}
		if !hasCount {
			log.PostsCount = len(log.PublishedLinks)
		}
		return log, ShapeCurrent, nil
	}

	legacy := make(map[string]bool, len(fields))
	if err := json.Unmarshal(trimmed, &legacy); err != nil {
		return domain.PostLog{}, "", fmt.Errorf("decode legacy post log: %w", err)
	}
	return domain.PostLog{PostsCount: len(legacy), PublishedLinks: legacy}, ShapeLegacy, nil
}

func encodePostLog(log domain.PostLog) ([]byte, error) {
	if log.PublishedLinks == nil {
		log.PublishedLinks = map[string]bool{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(log); err != nil {
		return nil, fmt.Errorf("marshal post log: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *FileStore) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *FileStore) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
