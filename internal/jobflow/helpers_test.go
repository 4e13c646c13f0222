package jobflow

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fixedRandom(n int) string { return strings.Repeat("R", n) }

// logSink collects formatted log lines.
type logSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *logSink) add(_, args string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, args)
}

func (s *logSink) all() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...)
}

func newTestTranslator(t *testing.T) (*Translator, *Recorder, *logSink) {
	t.Helper()
	rec := &Recorder{}
	sink := &logSink{}
	tr := New(rec,
		WithLogger(funcr.New(sink.add, funcr.Options{})),
		WithRandom(fixedRandom),
	)
	return tr, rec, sink
}

// writeFiles creates the named files under dir and returns dir.
func writeFiles(t *testing.T, dir string, names ...string) string {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0600))
	}
	return dir
}

// mockUploader is a testify mock of Uploader.
type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, localPath, bucket, key string) error {
	return m.Called(ctx, localPath, bucket, key).Error(0)
}
