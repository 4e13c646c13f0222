package jobflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/kballard/go-shellquote"

	"github.com/imamik/emrer/internal/util/naming"
)

// Uploader stages a local file at bucket/key.
type Uploader interface {
	Upload(ctx context.Context, localPath, bucket, key string) error
}

// Location is where local scripts are staged.
type Location struct {
	Bucket string
	Prefix string
}

// override applies per-directive bucket and prefix settings. A present but
// empty value still overrides.
func (l Location) override(bucket, prefix *string) Location {
	if bucket != nil {
		l.Bucket = *bucket
	}
	if prefix != nil {
		l.Prefix = *prefix
	}
	return l
}

// StagedObject records a local file uploaded during translation.
type StagedObject struct {
	LocalPath string
	Bucket    string
	Key       string
}

// URI returns the s3:// URI of the object.
func (o StagedObject) URI() string {
	return naming.S3URI(o.Bucket, o.Key)
}

// Translator expands job directives into EMR request structures.
type Translator struct {
	uploader Uploader
	log      logr.Logger
	random   func(int) string

	mu     sync.Mutex
	staged []StagedObject
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger sets the logger that receives translation warnings.
func WithLogger(l logr.Logger) Option {
	return func(t *Translator) {
		t.log = l
	}
}

// WithRandom replaces the generator used for random object names.
func WithRandom(random func(int) string) Option {
	return func(t *Translator) {
		t.random = random
	}
}

// New creates a Translator that stages local files through uploader.
func New(uploader Uploader, opts ...Option) *Translator {
	t := &Translator{
		uploader: uploader,
		log:      logr.Discard(),
		random:   naming.RandomString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Staged returns the objects uploaded so far, in upload order.
func (t *Translator) Staged() []StagedObject {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]StagedObject(nil), t.staged...)
}

// stage uploads localPath under loc using the name_on_s3 mode and returns
// its s3:// URI.
func (t *Translator) stage(ctx context.Context, localPath string, loc Location, mode string) (string, error) {
	key := naming.ObjectKey(loc.Prefix, mode, localPath, t.random)
	if err := t.uploader.Upload(ctx, localPath, loc.Bucket, key); err != nil {
		return "", fmt.Errorf("failed to stage %s: %w", localPath, err)
	}

	obj := StagedObject{LocalPath: localPath, Bucket: loc.Bucket, Key: key}
	t.mu.Lock()
	t.staged = append(t.staged, obj)
	t.mu.Unlock()

	return obj.URI(), nil
}

// Recorder is an Uploader that only records what would be uploaded.
type Recorder struct {
	mu      sync.Mutex
	Objects []StagedObject
}

// Upload records the object and checks that the local file exists.
func (r *Recorder) Upload(_ context.Context, localPath, bucket, key string) error {
	info, err := os.Stat(localPath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", localPath)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Objects = append(r.Objects, StagedObject{LocalPath: localPath, Bucket: bucket, Key: key})
	return nil
}

// exactlyOne checks that a single directive out of allowed is present.
func exactlyOne(present, allowed []string) error {
	switch len(present) {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("%w: one of %s is required", ErrNoDirective, strings.Join(allowed, "|"))
	default:
		return fmt.Errorf("%w: only one of %s may be set, got %s",
			ErrConflictingDirectives, strings.Join(allowed, "|"), strings.Join(present, ", "))
	}
}

// splitLine splits a directive value into the target and its inline arguments.
func splitLine(line string) ([]string, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to split %q: %w", line, err)
	}
	return words, nil
}

// defaultName derives an action name from a raw directive value.
func defaultName(value string) string {
	return strings.ReplaceAll(value, " ", "_")
}

// withScheme prefixes scheme unless target already starts with it.
func withScheme(scheme, target string) string {
	if strings.HasPrefix(target, scheme) {
		return target
	}
	return scheme + target
}

// listFiles returns the regular, non-hidden files in dir, sorted by name
// without regard to case.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		// Stat follows symlinks, so a link to a regular file counts.
		info, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}

	sort.SliceStable(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return paths, nil
}
