package level

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/gridcrawl/internal/telemetry"
)

// LoadError records a level file that could not be loaded.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load level %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadFile reads and decodes a single level. The file path doubles as the
// level name.
func LoadFile(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}
	return Decode(name, data)
}

// LoadDir walks fsys and loads every .lvl file into a new registry.
// A file that fails to load is reported in the returned slice and skipped;
// the remaining levels still load. The error is non-nil only when the
// directory itself cannot be walked.
func LoadDir(ctx context.Context, fsys fs.FS) (*Registry, []*LoadError, error) {
	tracer := telemetry.Tracer("level")
	_, span := tracer.Start(ctx, "level.load")
	defer span.End()

	registry := NewRegistry()
	var failures []*LoadError

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsLevelFile(name) {
			return nil
		}

		l, err := LoadFile(fsys, name)
		if err != nil {
			failures = append(failures, &LoadError{Name: name, Err: err})
			return nil
		}
		registry.Add(l)
		return nil
	})

	span.SetAttributes(
		attribute.Int("level.count", registry.Count()),
		attribute.Int("level.failures", len(failures)),
	)

	if err != nil {
		span.SetAttributes(attribute.Bool("failed", true))
		return nil, failures, fmt.Errorf("walking level directory: %w", err)
	}
	return registry, failures, nil
}

// Reload decodes name from fsys again and replaces it in the registry.
// On failure the registry keeps the previous version.
func (r *Registry) Reload(fsys fs.FS, name string) error {
	l, err := LoadFile(fsys, name)
	if err != nil {
		return &LoadError{Name: name, Err: err}
	}
	r.Add(l)
	return nil
}

// IsLevelFile reports whether name has the level file extension.
func IsLevelFile(name string) bool {
	return strings.EqualFold(path.Ext(name), Extension)
}

// JoinLoadErrors combines load failures into a single error, or nil.
func JoinLoadErrors(failures []*LoadError) error {
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
