// Package storage persists a task list as a single snapshot file.
//
// The file holds both the active and archived sequences. Every save rewrites
// the whole file through a temporary file and a rename, so a reader never
// sees a partial write. Writers serialize on a lock file beside the data file.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amonks/duchess/task"
	"gopkg.in/yaml.v3"
)

var (
	// ErrSave is returned when the snapshot file cannot be written.
	ErrSave = errors.New("failed to save tasks")

	// ErrLoad is returned when the snapshot file cannot be read or parsed.
	ErrLoad = errors.New("failed to load tasks")

	// ErrLoadAndSave is returned when the snapshot file cannot be read and
	// its directory cannot be created either, so saving will fail too.
	ErrLoadAndSave = errors.New("cannot load or save tasks")

	// ErrUnsupportedFormat is returned for file extensions with no codec.
	ErrUnsupportedFormat = errors.New("unsupported storage format")
)

// document is the on-disk layout.
type document struct {
	Tasks   []task.Record `json:"tasks" yaml:"tasks"`
	Archive []task.Record `json:"archive" yaml:"archive"`
}

type codec interface {
	marshal(doc document) ([]byte, error)
	unmarshal(data []byte, doc *document) error
}

type jsonCodec struct{}

func (jsonCodec) marshal(doc document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) unmarshal(data []byte, doc *document) error {
	return json.Unmarshal(data, doc)
}

type yamlCodec struct{}

func (yamlCodec) marshal(doc document) ([]byte, error) {
	return yaml.Marshal(doc)
}

func (yamlCodec) unmarshal(data []byte, doc *document) error {
	return yaml.Unmarshal(data, doc)
}

// Format names a codec.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q (expected .json, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// File stores tasks at a path.
type File struct {
	path   string
	format Format
	codec  codec
}

// Open returns a File for path. The file itself is not touched until Load or Save.
func Open(path string) (*File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	file := &File{path: path, format: format}
	switch format {
	case FormatYAML:
		file.codec = yamlCodec{}
	default:
		file.codec = jsonCodec{}
	}
	return file, nil
}

// Path returns the snapshot file path.
func (f *File) Path() string { return f.path }

// Format returns the codec format in use.
func (f *File) Format() Format { return f.format }

// Save writes the full state of list.
func (f *File) Save(list *task.List) error {
	doc := document{
		Tasks:   task.Records(list.Tasks()),
		Archive: task.Records(list.Archived()),
	}
	data, err := f.codec.marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrSave, err)
	}
	err = withLock(f.path, func() error {
		same, err := unchanged(f.path, data)
		if err != nil || same {
			return err
		}
		return writeAtomic(f.path, data)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

// Load reads the active and archived sequences.
// An empty file loads as an empty list.
func (f *File) Load() ([]task.Task, []task.Task, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !canCreateDir(filepath.Dir(f.path)) {
			return nil, nil, fmt.Errorf("%w: %w", ErrLoadAndSave, err)
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil, nil
	}

	var doc document
	if err := f.codec.unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: parse %s: %w", ErrLoad, f.path, err)
	}

	active, err := task.FromRecords(doc.Tasks)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: tasks: %w", ErrLoad, err)
	}
	archive, err := task.FromRecords(doc.Archive)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: archive: %w", ErrLoad, err)
	}
	return active, archive, nil
}

// BackupPath returns where Backup copies the snapshot file.
func (f *File) BackupPath() string { return f.path + ".bak" }

// Backup copies the current snapshot file to BackupPath, replacing any older
// backup. It is used before a save would overwrite a file that failed to load.
func (f *File) Backup() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.path, err)
	}
	backup := f.BackupPath()
	err = withLock(f.path, func() error {
		return writeAtomic(backup, data)
	})
	if err != nil {
		return "", fmt.Errorf("back up %s: %w", f.path, err)
	}
	return backup, nil
}

// writeAtomic writes data to a temp file next to path, then renames it over path.
func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func canCreateDir(dir string) bool {
	info, err := os.Stat(dir)
	if err == nil {
		return info.IsDir()
	}
	return os.MkdirAll(dir, 0o755) == nil
}
