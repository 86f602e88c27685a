// Package bundle keeps the rendered outputs of one run together in a
// directory, with a bundle.json manifest describing them.
package bundle

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/creaturestats-cli/internal/utils"
	"github.com/google/uuid"
)

const manifestFileName = "bundle.json"

// ErrBadName is returned for artifact names that would escape the bundle directory.
var ErrBadName = errors.New("invalid artifact name")

// Bundle is an output directory plus its manifest.
type Bundle struct {
	ID        string               `json:"id"`
	Source    string               `json:"source"`
	Artifacts map[string]*Artifact `json:"artifacts"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`

	// Not serialized: directory holding bundle.json
	rootDir string `json:"-"`
}

// New constructs an in-memory bundle for the dataset at source. Call Save()
// to write the manifest.
func New(dir, source string) *Bundle {
	now := time.Now()
	return &Bundle{
		ID:        uuid.NewString(),
		Source:    source,
		Artifacts: make(map[string]*Artifact),
		CreatedAt: now,
		UpdatedAt: now,
		rootDir:   dir,
	}
}

// Load reads bundle.json from dir.
func Load(dir string) (*Bundle, error) {
	path := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("bundle not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read bundle: %w", err)
	}
	var bd Bundle
	if err := json.Unmarshal(b, &bd); err != nil {
		return nil, fmt.Errorf("parse bundle: %w", err)
	}
	if bd.Artifacts == nil {
		bd.Artifacts = make(map[string]*Artifact)
	}
	bd.rootDir = dir
	return &bd, nil
}

// RootDir returns the bundle directory.
func (b *Bundle) RootDir() string { return b.rootDir }

// AddArtifact writes data to name inside the bundle and records it. Writing
// the same name again replaces the file and its record.
func (b *Bundle) AddArtifact(name, kind string, data []byte) (*Artifact, error) {
	if b.rootDir == "" {
		return nil, errors.New("bundle directory not set")
	}
	name = strings.TrimSpace(name)
	if name == "" || name == manifestFileName || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrBadName, name)
	}
	if err := utils.EnsureDir(b.rootDir); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	if err := utils.SafeWriteFile(filepath.Join(b.rootDir, name), data); err != nil {
		return nil, err
	}
	a := &Artifact{
		ID:        uuid.NewString(),
		Name:      name,
		Kind:      kind,
		Bytes:     len(data),
		CreatedAt: time.Now(),
	}
	if b.Artifacts == nil {
		b.Artifacts = make(map[string]*Artifact)
	}
	b.Artifacts[name] = a
	b.UpdatedAt = a.CreatedAt
	return a, nil
}

// List returns the artifacts ordered by name.
func (b *Bundle) List() []*Artifact {
	out := make([]*Artifact, 0, len(b.Artifacts))
	for _, a := range b.Artifacts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Save writes bundle.json using atomic write.
func (b *Bundle) Save() error {
	if b.rootDir == "" {
		return errors.New("bundle directory not set")
	}
	if err := utils.EnsureDir(b.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	b.UpdatedAt = time.Now()
	data, err := utils.PrettyJSON(b)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(b.rootDir, manifestFileName), data)
}
