package project

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	projectDoc    = "project.json"
	filesDir      = "files"
	activePointer = "active_project"
)

// ErrNotFound indicates no project matches the given id or name.
var ErrNotFound = errors.New("project not found")

// Manager stores projects under base/projects/<id>/ with an
// active-project pointer file next to them.
type Manager struct {
	base string
}

// NewManager uses the default store at ~/.ola/data.
func NewManager() (*Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	return NewManagerAt(filepath.Join(home, ".ola", "data")), nil
}

// NewManagerAt uses an explicit store root. Useful for tests.
func NewManagerAt(base string) *Manager {
	return &Manager{base: base}
}

func (m *Manager) projectsDir() string {
	return filepath.Join(m.base, "projects")
}

func (m *Manager) projectDir(id string) string {
	return filepath.Join(m.projectsDir(), id)
}

// Create allocates and persists a new project.
func (m *Manager) Create(name string) (*Project, error) {
	p := NewProject(name)
	if err := m.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes the project document, creating directories as needed.
func (m *Manager) Save(p *Project) error {
	dir := m.projectDir(p.ID)
	if err := os.MkdirAll(filepath.Join(dir, filesDir), 0o755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, projectDoc), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing project: %w", err)
	}
	return nil
}

// Load reads one project by id.
func (m *Manager) Load(id string) (*Project, error) {
	data, err := os.ReadFile(filepath.Join(m.projectDir(id), projectDoc))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("reading project: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}
	return &p, nil
}

// Find resolves a project by exact id or, failing that, by name
// (case-insensitive).
func (m *Manager) Find(idOrName string) (*Project, error) {
	if p, err := m.Load(idOrName); err == nil {
		return p, nil
	}
	all, err := m.List()
	if err != nil {
		return nil, err
	}
	for _, p := range all {
		if strings.EqualFold(p.Name, idOrName) {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrName)
}

// List returns all projects sorted by name.
func (m *Manager) List() ([]*Project, error) {
	entries, err := os.ReadDir(m.projectsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading projects directory: %w", err)
	}

	var projects []*Project
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p, err := m.Load(e.Name())
		if err != nil {
			// Skip directories without a valid document
			continue
		}
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool {
		return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
	})
	return projects, nil
}

// Delete removes a project and all of its files. Clears the active
// pointer when it pointed here.
func (m *Manager) Delete(id string) error {
	if _, err := m.Load(id); err != nil {
		return err
	}
	if active, err := m.ActiveID(); err == nil && active == id {
		m.ClearActive()
	}
	if err := os.RemoveAll(m.projectDir(id)); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// SetActive points the store at a project.
func (m *Manager) SetActive(id string) error {
	if _, err := m.Load(id); err != nil {
		return err
	}
	if err := os.MkdirAll(m.base, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(m.base, activePointer), []byte(id), 0o644); err != nil {
		return fmt.Errorf("writing active pointer: %w", err)
	}
	return nil
}

// ActiveID returns the active project's id, or ErrNotFound when none
// is set.
func (m *Manager) ActiveID() (string, error) {
	data, err := os.ReadFile(filepath.Join(m.base, activePointer))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading active pointer: %w", err)
	}
	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", ErrNotFound
	}
	return id, nil
}

// Active loads the active project.
func (m *Manager) Active() (*Project, error) {
	id, err := m.ActiveID()
	if err != nil {
		return nil, err
	}
	return m.Load(id)
}

// ClearActive removes the active pointer.
func (m *Manager) ClearActive() error {
	err := os.Remove(filepath.Join(m.base, activePointer))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing active pointer: %w", err)
	}
	return nil
}

// UploadFile copies src into the project's file store, recording its
// guessed MIME type. An existing file of the same name is replaced.
func (m *Manager) UploadFile(p *Project, src string) (*File, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}

	name := filepath.Base(src)
	dest := filepath.Join(m.projectDir(p.ID), filesDir, name)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("creating files directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return nil, fmt.Errorf("storing file: %w", err)
	}

	f := File{Name: name, MIME: guessMIME(name), Size: int64(len(data))}
	if i := p.FileIndex(name); i >= 0 {
		p.Files[i] = f
	} else {
		p.Files = append(p.Files, f)
	}
	p.touch()
	if err := m.Save(p); err != nil {
		return nil, err
	}
	return &f, nil
}

// RemoveFile deletes an attached file from disk and from the document.
func (m *Manager) RemoveFile(p *Project, name string) error {
	i := p.FileIndex(name)
	if i < 0 {
		return fmt.Errorf("%w: file %s", ErrNotFound, name)
	}
	path := filepath.Join(m.projectDir(p.ID), filesDir, name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	p.Files = append(p.Files[:i], p.Files[i+1:]...)
	p.touch()
	return m.Save(p)
}

// FilePath returns the on-disk location of an attached file.
func (m *Manager) FilePath(p *Project, name string) string {
	return filepath.Join(m.projectDir(p.ID), filesDir, name)
}

// ReadFileAsText returns an attached file's content for prompt
// embedding. Binary content is base64-encoded with a header line so
// it survives the text pipeline.
func (m *Manager) ReadFileAsText(p *Project, name string) (string, error) {
	if p.FileIndex(name) < 0 {
		return "", fmt.Errorf("%w: file %s", ErrNotFound, name)
	}
	data, err := os.ReadFile(m.FilePath(p, name))
	if err != nil {
		return "", fmt.Errorf("reading project file: %w", err)
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return "[base64]\n" + base64.StdEncoding.EncodeToString(data), nil
}

// guessMIME maps a filename to a MIME type by extension, with a
// text/plain fallback for common source extensions mime doesn't know.
func guessMIME(name string) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".go", ".rs", ".py", ".md", ".yaml", ".yml", ".toml", ".sh":
		return "text/plain"
	default:
		return "application/octet-stream"
	}
}
