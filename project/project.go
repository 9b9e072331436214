// Package project stores named prompt projects: reusable goals,
// context lines, and attached files that get folded into assembled
// prompts. Each project lives under its own uuid directory with a
// project.json document and a files/ subdirectory.
package project

import (
	"time"

	"github.com/google/uuid"
)

// File describes one attached file, stored under the project's files/
// directory.
type File struct {
	Name string `json:"name"`
	MIME string `json:"mime_type,omitempty"`
	Size int64  `json:"size"`
}

// Project is the on-disk project document.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Goals     []string  `json:"goals"`
	Contexts  []string  `json:"contexts"`
	Files     []File    `json:"files"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewProject allocates a project with a fresh id.
func NewProject(name string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:        uuid.NewString(),
		Name:      name,
		Goals:     []string{},
		Contexts:  []string{},
		Files:     []File{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddGoal appends a goal line.
func (p *Project) AddGoal(goal string) {
	p.Goals = append(p.Goals, goal)
	p.touch()
}

// RemoveGoal deletes the goal at index. Reports whether the index was
// valid.
func (p *Project) RemoveGoal(index int) bool {
	if index < 0 || index >= len(p.Goals) {
		return false
	}
	p.Goals = append(p.Goals[:index], p.Goals[index+1:]...)
	p.touch()
	return true
}

// AddContext appends a context line.
func (p *Project) AddContext(context string) {
	p.Contexts = append(p.Contexts, context)
	p.touch()
}

// RemoveContext deletes the context at index. Reports whether the
// index was valid.
func (p *Project) RemoveContext(index int) bool {
	if index < 0 || index >= len(p.Contexts) {
		return false
	}
	p.Contexts = append(p.Contexts[:index], p.Contexts[index+1:]...)
	p.touch()
	return true
}

// FileIndex locates an attached file by name, -1 if absent.
func (p *Project) FileIndex(name string) int {
	for i, f := range p.Files {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func (p *Project) touch() {
	p.UpdatedAt = time.Now().UTC()
}
