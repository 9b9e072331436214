// Package prompt assembles the outgoing prompt text from its labeled
// sections. Assembly is pure string work: no I/O except the hints
// loader, no provider knowledge.
package prompt

import (
	"fmt"
	"strings"
)

// Prefixes label the three core sections. They come from settings so
// users can restyle them.
type Prefixes struct {
	Goals        string
	ReturnFormat string
	Warnings     string
}

// DefaultPrefixes returns the stock section labels.
func DefaultPrefixes() Prefixes {
	return Prefixes{
		Goals:        "🏆 Goals: ",
		ReturnFormat: "📝 Return Format: ",
		Warnings:     "⚠️ Warnings: ",
	}
}

// File is a project file attached to the prompt.
type File struct {
	Name    string
	Content string
}

// Input carries everything that can contribute to a prompt, in the
// order it will appear.
type Input struct {
	Goals        string
	ReturnFormat string
	Warnings     string

	// Context is extra dumped context, e.g. piped stdin.
	Context string

	// Project material, when a project is active.
	ProjectGoals    []string
	ProjectContexts []string
	Files           []File

	// Hints from the hints file, appended last.
	Hints string
}

// Assembler builds prompt text in a fixed section order.
type Assembler struct {
	Prefixes Prefixes

	// FileLimit is the byte ceiling per attached file. 0 uses
	// DefaultFileLimit.
	FileLimit int
}

// NewAssembler returns an assembler with the given prefixes and the
// default file ceiling.
func NewAssembler(p Prefixes) *Assembler {
	return &Assembler{Prefixes: p, FileLimit: DefaultFileLimit}
}

// Assemble renders the sections in fixed order: goals, return format,
// warnings, optional context, project goals, project contexts, project
// files as fenced blocks, hints. Absent optional sections leave no
// trace in the output.
func (a *Assembler) Assemble(in Input) string {
	limit := a.FileLimit
	if limit == 0 {
		limit = DefaultFileLimit
	}

	var b strings.Builder
	b.WriteString(a.Prefixes.Goals)
	b.WriteString(in.Goals)
	b.WriteString("\n")
	b.WriteString(a.Prefixes.ReturnFormat)
	b.WriteString(in.ReturnFormat)
	b.WriteString("\n")
	b.WriteString(a.Prefixes.Warnings)
	b.WriteString(in.Warnings)

	if in.Context != "" {
		b.WriteString("\nContext: ")
		b.WriteString(in.Context)
	}

	if len(in.ProjectGoals) > 0 {
		b.WriteString("\nProject Goals:")
		for _, g := range in.ProjectGoals {
			b.WriteString("\n- ")
			b.WriteString(g)
		}
	}
	if len(in.ProjectContexts) > 0 {
		b.WriteString("\nProject Context:")
		for _, c := range in.ProjectContexts {
			b.WriteString("\n- ")
			b.WriteString(c)
		}
	}
	for _, f := range in.Files {
		content, truncated := truncateBytes(f.Content, limit)
		b.WriteString("\nFile: ")
		b.WriteString(f.Name)
		b.WriteString("\n```\n")
		b.WriteString(content)
		if truncated {
			b.WriteString(fmt.Sprintf("\n[... truncated at %d bytes]", limit))
		}
		b.WriteString("\n```")
	}

	if in.Hints != "" {
		b.WriteString("\nHINTS: ")
		b.WriteString(in.Hints)
	}
	return b.String()
}
