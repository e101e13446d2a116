package rules

import (
	"path/filepath"

	"github.com/archlint/archlint/semantic"
)

// Context is the evaluation scope for one (file, constraint) pair. The
// orchestrator builds a fresh Context per evaluation and never shares
// one across constraints; validators treat every field as read-only.
type Context struct {
	FilePath string
	FileName string

	// ArchID is the architecture the file is tagged with.
	ArchID string

	// Source is the constraint's originating architecture/mixin ID,
	// duplicated here for validators that word messages around it.
	Source string

	// Model is the parsed structural summary. Nil only for rules that
	// operate purely on path or content.
	Model *semantic.Model

	// Content is the raw file text, used by pattern rules.
	Content string

	// Intents are file-level intent tags, merged from the model and
	// any externally parsed annotations.
	Intents []string
}

// NewContext builds a context for one evaluation.
func NewContext(filePath, archID string, model *semantic.Model, content string) *Context {
	ctx := &Context{
		FilePath: filePath,
		FileName: filepath.Base(filePath),
		ArchID:   archID,
		Model:    model,
		Content:  content,
	}
	if model != nil {
		ctx.Intents = append(ctx.Intents, model.Intents...)
	}
	return ctx
}

// HasIntent reports whether the intent is present at file level or on
// any function in the model.
func (c *Context) HasIntent(name string) bool {
	for _, in := range c.Intents {
		if in == name {
			return true
		}
	}
	if c.Model != nil && c.Model.HasIntent(name) {
		return true
	}
	return false
}
