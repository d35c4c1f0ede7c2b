// Package manifest reads the SKILL.md file at the root of a skill
// directory. Manifests carry YAML frontmatter followed by markdown
// instructions:
//
//	---
//	name: code-reviewer
//	description: Review code for best practices.
//	---
//
//	# Code Reviewer
//	...
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/skillsync/pkg/types"
	"gopkg.in/yaml.v3"
)

// FileName is the manifest file every skill directory must contain.
const FileName = "SKILL.md"

// Manifest is the parsed SKILL.md of one item.
type Manifest struct {
	// Name from frontmatter; falls back to the directory name.
	Name string `yaml:"name"`

	// Description explains what the skill does and when to use it.
	Description string `yaml:"description"`

	// Body is the markdown after the frontmatter.
	Body string `yaml:"-"`
}

// Load reads and parses the manifest of the skill directory at dir. A
// missing or frontmatter-less manifest is not an error; the result then
// carries just the directory name.
func Load(fs types.FS, dir string) (*Manifest, error) {
	m := &Manifest{Name: filepath.Base(dir)}

	data, err := fs.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		return m, nil
	}

	front, body := splitFrontmatter(string(data))
	m.Body = body
	if front == "" {
		return m, nil
	}

	var parsed Manifest
	if err := yaml.Unmarshal([]byte(front), &parsed); err != nil {
		// A malformed manifest should not block syncing; the directory
		// name is enough to identify the item.
		return m, nil
	}
	if parsed.Name != "" {
		m.Name = parsed.Name
	}
	m.Description = parsed.Description
	return m, nil
}

// Exists reports whether dir carries a manifest file.
func Exists(fs types.FS, dir string) bool {
	info, err := fs.Stat(filepath.Join(dir, FileName))
	return err == nil && !info.IsDir()
}

// splitFrontmatter separates the YAML frontmatter block from the body.
func splitFrontmatter(content string) (front, body string) {
	const fence = "---"

	rest, ok := strings.CutPrefix(content, fence+"\n")
	if !ok {
		return "", content
	}

	idx := strings.Index(rest, "\n"+fence)
	if idx < 0 {
		return "", content
	}

	front = rest[:idx]
	body = strings.TrimPrefix(rest[idx+len("\n"+fence):], "\n")
	return front, body
}
