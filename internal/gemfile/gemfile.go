// SPDX-License-Identifier: MPL-2.0

// Package gemfile reads the gem declarations of a Bundler Gemfile.
//
// Only declarations are recognised: `gem "name", ...` lines, optionally
// inside `group ... do` blocks. The file is never evaluated, so gems added by
// conditional Ruby code are reported whether or not the condition holds.
package gemfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
)

// FileName is the conventional Gemfile name.
const FileName = "Gemfile"

var (
	gemLine     = regexp.MustCompile(`^gem\s*\(?\s*['"]([^'"]+)['"](.*)$`)
	groupLine   = regexp.MustCompile(`^group\s*\(?\s*(.+?)\s*\)?\s+do\s*(\|[^|]*\|)?\s*$`)
	inlineGroup = regexp.MustCompile(`(?:group|groups)\s*(?::|=>)\s*(\[[^\]]*\]|:\w+|['"]\w+['"])`)
	symbol      = regexp.MustCompile(`:?['"]?(\w+)['"]?`)
	blockOpen   = regexp.MustCompile(`(\bdo\s*(\|[^|]*\|)?\s*$)|(^(if|unless|case|begin|while|until)\b)`)
	blockClose  = regexp.MustCompile(`^end\b`)
)

type (
	// Gem is a single gem declaration.
	Gem struct {
		// Name is the gem name
		Name string
		// Groups lists the Bundler groups the gem belongs to; empty means default.
		Groups []string
	}

	// Manifest is the set of gems declared by a Gemfile. It is safe for
	// concurrent use; Reload swaps its contents in place.
	Manifest struct {
		path string

		mu   sync.RWMutex
		gems map[string]Gem
	}
)

// Empty returns a manifest that declares nothing.
func Empty() *Manifest {
	return &Manifest{gems: make(map[string]Gem)}
}

// Load reads the Gemfile at path. A missing file yields an error wrapping
// os.ErrNotExist.
func Load(path string) (*Manifest, error) {
	m := &Manifest{path: path}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadDir reads the Gemfile in dir.
func LoadDir(dir string) (*Manifest, error) {
	return Load(filepath.Join(dir, FileName))
}

// Parse reads gem declarations from r.
func Parse(r io.Reader) (*Manifest, error) {
	gems, err := parse(r)
	if err != nil {
		return nil, err
	}
	return &Manifest{gems: gems}, nil
}

// Path returns the file the manifest was loaded from, or "" if parsed from a reader.
func (m *Manifest) Path() string {
	return m.path
}

// Reload re-reads the manifest from its file. On error the previous
// contents are kept.
func (m *Manifest) Reload() error {
	if m.path == "" {
		return errors.New("manifest has no backing file")
	}

	f, err := os.Open(m.path)
	if err != nil {
		return fmt.Errorf("failed to open Gemfile: %w", err)
	}
	defer f.Close()

	gems, err := parse(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", m.path, err)
	}

	m.mu.Lock()
	m.gems = gems
	m.mu.Unlock()
	return nil
}

// Declares reports whether name is declared.
func (m *Manifest) Declares(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.gems[name]
	return ok
}

// Gem returns the declaration for name.
func (m *Manifest) Gem(name string) (Gem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.gems[name]
	if !ok {
		return Gem{}, false
	}
	g.Groups = slices.Clone(g.Groups)
	return g, true
}

// Names returns the declared gem names in sorted order.
func (m *Manifest) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.gems))
	for name := range m.gems {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of declared gems.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.gems)
}

func parse(r io.Reader) (map[string]Gem, error) {
	gems := make(map[string]Gem)

	// Each open block pushes its groups (nil for non-group blocks).
	var blocks [][]string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := stripComment(strings.TrimSpace(scanner.Text()))
		if line == "" {
			continue
		}

		if blockClose.MatchString(line) {
			if len(blocks) > 0 {
				blocks = blocks[:len(blocks)-1]
			}
			continue
		}

		if m := groupLine.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, symbols(m[1]))
			continue
		}

		if m := gemLine.FindStringSubmatch(line); m != nil {
			g := gems[m[1]]
			g.Name = m[1]
			for _, b := range blocks {
				g.Groups = appendUnique(g.Groups, b...)
			}
			if im := inlineGroup.FindStringSubmatch(m[2]); im != nil {
				g.Groups = appendUnique(g.Groups, symbols(im[1])...)
			}
			gems[g.Name] = g
			if blockOpen.MatchString(line) {
				blocks = append(blocks, nil)
			}
			continue
		}

		if blockOpen.MatchString(line) {
			blocks = append(blocks, nil)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return gems, nil
}

// stripComment drops a trailing # comment that is not inside a string.
func stripComment(line string) string {
	var quote rune
	for i, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '#':
			return strings.TrimSpace(line[:i])
		}
	}
	return line
}

func symbols(s string) []string {
	var out []string
	for _, m := range symbol.FindAllStringSubmatch(s, -1) {
		out = append(out, m[1])
	}
	return out
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
