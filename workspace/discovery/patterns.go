package discovery

import (
	"bufio"
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// rule is a single .gitignore style pattern bound to the directory it was
// declared in.
type rule struct {
	base     string
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// parseRules converts raw pattern lines into rules rooted at base. Blank
// lines and comments are dropped.
func parseRules(base string, lines []string) []rule {
	var rules []rule
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		r := rule{base: base}
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		} else if strings.HasPrefix(line, `\#`) || strings.HasPrefix(line, `\!`) {
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		if strings.Contains(line, "/") {
			r.anchored = true
			line = strings.TrimPrefix(line, "/")
		}
		if line == "" {
			continue
		}
		r.pattern = line
		rules = append(rules, r)
	}
	return rules
}

// readGitignore returns the rules declared by dir/.gitignore, if any.
func readGitignore(fsys fs.FS, dir string) []rule {
	data, err := fs.ReadFile(fsys, path.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return parseRules(dir, lines)
}

// isExcluded evaluates rules in order; the last matching rule decides.
func isExcluded(rules []rule, p string, isDir bool) bool {
	excluded := false
	for _, r := range rules {
		if r.matches(p, isDir) {
			excluded = !r.negate
		}
	}
	return excluded
}

func (r rule) matches(p string, isDir bool) bool {
	if r.dirOnly && !isDir {
		return false
	}

	rel := p
	if r.base != "." {
		if !strings.HasPrefix(p, r.base+"/") {
			return false
		}
		rel = p[len(r.base)+1:]
	}

	if !r.anchored {
		ok, _ := doublestar.Match(r.pattern, path.Base(rel))
		return ok
	}
	ok, _ := doublestar.Match(r.pattern, rel)
	if !ok {
		return false
	}
	// "dir/**" only matches what is inside dir, never dir itself.
	if parent, found := strings.CutSuffix(r.pattern, "/**"); found {
		if self, _ := doublestar.Match(parent, rel); self {
			return false
		}
	}
	return true
}
