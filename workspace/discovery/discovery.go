// Package discovery locates blueprint files inside a directory tree.
package discovery

import (
	"io/fs"
	"path"
	"strings"
)

// blueprintSuffixes are the file name endings recognised as blueprints.
var blueprintSuffixes = []string{".blueprint.yaml", ".blueprint.yml"}

// IsBlueprint reports whether name looks like a blueprint file.
func IsBlueprint(name string) bool {
	for _, s := range blueprintSuffixes {
		if strings.HasSuffix(name, s) && len(name) > len(s) {
			return true
		}
	}
	return false
}

// Find returns the slash-separated paths of all blueprint files in fsys, in
// lexical order.
//   - exclusions are .gitignore style patterns anchored at the root;
//   - a .gitignore file adds its patterns to its directory and everything
//     below it;
//   - excluded directories are not descended into, so nothing under them can
//     be re-included.
func Find(fsys fs.FS, exclusions []string) ([]string, error) {
	rootRules := append(parseRules(".", exclusions), readGitignore(fsys, ".")...)
	effective := map[string][]rule{".": rootRules}

	var results []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}

		inherited := effective[path.Dir(p)]
		if d.IsDir() {
			if isExcluded(inherited, p, true) {
				return fs.SkipDir
			}
			// copy so sibling directories never share a backing array
			rules := append(append([]rule(nil), inherited...), readGitignore(fsys, p)...)
			effective[p] = rules
			return nil
		}

		if IsBlueprint(d.Name()) && !isExcluded(inherited, p, false) {
			results = append(results, p)
		}
		return nil
	})
	return results, err
}
