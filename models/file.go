package models

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// blueprintFile mirrors the on-disk YAML layout of a blueprint.
type blueprintFile struct {
	Path         string            `yaml:"path"`
	Plugins      []string          `yaml:"plugins,omitempty"`
	Libraries    []libraryEntry    `yaml:"libraries,omitempty"`
	Dependencies []dependencyEntry `yaml:"dependencies,omitempty"`

	// ExtraLines is a pointer so an absent key and an empty list survive a
	// round trip as nil and empty respectively.
	ExtraLines *[]string `yaml:"extraLines,omitempty"`
}

type libraryEntry struct {
	Scope      string `yaml:"scope"`
	Coordinate string `yaml:"coordinate"`
}

type dependencyEntry struct {
	Module string `yaml:"module"`
	Scope  string `yaml:"scope"`
}

// LoadBlueprint reads the blueprint stored at file. A relative Path inside
// the blueprint is resolved against the directory that holds the file.
func LoadBlueprint(file string) (*ModuleBuildGradleBlueprint, error) {
	dir, name := filepath.Split(file)
	if dir == "" {
		dir = "."
	}
	bp, err := LoadBlueprintFS(os.DirFS(dir), name)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(bp.Path) {
		bp.Path = filepath.Join(dir, filepath.FromSlash(bp.Path))
	}
	return bp, nil
}

// LoadBlueprintFS reads the blueprint at relPath within fsys. Path is
// returned exactly as written in the file.
func LoadBlueprintFS(fsys fs.FS, relPath string) (*ModuleBuildGradleBlueprint, error) {
	data, err := fs.ReadFile(fsys, relPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read blueprint %s: %w", relPath, err)
	}
	bp, err := ParseBlueprint(data)
	if err != nil {
		return nil, fmt.Errorf("invalid blueprint %s: %w", relPath, err)
	}
	return bp, nil
}

// ParseBlueprint decodes a YAML (or JSON) blueprint document. Unknown keys
// are rejected and duplicate entries are dropped, keeping the first one.
func ParseBlueprint(data []byte) (*ModuleBuildGradleBlueprint, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f blueprintFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("blueprint is empty")
		}
		return nil, err
	}
	if f.Path == "" {
		return nil, fmt.Errorf("blueprint path must not be empty")
	}
	return f.toBlueprint(), nil
}

// MarshalBlueprint encodes bp in the format read by ParseBlueprint.
func MarshalBlueprint(bp *ModuleBuildGradleBlueprint) ([]byte, error) {
	f := blueprintFile{
		Path:    filepath.ToSlash(bp.Path),
		Plugins: bp.Plugins,
	}
	if bp.ExtraLines != nil {
		lines := bp.ExtraLines
		f.ExtraLines = &lines
	}
	for _, l := range bp.Libraries {
		f.Libraries = append(f.Libraries, libraryEntry{Scope: l.Scope, Coordinate: l.Coordinate})
	}
	for _, d := range bp.Dependencies {
		f.Dependencies = append(f.Dependencies, dependencyEntry{Module: d.Name, Scope: d.Scope})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *blueprintFile) toBlueprint() *ModuleBuildGradleBlueprint {
	bp := &ModuleBuildGradleBlueprint{Path: f.Path}
	if f.ExtraLines != nil {
		bp.ExtraLines = *f.ExtraLines
	}

	seenPlugins := make(map[string]struct{}, len(f.Plugins))
	for _, p := range f.Plugins {
		if _, ok := seenPlugins[p]; ok {
			continue
		}
		seenPlugins[p] = struct{}{}
		bp.Plugins = append(bp.Plugins, p)
	}

	seenLibs := make(map[LibraryDependency]struct{}, len(f.Libraries))
	for _, l := range f.Libraries {
		lib := LibraryDependency{Scope: l.Scope, Coordinate: l.Coordinate}
		if _, ok := seenLibs[lib]; ok {
			continue
		}
		seenLibs[lib] = struct{}{}
		bp.Libraries = append(bp.Libraries, lib)
	}

	modules := make(map[string]*ModuleBlueprint)
	seenDeps := make(map[dependencyEntry]struct{}, len(f.Dependencies))
	for _, d := range f.Dependencies {
		if _, ok := seenDeps[d]; ok {
			continue
		}
		seenDeps[d] = struct{}{}
		m, ok := modules[d.Module]
		if !ok {
			m = &ModuleBlueprint{Name: d.Module}
			modules[d.Module] = m
		}
		bp.Dependencies = append(bp.Dependencies, ModuleDependency{Name: d.Module, Scope: d.Scope, Module: m})
	}
	return bp
}
