package generators

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/cbroglie/mustache"

	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/logging"
	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/models"
	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/writers"
)

// DefaultJavaVersion is written as both source and target compatibility
// unless overridden with WithJavaVersion.
const DefaultJavaVersion = "1.8"

//go:embed templates/module_build.gradle.mustache
var moduleBuildGradleSource string

// moduleBuildGradleTemplate uses triple mustaches throughout: build scripts
// are not HTML and every value must come out verbatim.
var moduleBuildGradleTemplate = mustParse(moduleBuildGradleSource)

func mustParse(src string) *mustache.Template {
	tmpl, err := mustache.ParseString(strings.TrimSuffix(src, "\n"))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded template: %v", err))
	}
	return tmpl
}

// ModuleBuildGradleGenerator renders module build.gradle files and hands the
// result to a FileWriter.
type ModuleBuildGradleGenerator struct {
	fileWriter  writers.FileWriter
	javaVersion string
}

// Option customises a ModuleBuildGradleGenerator.
type Option func(*ModuleBuildGradleGenerator)

// WithJavaVersion sets the value used for sourceCompatibility and
// targetCompatibility. Empty values are ignored.
func WithJavaVersion(version string) Option {
	return func(g *ModuleBuildGradleGenerator) {
		if version != "" {
			g.javaVersion = version
		}
	}
}

// NewModuleBuildGradleGenerator returns a generator that writes through
// fileWriter and uses DefaultJavaVersion unless an option overrides it.
func NewModuleBuildGradleGenerator(fileWriter writers.FileWriter, opts ...Option) *ModuleBuildGradleGenerator {
	g := &ModuleBuildGradleGenerator{
		fileWriter:  fileWriter,
		javaVersion: DefaultJavaVersion,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders the blueprint and writes it to blueprint.Path.
func (g *ModuleBuildGradleGenerator) Generate(blueprint *models.ModuleBuildGradleBlueprint) error {
	if blueprint.Path == "" {
		return fmt.Errorf("blueprint has no path to write to")
	}

	content, err := g.Render(blueprint)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", blueprint.Path, err)
	}

	logging.Log.WithField("path", blueprint.Path).Debug("generated module build file")
	if err := g.fileWriter.WriteToFile(content, blueprint.Path); err != nil {
		return fmt.Errorf("failed to write %s: %w", blueprint.Path, err)
	}
	return nil
}

// Render returns the build file text for blueprint. Plugins come first,
// followed by the dependencies block, the compatibility settings and finally
// any extra lines. The result has no trailing newline.
func (g *ModuleBuildGradleGenerator) Render(blueprint *models.ModuleBuildGradleBlueprint) (string, error) {
	libraries := make([]map[string]string, 0, len(blueprint.Libraries))
	for _, l := range blueprint.Libraries {
		libraries = append(libraries, map[string]string{
			"scope":      l.Scope,
			"coordinate": l.Coordinate,
		})
	}

	dependencies := make([]map[string]string, 0, len(blueprint.Dependencies))
	for _, d := range blueprint.Dependencies {
		dependencies = append(dependencies, map[string]string{
			"scope": d.Scope,
			"name":  d.Name,
		})
	}

	return moduleBuildGradleTemplate.Render(map[string]interface{}{
		"plugins":      blueprint.Plugins,
		"libraries":    libraries,
		"dependencies": dependencies,
		"javaVersion":  g.javaVersion,
		"extraLines":   blueprint.ExtraLines,
	})
}
