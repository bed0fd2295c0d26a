package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/models"
	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/writers"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively creates a module blueprint file in the current directory.",
	RunE:  Init,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "overwrite an existing blueprint file")
}

// commonPlugins are offered as choices when creating a blueprint.
var commonPlugins = []string{
	"java",
	"java-library",
	"application",
	"kotlin",
	"com.android.application",
	"com.android.library",
}

// initAnswers holds the responses collected by `poet init`.
type initAnswers struct {
	Name         string   `survey:"name"`
	Plugins      []string `survey:"plugins"`
	Libraries    string   `survey:"libraries"`
	Dependencies string   `survey:"dependencies"`
}

var initQuestions = []*survey.Question{
	{
		Name:     "name",
		Prompt:   &survey.Input{Message: "Module name:"},
		Validate: survey.Required,
	},
	{
		Name:   "plugins",
		Prompt: &survey.MultiSelect{Message: "Plugins to apply:", Options: commonPlugins},
	},
	{
		Name:   "libraries",
		Prompt: &survey.Multiline{Message: "Library dependencies, one '<scope> <coordinate>' per line:"},
	},
	{
		Name:   "dependencies",
		Prompt: &survey.Multiline{Message: "Module dependencies, one '<scope> <module>' per line:"},
	},
}

// askInit is swapped out in tests.
var askInit = func(answers *initAnswers) error {
	return survey.Ask(initQuestions, answers)
}

// BlueprintExistsError is returned when `poet init` would overwrite a
// blueprint file without --force.
type BlueprintExistsError struct {
	Path string
}

func (e BlueprintExistsError) Error() string {
	return fmt.Sprintf("blueprint %s already exists; use --force to overwrite it", e.Path)
}

// Init is the cobra handler for `poet init`.
func Init(cmd *cobra.Command, _ []string) error {
	var answers initAnswers
	if err := askInit(&answers); err != nil {
		return err
	}

	file, err := createBlueprint(".", &answers, forceInit)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Blueprint written to %s. Run 'poet render %s' to generate the build file.\n", file, file)
	return nil
}

// createBlueprint writes the blueprint described by answers into dir and
// returns the file it wrote.
func createBlueprint(dir string, answers *initAnswers, force bool) (string, error) {
	bp, err := blueprintFromAnswers(answers)
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, strings.TrimSpace(answers.Name)+".blueprint.yaml")
	if !force {
		if _, err := os.Stat(file); err == nil {
			return "", BlueprintExistsError{Path: file}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to check %s: %w", file, err)
		}
	}

	data, err := models.MarshalBlueprint(bp)
	if err != nil {
		return "", fmt.Errorf("failed to encode blueprint: %w", err)
	}
	if err := writers.NewFSWriter().WriteToFile(string(data), file); err != nil {
		return "", err
	}
	return file, nil
}

func blueprintFromAnswers(answers *initAnswers) (*models.ModuleBuildGradleBlueprint, error) {
	name := strings.TrimSpace(answers.Name)
	if name == "" {
		return nil, fmt.Errorf("module name must not be empty")
	}
	if strings.ContainsAny(name, `/\:`) {
		return nil, fmt.Errorf("module name %q must not contain path separators or ':'", name)
	}

	bp := &models.ModuleBuildGradleBlueprint{
		Path:    name + "/build.gradle",
		Plugins: answers.Plugins,
	}

	libs, err := parseScopedLines(answers.Libraries)
	if err != nil {
		return nil, fmt.Errorf("invalid library dependencies: %w", err)
	}
	for _, l := range libs {
		bp.Libraries = append(bp.Libraries, models.LibraryDependency{Scope: l[0], Coordinate: l[1]})
	}

	deps, err := parseScopedLines(answers.Dependencies)
	if err != nil {
		return nil, fmt.Errorf("invalid module dependencies: %w", err)
	}
	for _, d := range deps {
		bp.Dependencies = append(bp.Dependencies, models.ModuleDependency{
			Name:   d[1],
			Scope:  d[0],
			Module: &models.ModuleBlueprint{Name: d[1]},
		})
	}
	return bp, nil
}

// parseScopedLines splits "<scope> <value>" lines, ignoring blank ones.
// Repeating a scope and value pair is an error.
func parseScopedLines(text string) ([][2]string, error) {
	var out [][2]string
	seen := make(map[[2]string]struct{})
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %q: expected '<scope> <value>'", strings.TrimSpace(line))
		}
		pair := [2]string{fields[0], fields[1]}
		if _, ok := seen[pair]; ok {
			return nil, fmt.Errorf("line %q: duplicate entry", strings.TrimSpace(line))
		}
		seen[pair] = struct{}{}
		out = append(out, pair)
	}
	return out, nil
}
