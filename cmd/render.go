package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/generators"
	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/logging"
	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/models"
	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/workspace/discovery"
	"github.com/yanghuadong-Mobile-Researcher/android-studio-poet/writers"
)

var dryRun bool

var renderCmd = &cobra.Command{
	Use:   "render [paths...]",
	Short: "Renders module build files from blueprint files, or from every blueprint found under the given directories.",
	RunE:  Render,
}

func init() {
	renderCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print the generated files instead of writing them")
}

// Render is the cobra handler for `poet render`.
func Render(cmd *cobra.Command, args []string) error {
	c := currentConfig()

	var w writers.FileWriter = writers.NewFSWriter()
	if dryRun {
		w = writers.NewDryRunWriter(cmd.OutOrStdout())
	}
	gen := generators.NewModuleBuildGradleGenerator(w, generators.WithJavaVersion(c.Java.Version))

	files, err := collectBlueprints(args, c.Discovery.Exclude)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no blueprint files found")
	}

	if err := renderBlueprints(gen, files); err != nil {
		return err
	}
	if !dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d build file(s).\n", len(files))
	}
	return nil
}

// collectBlueprints expands the given paths into blueprint files. Files are
// taken as-is, directories are searched. No paths means the working
// directory.
func collectBlueprints(paths []string, exclusions []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		found, err := discovery.Find(os.DirFS(p), exclusions)
		if err != nil {
			return nil, fmt.Errorf("failed to search %s: %w", p, err)
		}
		for _, f := range found {
			files = append(files, filepath.Join(p, filepath.FromSlash(f)))
		}
	}
	return files, nil
}

func renderBlueprints(gen *generators.ModuleBuildGradleGenerator, files []string) error {
	for _, file := range files {
		bp, err := models.LoadBlueprint(file)
		if err != nil {
			return err
		}
		logging.Log.WithField("blueprint", file).WithField("path", bp.Path).Info("rendering build file")
		if err := gen.Generate(bp); err != nil {
			return err
		}
	}
	return nil
}
