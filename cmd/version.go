package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the poet CLI version.",
	RunE:  Version,
}

// Version is the cobra handler for `poet version`.
func Version(cmd *cobra.Command, _ []string) error {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return fmt.Errorf("could not read build info")
	}
	version, err := versionFromBuildInfo(info)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "poet %s\n", version)
	return nil
}

func versionFromBuildInfo(info *debug.BuildInfo) (string, error) {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version, nil
	}

	var revision, at string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	if revision == "" && at == "" {
		return "", fmt.Errorf("version information is not available")
	}

	// pseudo version, see https://go.dev/ref/mod#pseudo-versions
	parts := []string{"0.0.0"}
	if at != "" {
		if p, err := time.Parse(time.RFC3339, at); err == nil {
			parts = append(parts, p.UTC().Format("20060102150405"))
		}
	}
	if revision != "" {
		if len(revision) > 12 {
			revision = revision[:12]
		}
		parts = append(parts, revision)
	}
	return strings.Join(parts, "-"), nil
}
