package discovery

import (
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestFind(t *testing.T) {
	fsys := fstest.MapFS{
		"app.blueprint.yaml":                        {Data: []byte("path: app/build.gradle")},
		"README.md":                                 {Data: []byte("# readme")},
		"build/generated.blueprint.yaml":            {Data: []byte("path: x")},
		"modules/.gitignore":                        {Data: []byte("# local rules\nscratch/\n*.tmp.blueprint.yaml\n!keep.tmp.blueprint.yaml\n")},
		"modules/lib1.blueprint.yml":                {Data: []byte("path: lib1/build.gradle")},
		"modules/old.tmp.blueprint.yaml":            {Data: []byte("path: old")},
		"modules/keep.tmp.blueprint.yaml":           {Data: []byte("path: keep")},
		"modules/scratch/ignored.blueprint.yaml":    {Data: []byte("path: ignored")},
		"modules/nested/lib2.blueprint.yaml":        {Data: []byte("path: lib2/build.gradle")},
		"modules/nested/scratch/x.blueprint.yaml":   {Data: []byte("path: ignored by inherited rule")},
		"other/scratch/visible.blueprint.yaml":      {Data: []byte("path: visible")},
		"other/.blueprint.yaml":                     {Data: []byte("path: no base name")},
		"other/blueprint.yaml":                      {Data: []byte("path: no suffix")},
		"docs/examples/sample.blueprint.yaml":       {Data: []byte("path: sample")},
		"docs/examples/deep/sample2.blueprint.yaml": {Data: []byte("path: sample2")},
	}

	tests := []struct {
		name       string
		exclusions []string
		want       []string
	}{
		{
			name:       "default style exclusions",
			exclusions: []string{"build/"},
			want: []string{
				"app.blueprint.yaml",
				"docs/examples/deep/sample2.blueprint.yaml",
				"docs/examples/sample.blueprint.yaml",
				"modules/keep.tmp.blueprint.yaml",
				"modules/lib1.blueprint.yml",
				"modules/nested/lib2.blueprint.yaml",
				"other/scratch/visible.blueprint.yaml",
			},
		},
		{
			name: "no exclusions",
			want: []string{
				"app.blueprint.yaml",
				"build/generated.blueprint.yaml",
				"docs/examples/deep/sample2.blueprint.yaml",
				"docs/examples/sample.blueprint.yaml",
				"modules/keep.tmp.blueprint.yaml",
				"modules/lib1.blueprint.yml",
				"modules/nested/lib2.blueprint.yaml",
				"other/scratch/visible.blueprint.yaml",
			},
		},
		{
			name:       "anchored pattern",
			exclusions: []string{"build/", "/docs/examples"},
			want: []string{
				"app.blueprint.yaml",
				"modules/keep.tmp.blueprint.yaml",
				"modules/lib1.blueprint.yml",
				"modules/nested/lib2.blueprint.yaml",
				"other/scratch/visible.blueprint.yaml",
			},
		},
		{
			name:       "double star",
			exclusions: []string{"build/", "docs/**/sample2.blueprint.yaml", "**/nested"},
			want: []string{
				"app.blueprint.yaml",
				"docs/examples/sample.blueprint.yaml",
				"modules/keep.tmp.blueprint.yaml",
				"modules/lib1.blueprint.yml",
				"other/scratch/visible.blueprint.yaml",
			},
		},
		{
			name:       "unanchored file pattern",
			exclusions: []string{"build/", "*.yml", "app.*"},
			want: []string{
				"docs/examples/deep/sample2.blueprint.yaml",
				"docs/examples/sample.blueprint.yaml",
				"modules/keep.tmp.blueprint.yaml",
				"modules/nested/lib2.blueprint.yaml",
				"other/scratch/visible.blueprint.yaml",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Find(fsys, tc.exclusions)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Find() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFind_Empty(t *testing.T) {
	got, err := Find(fstest.MapFS{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no blueprints, got %v", got)
	}
}

func TestIsBlueprint(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"app.blueprint.yaml", true},
		{"app.blueprint.yml", true},
		{".blueprint.yaml", false},
		{"blueprint.yaml", false},
		{"app.yaml", false},
		{"app.blueprint.yaml.bak", false},
	}

	for _, tc := range tests {
		if got := IsBlueprint(tc.name); got != tc.want {
			t.Errorf("IsBlueprint(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestParseRules(t *testing.T) {
	got := parseRules("dir", []string{
		"",
		"# comment",
		"  *.tmp  ",
		"!keep.tmp",
		"build/",
		"/root-only",
		"a/**/b",
		`\#literal`,
		"/",
	})
	want := []rule{
		{base: "dir", pattern: "*.tmp"},
		{base: "dir", pattern: "keep.tmp", negate: true},
		{base: "dir", pattern: "build", dirOnly: true},
		{base: "dir", pattern: "root-only", anchored: true},
		{base: "dir", pattern: "a/**/b", anchored: true},
		{base: "dir", pattern: "#literal"},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(rule{})); diff != "" {
		t.Errorf("parseRules() mismatch (-want +got):\n%s", diff)
	}
}

func TestFind_TrailingDoubleStarAllowsReinclusion(t *testing.T) {
	fsys := fstest.MapFS{
		"bar.blueprint.yaml":          {Data: []byte("path: bar")},
		"foo/drop.blueprint.yaml":     {Data: []byte("path: drop")},
		"foo/keep.blueprint.yaml":     {Data: []byte("path: keep")},
		"foo/sub/deep.blueprint.yaml": {Data: []byte("path: deep")},
	}

	got, err := Find(fsys, []string{"foo/**", "!foo/keep.blueprint.yaml"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"bar.blueprint.yaml",
		"foo/keep.blueprint.yaml",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Find() mismatch (-want +got):\n%s", diff)
	}
}

func TestRuleMatches(t *testing.T) {
	tests := []struct {
		rule  rule
		path  string
		isDir bool
		want  bool
	}{
		{rule{base: ".", pattern: "foo/**", anchored: true}, "foo", true, false},
		{rule{base: ".", pattern: "foo/**", anchored: true}, "foo/a.blueprint.yaml", false, true},
		{rule{base: ".", pattern: "foo/**", anchored: true}, "foo/a/b", true, true},
		{rule{base: ".", pattern: "a/**/b", anchored: true}, "a/b", true, true},
		{rule{base: ".", pattern: "a/**/b", anchored: true}, "a/x/y/b", true, true},
		{rule{base: "mods", pattern: "lib?", anchored: false}, "mods/deep/lib1", true, true},
		{rule{base: "mods", pattern: "lib?", anchored: false}, "other/lib1", true, false},
		{rule{base: ".", pattern: "build", dirOnly: true}, "build", false, false},
		{rule{base: ".", pattern: "[ab].yml"}, "x/a.yml", false, true},
	}

	for _, tc := range tests {
		if got := tc.rule.matches(tc.path, tc.isDir); got != tc.want {
			t.Errorf("%+v.matches(%q, %v) = %v, want %v", tc.rule, tc.path, tc.isDir, got, tc.want)
		}
	}
}
