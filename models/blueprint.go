package models

// ModuleBuildGradleBlueprint describes the contents of a single module's
// build.gradle file. Collections are kept in insertion order so rendering is
// reproducible.
type ModuleBuildGradleBlueprint struct {
	// Path is where the rendered build file is written.
	Path string

	Plugins      []string
	Libraries    []LibraryDependency
	Dependencies []ModuleDependency

	// ExtraLines are appended verbatim after the generated content. A nil
	// slice means no extra lines were configured.
	ExtraLines []string
}

// LibraryDependency is an external artifact pulled in under a configuration
// scope such as "compile" or "testCompile".
type LibraryDependency struct {
	Scope      string
	Coordinate string
}

// ModuleDependency points at another generated module.
type ModuleDependency struct {
	Name  string
	Scope string

	// Module is a back-reference to the target module. Generators only use
	// Name and never follow this pointer.
	Module *ModuleBlueprint
}

// ModuleBlueprint identifies a module that other modules can depend on.
type ModuleBlueprint struct {
	Name string
}
