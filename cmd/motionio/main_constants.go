package main

// Subcommands.
const (
	cmdExport = "export"
	cmdImport = "import"
	cmdOffset = "offset"
)

// Default command-line flag values not covered by the environment.
const (
	defaultEnvFile      = ".env"
	defaultEntityName   = "imported"
	defaultPathDuration = 100.0 // Blender's default path animation length in frames
	vec3Components      = 3
	offsetPrecision     = 4
)
