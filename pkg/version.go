package gntaxdump

var (
	// Version of gntaxdump, set by the linker during the build.
	Version = "v0.1.0"
	// Build timestamp, set by the linker during the build.
	Build = "n/a"
)
