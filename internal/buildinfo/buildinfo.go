package buildinfo

import "runtime/debug"

// Set with -ldflags "-X github.com/Effyiex/dev-resp/internal/buildinfo.version=v1.2.3".
var version = "dev"

// Version returns the release version, the module version recorded by the
// toolchain, or "dev".
func Version() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
