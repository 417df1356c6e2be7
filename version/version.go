package version

// Version is the engine version, overridden at build time with
// -ldflags "-X github.com/lightsnake/engine/version.Version=...".
var Version = "dev"
