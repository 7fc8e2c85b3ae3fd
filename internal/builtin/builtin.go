package builtin

// Version is set at build time via -ldflags "-X ...builtin.Version=...".
var Version = "[manual build]"
