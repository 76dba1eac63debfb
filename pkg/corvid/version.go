// Package corvid holds identifiers shared across packages: the name and
// version reported in diagnostics (the selfplay driver logs them at startup).
package corvid

import "github.com/seekerror/build"

var Version = build.NewVersion(0, 1, 0)

// Name identifies this implementation in diagnostics.
const Name = "corvid"
