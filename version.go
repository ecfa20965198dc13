package stepwise

import _ "embed"

// Version is the release of the stepwise module, read from the VERSION file.
//
//go:embed VERSION
var Version string
