package main

import "github.com/osintex/cli/cmd"

// Set by the linker at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.Execute(cmd.Metadata{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
}
