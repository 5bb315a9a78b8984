// Package cmdutil holds small helpers shared by the CLI commands.
package cmdutil

import (
	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag in the set was changed on the command
// line. Commands use it to show help when invoked bare.
func HasFlags(flags *pflag.FlagSet) bool {
	found := false
	flags.VisitAll(func(flag *pflag.Flag) {
		if flag.Changed {
			found = true
		}
	})
	return found
}
