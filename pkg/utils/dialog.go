//go:build !test

package utils

import "github.com/sqweek/dialog"

// AskForFile opens a native file-open dialog, used by cmd/goadvance when
// invoked without a -rom flag.
func AskForFile(title, startingDir string) (string, error) {
	builder := dialog.File().SetStartDir(startingDir).Title(title)
	return builder.Load()
}
