//go:build test

package utils

import "errors"

// AskForFile is stubbed out under the "test" build tag so unit tests don't
// need a display server to link against the native dialog bindings.
func AskForFile(title, startingDir string) (string, error) {
	return "", errors.New("utils: AskForFile unavailable in test builds")
}
