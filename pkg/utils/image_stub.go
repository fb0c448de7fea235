//go:build test

package utils

import (
	"errors"
	"image"
	"image/png"
	"os"
)

// CopyImage is stubbed out under the "test" build tag — clipboard access
// needs a display server that test environments don't have.
func CopyImage(img image.Image) error {
	return errors.New("utils: CopyImage unavailable in test builds")
}

// SaveImagePNG has no display-server dependency, so it's kept real even
// under the test tag.
func SaveImagePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
