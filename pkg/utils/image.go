//go:build !test

package utils

import (
	"bytes"
	"image"
	"image/png"
	"os"

	"golang.design/x/clipboard"
)

// CopyImage copies the given image (a rendered cycle-table chart, typically)
// to the system clipboard as a PNG.
func CopyImage(img image.Image) error {
	if err := clipboard.Init(); err != nil {
		return err
	}

	var b bytes.Buffer
	if err := png.Encode(&b, img); err != nil {
		return err
	}

	clipboard.Write(clipboard.FmtImage, b.Bytes())
	return nil
}

// SaveImagePNG writes img to filename as a PNG file.
func SaveImagePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
