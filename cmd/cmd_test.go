package cmd

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, c color.Color) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	file, err := os.Create(path)
	require.Nil(t, err)
	defer file.Close()
	require.Nil(t, png.Encode(file, img))
}

func run(args ...string) (string, error) {
	out := &bytes.Buffer{}
	rootCmd.SetOutput(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConvertAndInspect(t *testing.T) {
	dir := t.TempDir()
	imageDir := filepath.Join(dir, "images")
	require.Nil(t, os.MkdirAll(imageDir, 0755))
	writeImage(t, filepath.Join(imageDir, "a.png"), color.NRGBA{R: 255, A: 255})
	writeImage(t, filepath.Join(imageDir, "b.png"), color.NRGBA{B: 255, A: 255})
	listFile := filepath.Join(dir, "pairs.txt")
	list := "a.png b.png 1\n" +
		"b.png missing.png 2\n" +
		"b.png a.png 3\n"
	require.Nil(t, os.WriteFile(listFile, []byte(list), 0644))
	dbName := filepath.Join(dir, "pairs_db")

	_, err := run("convert", imageDir, listFile, dbName)
	assert.NotNil(t, err, "resize dimensions are required")

	_, err = run("convert", "--resize_height", "4", "--resize_width", "4", "--batch_size", "1", imageDir, listFile, dbName)
	require.Nil(t, err)

	_, err = run("convert", "--resize_height", "4", "--resize_width", "4", imageDir, listFile, dbName)
	assert.NotNil(t, err, "existing store must not be appended to")

	out, err := run("inspect", dbName)
	require.Nil(t, err)
	assert.Contains(t, out, "Count: 2\n")
	assert.Contains(t, out, "First: 00000000_a.png\n")
	assert.Contains(t, out, "Last: 00000002_b.png\n")
	assert.Contains(t, out, "Shape: 6x4x4 Label: 1\n")
}

func TestVersion(t *testing.T) {
	out, err := run("version", "--clean")
	require.Nil(t, err)
	assert.Equal(t, Version+"\n", out)
}
