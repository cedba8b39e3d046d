// SPDX-License-Identifier: MIT

package imageio_test

import (
	"bytes"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvfilter/imageio"
)

// opaque builds a w×h opaque test card.
func opaque(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 9), G: uint8(y * 13), B: uint8((x + y) * 5), A: 255})
		}
	}

	return img
}

// requireSamePixels compares two images pixel by pixel in 8-bit straight alpha.
func requireSamePixels(t *testing.T, want, got image.Image) {
	t.Helper()
	require.Equal(t, want.Bounds(), got.Bounds())
	b := want.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			require.Equal(t,
				color.NRGBAModel.Convert(want.At(x, y)),
				color.NRGBAModel.Convert(got.At(x, y)), "(%d,%d)", x, y)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	src := opaque(12, 7)
	tests := []struct {
		format   imageio.Format
		lossless bool
	}{
		{imageio.PNG, true},
		{imageio.BMP, true},
		{imageio.TIFF, true},
		{imageio.JPEG, false},
		{imageio.GIF, false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(string(tc.format), func(t *testing.T) {
			require.True(t, tc.format.CanEncode())

			var buf bytes.Buffer
			require.NoError(t, imageio.Encode(&buf, tc.format, src))

			img, got, err := imageio.Decode(&buf)
			require.NoError(t, err)
			require.Equal(t, tc.format, got)
			require.Equal(t, src.Bounds(), img.Bounds())
			if tc.lossless {
				requireSamePixels(t, src, img)
			}
		})
	}
}

func TestEncodeOptions(t *testing.T) {
	src := opaque(64, 64)

	var low, high bytes.Buffer
	require.NoError(t, imageio.Encode(&low, imageio.JPEG, src, imageio.WithJPEGQuality(-5)))
	require.NoError(t, imageio.Encode(&high, imageio.JPEG, src, imageio.WithJPEGQuality(500)))
	require.Less(t, low.Len(), high.Len())

	var tif bytes.Buffer
	require.NoError(t, imageio.Encode(&tif, imageio.TIFF, src, imageio.WithBestCompression()))
	img, _, err := imageio.Decode(&tif)
	require.NoError(t, err)
	requireSamePixels(t, src, img)

	var gif bytes.Buffer
	require.NoError(t, imageio.Encode(&gif, imageio.GIF, src, imageio.WithGIFColors(4), nil))
	_, format, err := imageio.Decode(&gif)
	require.NoError(t, err)
	require.Equal(t, imageio.GIF, format)
}

func TestEncodeErrors(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, imageio.Encode(&buf, imageio.WebP, opaque(1, 1)), imageio.ErrUnsupportedFormat)
	require.ErrorIs(t, imageio.Encode(&buf, imageio.Format("xcf"), opaque(1, 1)), imageio.ErrUnsupportedFormat)
	require.ErrorIs(t, imageio.Encode(&buf, imageio.PNG, nil), imageio.ErrEmptyData)
	require.False(t, imageio.WebP.CanEncode())
}

func TestDecodeErrors(t *testing.T) {
	_, _, err := imageio.LoadBytes(nil)
	require.ErrorIs(t, err, imageio.ErrEmptyData)

	_, _, err = imageio.LoadBytes([]byte("definitely not an image"))
	require.ErrorIs(t, err, imageio.ErrUnsupportedFormat)

	_, _, err = imageio.Load(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]imageio.Format{
		"a.png":         imageio.PNG,
		"b.JPG":         imageio.JPEG,
		"c.jpeg":        imageio.JPEG,
		"dir/d.gif":     imageio.GIF,
		"e.bmp":         imageio.BMP,
		"f.tif":         imageio.TIFF,
		"g.TIFF":        imageio.TIFF,
		"photo.v2.webp": imageio.WebP,
	}
	for path, want := range tests {
		got, err := imageio.FormatFromPath(path)
		require.NoError(t, err, path)
		require.Equal(t, want, got, path)
	}

	for _, path := range []string{"noext", "x.psd", "y."} {
		_, err := imageio.FormatFromPath(path)
		require.ErrorIs(t, err, imageio.ErrUnsupportedFormat, path)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src := opaque(9, 5)

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		require.NoError(t, imageio.Save(path, src))

		img, _, err := imageio.Load(path)
		require.NoError(t, err)
		requireSamePixels(t, src, img)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		fromBytes, _, err := imageio.LoadBytes(data)
		require.NoError(t, err)
		requireSamePixels(t, src, fromBytes)
	}

	require.ErrorIs(t, imageio.Save(filepath.Join(dir, "out.webp"), src), imageio.ErrUnsupportedFormat)
	require.ErrorIs(t, imageio.Save(filepath.Join(dir, "out.raw"), src), imageio.ErrUnsupportedFormat)
}

func TestSaveRemovesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")

	err := imageio.Save(path, image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	require.Error(t, err)

	_, err = os.Stat(path)
	require.ErrorIs(t, err, fs.ErrNotExist)
}
