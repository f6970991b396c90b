package artwork

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passforge/coupon-pass-service/internal/model"
)

// testPNG renders a horizontal gradient so crops of different regions
// differ and resampling has real content to work with.
func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(255 * x / w), G: uint8(255 * y / h), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeFile(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func TestDeriver_Derive_TierDimensions(t *testing.T) {
	// Source aspect ratios that force cropping in both directions.
	testCases := []struct {
		name string
		w, h int
	}{
		{name: "wide_source", w: 1600, h: 200},
		{name: "tall_source", w: 200, h: 900},
		{name: "square_source", w: 500, h: 500},
		{name: "smaller_than_target", w: 100, h: 40},
	}

	d := NewDeriver(t.TempDir())
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			set, err := d.Derive(testPNG(t, tc.w, tc.h), model.DefaultColor)
			require.NoError(t, err)
			defer set.Remove()

			assert.Equal(t, image.Rect(0, 0, 375, 123), decodeFile(t, set.Base).Bounds())
			assert.Equal(t, image.Rect(0, 0, 750, 246), decodeFile(t, set.TwoX).Bounds())
			assert.Equal(t, image.Rect(0, 0, 1125, 369), decodeFile(t, set.ThreeX).Bounds())
		})
	}
}

func TestDeriver_Derive_Deterministic(t *testing.T) {
	d := NewDeriver(t.TempDir())
	src := testPNG(t, 800, 300)
	bg := model.Color{R: 10, G: 20, B: 30}

	first, err := d.Derive(src, bg)
	require.NoError(t, err)
	defer first.Remove()
	second, err := d.Derive(src, bg)
	require.NoError(t, err)
	defer second.Remove()

	for name, path := range first.Files() {
		a, err := os.ReadFile(path)
		require.NoError(t, err)
		b, err := os.ReadFile(second.Files()[name])
		require.NoError(t, err)
		assert.Equal(t, a, b, "tier %s should be byte-identical across derivations", name)
	}
}

func TestDeriver_Derive_BaseTierDimmed(t *testing.T) {
	d := NewDeriver(t.TempDir())

	// Uniform white source: after the 70% dim every pixel must read 178.
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	set, err := d.Derive(buf.Bytes(), model.DefaultColor)
	require.NoError(t, err)
	defer set.Remove()

	base := decodeFile(t, set.Base)
	r, g, b, _ := base.At(100, 60).RGBA()
	assert.Equal(t, uint32(178), r>>8)
	assert.Equal(t, uint32(178), g>>8)
	assert.Equal(t, uint32(178), b>>8)
}

func TestDeriver_Derive_TintedTiersWashed(t *testing.T) {
	d := NewDeriver(t.TempDir())

	// Uniform black source with a pure red wash: 50% alpha puts every
	// channel halfway between black and the background color.
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	set, err := d.Derive(buf.Bytes(), model.Color{R: 200, G: 100, B: 50})
	require.NoError(t, err)
	defer set.Remove()

	twoX := decodeFile(t, set.TwoX)
	r, g, b, _ := twoX.At(300, 100).RGBA()
	assert.InDelta(t, 100, int(r>>8), 1)
	assert.InDelta(t, 50, int(g>>8), 1)
	assert.InDelta(t, 25, int(b>>8), 1)
}

func TestDeriver_Derive_InvalidSource(t *testing.T) {
	scratch := t.TempDir()
	d := NewDeriver(scratch)

	set, err := d.Derive([]byte("not an image"), model.DefaultColor)

	require.Error(t, err)
	assert.Nil(t, set, "no partial tier set on failure")

	// Nothing left behind in the scratch root.
	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStripSet_Remove(t *testing.T) {
	d := NewDeriver(t.TempDir())
	set, err := d.Derive(testPNG(t, 400, 200), model.DefaultColor)
	require.NoError(t, err)

	set.Remove()

	_, err = os.Stat(set.Dir)
	assert.True(t, os.IsNotExist(err), "scratch directory should be gone")

	// Removing twice is harmless.
	set.Remove()
}

func TestStripSet_Remove_Nil(t *testing.T) {
	var set *StripSet
	set.Remove() // must not panic
}
