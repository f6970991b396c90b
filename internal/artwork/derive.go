package artwork

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/passforge/coupon-pass-service/internal/model"
)

// Tier dimensions for the strip artwork at each display density.
const (
	baseWidth    = 375
	baseHeight   = 123
	twoXWidth    = 750
	twoXHeight   = 246
	threeXWidth  = 1125
	threeXHeight = 369
)

// dimFactor darkens the 1x tier so overlaid pass text stays legible.
const dimFactor = 0.7

// washOpacity is the alpha of the background-color wash on the 2x/3x tiers.
const washOpacity = 0.5

// StripSet is the three derived strip tiers written to a request-scoped
// scratch directory. The caller owns the set and must call Remove once
// the tiers have been consumed, on success and failure alike.
type StripSet struct {
	Dir    string
	Base   string // strip.png, 375x123
	TwoX   string // strip@2x.png, 750x246
	ThreeX string // strip@3x.png, 1125x369
}

// Files maps each asset filename to its scratch path, in the order the
// manifest builder attaches them.
func (s *StripSet) Files() map[string]string {
	return map[string]string{
		"strip.png":    s.Base,
		"strip@2x.png": s.TwoX,
		"strip@3x.png": s.ThreeX,
	}
}

// Remove deletes the scratch directory. Best-effort: a failed removal
// is logged, never escalated to the caller.
func (s *StripSet) Remove() {
	if s == nil || s.Dir == "" {
		return
	}
	if err := os.RemoveAll(s.Dir); err != nil {
		log.Warn().Err(err).Str("dir", s.Dir).Msg("failed to remove strip scratch directory")
	}
}

// Deriver produces the three strip tiers from a single source image.
type Deriver struct {
	scratchRoot string
}

// NewDeriver creates a Deriver that allocates scratch directories under
// root. An empty root uses the system temp directory.
func NewDeriver(root string) *Deriver {
	return &Deriver{scratchRoot: root}
}

// Derive decodes src and renders the three tiers: the 1x tier is
// cover-cropped and dimmed to 70% brightness, the 2x and 3x tiers are
// cover-cropped and washed with the background color at 50% alpha. All
// tiers are encoded as PNG regardless of the source format. On any
// failure the scratch directory is removed and no partial set is
// returned.
func (d *Deriver) Derive(src []byte, bg model.Color) (*StripSet, error) {
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode strip image: %w", err)
	}

	dir, err := os.MkdirTemp(d.scratchRoot, "strip-")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	set := &StripSet{
		Dir:    dir,
		Base:   filepath.Join(dir, "strip.png"),
		TwoX:   filepath.Join(dir, "strip@2x.png"),
		ThreeX: filepath.Join(dir, "strip@3x.png"),
	}

	tiers := []struct {
		path   string
		render func() *image.NRGBA
	}{
		{set.Base, func() *image.NRGBA { return dim(fill(img, baseWidth, baseHeight)) }},
		{set.TwoX, func() *image.NRGBA { return wash(fill(img, twoXWidth, twoXHeight), bg) }},
		{set.ThreeX, func() *image.NRGBA { return wash(fill(img, threeXWidth, threeXHeight), bg) }},
	}
	for _, tier := range tiers {
		if err := imaging.Save(tier.render(), tier.path); err != nil {
			set.Remove()
			return nil, fmt.Errorf("encode %s: %w", filepath.Base(tier.path), err)
		}
	}

	return set, nil
}

// fill scales and crops the source to exactly cover the target box.
// Overflow is cropped, never letterboxed.
func fill(img image.Image, w, h int) *image.NRGBA {
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

// dim multiplies every channel by dimFactor.
func dim(img *image.NRGBA) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		c.R = uint8(float64(c.R) * dimFactor)
		c.G = uint8(float64(c.G) * dimFactor)
		c.B = uint8(float64(c.B) * dimFactor)
		return c
	})
}

// wash composites a solid rectangle of the background color over the
// whole tier at washOpacity.
func wash(img *image.NRGBA, bg model.Color) *image.NRGBA {
	b := img.Bounds()
	tint := imaging.New(b.Dx(), b.Dy(), color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 255})
	return imaging.Overlay(img, tint, image.Pt(0, 0), washOpacity)
}
