package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/passforge/coupon-pass-service/internal/artwork"
	"github.com/passforge/coupon-pass-service/internal/model"
	"github.com/passforge/coupon-pass-service/internal/passkit"
)

// StripDeriver produces the strip tiers for a request-supplied image.
type StripDeriver interface {
	Derive(src []byte, bg model.Color) (*artwork.StripSet, error)
}

// ManifestBuilder assembles the pass document and asset bundle.
type ManifestBuilder interface {
	Build(req *model.CreatePassRequest, bg model.Color, strips *artwork.StripSet, baseURL string) (*passkit.Pass, error)
}

// ArchiveSigner is the external signing/packaging collaborator.
type ArchiveSigner interface {
	Sign(assets map[string][]byte) ([]byte, error)
}

// ArchiveStore persists signed archives keyed by serial.
type ArchiveStore interface {
	Save(serial string, data []byte) error
}

// PassService runs the pass generation pipeline: resolve the color,
// derive strip artwork when an image is supplied, build the manifest,
// sign, and persist the archive. Scratch files from derivation are
// released unconditionally before Generate returns.
type PassService struct {
	deriver StripDeriver
	builder ManifestBuilder
	signer  ArchiveSigner
	store   ArchiveStore
}

// NewPassService creates a PassService with its collaborators.
func NewPassService(deriver StripDeriver, builder ManifestBuilder, signer ArchiveSigner, store ArchiveStore) *PassService {
	return &PassService{
		deriver: deriver,
		builder: builder,
		signer:  signer,
		store:   store,
	}
}

// Generate produces a signed pass for the request and returns the
// download URL and serial. baseURL is the externally reachable
// scheme://host the redemption URL embeds. Any failure aborts the
// request; there is no partial success.
func (s *PassService) Generate(ctx context.Context, req *model.CreatePassRequest, baseURL string) (*model.PassResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	bg := model.ParseColor(req.BackgroundColor)

	var strips *artwork.StripSet
	if req.StripImageData != "" {
		src, err := decodeImageData(req.StripImageData)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err)
		}
		strips, err = s.deriver.Derive(src, bg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err)
		}
		// Scratch tiers never outlive the request, success or failure.
		defer strips.Remove()
	}

	pass, err := s.builder.Build(req, bg, strips, baseURL)
	if err != nil {
		return nil, fmt.Errorf("build pass: %w", err)
	}

	archive, err := s.signer.Sign(pass.Assets)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSigningFailed, err)
	}

	if err := s.store.Save(pass.Serial, archive); err != nil {
		return nil, fmt.Errorf("persist archive: %w", err)
	}

	log.Info().
		Str("serial", pass.Serial).
		Bool("strip_image", strips != nil).
		Int("archive_bytes", len(archive)).
		Msg("pass generated")

	return &model.PassResponse{
		Success: true,
		PassURL: pass.Document.Barcode.Message,
		PassID:  pass.Serial,
	}, nil
}

// decodeImageData accepts bare base64 or a data: URI and returns the
// raw image bytes.
func decodeImageData(data string) ([]byte, error) {
	if strings.HasPrefix(data, "data:") {
		i := strings.Index(data, ",")
		if i < 0 {
			return nil, fmt.Errorf("malformed data URI")
		}
		data = data[i+1:]
	}
	return base64.StdEncoding.DecodeString(strings.TrimSpace(data))
}
