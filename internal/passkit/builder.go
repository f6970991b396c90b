package passkit

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/passforge/coupon-pass-service/internal/artwork"
	"github.com/passforge/coupon-pass-service/internal/model"
)

const (
	barcodeFormat   = "PKBarcodeFormatQR"
	barcodeEncoding = "iso-8859-1"
	barcodeAltText  = "Scan to redeem"

	// expiryLayout is the date form requests use and the header field
	// displays.
	expiryLayout = "2006-01-02"
)

// Pass is a fully assembled manifest: the populated document plus every
// named asset blob the signing collaborator needs.
type Pass struct {
	Serial   string
	Document model.Document
	Assets   map[string][]byte
}

// Builder produces passes from the immutable template.
type Builder struct {
	template *Template
}

// NewBuilder creates a Builder over a loaded template.
func NewBuilder(t *Template) *Builder {
	return &Builder{template: t}
}

// Build assembles a pass for the request. It mints a fresh serial,
// points both barcode slots at the download URL for that serial, and
// overrides the display fields the request supplies; omitted fields
// keep their template defaults. Strip tiers are attached only when a
// StripSet is given.
func (b *Builder) Build(req *model.CreatePassRequest, bg model.Color, strips *artwork.StripSet, baseURL string) (*Pass, error) {
	doc := b.template.Document()

	serial := uuid.NewString()
	doc.SerialNumber = serial
	doc.BackgroundColor = bg.String()

	barcode := model.Barcode{
		Message:         fmt.Sprintf("%s/passes/%s.pkpass", strings.TrimRight(baseURL, "/"), serial),
		Format:          barcodeFormat,
		MessageEncoding: barcodeEncoding,
		AltText:         barcodeAltText,
	}
	doc.Barcode = &barcode
	doc.Barcodes = []model.Barcode{barcode}

	if doc.Coupon == nil {
		doc.Coupon = &model.Coupon{}
	}
	setFieldValue(doc.Coupon.PrimaryFields, req.Discount)
	if req.ServiceType != "" {
		setFieldValue(doc.Coupon.SecondaryFields, req.ServiceType)
	}
	if req.ExpiryDate != "" {
		setFieldValue(doc.Coupon.HeaderFields, displayExpiry(req.ExpiryDate))
	}

	assets := b.template.Icons()
	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode pass document: %w", err)
	}
	assets["pass.json"] = encoded

	if strips != nil {
		for name, path := range strips.Files() {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read derived %s: %w", name, err)
			}
			assets[name] = data
		}
	}

	return &Pass{Serial: serial, Document: doc, Assets: assets}, nil
}

// setFieldValue overrides the first field slot, if the template defines
// one.
func setFieldValue(fields []model.Field, value string) {
	if len(fields) > 0 {
		fields[0].Value = value
	}
}

// displayExpiry shifts the supplied date one calendar day later, so a
// coupon marked "2025-01-10" reads as valid through the end of that
// day. Unparseable dates pass through unchanged.
func displayExpiry(raw string) string {
	t, err := time.Parse(expiryLayout, raw)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, raw); err != nil {
			return raw
		}
	}
	return t.AddDate(0, 0, 1).Format(expiryLayout)
}
