package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Clone_Independence(t *testing.T) {
	original := Document{
		FormatVersion: 1,
		SerialNumber:  "template",
		Barcode:       &Barcode{Message: "template", Format: "PKBarcodeFormatQR"},
		Barcodes:      []Barcode{{Message: "template"}},
		Coupon: &Coupon{
			HeaderFields:    []Field{{Key: "expires", Value: "No expiry"}},
			PrimaryFields:   []Field{{Key: "discount", Value: ""}},
			SecondaryFields: []Field{{Key: "service", Value: "All services"}},
		},
	}

	clone := original.Clone()
	clone.SerialNumber = "abc"
	clone.Barcode.Message = "changed"
	clone.Barcodes[0].Message = "changed"
	clone.Coupon.HeaderFields[0].Value = "changed"
	clone.Coupon.PrimaryFields[0].Value = "changed"

	assert.Equal(t, "template", original.SerialNumber)
	assert.Equal(t, "template", original.Barcode.Message)
	assert.Equal(t, "template", original.Barcodes[0].Message)
	assert.Equal(t, "No expiry", original.Coupon.HeaderFields[0].Value)
	assert.Equal(t, "", original.Coupon.PrimaryFields[0].Value)
}

func TestDocument_Clone_NilOptionals(t *testing.T) {
	original := Document{FormatVersion: 1}

	clone := original.Clone()

	require.Nil(t, clone.Barcode)
	require.Nil(t, clone.Barcodes)
	require.Nil(t, clone.Coupon)
}
