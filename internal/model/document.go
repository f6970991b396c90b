package model

// Document is the structured pass.json payload handed to the signing
// collaborator. Field names follow the wallet pass format.
type Document struct {
	FormatVersion      int       `json:"formatVersion"`
	PassTypeIdentifier string    `json:"passTypeIdentifier"`
	TeamIdentifier     string    `json:"teamIdentifier"`
	OrganizationName   string    `json:"organizationName"`
	Description        string    `json:"description"`
	LogoText           string    `json:"logoText,omitempty"`
	SerialNumber       string    `json:"serialNumber"`
	ForegroundColor    string    `json:"foregroundColor,omitempty"`
	BackgroundColor    string    `json:"backgroundColor,omitempty"`
	Barcode            *Barcode  `json:"barcode,omitempty"`
	Barcodes           []Barcode `json:"barcodes,omitempty"`
	Coupon             *Coupon   `json:"coupon,omitempty"`
}

// Barcode is the redemption descriptor. The same value is placed in the
// legacy singular slot and the plural list so both old and new pass
// readers resolve an identical payload.
type Barcode struct {
	Message         string `json:"message"`
	Format          string `json:"format"`
	MessageEncoding string `json:"messageEncoding"`
	AltText         string `json:"altText,omitempty"`
}

// Coupon holds the display field slots of the coupon pass style.
type Coupon struct {
	HeaderFields    []Field `json:"headerFields,omitempty"`
	PrimaryFields   []Field `json:"primaryFields,omitempty"`
	SecondaryFields []Field `json:"secondaryFields,omitempty"`
}

// Field is a single labeled display value on the pass.
type Field struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

// Clone returns a deep copy of the document. Builders work on copies so
// the template loaded at startup is never mutated by a request.
func (d Document) Clone() Document {
	out := d
	if d.Barcode != nil {
		bc := *d.Barcode
		out.Barcode = &bc
	}
	if d.Barcodes != nil {
		out.Barcodes = append([]Barcode(nil), d.Barcodes...)
	}
	if d.Coupon != nil {
		cp := Coupon{
			HeaderFields:    append([]Field(nil), d.Coupon.HeaderFields...),
			PrimaryFields:   append([]Field(nil), d.Coupon.PrimaryFields...),
			SecondaryFields: append([]Field(nil), d.Coupon.SecondaryFields...),
		}
		out.Coupon = &cp
	}
	return out
}
