package passsign

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"

	"go.mozilla.org/pkcs7"
)

// Signer packages a set of named asset blobs into a signed pass
// archive: a manifest of SHA-1 digests, a detached PKCS#7 signature of
// that manifest, and a zip wrapping everything.
type Signer struct {
	identity *Identity
}

// NewSigner creates a Signer bound to a loaded identity.
func NewSigner(id *Identity) *Signer {
	return &Signer{identity: id}
}

// Sign returns the signed archive bytes for the given assets. Entries
// are written in sorted name order so identical inputs produce
// identical archives.
func (s *Signer) Sign(assets map[string][]byte) ([]byte, error) {
	manifest, err := buildManifest(assets)
	if err != nil {
		return nil, err
	}

	signature, err := s.signManifest(manifest)
	if err != nil {
		return nil, fmt.Errorf("sign manifest: %w", err)
	}

	entries := map[string][]byte{
		"manifest.json": manifest,
		"signature":     signature,
	}
	for name, data := range assets {
		entries[name] = data
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("add %s to archive: %w", name, err)
		}
		if _, err := w.Write(entries[name]); err != nil {
			return nil, fmt.Errorf("write %s to archive: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// buildManifest maps each asset name to the SHA-1 hex digest of its
// content, as pass readers expect.
func buildManifest(assets map[string][]byte) ([]byte, error) {
	digests := make(map[string]string, len(assets))
	for name, data := range assets {
		sum := sha1.Sum(data)
		digests[name] = hex.EncodeToString(sum[:])
	}
	manifest, err := json.Marshal(digests)
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return manifest, nil
}

func (s *Signer) signManifest(manifest []byte) ([]byte, error) {
	sd, err := pkcs7.NewSignedData(manifest)
	if err != nil {
		return nil, err
	}
	if err := sd.AddSigner(s.identity.Cert, s.identity.Key, pkcs7.SignerInfoConfig{}); err != nil {
		return nil, err
	}
	if s.identity.Intermediate != nil {
		sd.AddCertificate(s.identity.Intermediate)
	}
	sd.Detach()
	return sd.Finish()
}
