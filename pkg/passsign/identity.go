package passsign

import (
	"crypto"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// Identity is the process-wide signing identity: the signing
// certificate, its private key, and the optional intermediate that
// pass readers use to complete the trust chain. It is loaded once at
// startup and shared read-only across requests.
type Identity struct {
	Cert         *x509.Certificate
	Key          crypto.PrivateKey
	Intermediate *x509.Certificate
}

// LoadIdentity reads the PEM-encoded certificate and key from disk.
// keyPassword decrypts a passphrase-protected key PEM block; pass an
// empty string for unencrypted keys. intermediatePath may be empty.
func LoadIdentity(certPath, keyPath, keyPassword, intermediatePath string) (*Identity, error) {
	cert, err := readCertificate(certPath)
	if err != nil {
		return nil, fmt.Errorf("load signing certificate: %w", err)
	}

	key, err := readPrivateKey(keyPath, keyPassword)
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}

	id := &Identity{Cert: cert, Key: key}
	if intermediatePath != "" {
		inter, err := readCertificate(intermediatePath)
		if err != nil {
			return nil, fmt.Errorf("load intermediate certificate: %w", err)
		}
		id.Intermediate = inter
	}
	return id, nil
}

func readCertificate(path string) (*x509.Certificate, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	return x509.ParseCertificate(block.Bytes)
}

func readPrivateKey(path, password string) (crypto.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	block, _ := pem.Decode(raw)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}

	der := block.Bytes
	if x509.IsEncryptedPEMBlock(block) {
		der, err = x509.DecryptPEMBlock(block, []byte(password))
		if err != nil {
			return nil, fmt.Errorf("decrypt key: %w", err)
		}
	}

	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	return nil, errors.New("unsupported private key format")
}
