// Package signer encrypts signed IRN payloads with the tax authority's public key.
package signer

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"io"
	"os"
	"sync"

	"firsgate/internal/domain"
)

// KeyBundle is the decoded crypto key file.
type KeyBundle struct {
	PublicKey   *rsa.PublicKey
	Certificate string
}

type keyFile struct {
	PublicKey   string `json:"public_key"`
	Certificate string `json:"certificate"`
}

// LoadKeyBundle reads a key file holding a Base64-encoded PEM public key and
// the certificate string issued with it.
func LoadKeyBundle(path string) (*KeyBundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("signer.LoadKeyBundle: reading %s: %v: %w", path, err, domain.ErrKeyLoad)
	}
	return ParseKeyBundle(raw)
}

// ParseKeyBundle decodes key file contents.
func ParseKeyBundle(raw []byte) (*KeyBundle, error) {
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return nil, fmt.Errorf("signer.ParseKeyBundle: invalid JSON: %v: %w", err, domain.ErrKeyLoad)
	}
	if kf.PublicKey == "" || kf.Certificate == "" {
		return nil, fmt.Errorf("signer.ParseKeyBundle: public_key and certificate are required: %w", domain.ErrKeyLoad)
	}
	pemBytes, err := base64.StdEncoding.DecodeString(kf.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("signer.ParseKeyBundle: decoding public_key: %v: %w", err, domain.ErrKeyLoad)
	}
	pub, err := parsePublicKey(pemBytes)
	if err != nil {
		return nil, fmt.Errorf("signer.ParseKeyBundle: %v: %w", err, domain.ErrKeyLoad)
	}
	return &KeyBundle{PublicKey: pub, Certificate: kf.Certificate}, nil
}

func parsePublicKey(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("public_key is not PEM encoded")
	}
	var key any
	var err error
	switch block.Type {
	case "RSA PUBLIC KEY":
		key, err = x509.ParsePKCS1PublicKey(block.Bytes)
	case "CERTIFICATE":
		var cert *x509.Certificate
		cert, err = x509.ParseCertificate(block.Bytes)
		if err == nil {
			key = cert.PublicKey
		}
	default:
		key, err = x509.ParsePKIXPublicKey(block.Bytes)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is %T, expected RSA", key)
	}
	return rsaKey, nil
}

// Signer encrypts payloads with a key bundle loaded once at startup.
type Signer struct {
	mu     sync.RWMutex
	bundle *KeyBundle
	random io.Reader
}

// New creates a Signer over a loaded bundle.
func New(bundle *KeyBundle) *Signer {
	return &Signer{bundle: bundle, random: rand.Reader}
}

// NewFromFile loads the key bundle at path and creates a Signer.
func NewFromFile(path string) (*Signer, error) {
	bundle, err := LoadKeyBundle(path)
	if err != nil {
		return nil, err
	}
	return New(bundle), nil
}

type payload struct {
	IRN         string `json:"irn"`
	Certificate string `json:"certificate"`
}

// Payload returns the compact JSON document that gets encrypted for signedIRN.
func (s *Signer) Payload(signedIRN string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bundle == nil {
		return nil, fmt.Errorf("signer.Payload: key bundle released: %w", domain.ErrEncryption)
	}
	return marshalPayload(signedIRN, s.bundle.Certificate)
}

func marshalPayload(signedIRN, certificate string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload{IRN: signedIRN, Certificate: certificate}); err != nil {
		return nil, fmt.Errorf("signer: encoding payload: %v: %w", err, domain.ErrEncryption)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Encrypt builds the {irn, certificate} payload for signedIRN, encrypts it
// with RSA PKCS#1 v1.5, and returns the ciphertext as standard Base64.
func (s *Signer) Encrypt(irn, signedIRN string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.bundle == nil {
		return "", fmt.Errorf("signer.Encrypt %s: key bundle released: %w", irn, domain.ErrEncryption)
	}
	data, err := marshalPayload(signedIRN, s.bundle.Certificate)
	if err != nil {
		return "", err
	}
	ciphertext, err := rsa.EncryptPKCS1v15(s.random, s.bundle.PublicKey, data)
	if err != nil {
		return "", fmt.Errorf("signer.Encrypt %s: %v: %w", irn, err, domain.ErrEncryption)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// SelfTest encrypts a probe payload to confirm the key is usable.
func (s *Signer) SelfTest() error {
	_, err := s.Encrypt("TEST", "TEST.0")
	return err
}

// Close releases the key bundle. Encrypt fails after Close.
func (s *Signer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bundle = nil
	return nil
}
