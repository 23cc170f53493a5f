// Package gpg provides OpenPGP signing of published checksum reports.
package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
)

// Signer produces detached ASCII-armored signatures using ProtonMail's go-crypto
// This is in external-adapters to isolate the external dependency
type Signer struct {
	entity *openpgp.Entity
}

// NewSigner reads an armored or binary secret key from r.
// passphrase unlocks encrypted keys and may be nil for unprotected ones.
func NewSigner(r io.Reader, passphrase []byte) (*Signer, error) {
	data, err := io.ReadAll(io.LimitReader(r, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	entities, err := openpgp.ReadArmoredKeyRing(bytes.NewReader(data))
	if err != nil {
		// Try reading as binary
		entities, err = openpgp.ReadKeyRing(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to read key: %w", err)
		}
	}

	var signer *openpgp.Entity
	for _, e := range entities {
		if e.PrivateKey != nil {
			signer = e
			break
		}
	}
	if signer == nil {
		return nil, fmt.Errorf("no private key found")
	}

	if err := unlock(signer, passphrase); err != nil {
		return nil, err
	}

	return &Signer{entity: signer}, nil
}

// NewSignerFromFile loads the signing key from keyPath
func NewSignerFromFile(keyPath string, passphrase []byte) (*Signer, error) {
	//nolint:gosec // G304: keyPath is user-provided for report signing
	f, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close
	defer f.Close()

	return NewSigner(f, passphrase)
}

// Fingerprint returns the signing key fingerprint in upper-case hex
func (s *Signer) Fingerprint() string {
	return fmt.Sprintf("%X", s.entity.PrimaryKey.Fingerprint)
}

// Sign writes an armored detached signature of data to sig
func (s *Signer) Sign(_ context.Context, data io.Reader, sig io.Writer) error {
	if err := openpgp.ArmoredDetachSign(sig, s.entity, data, &packet.Config{}); err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}
	return nil
}

// unlock decrypts the primary key and any encrypted signing subkeys
func unlock(e *openpgp.Entity, passphrase []byte) error {
	keys := []*packet.PrivateKey{e.PrivateKey}
	for _, sub := range e.Subkeys {
		if sub.PrivateKey != nil {
			keys = append(keys, sub.PrivateKey)
		}
	}

	for _, key := range keys {
		if !key.Encrypted {
			continue
		}
		if len(passphrase) == 0 {
			return fmt.Errorf("private key is encrypted, a passphrase is required")
		}
		if err := key.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to decrypt private key: %w", err)
		}
	}
	return nil
}
