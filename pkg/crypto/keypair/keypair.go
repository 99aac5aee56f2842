/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package keypair manages BBS+ issuer key pairs: random generation, deterministic
// derivation from a master secret, structural validation and lossless serialization.
package keypair

import (
	"crypto/sha256"
	"io"

	"github.com/multiformats/go-multibase"
	"github.com/pkg/errors"
	"golang.org/x/crypto/hkdf"

	"github.com/trustbloc/credengine-go/pkg/crypto/primitive/bbs12381g2pub"
)

const (
	// SecretKeySize is the size of a serialized BBS+ secret key in bytes.
	SecretKeySize = 32

	// PublicKeySize is the size of a serialized BBS+ public key (G2 point, compressed) in bytes.
	PublicKeySize = 96

	deriveKeySalt = "BBS-SIG-KEYGEN-SEED-"
)

// KeyPair holds a BBS+ secret/public key pair in serialized form. The secret key
// must stay with the issuer process; only the public key crosses trust boundaries.
type KeyPair struct {
	SecretKey []byte
	PublicKey []byte
}

// Generate creates a new KeyPair from a cryptographically secure random seed.
func Generate() (*KeyPair, error) {
	pubKey, privKey, err := bbs12381g2pub.GenerateKeyPair(sha256.New, nil)
	if err != nil {
		return nil, errors.Wrap(err, "generate BBS+ key pair")
	}

	return newKeyPair(pubKey, privKey)
}

// Derive deterministically creates a KeyPair from a master secret and a context string.
// The same (masterSecret, context) input always yields a byte-identical key pair, so an
// issuer key can be reconstructed from a securely stored master secret instead of being
// persisted itself.
func Derive(masterSecret []byte, context string) (*KeyPair, error) {
	if len(masterSecret) == 0 {
		return nil, errors.New("master secret is not defined")
	}

	seed := make([]byte, SecretKeySize)

	reader := hkdf.New(sha256.New, masterSecret, []byte(deriveKeySalt), []byte(context))

	_, err := io.ReadFull(reader, seed)
	if err != nil {
		return nil, errors.Wrap(err, "derive key seed")
	}

	pubKey, privKey, err := bbs12381g2pub.GenerateKeyPair(sha256.New, seed)
	if err != nil {
		return nil, errors.Wrap(err, "derive BBS+ key pair")
	}

	return newKeyPair(pubKey, privKey)
}

func newKeyPair(pubKey *bbs12381g2pub.PublicKey, privKey *bbs12381g2pub.PrivateKey) (*KeyPair, error) {
	secretKeyBytes, err := privKey.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal secret key")
	}

	publicKeyBytes, err := pubKey.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal public key")
	}

	return &KeyPair{
		SecretKey: secretKeyBytes,
		PublicKey: publicKeyBytes,
	}, nil
}

// IsValidSecretKey checks the structural validity of a serialized secret key.
func IsValidSecretKey(secretKey []byte) bool {
	if len(secretKey) != SecretKeySize {
		return false
	}

	_, err := bbs12381g2pub.UnmarshalPrivateKey(secretKey)

	return err == nil
}

// IsValidPublicKey checks that a serialized public key has the correct length and
// decodes to a valid G2 point.
func IsValidPublicKey(publicKey []byte) bool {
	if len(publicKey) != PublicKeySize {
		return false
	}

	_, err := bbs12381g2pub.UnmarshalPublicKey(publicKey)

	return err == nil
}

// Marshal serializes the KeyPair as a fixed-size concatenation of secret and public key.
func (kp *KeyPair) Marshal() ([]byte, error) {
	if !IsValidSecretKey(kp.SecretKey) || !IsValidPublicKey(kp.PublicKey) {
		return nil, errors.New("malformed keypair")
	}

	bytes := make([]byte, 0, SecretKeySize+PublicKeySize)
	bytes = append(bytes, kp.SecretKey...)
	bytes = append(bytes, kp.PublicKey...)

	return bytes, nil
}

// Unmarshal parses a KeyPair from its serialized form.
func Unmarshal(data []byte) (*KeyPair, error) {
	if len(data) != SecretKeySize+PublicKeySize {
		return nil, errors.New("malformed keypair: invalid length")
	}

	kp := &KeyPair{
		SecretKey: append([]byte{}, data[:SecretKeySize]...),
		PublicKey: append([]byte{}, data[SecretKeySize:]...),
	}

	if !IsValidSecretKey(kp.SecretKey) {
		return nil, errors.New("malformed keypair: invalid secret key")
	}

	if !IsValidPublicKey(kp.PublicKey) {
		return nil, errors.New("malformed keypair: invalid public key")
	}

	return kp, nil
}

// Fingerprint returns a short multibase (base58btc) encoding of the public key,
// suitable for logs and CLI output.
func (kp *KeyPair) Fingerprint() (string, error) {
	if !IsValidPublicKey(kp.PublicKey) {
		return "", errors.New("malformed keypair: invalid public key")
	}

	fingerprint, err := multibase.Encode(multibase.Base58BTC, kp.PublicKey)
	if err != nil {
		return "", errors.Wrap(err, "encode public key fingerprint")
	}

	return fingerprint, nil
}
