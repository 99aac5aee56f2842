/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// CredentialFormat tags the serialized credential envelope.
const CredentialFormat = "cred-v1"

// Signature holds the multi-message signature of a credential together with the
// signed header bytes and the number of claim messages covered by it.
type Signature struct {
	Value        []byte
	Header       []byte
	MessageCount int
}

// Credential is an issued credential: an ordered claim subject bound to issuer,
// holder and issuance context by a multi-message signature.
type Credential struct {
	Format          string
	CredentialType  string
	Issuer          string
	Holder          string
	IssuedAt        time.Time
	Subject         map[string]interface{}
	Signature       *Signature
	IssuerPublicKey []byte
}

// ID returns a stable identifier of the credential, derived from its signature
// bytes. Two credentials with distinct signatures never share an ID.
func (vc *Credential) ID() string {
	digest := sha256.Sum256(vc.Signature.Value)

	return hex.EncodeToString(digest[:])
}

// headerBytes builds the canonical issuance header that gets signed alongside
// the claims. Field order is fixed by the struct definition, so the same
// credential always yields the same bytes.
func headerBytes(issuer, holder string, issuedAt time.Time, credentialType string) ([]byte, error) {
	header := struct {
		Issuer         string `json:"issuer"`
		Holder         string `json:"holder"`
		IssuedAt       string `json:"issuedAt"`
		CredentialType string `json:"credentialType"`
	}{
		Issuer:         issuer,
		Holder:         holder,
		IssuedAt:       issuedAt.UTC().Format(time.RFC3339),
		CredentialType: credentialType,
	}

	b, err := json.Marshal(header)
	if err != nil {
		return nil, errors.Wrap(err, "marshal credential header")
	}

	return b, nil
}

type rawSignature struct {
	Signature    string `json:"signature"`
	Header       string `json:"header,omitempty"`
	MessageCount int    `json:"messageCount"`
}

type rawCredential struct {
	Format          string                 `json:"format"`
	CredentialType  string                 `json:"credentialType"`
	Issuer          string                 `json:"issuer"`
	Holder          string                 `json:"holder"`
	IssuedAt        string                 `json:"issuedAt"`
	Subject         map[string]interface{} `json:"subject"`
	Signature       *rawSignature          `json:"signature"`
	IssuerPublicKey string                 `json:"issuerPublicKey"`
}

// MarshalJSON serializes the credential into the cred-v1 envelope.
func (vc *Credential) MarshalJSON() ([]byte, error) {
	if vc.Signature == nil {
		return nil, errors.New("marshal credential: signature is not defined")
	}

	raw := &rawCredential{
		Format:         CredentialFormat,
		CredentialType: vc.CredentialType,
		Issuer:         vc.Issuer,
		Holder:         vc.Holder,
		IssuedAt:       vc.IssuedAt.UTC().Format(time.RFC3339),
		Subject:        vc.Subject,
		Signature: &rawSignature{
			Signature:    base64.StdEncoding.EncodeToString(vc.Signature.Value),
			Header:       base64.StdEncoding.EncodeToString(vc.Signature.Header),
			MessageCount: vc.Signature.MessageCount,
		},
		IssuerPublicKey: base64.StdEncoding.EncodeToString(vc.IssuerPublicKey),
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "marshal credential")
	}

	return b, nil
}

// ParseCredential deserializes a cred-v1 envelope. Only envelope well-formedness
// is checked here; cryptographic validity is a verifier concern.
func ParseCredential(data []byte) (*Credential, error) {
	var raw rawCredential

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "malformed credential")
	}

	if raw.Format != CredentialFormat {
		return nil, errors.Errorf("unsupported credential format %q", raw.Format)
	}

	if raw.Signature == nil {
		return nil, errors.New("malformed credential: no signature")
	}

	issuedAt, err := time.Parse(time.RFC3339, raw.IssuedAt)
	if err != nil {
		return nil, errors.Wrap(err, "malformed credential: issuedAt")
	}

	sigValue, err := base64.StdEncoding.DecodeString(raw.Signature.Signature)
	if err != nil {
		return nil, errors.Wrap(err, "malformed credential: signature")
	}

	header, err := base64.StdEncoding.DecodeString(raw.Signature.Header)
	if err != nil {
		return nil, errors.Wrap(err, "malformed credential: signature header")
	}

	issuerPubKey, err := base64.StdEncoding.DecodeString(raw.IssuerPublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "malformed credential: issuer public key")
	}

	return &Credential{
		Format:         raw.Format,
		CredentialType: raw.CredentialType,
		Issuer:         raw.Issuer,
		Holder:         raw.Holder,
		IssuedAt:       issuedAt,
		Subject:        raw.Subject,
		Signature: &Signature{
			Value:        sigValue,
			Header:       header,
			MessageCount: raw.Signature.MessageCount,
		},
		IssuerPublicKey: issuerPubKey,
	}, nil
}
