/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"encoding/base64"
	"encoding/json"

	"github.com/pkg/errors"
)

// PresentationFormat tags the serialized presentation envelope.
const PresentationFormat = "pres-v1"

// Proof is a derived selective-disclosure proof over a credential signature.
// RevealedIndices and RevealedMessages are aligned pairwise: RevealedMessages[i]
// is the signed encoding of the claim at position RevealedIndices[i].
type Proof struct {
	Value              []byte
	RevealedIndices    []int
	RevealedMessages   [][]byte
	PresentationHeader []byte
}

// Presentation carries a proof together with the decoded revealed claims and
// the issuance context it binds to. It contains no holder identifier and no
// credential signature, so distinct presentations of the same credential are
// unlinkable beyond the claims they choose to reveal.
type Presentation struct {
	Format          string
	CredentialType  string
	Issuer          string
	Proof           *Proof
	RevealedClaims  map[string]interface{}
	IssuerPublicKey []byte
	Header          []byte
}

// RevealedClaim returns the decoded value of a revealed claim.
func (vp *Presentation) RevealedClaim(claimID string) (interface{}, bool) {
	value, ok := vp.RevealedClaims[claimID]

	return value, ok
}

type rawProof struct {
	Proof              string   `json:"proof"`
	RevealedIndices    []int    `json:"revealedIndices"`
	RevealedMessages   []string `json:"revealedMessages"`
	PresentationHeader string   `json:"presentationHeader,omitempty"`
}

type rawPresentation struct {
	Format          string                 `json:"format"`
	CredentialType  string                 `json:"credentialType"`
	Issuer          string                 `json:"issuer"`
	Proof           *rawProof              `json:"proof"`
	RevealedClaims  map[string]interface{} `json:"revealedClaims"`
	IssuerPublicKey string                 `json:"issuerPublicKey"`
	Header          string                 `json:"header,omitempty"`
}

// MarshalJSON serializes the presentation into the pres-v1 envelope.
func (vp *Presentation) MarshalJSON() ([]byte, error) {
	if vp.Proof == nil {
		return nil, errors.New("marshal presentation: proof is not defined")
	}

	revealedMessages := make([]string, len(vp.Proof.RevealedMessages))
	for i, msg := range vp.Proof.RevealedMessages {
		revealedMessages[i] = base64.StdEncoding.EncodeToString(msg)
	}

	raw := &rawPresentation{
		Format:         PresentationFormat,
		CredentialType: vp.CredentialType,
		Issuer:         vp.Issuer,
		Proof: &rawProof{
			Proof:              base64.StdEncoding.EncodeToString(vp.Proof.Value),
			RevealedIndices:    vp.Proof.RevealedIndices,
			RevealedMessages:   revealedMessages,
			PresentationHeader: base64.StdEncoding.EncodeToString(vp.Proof.PresentationHeader),
		},
		RevealedClaims:  vp.RevealedClaims,
		IssuerPublicKey: base64.StdEncoding.EncodeToString(vp.IssuerPublicKey),
		Header:          base64.StdEncoding.EncodeToString(vp.Header),
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "marshal presentation")
	}

	return b, nil
}

// ParsePresentation deserializes a pres-v1 envelope. Only envelope
// well-formedness is checked here; the proof itself is checked by the verifier.
func ParsePresentation(data []byte) (*Presentation, error) {
	var raw rawPresentation

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "malformed presentation")
	}

	if raw.Format != PresentationFormat {
		return nil, errors.Errorf("unsupported presentation format %q", raw.Format)
	}

	if raw.Proof == nil {
		return nil, errors.New("malformed presentation: no proof")
	}

	proofValue, err := base64.StdEncoding.DecodeString(raw.Proof.Proof)
	if err != nil {
		return nil, errors.Wrap(err, "malformed presentation: proof")
	}

	revealedMessages := make([][]byte, len(raw.Proof.RevealedMessages))

	for i, msg := range raw.Proof.RevealedMessages {
		revealedMessages[i], err = base64.StdEncoding.DecodeString(msg)
		if err != nil {
			return nil, errors.Wrapf(err, "malformed presentation: revealed message %d", i)
		}
	}

	presentationHeader, err := base64.StdEncoding.DecodeString(raw.Proof.PresentationHeader)
	if err != nil {
		return nil, errors.Wrap(err, "malformed presentation: presentation header")
	}

	header, err := base64.StdEncoding.DecodeString(raw.Header)
	if err != nil {
		return nil, errors.Wrap(err, "malformed presentation: header")
	}

	issuerPubKey, err := base64.StdEncoding.DecodeString(raw.IssuerPublicKey)
	if err != nil {
		return nil, errors.Wrap(err, "malformed presentation: issuer public key")
	}

	return &Presentation{
		Format:         raw.Format,
		CredentialType: raw.CredentialType,
		Issuer:         raw.Issuer,
		Proof: &Proof{
			Value:              proofValue,
			RevealedIndices:    raw.Proof.RevealedIndices,
			RevealedMessages:   revealedMessages,
			PresentationHeader: presentationHeader,
		},
		RevealedClaims:  raw.RevealedClaims,
		IssuerPublicKey: issuerPubKey,
		Header:          header,
	}, nil
}
