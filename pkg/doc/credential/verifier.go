/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"bytes"
	"reflect"

	"github.com/pkg/errors"

	"github.com/trustbloc/credengine-go/pkg/crypto/primitive/bbs12381g2pub"
)

// VerificationResult reports the outcome of a proof or presentation check.
// Error carries the reason when Verified is false.
type VerificationResult struct {
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}

func failure(reason string) *VerificationResult {
	return &VerificationResult{Verified: false, Error: reason}
}

// Verifier checks credential signatures and selective-disclosure proofs.
// It is stateless and safe for concurrent use.
type Verifier struct {
	bls *bbs12381g2pub.BBSG2Pub
}

// NewVerifier returns a verifier.
func NewVerifier() *Verifier {
	return &Verifier{bls: bbs12381g2pub.New()}
}

// VerifyCredential checks the credential signature over the full claim set and
// the issuance header. It returns false for any cryptographic failure and an
// error only for structural problems such as an unregistered credential type.
func (v *Verifier) VerifyCredential(vc *Credential) (bool, error) {
	if vc == nil || vc.Signature == nil {
		return false, errors.New("credential is not defined")
	}

	order, err := ClaimOrderFor(vc.CredentialType)
	if err != nil {
		return false, err
	}

	if vc.Signature.MessageCount != order.Len() {
		logger.Debugf("credential message count %d does not match claim order length %d",
			vc.Signature.MessageCount, order.Len())

		return false, nil
	}

	expectedHeader, err := headerBytes(vc.Issuer, vc.Holder, vc.IssuedAt, vc.CredentialType)
	if err != nil {
		return false, err
	}

	if !bytes.Equal(expectedHeader, vc.Signature.Header) {
		logger.Debugf("credential header does not match issuance fields")

		return false, nil
	}

	messages, err := SubjectToMessages(vc.Subject, order)
	if err != nil {
		return false, err
	}

	signedMessages := make([][]byte, 0, len(messages)+1)
	signedMessages = append(signedMessages, messages...)
	signedMessages = append(signedMessages, vc.Signature.Header)

	if err := v.bls.Verify(signedMessages, vc.Signature.Value, vc.IssuerPublicKey); err != nil {
		logger.Debugf("credential signature verification failed: %s", err.Error())

		return false, nil
	}

	return true, nil
}

// VerifyProof checks a selective-disclosure proof against the issuer public key
// and the issuance header the proof claims to bind to.
func (v *Verifier) VerifyProof(proof *Proof, issuerPublicKey, header []byte) *VerificationResult {
	if proof == nil {
		return failure("no proof")
	}

	if len(proof.RevealedIndices) != len(proof.RevealedMessages) {
		return failure("Mismatch between revealed indices and revealed messages")
	}

	payload, err := bbs12381g2pub.ParsePoKPayload(proof.Value)
	if err != nil {
		return failure(errors.Wrap(err, "parse proof").Error())
	}

	// the last signed slot carries the issuance header, the rest are claims
	messageCount := payload.MessagesCount - 1
	if messageCount < 0 {
		return failure("parse proof: no message slots")
	}

	for _, idx := range proof.RevealedIndices {
		if idx < 0 || idx >= messageCount {
			return failure("Invalid message index")
		}
	}

	expectedRevealed := make([]int, 0, len(proof.RevealedIndices)+1)
	expectedRevealed = append(expectedRevealed, proof.RevealedIndices...)
	expectedRevealed = append(expectedRevealed, messageCount)

	if !equalIndices(payload.Revealed, expectedRevealed) {
		return failure("revealed indices do not match proof")
	}

	messages := make([][]byte, 0, len(proof.RevealedMessages)+1)
	messages = append(messages, proof.RevealedMessages...)
	messages = append(messages, header)

	if err := v.bls.VerifyProof(messages, proof.Value, proof.PresentationHeader, issuerPublicKey); err != nil {
		logger.Debugf("proof verification failed: %s", err.Error())

		return failure(err.Error())
	}

	return &VerificationResult{Verified: true}
}

// VerifyPresentation checks the presentation proof and that the decoded
// revealed claims faithfully reflect the revealed messages.
func (v *Verifier) VerifyPresentation(vp *Presentation) *VerificationResult {
	if vp == nil || vp.Proof == nil {
		return failure("no proof")
	}

	if len(vp.Proof.RevealedIndices) != len(vp.Proof.RevealedMessages) {
		return failure("Mismatch between revealed indices and revealed messages")
	}

	order, err := ClaimOrderFor(vp.CredentialType)
	if err != nil {
		return failure(err.Error())
	}

	decodedClaims := make(map[string]interface{}, len(vp.Proof.RevealedIndices))

	for i, idx := range vp.Proof.RevealedIndices {
		if idx < 0 || idx >= order.Len() {
			return failure("Invalid message index")
		}

		descriptor := &order.Claims[idx]

		value, err := DecodeClaimValue(descriptor.Kind, vp.Proof.RevealedMessages[i])
		if err != nil {
			return failure(errors.Wrapf(err, "decode claim %q", descriptor.ID).Error())
		}

		if value != nil {
			decodedClaims[descriptor.ID] = value
		}
	}

	if !reflect.DeepEqual(decodedClaims, vp.RevealedClaims) {
		return failure("revealed claims do not match proof")
	}

	return v.VerifyProof(vp.Proof, vp.IssuerPublicKey, vp.Header)
}

func equalIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
