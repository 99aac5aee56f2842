/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/trustbloc/credengine-go/pkg/crypto/primitive/bbs12381g2pub"
)

// Holder derives selective-disclosure presentations from credentials it holds.
// It is stateless and safe for concurrent use.
type Holder struct {
	bls *bbs12381g2pub.BBSG2Pub
}

// NewHolder returns a holder.
func NewHolder() *Holder {
	return &Holder{bls: bbs12381g2pub.New()}
}

// CreatePresentation derives a proof over the credential signature revealing
// only the claims named in revealClaimIDs, bound to the verifier-supplied
// presentation nonce. The issuance header is always revealed so the verifier
// learns the issuance context, never the hidden claims.
func (h *Holder) CreatePresentation(vc *Credential, revealClaimIDs []string,
	presentationNonce []byte) (*Presentation, error) {
	if vc == nil || vc.Signature == nil {
		return nil, errors.New("credential is not defined")
	}

	if len(presentationNonce) == 0 {
		return nil, errors.New("presentation nonce is not defined")
	}

	order, err := ClaimOrderFor(vc.CredentialType)
	if err != nil {
		return nil, err
	}

	if vc.Signature.MessageCount != order.Len() {
		return nil, errors.Errorf("credential message count %d does not match %q claim order length %d",
			vc.Signature.MessageCount, vc.CredentialType, order.Len())
	}

	messages, err := SubjectToMessages(vc.Subject, order)
	if err != nil {
		return nil, err
	}

	claimIndices, err := resolveRevealIndices(revealClaimIDs, order)
	if err != nil {
		return nil, err
	}

	signedMessages := make([][]byte, 0, len(messages)+1)
	signedMessages = append(signedMessages, messages...)
	signedMessages = append(signedMessages, vc.Signature.Header)

	// the issuance header sits after the claims and is always revealed
	revealedIndices := make([]int, 0, len(claimIndices)+1)
	revealedIndices = append(revealedIndices, claimIndices...)
	revealedIndices = append(revealedIndices, order.Len())

	proofBytes, err := h.bls.DeriveProof(signedMessages, vc.Signature.Value,
		presentationNonce, vc.IssuerPublicKey, revealedIndices)
	if err != nil {
		return nil, errors.Wrap(err, "derive proof")
	}

	revealedMessages := make([][]byte, len(claimIndices))
	revealedClaims := make(map[string]interface{}, len(claimIndices))

	for i, idx := range claimIndices {
		revealedMessages[i] = messages[idx]

		descriptor := &order.Claims[idx]

		value, err := DecodeClaimValue(descriptor.Kind, messages[idx])
		if err != nil {
			return nil, errors.Wrapf(err, "decode claim %q", descriptor.ID)
		}

		if value != nil {
			revealedClaims[descriptor.ID] = value
		}
	}

	return &Presentation{
		Format:         PresentationFormat,
		CredentialType: vc.CredentialType,
		Issuer:         vc.Issuer,
		Proof: &Proof{
			Value:              proofBytes,
			RevealedIndices:    claimIndices,
			RevealedMessages:   revealedMessages,
			PresentationHeader: presentationNonce,
		},
		RevealedClaims:  revealedClaims,
		IssuerPublicKey: vc.IssuerPublicKey,
		Header:          vc.Signature.Header,
	}, nil
}

// resolveRevealIndices maps claim ids to their positions in the claim order,
// dropping duplicates and returning the positions in ascending order.
func resolveRevealIndices(revealClaimIDs []string, order *ClaimOrder) ([]int, error) {
	seen := make(map[int]struct{}, len(revealClaimIDs))
	indices := make([]int, 0, len(revealClaimIDs))

	for _, id := range revealClaimIDs {
		idx, ok := order.IndexOf(id)
		if !ok {
			return nil, errors.Errorf("claim %q is not part of the %q claim order", id, order.CredentialType)
		}

		if _, ok := seen[idx]; ok {
			continue
		}

		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}

	sort.Ints(indices)

	return indices, nil
}
