/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"time"

	"github.com/hyperledger/aries-framework-go/component/log"
	"github.com/pkg/errors"

	"github.com/trustbloc/credengine-go/pkg/crypto/keypair"
	"github.com/trustbloc/credengine-go/pkg/crypto/primitive/bbs12381g2pub"
)

var logger = log.New("credengine/credential")

// Issuer signs credentials under a single key pair. It is safe for concurrent
// use: issuance does not mutate issuer state.
type Issuer struct {
	id      string
	keyPair *keypair.KeyPair
	bls     *bbs12381g2pub.BBSG2Pub
}

// NewIssuer returns an issuer identified by id and holding the given key pair.
func NewIssuer(id string, kp *keypair.KeyPair) (*Issuer, error) {
	if id == "" {
		return nil, errors.New("issuer id is not defined")
	}

	if kp == nil || !keypair.IsValidSecretKey(kp.SecretKey) || !keypair.IsValidPublicKey(kp.PublicKey) {
		return nil, errors.New("invalid issuer key pair")
	}

	return &Issuer{
		id:      id,
		keyPair: kp,
		bls:     bbs12381g2pub.New(),
	}, nil
}

// ID returns the issuer identifier.
func (i *Issuer) ID() string {
	return i.id
}

// PublicKey returns the serialized public key credentials are verified against.
func (i *Issuer) PublicKey() []byte {
	return i.keyPair.PublicKey
}

// IssueCredential signs the subject claims in the order registered for
// credentialType and returns the resulting credential. The issuance header
// (issuer, holder, issuance time, credential type) is signed as an extra
// message after the claims, so the same signature covers both claims and
// context.
func (i *Issuer) IssueCredential(holderID, credentialType string,
	subject map[string]interface{}) (*Credential, error) {
	if holderID == "" {
		return nil, errors.New("holder id is not defined")
	}

	order, err := ClaimOrderFor(credentialType)
	if err != nil {
		return nil, err
	}

	subject, err = toMap(subject)
	if err != nil {
		return nil, errors.Wrap(err, "normalize subject")
	}

	messages, err := SubjectToMessages(subject, order)
	if err != nil {
		return nil, err
	}

	issuedAt := time.Now().UTC().Truncate(time.Second)

	header, err := headerBytes(i.id, holderID, issuedAt, credentialType)
	if err != nil {
		return nil, err
	}

	signedMessages := make([][]byte, 0, len(messages)+1)
	signedMessages = append(signedMessages, messages...)
	signedMessages = append(signedMessages, header)

	sigBytes, err := i.bls.Sign(signedMessages, i.keyPair.SecretKey)
	if err != nil {
		return nil, errors.Wrap(err, "sign credential")
	}

	vc := &Credential{
		Format:         CredentialFormat,
		CredentialType: credentialType,
		Issuer:         i.id,
		Holder:         holderID,
		IssuedAt:       issuedAt,
		Subject:        subject,
		Signature: &Signature{
			Value:        sigBytes,
			Header:       header,
			MessageCount: order.Len(),
		},
		IssuerPublicKey: i.keyPair.PublicKey,
	}

	logger.Debugf("issued %q credential %s for holder %s", credentialType, vc.ID(), holderID)

	return vc, nil
}
