/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/credengine-go/pkg/crypto/keypair"
	"github.com/trustbloc/credengine-go/pkg/doc/credential"
)

const (
	issuerID = "did:example:issuer"
	holderID = "did:example:holder"
)

func issueWalletCredential(t *testing.T) (*credential.Credential, *keypair.KeyPair) {
	t.Helper()

	kp, err := keypair.Generate()
	require.NoError(t, err)

	issuer, err := credential.NewIssuer(issuerID, kp)
	require.NoError(t, err)

	subject, err := (&credential.WalletIdentitySubject{
		WalletCommitment: "0xabc4217c86f011e0dd6b9e2e2a53bb4a4e4af46a4974bad4b75ba11b8452e71b",
		Network:          "ethereum",
		ChainID:          1,
		VerifiedAt:       "2024-01-01T00:00:00Z",
		Tier:             2,
	}).ToSubject()
	require.NoError(t, err)

	vc, err := issuer.IssueCredential(holderID, credential.WalletIdentityCredentialType, subject)
	require.NoError(t, err)

	return vc, kp
}

func TestIssuer_IssueCredential(t *testing.T) {
	vc, kp := issueWalletCredential(t)

	require.Equal(t, credential.CredentialFormat, vc.Format)
	require.Equal(t, credential.WalletIdentityCredentialType, vc.CredentialType)
	require.Equal(t, issuerID, vc.Issuer)
	require.Equal(t, holderID, vc.Holder)
	require.Equal(t, kp.PublicKey, vc.IssuerPublicKey)
	require.Equal(t, 5, vc.Signature.MessageCount)
	require.NotEmpty(t, vc.Signature.Value)
	require.NotEmpty(t, vc.Signature.Header)
	require.NotEmpty(t, vc.ID())

	verified, err := credential.NewVerifier().VerifyCredential(vc)
	require.NoError(t, err)
	require.True(t, verified)

	t.Run("invalid inputs", func(t *testing.T) {
		issuer, err := credential.NewIssuer(issuerID, kp)
		require.NoError(t, err)

		_, err = issuer.IssueCredential("", credential.WalletIdentityCredentialType, vc.Subject)
		require.EqualError(t, err, "holder id is not defined")

		_, err = issuer.IssueCredential(holderID, "UnknownCredential", vc.Subject)
		require.Error(t, err)
		require.Contains(t, err.Error(), "no claim order registered")

		_, err = issuer.IssueCredential(holderID, credential.WalletIdentityCredentialType,
			map[string]interface{}{"nickname": "x"})
		require.Error(t, err)
	})

	t.Run("invalid issuer construction", func(t *testing.T) {
		_, err := credential.NewIssuer("", kp)
		require.EqualError(t, err, "issuer id is not defined")

		_, err = credential.NewIssuer(issuerID, nil)
		require.EqualError(t, err, "invalid issuer key pair")

		_, err = credential.NewIssuer(issuerID, &keypair.KeyPair{})
		require.EqualError(t, err, "invalid issuer key pair")
	})
}

func TestVerifier_VerifyCredential(t *testing.T) {
	vc, _ := issueWalletCredential(t)
	verifier := credential.NewVerifier()

	verified, err := verifier.VerifyCredential(vc)
	require.NoError(t, err)
	require.True(t, verified)

	t.Run("tampered claim", func(t *testing.T) {
		tampered := *vc
		tampered.Subject = map[string]interface{}{}

		for k, v := range vc.Subject {
			tampered.Subject[k] = v
		}
		tampered.Subject["network"] = "polygon"

		verified, err := verifier.VerifyCredential(&tampered)
		require.NoError(t, err)
		require.False(t, verified)
	})

	t.Run("tampered holder breaks header binding", func(t *testing.T) {
		tampered := *vc
		tampered.Holder = "did:example:other"

		verified, err := verifier.VerifyCredential(&tampered)
		require.NoError(t, err)
		require.False(t, verified)
	})

	t.Run("wrong issuer key", func(t *testing.T) {
		otherKP, err := keypair.Generate()
		require.NoError(t, err)

		tampered := *vc
		tampered.IssuerPublicKey = otherKP.PublicKey

		verified, err := verifier.VerifyCredential(&tampered)
		require.NoError(t, err)
		require.False(t, verified)
	})

	t.Run("message count mismatch", func(t *testing.T) {
		tampered := *vc
		tampered.Signature = &credential.Signature{
			Value:        vc.Signature.Value,
			Header:       vc.Signature.Header,
			MessageCount: 4,
		}

		verified, err := verifier.VerifyCredential(&tampered)
		require.NoError(t, err)
		require.False(t, verified)
	})

	t.Run("nil credential", func(t *testing.T) {
		_, err := verifier.VerifyCredential(nil)
		require.EqualError(t, err, "credential is not defined")
	})
}

func TestCredential_RoundTrip(t *testing.T) {
	vc, _ := issueWalletCredential(t)

	data, err := json.Marshal(vc)
	require.NoError(t, err)

	parsed, err := credential.ParseCredential(data)
	require.NoError(t, err)
	require.Equal(t, vc, parsed)

	verified, err := credential.NewVerifier().VerifyCredential(parsed)
	require.NoError(t, err)
	require.True(t, verified)
}

func TestParseCredential_Errors(t *testing.T) {
	vc, _ := issueWalletCredential(t)

	data, err := json.Marshal(vc)
	require.NoError(t, err)

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := credential.ParseCredential([]byte("not json"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "malformed credential")
	})

	t.Run("unsupported format", func(t *testing.T) {
		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))

		raw["format"] = "cred-v999"

		bytes, err := json.Marshal(raw)
		require.NoError(t, err)

		_, err = credential.ParseCredential(bytes)
		require.EqualError(t, err, `unsupported credential format "cred-v999"`)
	})

	t.Run("missing signature", func(t *testing.T) {
		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))

		delete(raw, "signature")

		bytes, err := json.Marshal(raw)
		require.NoError(t, err)

		_, err = credential.ParseCredential(bytes)
		require.EqualError(t, err, "malformed credential: no signature")
	})

	t.Run("corrupt signature encoding", func(t *testing.T) {
		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &raw))

		raw["signature"].(map[string]interface{})["signature"] = "!!not base64!!"

		bytes, err := json.Marshal(raw)
		require.NoError(t, err)

		_, err = credential.ParseCredential(bytes)
		require.Error(t, err)
		require.Contains(t, err.Error(), "malformed credential: signature")
	})
}
