/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/credengine-go/pkg/doc/credential"
)

func TestEncodeClaimValue(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"string", "ethereum", "ethereum"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"int", 42, "42"},
		{"int64", int64(-7), "-7"},
		{"float64 integral", float64(2), "2"},
		{"float64 fraction", 2.5, "2.5"},
		{"json number", json.Number("123"), "123"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := credential.EncodeClaimValue(tc.value)
			require.NoError(t, err)
			require.Equal(t, tc.want, string(encoded))
		})
	}

	t.Run("unsupported type", func(t *testing.T) {
		_, err := credential.EncodeClaimValue([]string{"nested"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported claim value type")
	})
}

func TestDecodeClaimValue(t *testing.T) {
	value, err := credential.DecodeClaimValue(credential.KindString, []byte("ethereum"))
	require.NoError(t, err)
	require.Equal(t, "ethereum", value)

	value, err = credential.DecodeClaimValue(credential.KindNumber, []byte("2"))
	require.NoError(t, err)
	require.Equal(t, float64(2), value)

	value, err = credential.DecodeClaimValue(credential.KindBoolean, []byte("true"))
	require.NoError(t, err)
	require.Equal(t, true, value)

	t.Run("empty bytes decode to nil", func(t *testing.T) {
		for _, kind := range []credential.ClaimKind{
			credential.KindString, credential.KindNumber, credential.KindBoolean,
		} {
			value, err := credential.DecodeClaimValue(kind, nil)
			require.NoError(t, err)
			require.Nil(t, value)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := credential.DecodeClaimValue(credential.KindNumber, []byte("not a number"))
		require.Error(t, err)

		_, err = credential.DecodeClaimValue(credential.KindBoolean, []byte("yes"))
		require.Error(t, err)

		_, err = credential.DecodeClaimValue(credential.ClaimKind(99), []byte("x"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown claim kind")
	})
}

func TestSubjectToMessages(t *testing.T) {
	order, err := credential.ClaimOrderFor(credential.WalletIdentityCredentialType)
	require.NoError(t, err)

	subject := map[string]interface{}{
		"walletCommitment": "0xabc",
		"network":          "ethereum",
		"chainId":          float64(1),
		"verifiedAt":       "2024-01-01T00:00:00Z",
		"tier":             float64(2),
	}

	messages, err := credential.SubjectToMessages(subject, order)
	require.NoError(t, err)
	require.Len(t, messages, 5)
	require.Equal(t, "0xabc", string(messages[0]))
	require.Equal(t, "ethereum", string(messages[1]))
	require.Equal(t, "1", string(messages[2]))
	require.Equal(t, "2024-01-01T00:00:00Z", string(messages[3]))
	require.Equal(t, "2", string(messages[4]))

	t.Run("absent claims encode to empty bytes", func(t *testing.T) {
		messages, err := credential.SubjectToMessages(map[string]interface{}{
			"network": "ethereum",
		}, order)
		require.NoError(t, err)
		require.Len(t, messages, 5)
		require.Empty(t, messages[0])
		require.Equal(t, "ethereum", string(messages[1]))
		require.Empty(t, messages[4])
	})

	t.Run("unknown claim rejected", func(t *testing.T) {
		_, err := credential.SubjectToMessages(map[string]interface{}{
			"nickname": "x",
		}, order)
		require.Error(t, err)
		require.Contains(t, err.Error(), `claim "nickname" is not part of`)
	})

	t.Run("kind mismatch rejected", func(t *testing.T) {
		_, err := credential.SubjectToMessages(map[string]interface{}{
			"network": 7,
		}, order)
		require.Error(t, err)
		require.Contains(t, err.Error(), `claim "network"`)
	})
}

func TestWalletIdentitySubject(t *testing.T) {
	typed := &credential.WalletIdentitySubject{
		WalletCommitment: "0xabc",
		Network:          "ethereum",
		ChainID:          1,
		VerifiedAt:       "2024-01-01T00:00:00Z",
		Tier:             2,
	}

	subject, err := typed.ToSubject()
	require.NoError(t, err)
	require.Equal(t, "ethereum", subject["network"])
	require.Equal(t, float64(1), subject["chainId"])
	require.Equal(t, float64(2), subject["tier"])

	var decoded credential.WalletIdentitySubject

	require.NoError(t, credential.DecodeSubject(subject, &decoded))
	require.Equal(t, *typed, decoded)

	t.Run("zero fields are omitted", func(t *testing.T) {
		subject, err := (&credential.WalletIdentitySubject{Network: "ethereum"}).ToSubject()
		require.NoError(t, err)
		require.Len(t, subject, 1)
	})
}
