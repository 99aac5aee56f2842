/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package keypair_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/credengine-go/pkg/crypto/keypair"
)

func TestGenerate(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)
	require.Len(t, kp.SecretKey, keypair.SecretKeySize)
	require.Len(t, kp.PublicKey, keypair.PublicKeySize)

	other, err := keypair.Generate()
	require.NoError(t, err)
	require.NotEqual(t, kp.SecretKey, other.SecretKey)
	require.NotEqual(t, kp.PublicKey, other.PublicKey)
}

func TestDerive(t *testing.T) {
	masterSecret := []byte("a long-lived master secret held in secure storage")

	kp1, err := keypair.Derive(masterSecret, "issuer-main")
	require.NoError(t, err)

	kp2, err := keypair.Derive(masterSecret, "issuer-main")
	require.NoError(t, err)

	// same master secret and context yield bit-identical keys
	require.Equal(t, kp1.SecretKey, kp2.SecretKey)
	require.Equal(t, kp1.PublicKey, kp2.PublicKey)

	kp3, err := keypair.Derive(masterSecret, "issuer-backup")
	require.NoError(t, err)
	require.NotEqual(t, kp1.SecretKey, kp3.SecretKey)

	kp4, err := keypair.Derive([]byte("another master secret with enough entropy"), "issuer-main")
	require.NoError(t, err)
	require.NotEqual(t, kp1.SecretKey, kp4.SecretKey)

	_, err = keypair.Derive(nil, "issuer-main")
	require.Error(t, err)
	require.EqualError(t, err, "master secret is not defined")
}

func TestValidators(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	require.True(t, keypair.IsValidSecretKey(kp.SecretKey))
	require.True(t, keypair.IsValidPublicKey(kp.PublicKey))

	require.False(t, keypair.IsValidSecretKey(nil))
	require.False(t, keypair.IsValidSecretKey(kp.SecretKey[:31]))
	require.False(t, keypair.IsValidPublicKey(nil))
	require.False(t, keypair.IsValidPublicKey(kp.PublicKey[:95]))
	require.False(t, keypair.IsValidPublicKey(make([]byte, keypair.PublicKeySize)))
}

func TestMarshalUnmarshal(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	data, err := kp.Marshal()
	require.NoError(t, err)
	require.Len(t, data, keypair.SecretKeySize+keypair.PublicKeySize)

	parsed, err := keypair.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, kp.SecretKey, parsed.SecretKey)
	require.Equal(t, kp.PublicKey, parsed.PublicKey)

	t.Run("truncated payload", func(t *testing.T) {
		_, err = keypair.Unmarshal(data[:64])
		require.Error(t, err)
		require.Contains(t, err.Error(), "malformed keypair")
	})

	t.Run("corrupt public key", func(t *testing.T) {
		corrupt := make([]byte, len(data))
		copy(corrupt, data)

		for i := keypair.SecretKeySize; i < len(corrupt); i++ {
			corrupt[i] = 0
		}

		_, err = keypair.Unmarshal(corrupt)
		require.Error(t, err)
		require.Contains(t, err.Error(), "malformed keypair")
	})

	t.Run("marshal malformed keypair", func(t *testing.T) {
		_, err = (&keypair.KeyPair{SecretKey: []byte("short"), PublicKey: kp.PublicKey}).Marshal()
		require.Error(t, err)
		require.EqualError(t, err, "malformed keypair")
	})
}

func TestFingerprint(t *testing.T) {
	kp, err := keypair.Generate()
	require.NoError(t, err)

	fingerprint, err := kp.Fingerprint()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(fingerprint, "z"))

	_, err = (&keypair.KeyPair{PublicKey: []byte("bad")}).Fingerprint()
	require.Error(t, err)
}
