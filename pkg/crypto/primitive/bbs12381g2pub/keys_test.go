/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub_test

import (
	"crypto/sha256"
	"testing"

	"github.com/btcsuite/btcutil/base58"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/credengine-go/pkg/crypto/primitive/bbs12381g2pub"
)

func TestGenerateKeyPair(t *testing.T) {
	h := sha256.New

	seed := make([]byte, 32)

	pubKey, privKey, err := bbs12381g2pub.GenerateKeyPair(h, seed)
	require.NoError(t, err)
	require.NotNil(t, pubKey)
	require.NotNil(t, privKey)

	// use random seed
	pubKey, privKey, err = bbs12381g2pub.GenerateKeyPair(h, nil)
	require.NoError(t, err)
	require.NotNil(t, pubKey)
	require.NotNil(t, privKey)

	// invalid size of seed
	pubKey, privKey, err = bbs12381g2pub.GenerateKeyPair(h, make([]byte, 31))
	require.Error(t, err)
	require.EqualError(t, err, "invalid size of seed")
	require.Nil(t, pubKey)
	require.Nil(t, privKey)
}

func TestPrivateKey_Marshal(t *testing.T) {
	_, privKey, err := generateKeyPairRandom()
	require.NoError(t, err)

	privKeyBytes, err := privKey.Marshal()
	require.NoError(t, err)
	require.NotNil(t, privKeyBytes)
	require.Len(t, privKeyBytes, 32)

	privKeyUnmarshalled, err := bbs12381g2pub.UnmarshalPrivateKey(privKeyBytes)
	require.NoError(t, err)
	require.NotNil(t, privKeyUnmarshalled)

	privKeyBytes2, err := privKeyUnmarshalled.Marshal()
	require.NoError(t, err)
	require.Equal(t, privKeyBytes, privKeyBytes2)
}

func TestPublicKey_Marshal(t *testing.T) {
	pubKey, _, err := generateKeyPairRandom()
	require.NoError(t, err)

	pubKeyBytes, err := pubKey.Marshal()
	require.NoError(t, err)
	require.NotNil(t, pubKeyBytes)
	require.Len(t, pubKeyBytes, 96)

	pubKeyUnmarshalled, err := bbs12381g2pub.UnmarshalPublicKey(pubKeyBytes)
	require.NoError(t, err)
	require.NotNil(t, pubKeyUnmarshalled)

	pubKeyBytes2, err := pubKeyUnmarshalled.Marshal()
	require.NoError(t, err)
	require.Equal(t, pubKeyBytes, pubKeyBytes2)
}

func TestUnmarshalPublicKey_Invalid(t *testing.T) {
	_, err := bbs12381g2pub.UnmarshalPublicKey([]byte("invalid"))
	require.Error(t, err)
	require.EqualError(t, err, "invalid size of public key")

	invalidPointBytes := make([]byte, 96)
	_, err = bbs12381g2pub.UnmarshalPublicKey(invalidPointBytes)
	require.Error(t, err)
	require.Contains(t, err.Error(), "deserialize public key")
}

func TestParseBase58Keys(t *testing.T) {
	privKeyB58 := "5D6Pa8dSwApdnfg7EZR8WnGfvLDCZPZGsZ5Y1ELL9VDj"
	privKeyBytes := base58.Decode(privKeyB58)

	privKey, err := bbs12381g2pub.UnmarshalPrivateKey(privKeyBytes)
	require.NoError(t, err)

	pubKeyBytes, err := privKey.PublicKey().Marshal()
	require.NoError(t, err)

	messagesBytes := [][]byte{[]byte("message1"), []byte("message2")}
	signatureBytes, err := bbs12381g2pub.New().Sign(messagesBytes, privKeyBytes)
	require.NoError(t, err)

	err = bbs12381g2pub.New().Verify(messagesBytes, signatureBytes, pubKeyBytes)
	require.NoError(t, err)
}
