/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/credengine-go/pkg/doc/credential"
)

func TestClaimOrderFor(t *testing.T) {
	order, err := credential.ClaimOrderFor(credential.WalletIdentityCredentialType)
	require.NoError(t, err)
	require.Equal(t, credential.WalletIdentityCredentialType, order.CredentialType)
	require.Equal(t, 1, order.Version)
	require.Equal(t,
		[]string{"walletCommitment", "network", "chainId", "verifiedAt", "tier"},
		order.IDs())

	idx, ok := order.IndexOf("chainId")
	require.True(t, ok)
	require.Equal(t, 2, idx)

	_, ok = order.IndexOf("unknown")
	require.False(t, ok)

	descriptor, ok := order.DescriptorOf("tier")
	require.True(t, ok)
	require.Equal(t, credential.KindNumber, descriptor.Kind)

	_, err = credential.ClaimOrderFor("UnknownCredential")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no claim order registered")
}

func TestRegisterClaimOrder(t *testing.T) {
	err := credential.RegisterClaimOrder(&credential.ClaimOrder{
		CredentialType: "MembershipCredential",
		Version:        1,
		Claims: []credential.ClaimDescriptor{
			{ID: "memberId", Kind: credential.KindString},
			{ID: "active", Kind: credential.KindBoolean},
		},
	})
	require.NoError(t, err)

	order, err := credential.ClaimOrderFor("MembershipCredential")
	require.NoError(t, err)
	require.Equal(t, 2, order.Len())

	t.Run("duplicate credential type", func(t *testing.T) {
		err := credential.RegisterClaimOrder(&credential.ClaimOrder{
			CredentialType: credential.WalletIdentityCredentialType,
			Version:        2,
			Claims: []credential.ClaimDescriptor{
				{ID: "walletCommitment", Kind: credential.KindString},
			},
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "already registered")
	})

	t.Run("invalid orders", func(t *testing.T) {
		invalid := []*credential.ClaimOrder{
			{Version: 1, Claims: []credential.ClaimDescriptor{{ID: "a", Kind: credential.KindString}}},
			{CredentialType: "X", Claims: []credential.ClaimDescriptor{{ID: "a", Kind: credential.KindString}}},
			{CredentialType: "X", Version: 1},
			{CredentialType: "X", Version: 1, Claims: []credential.ClaimDescriptor{{Kind: credential.KindString}}},
			{CredentialType: "X", Version: 1, Claims: []credential.ClaimDescriptor{
				{ID: "a", Kind: credential.KindString},
				{ID: "a", Kind: credential.KindString},
			}},
			{CredentialType: "X", Version: 1, Claims: []credential.ClaimDescriptor{{ID: "a"}}},
		}

		for _, order := range invalid {
			require.Error(t, credential.RegisterClaimOrder(order))
		}
	})
}
