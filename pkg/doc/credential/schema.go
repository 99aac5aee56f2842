/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"sync"

	"github.com/pkg/errors"
)

// ClaimKind is the declared type of a claim value in a claim order.
type ClaimKind int

const (
	// KindString marks a claim holding a UTF-8 string value.
	KindString ClaimKind = iota + 1

	// KindNumber marks a claim holding a numeric value.
	KindNumber

	// KindBoolean marks a claim holding a boolean value.
	KindBoolean
)

// ClaimDescriptor declares a single claim of a credential type.
type ClaimDescriptor struct {
	ID   string
	Kind ClaimKind
}

// ClaimOrder is the immutable, versioned sequence mapping claim ids to
// signed-message positions for one credential type. The same order must be used
// to build the message list at signing time and at verification or proof time,
// otherwise signatures do not validate even though nothing was tampered with.
type ClaimOrder struct {
	CredentialType string
	Version        int
	Claims         []ClaimDescriptor
}

// Len returns the number of claims in the order.
func (co *ClaimOrder) Len() int {
	return len(co.Claims)
}

// IDs returns the claim ids in signing order.
func (co *ClaimOrder) IDs() []string {
	ids := make([]string, len(co.Claims))

	for i := range co.Claims {
		ids[i] = co.Claims[i].ID
	}

	return ids
}

// IndexOf returns the signed-message position of the given claim id.
func (co *ClaimOrder) IndexOf(claimID string) (int, bool) {
	for i := range co.Claims {
		if co.Claims[i].ID == claimID {
			return i, true
		}
	}

	return -1, false
}

// DescriptorOf returns the descriptor of the given claim id.
func (co *ClaimOrder) DescriptorOf(claimID string) (*ClaimDescriptor, bool) {
	for i := range co.Claims {
		if co.Claims[i].ID == claimID {
			return &co.Claims[i], true
		}
	}

	return nil, false
}

func (co *ClaimOrder) validate() error {
	if co.CredentialType == "" {
		return errors.New("claim order: credential type is not defined")
	}

	if co.Version <= 0 {
		return errors.New("claim order: version must be positive")
	}

	if len(co.Claims) == 0 {
		return errors.New("claim order: no claims defined")
	}

	seen := make(map[string]struct{}, len(co.Claims))

	for i := range co.Claims {
		c := &co.Claims[i]

		if c.ID == "" {
			return errors.New("claim order: empty claim id")
		}

		if _, ok := seen[c.ID]; ok {
			return errors.Errorf("claim order: duplicate claim id %q", c.ID)
		}

		seen[c.ID] = struct{}{}

		if c.Kind < KindString || c.Kind > KindBoolean {
			return errors.Errorf("claim order: claim %q has unknown kind", c.ID)
		}
	}

	return nil
}

// WalletIdentityCredentialType is the credential type of the built-in wallet identity schema.
const WalletIdentityCredentialType = "WalletIdentityCredential"

// claim orders are registered at startup and only read afterwards.
type claimOrderRegistry struct {
	mu     sync.RWMutex
	orders map[string]*ClaimOrder
}

// nolint:gochecknoglobals
var registry = &claimOrderRegistry{
	orders: map[string]*ClaimOrder{},
}

// RegisterClaimOrder registers the claim order of a credential type. Registering
// the same credential type twice is an error: a claim order is versioned and
// immutable for the lifetime of the credentials signed under it.
func RegisterClaimOrder(order *ClaimOrder) error {
	if err := order.validate(); err != nil {
		return err
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, ok := registry.orders[order.CredentialType]; ok {
		return errors.Errorf("claim order for credential type %q already registered", order.CredentialType)
	}

	registry.orders[order.CredentialType] = order

	return nil
}

// ClaimOrderFor returns the registered claim order of a credential type.
func ClaimOrderFor(credentialType string) (*ClaimOrder, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	order, ok := registry.orders[credentialType]
	if !ok {
		return nil, errors.Errorf("no claim order registered for credential type %q", credentialType)
	}

	return order, nil
}

// nolint:gochecknoinits
func init() {
	walletIdentityV1 := &ClaimOrder{
		CredentialType: WalletIdentityCredentialType,
		Version:        1,
		Claims: []ClaimDescriptor{
			{ID: "walletCommitment", Kind: KindString},
			{ID: "network", Kind: KindString},
			{ID: "chainId", Kind: KindNumber},
			{ID: "verifiedAt", Kind: KindString},
			{ID: "tier", Kind: KindNumber},
		},
	}

	if err := RegisterClaimOrder(walletIdentityV1); err != nil {
		panic(err)
	}
}
