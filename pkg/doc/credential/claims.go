/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"encoding/json"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// EncodeClaimValue maps a claim value to the byte string that gets signed.
// The mapping is a fixed protocol rule: an absent or nil claim encodes to the
// empty byte string, strings encode as UTF-8, booleans as "true"/"false", and
// numbers in canonical decimal form with no exponent and no trailing zeros.
func EncodeClaimValue(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return []byte{}, nil
	case string:
		return []byte(v), nil
	case bool:
		if v {
			return []byte("true"), nil
		}

		return []byte("false"), nil
	case int:
		return []byte(strconv.FormatInt(int64(v), 10)), nil
	case int32:
		return []byte(strconv.FormatInt(int64(v), 10)), nil
	case int64:
		return []byte(strconv.FormatInt(v, 10)), nil
	case uint64:
		return []byte(strconv.FormatUint(v, 10)), nil
	case float32:
		return []byte(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case float64:
		return []byte(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case json.Number:
		return []byte(v.String()), nil
	default:
		return nil, errors.Errorf("unsupported claim value type %T", value)
	}
}

// DecodeClaimValue maps a signed byte string back to the claim value of the
// given kind. It inverts EncodeClaimValue: the empty byte string decodes to nil
// for every kind.
func DecodeClaimValue(kind ClaimKind, data []byte) (interface{}, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch kind {
	case KindString:
		return string(data), nil
	case KindNumber:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "decode number claim value %q", data)
		}

		return n, nil
	case KindBoolean:
		switch string(data) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, errors.Errorf("decode boolean claim value %q", data)
		}
	default:
		return nil, errors.Errorf("unknown claim kind %d", kind)
	}
}

// SubjectToMessages encodes a credential subject into the ordered message list
// defined by the claim order. Claims absent from the subject encode to the empty
// byte string at their position, so the message list length always equals the
// claim order length.
func SubjectToMessages(subject map[string]interface{}, order *ClaimOrder) ([][]byte, error) {
	for id := range subject {
		if _, ok := order.IndexOf(id); !ok {
			return nil, errors.Errorf("claim %q is not part of the %q claim order",
				id, order.CredentialType)
		}
	}

	messages := make([][]byte, order.Len())

	for i := range order.Claims {
		descriptor := &order.Claims[i]

		value, ok := subject[descriptor.ID]
		if ok && value != nil {
			if err := checkClaimKind(descriptor, value); err != nil {
				return nil, err
			}
		}

		encoded, err := EncodeClaimValue(value)
		if err != nil {
			return nil, errors.Wrapf(err, "encode claim %q", descriptor.ID)
		}

		messages[i] = encoded
	}

	return messages, nil
}

func checkClaimKind(descriptor *ClaimDescriptor, value interface{}) error {
	var ok bool

	switch descriptor.Kind {
	case KindString:
		_, ok = value.(string)
	case KindBoolean:
		_, ok = value.(bool)
	case KindNumber:
		switch value.(type) {
		case int, int32, int64, uint64, float32, float64, json.Number:
			ok = true
		}
	}

	if !ok {
		return errors.Errorf("claim %q has value of type %T, want kind %d",
			descriptor.ID, value, descriptor.Kind)
	}

	return nil
}

// WalletIdentitySubject is the typed subject of the built-in wallet identity
// credential. Zero-valued optional fields are omitted from the subject map and
// sign as absent claims.
type WalletIdentitySubject struct {
	WalletCommitment string `json:"walletCommitment,omitempty"`
	Network          string `json:"network,omitempty"`
	ChainID          int64  `json:"chainId,omitempty"`
	VerifiedAt       string `json:"verifiedAt,omitempty"`
	Tier             int    `json:"tier,omitempty"`
}

// ToSubject converts the typed subject into the generic subject map used by
// issuance, with values normalized to their JSON representation.
func (s *WalletIdentitySubject) ToSubject() (map[string]interface{}, error) {
	return toMap(s)
}

// DecodeSubject decodes a generic subject map (for example the revealed claims
// of a verified presentation) into a typed subject structure.
func DecodeSubject(subject map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "create subject decoder")
	}

	if err := decoder.Decode(subject); err != nil {
		return errors.Wrap(err, "decode subject")
	}

	return nil
}

// toMap round-trips a value through JSON to get the generic map form with
// JSON-normalized scalar types.
func toMap(v interface{}) (map[string]interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "convert to map")
	}

	var m map[string]interface{}

	if err := json.Unmarshal(b, &m); err != nil {
		return nil, errors.Wrap(err, "convert to map")
	}

	return m, nil
}
