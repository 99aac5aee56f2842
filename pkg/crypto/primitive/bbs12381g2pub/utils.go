/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package bbs12381g2pub

import (
	"encoding/binary"
	"errors"
)

func uint16FromBytes(bytes []byte) uint16 {
	return binary.BigEndian.Uint16(bytes)
}

func uint16ToBytes(value uint16) []byte {
	bytes := make([]byte, 2)
	binary.BigEndian.PutUint16(bytes, value)

	return bytes
}

func uint32FromBytes(bytes []byte) uint32 {
	return binary.BigEndian.Uint32(bytes)
}

func uint32ToBytes(value uint32) []byte {
	bytes := make([]byte, 4)
	binary.BigEndian.PutUint32(bytes, value)

	return bytes
}

func bitvectorToIndexes(data []byte) []int {
	revealedIndexes := make([]int, 0)

	for byteIdx, v := range data {
		for bit := 0; bit < 8; bit++ {
			if v&(1<<bit) != 0 {
				revealedIndexes = append(revealedIndexes, byteIdx*8+bit)
			}
		}
	}

	return revealedIndexes
}

// PoKPayload carries the total number of messages covered by a signature proof
// and the indexes of the messages it reveals. It prefixes the proof bytes on the wire.
type PoKPayload struct {
	MessagesCount int
	Revealed      []int
}

// NewPoKPayload creates a new PoKPayload.
func NewPoKPayload(messagesCount int, revealed []int) *PoKPayload {
	return &PoKPayload{
		MessagesCount: messagesCount,
		Revealed:      revealed,
	}
}

// LenInBytes returns the length of the serialized payload.
func (p *PoKPayload) LenInBytes() int {
	return 2 + (p.MessagesCount / 8) + 1 //nolint:gomnd
}

// ToBytes converts PoKPayload to bytes.
func (p *PoKPayload) ToBytes() ([]byte, error) {
	bytes := make([]byte, p.LenInBytes())

	copy(bytes, uint16ToBytes(uint16(p.MessagesCount)))

	bitvector := bytes[2:]

	for _, r := range p.Revealed {
		idx := r / 8
		bit := r % 8

		if idx >= len(bitvector) {
			return nil, errors.New("invalid size of PoK payload")
		}

		bitvector[idx] |= 1 << bit
	}

	return bytes, nil
}

// ParsePoKPayload parses PoKPayload from bytes.
func ParsePoKPayload(bytes []byte) (*PoKPayload, error) {
	if len(bytes) < 2 { //nolint:gomnd
		return nil, errors.New("invalid size of PoK payload")
	}

	messagesCount := int(uint16FromBytes(bytes[0:2]))

	payload := NewPoKPayload(messagesCount, nil)

	if len(bytes) < payload.LenInBytes() {
		return nil, errors.New("invalid size of PoK payload")
	}

	payload.Revealed = bitvectorToIndexes(bytes[2:payload.LenInBytes()])

	return payload, nil
}
