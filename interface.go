package quichp

import "github.com/nettrix/quichp/internal/protocol"

// A KeyPhase identifies the encryption level and, for 1-RTT packets, the
// rotating key generation that governs a packet's header protection.
type KeyPhase = protocol.KeyPhase

const (
	// KeyPhaseInitial is the key phase of Initial packets.
	KeyPhaseInitial = protocol.KeyPhaseInitial
	// KeyPhaseZeroRTT is the key phase of 0-RTT packets.
	KeyPhaseZeroRTT = protocol.KeyPhaseZeroRTT
	// KeyPhaseHandshake is the key phase of Handshake packets.
	KeyPhaseHandshake = protocol.KeyPhaseHandshake
	// KeyPhaseOneRTT0 is the key phase of 1-RTT packets with the key phase bit unset.
	KeyPhaseOneRTT0 = protocol.KeyPhaseOneRTT0
	// KeyPhaseOneRTT1 is the key phase of 1-RTT packets with the key phase bit set.
	KeyPhaseOneRTT1 = protocol.KeyPhaseOneRTT1
)

// Direction says whether key material is used for protecting outgoing packets
// or unprotecting incoming ones.
type Direction uint8

const (
	// DirectionEncrypt is the direction for outgoing packets.
	DirectionEncrypt Direction = iota
	// DirectionDecrypt is the direction for incoming packets.
	DirectionDecrypt
)

func (d Direction) String() string {
	if d == DirectionEncrypt {
		return "encrypt"
	}
	return "decrypt"
}

// A KeySchedule provides the header protection key material derived by the
// handshake. It is owned by the caller; the header protector performs
// read-only, per-call lookups and holds no key material of its own.
//
// Keys for an encryption level only exist once the handshake has progressed
// far enough. Both lookups return false until then; that is an ordinary
// outcome, not a fault.
type KeySchedule interface {
	// Cipher returns the TLS cipher suite ID that governs header protection
	// for the given key phase.
	Cipher(phase KeyPhase) (uint16, bool)
	// KeyMaterial returns the header protection key for the given key phase
	// and direction.
	KeyMaterial(phase KeyPhase, direction Direction) ([]byte, bool)
}
