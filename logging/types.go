// Package logging defines a logging interface for header protection events.
package logging

import "github.com/nettrix/quichp/internal/protocol"

type (
	// A ConnectionID is a QUIC Connection ID.
	ConnectionID = protocol.ConnectionID
	// A KeyPhase identifies the encryption level and 1-RTT key generation of a packet.
	KeyPhase = protocol.KeyPhase
	// The PacketType is the type of a QUIC packet.
	PacketType = protocol.PacketType
	// The PacketNumberLen is the length of the packet number field, in bytes.
	PacketNumberLen = protocol.PacketNumberLen
)

const (
	// PacketTypeInitial is the packet type of an Initial packet
	PacketTypeInitial = protocol.PacketTypeInitial
	// PacketType0RTT is the packet type of a 0-RTT packet
	PacketType0RTT = protocol.PacketType0RTT
	// PacketTypeHandshake is the packet type of a Handshake packet
	PacketTypeHandshake = protocol.PacketTypeHandshake
	// PacketTypeRetry is the packet type of a Retry packet
	PacketTypeRetry = protocol.PacketTypeRetry
	// PacketType1RTT is the packet type of a short header packet
	PacketType1RTT = protocol.PacketType1RTT
	// PacketTypeVersionNegotiation is the packet type of a Version Negotiation packet
	PacketTypeVersionNegotiation = protocol.PacketTypeVersionNegotiation
)

// PacketDropReason is the reason why a packet had to be dropped before its
// header could be unprotected (or protected, on the send side).
type PacketDropReason uint8

const (
	// PacketDropKeyUnavailable is used when a packet is dropped because keys are unavailable
	PacketDropKeyUnavailable PacketDropReason = iota
	// PacketDropHeaderParseError is used when a packet is dropped because the sample geometry could not be resolved
	PacketDropHeaderParseError
	// PacketDropCryptoError is used when a packet is dropped because the header protection cipher failed
	PacketDropCryptoError
)

func (r PacketDropReason) String() string {
	switch r {
	case PacketDropKeyUnavailable:
		return "key_unavailable"
	case PacketDropHeaderParseError:
		return "header_parse_error"
	case PacketDropCryptoError:
		return "crypto_error"
	default:
		panic("unknown packet drop reason")
	}
}
