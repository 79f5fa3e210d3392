package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/nettrix/quichp/internal/protocol"
	"github.com/nettrix/quichp/quicvarint"
)

// ErrInvalidGeometry is returned when a packet is too short, or too mangled,
// for the position of the header protection sample to be determined.
// Packets failing geometry resolution have to be dropped.
var ErrInvalidGeometry = errors.New("invalid header protection sample geometry")

// IsLongHeader says if a packet is a long header packet.
// The form bit is not header protected and can be read before unmasking.
func IsLongHeader(firstByte byte) bool {
	return firstByte&0x80 > 0
}

// IsVersionNegotiationPacket says if this is a version negotiation packet
func IsVersionNegotiationPacket(b []byte) bool {
	if len(b) < 5 {
		return false
	}
	return b[0]&0x80 > 0 && b[1] == 0 && b[2] == 0 && b[3] == 0 && b[4] == 0
}

// A HeaderShape describes the geometry of a still-protected packet header:
// where the packet number field starts and where the header protection sample
// is taken. It is computed once per packet and discarded.
//
// All offsets are provisional in one respect: the packet number is assumed to
// take its maximum width of 4 bytes, since its true length is encoded in
// header bits that are still masked when the shape is resolved.
type HeaderShape struct {
	IsLongHeader     bool
	Type             protocol.PacketType
	Version          protocol.Version
	DestConnectionID protocol.ConnectionID
	KeyPhase         protocol.KeyPhase

	TokenLen       int // long header Initial packets only
	LengthFieldLen int // long header packets only

	PNOffset     int
	SampleOffset int
}

// NeedsNoProtection reports whether the packet is of a type that is sent
// without header protection. Unprotecting such a packet is a no-op.
func (h *HeaderShape) NeedsNoProtection() bool {
	return h.Type == protocol.PacketTypeVersionNegotiation || h.Type == protocol.PacketTypeRetry
}

// ParseSampleGeometry resolves the header shape of a protected packet.
// For short header packets the connection ID length is not encoded on the
// wire; it has to be supplied from the connection's configuration.
func ParseSampleGeometry(data []byte, shortHeaderConnIDLen int) (*HeaderShape, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty packet", ErrInvalidGeometry)
	}
	if IsLongHeader(data[0]) {
		return parseLongHeaderGeometry(data)
	}
	return parseShortHeaderGeometry(data, shortHeaderConnIDLen)
}

func parseLongHeaderGeometry(data []byte) (*HeaderShape, error) {
	h := &HeaderShape{IsLongHeader: true}
	if len(data) < 6 {
		return nil, fmt.Errorf("%w: %d byte packet is too short for a long header", ErrInvalidGeometry, len(data))
	}
	h.Version = protocol.Version(binary.BigEndian.Uint32(data[1:5]))
	if h.Version == 0 {
		// Version negotiation packets are never protected.
		h.Type = protocol.PacketTypeVersionNegotiation
		return h, nil
	}
	if data[0]&0x40 == 0 {
		return nil, fmt.Errorf("%w: not a QUIC packet", ErrInvalidGeometry)
	}
	typeBits := (data[0] & 0x30) >> 4
	if h.Version == protocol.Version2 {
		// QUIC v2 (RFC 9369) rotates the type bit values.
		switch typeBits {
		case 0b00:
			h.Type = protocol.PacketTypeRetry
		case 0b01:
			h.Type = protocol.PacketTypeInitial
		case 0b10:
			h.Type = protocol.PacketType0RTT
		case 0b11:
			h.Type = protocol.PacketTypeHandshake
		}
	} else {
		switch typeBits {
		case 0b00:
			h.Type = protocol.PacketTypeInitial
		case 0b01:
			h.Type = protocol.PacketType0RTT
		case 0b10:
			h.Type = protocol.PacketTypeHandshake
		case 0b11:
			h.Type = protocol.PacketTypeRetry
		}
	}
	switch h.Type {
	case protocol.PacketTypeInitial:
		h.KeyPhase = protocol.KeyPhaseInitial
	case protocol.PacketType0RTT:
		h.KeyPhase = protocol.KeyPhaseZeroRTT
	case protocol.PacketTypeHandshake:
		h.KeyPhase = protocol.KeyPhaseHandshake
	case protocol.PacketTypeRetry:
		// Retry packets carry no packet number and are not protected.
		return h, nil
	}

	pos := 5
	destConnIDLen := int(data[pos])
	if destConnIDLen > protocol.MaxConnIDLen {
		return nil, fmt.Errorf("%w: destination connection ID of %d bytes", ErrInvalidGeometry, destConnIDLen)
	}
	if len(data) < pos+1+destConnIDLen+1 {
		return nil, fmt.Errorf("%w: packet truncated inside the destination connection ID", ErrInvalidGeometry)
	}
	h.DestConnectionID = protocol.ParseConnectionID(data[pos+1 : pos+1+destConnIDLen])
	pos += 1 + destConnIDLen

	srcConnIDLen := int(data[pos])
	if srcConnIDLen > protocol.MaxConnIDLen {
		return nil, fmt.Errorf("%w: source connection ID of %d bytes", ErrInvalidGeometry, srcConnIDLen)
	}
	if len(data) < pos+1+srcConnIDLen {
		return nil, fmt.Errorf("%w: packet truncated inside the source connection ID", ErrInvalidGeometry)
	}
	pos += 1 + srcConnIDLen

	if h.Type == protocol.PacketTypeInitial {
		tokenLen, n, err := quicvarint.Parse(data[pos:])
		if err != nil {
			return nil, fmt.Errorf("%w: packet truncated inside the token length field", ErrInvalidGeometry)
		}
		if tokenLen > uint64(len(data)-pos-n) {
			return nil, fmt.Errorf("%w: token length %d exceeds the packet", ErrInvalidGeometry, tokenLen)
		}
		h.TokenLen = int(tokenLen)
		pos += n + int(tokenLen)
	}

	_, n, err := quicvarint.Parse(data[pos:])
	if err != nil {
		return nil, fmt.Errorf("%w: packet truncated inside the length field", ErrInvalidGeometry)
	}
	h.LengthFieldLen = n
	pos += n

	h.PNOffset = pos
	return h, h.resolveSampleOffset(len(data))
}

func parseShortHeaderGeometry(data []byte, connIDLen int) (*HeaderShape, error) {
	if data[0]&0x40 == 0 {
		return nil, fmt.Errorf("%w: not a QUIC packet", ErrInvalidGeometry)
	}
	if connIDLen < 0 || connIDLen > protocol.MaxConnIDLen {
		return nil, fmt.Errorf("%w: connection ID length %d out of range", ErrInvalidGeometry, connIDLen)
	}
	h := &HeaderShape{Type: protocol.PacketType1RTT}
	if len(data) < 1+connIDLen {
		return nil, fmt.Errorf("%w: packet truncated inside the connection ID", ErrInvalidGeometry)
	}
	h.DestConnectionID = protocol.ParseConnectionID(data[1 : 1+connIDLen])
	// The key phase bit is itself header protected. That is fine: header
	// protection keys do not rotate on a 1-RTT key update, so both phases
	// resolve to the same protection key material.
	bit := protocol.KeyPhaseZero
	if data[0]&0b100 > 0 {
		bit = protocol.KeyPhaseOne
	}
	h.KeyPhase = protocol.OneRTTPhase(bit)
	h.PNOffset = 1 + connIDLen
	return h, h.resolveSampleOffset(len(data))
}

// resolveSampleOffset places the sample right after a maximum-width packet
// number. The sample must end at least one AEAD tag before the end of the
// packet; the offset is clamped down to satisfy that.
func (h *HeaderShape) resolveSampleOffset(packetLen int) error {
	maxOffset := packetLen - protocol.MinAEADExpansion - protocol.SampleSize
	if maxOffset < 0 {
		return fmt.Errorf("%w: %d byte packet is too short to contain a header protection sample", ErrInvalidGeometry, packetLen)
	}
	h.SampleOffset = min(h.PNOffset+protocol.MaxPacketNumberLen, maxOffset)
	return nil
}
