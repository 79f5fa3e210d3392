package quichp

import (
	"fmt"

	"github.com/nettrix/quichp/internal/handshake"
	"github.com/nettrix/quichp/internal/protocol"
	"github.com/nettrix/quichp/internal/utils"
	"github.com/nettrix/quichp/internal/wire"
	"github.com/nettrix/quichp/logging"
)

// A PacketHeaderProtector applies and removes QUIC header protection
// (RFC 9001, section 5.4): the packet type / flag bits of the first header
// byte and the packet number field are XORed with a keystream mask derived
// from a sample of the packet's ciphertext.
//
// The protector holds no key material itself; it looks keys up per call from
// the KeySchedule it was attached to. It is not safe for concurrent use on
// the same packet buffer; callers serialize per connection.
type PacketHeaderProtector struct {
	keys KeySchedule
	// The connection ID length used on short header packets. It is not
	// encoded on the wire and has to come from the connection's
	// configuration.
	connIDLen int

	logger utils.Logger
	tracer *logging.Tracer
}

// NewPacketHeaderProtector creates a PacketHeaderProtector drawing key
// material from keys. connIDLen is the length of the connection IDs used on
// this connection's short header packets. tracer may be nil.
func NewPacketHeaderProtector(keys KeySchedule, connIDLen int, tracer *logging.Tracer) *PacketHeaderProtector {
	return &PacketHeaderProtector{
		keys:      keys,
		connIDLen: connIDLen,
		logger:    utils.DefaultLogger.WithPrefix("hp"),
		tracer:    tracer,
	}
}

// Protect masks the first header byte and the encoded packet number of an
// outgoing packet. The caller extracts the fields while assembling the
// packet: unprotectedPN is the already-encoded packet number (1 to 4 bytes),
// sample the 16 byte ciphertext sample, and phase the key phase the packet is
// sent under.
//
// The masked packet number is written to protectedPN, which must hold at
// least len(unprotectedPN) bytes; the input is left untouched. The masked
// first byte is returned.
func (p *PacketHeaderProtector) Protect(protectedPN []byte, firstByte byte, unprotectedPN, sample []byte, phase KeyPhase) (byte, error) {
	if len(unprotectedPN) == 0 || len(unprotectedPN) > protocol.MaxPacketNumberLen {
		return firstByte, fmt.Errorf("%w: packet number of %d bytes", ErrInvalidGeometry, len(unprotectedPN))
	}
	if len(protectedPN) < len(unprotectedPN) {
		return firstByte, fmt.Errorf("%w: output shorter than the packet number", ErrInvalidGeometry)
	}
	hp, err := p.headerProtectorFor(phase, DirectionEncrypt)
	if err != nil {
		if err == ErrKeysNotYetAvailable {
			p.logger.Debugf("Failed to protect a packet number: keys for %s not ready", phase)
			p.dropped(logging.PacketDropKeyUnavailable)
		} else {
			p.logger.Errorf("Failed to create the header protection cipher: %s", err)
			p.dropped(logging.PacketDropCryptoError)
		}
		return firstByte, err
	}
	mask, err := hp.Mask(sample)
	if err != nil {
		p.logger.Errorf("Failed to generate a header protection mask: %s", err)
		p.dropped(logging.PacketDropCryptoError)
		return firstByte, err
	}
	if wire.IsLongHeader(firstByte) {
		firstByte ^= mask[0] & 0x0f
	} else {
		firstByte ^= mask[0] & 0x1f
	}
	for i, b := range unprotectedPN {
		protectedPN[i] = b ^ mask[1+i]
	}
	if p.tracer != nil && p.tracer.ProtectedHeader != nil {
		p.tracer.ProtectedHeader(phase, protocol.PacketNumberLen(len(unprotectedPN)))
	}
	return firstByte, nil
}

// Unprotect removes header protection from a received packet, in place.
// It resolves the header geometry, samples the ciphertext, and rewrites the
// first header byte and the packet number.
//
// Version Negotiation and Retry packets are never protected; for those,
// Unprotect reports success without touching the packet. On any error the
// packet's mutation state is unspecified and the caller must discard it.
func (p *PacketHeaderProtector) Unprotect(packet []byte) error {
	shape, err := wire.ParseSampleGeometry(packet, p.connIDLen)
	if err != nil {
		p.logger.Debugf("Failed to resolve the sample geometry: %s", err)
		p.dropped(logging.PacketDropHeaderParseError)
		return err
	}
	if shape.NeedsNoProtection() {
		p.logger.Debugf("%s packet is not header protected, passing through", shape.Type)
		if p.tracer != nil && p.tracer.PassedThrough != nil {
			p.tracer.PassedThrough(shape.Type)
		}
		return nil
	}
	if p.logger.Debug() {
		p.logger.Debugf("Unprotecting the header of a %s packet (DCID %s) using %s keys", shape.Type, shape.DestConnectionID, shape.KeyPhase)
	}

	hp, err := p.headerProtectorFor(shape.KeyPhase, DirectionDecrypt)
	if err != nil {
		if err == ErrKeysNotYetAvailable {
			p.logger.Debugf("Failed to unprotect a packet number: keys for %s not ready", shape.KeyPhase)
			p.dropped(logging.PacketDropKeyUnavailable)
		} else {
			p.logger.Errorf("Failed to create the header protection cipher: %s", err)
			p.dropped(logging.PacketDropCryptoError)
		}
		return err
	}
	mask, err := hp.Mask(packet[shape.SampleOffset : shape.SampleOffset+protocol.SampleSize])
	if err != nil {
		p.logger.Errorf("Failed to generate a header protection mask: %s", err)
		p.dropped(logging.PacketDropCryptoError)
		return err
	}

	if shape.IsLongHeader {
		packet[0] ^= mask[0] & 0x0f
	} else {
		packet[0] ^= mask[0] & 0x1f
	}
	// Only now that the first byte is unmasked is the true packet number
	// length readable.
	pnLen := int(packet[0]&0b11) + 1
	if shape.PNOffset+pnLen > len(packet)-protocol.MinAEADExpansion {
		p.dropped(logging.PacketDropHeaderParseError)
		return fmt.Errorf("%w: packet number extends past the packet payload", ErrInvalidGeometry)
	}
	for i := 0; i < pnLen; i++ {
		packet[shape.PNOffset+i] ^= mask[1+i]
	}

	if p.tracer != nil && p.tracer.UnprotectedHeader != nil {
		p.tracer.UnprotectedHeader(shape.KeyPhase, shape.Type, protocol.PacketNumberLen(pnLen))
	}
	return nil
}

func (p *PacketHeaderProtector) headerProtectorFor(phase KeyPhase, dir Direction) (handshake.HeaderProtector, error) {
	suiteID, ok := p.keys.Cipher(phase)
	if !ok {
		return nil, ErrKeysNotYetAvailable
	}
	hpKey, ok := p.keys.KeyMaterial(phase, dir)
	if !ok {
		return nil, ErrKeysNotYetAvailable
	}
	return handshake.NewHeaderProtector(suiteID, hpKey)
}

func (p *PacketHeaderProtector) dropped(reason logging.PacketDropReason) {
	if p.tracer != nil && p.tracer.DroppedPacket != nil {
		p.tracer.DroppedPacket(reason)
	}
}
