// Package quichp implements QUIC packet header protection (RFC 9001,
// section 5.4).
//
// Header protection obfuscates the packet type / flag bits of the first
// header byte and the variable-length packet number of every QUIC packet,
// using a keystream mask derived from a sample of the packet's own
// ciphertext. It is separate from, and applied after, the AEAD protection of
// the packet payload.
//
// The two entry points are PacketHeaderProtector.Protect, called while
// assembling an outgoing packet, and PacketHeaderProtector.Unprotect, called
// on a freshly received packet before its header can be parsed. Key material
// is looked up per call from a caller-provided KeySchedule; deriving and
// rotating the keys themselves is the handshake layer's business.
package quichp
