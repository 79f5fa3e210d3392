package protocol

// A PacketNumber in QUIC
type PacketNumber int64

// InvalidPacketNumber is a packet number that is never sent.
// In QUIC, 0 is a valid packet number.
const InvalidPacketNumber PacketNumber = -1

// PacketNumberLen is the length of the packet number in bytes
type PacketNumberLen uint8

const (
	// PacketNumberLen1 is a packet number length of 1 byte
	PacketNumberLen1 PacketNumberLen = 1
	// PacketNumberLen2 is a packet number length of 2 bytes
	PacketNumberLen2 PacketNumberLen = 2
	// PacketNumberLen3 is a packet number length of 3 bytes
	PacketNumberLen3 PacketNumberLen = 3
	// PacketNumberLen4 is a packet number length of 4 bytes
	PacketNumberLen4 PacketNumberLen = 4
)

// MaxPacketNumberLen is the maximum length of an encoded packet number.
// Sample geometry always assumes this length, since the true length is only
// readable after the first header byte has been unmasked.
const MaxPacketNumberLen = 4

// SampleSize is the size of the ciphertext sample used for header protection.
// It equals the block size of the AES-based header protection cipher.
const SampleSize = 16

// MinAEADExpansion is the minimum size of the AEAD authentication tag.
// The last MinAEADExpansion bytes of a packet are never part of the sample.
const MinAEADExpansion = 16

// MaxConnIDLen is the maximum length of the connection ID
const MaxConnIDLen = 20
