package protocol

// KeyPhaseBit is the key phase bit of a 1-RTT packet
type KeyPhaseBit uint8

const (
	// KeyPhaseUndefined is an undefined key phase
	KeyPhaseUndefined KeyPhaseBit = iota
	// KeyPhaseZero is key phase 0
	KeyPhaseZero
	// KeyPhaseOne is key phase 1
	KeyPhaseOne
)

func (p KeyPhaseBit) String() string {
	//nolint:exhaustive
	switch p {
	case KeyPhaseZero:
		return "0"
	case KeyPhaseOne:
		return "1"
	default:
		return "undefined"
	}
}

// A KeyPhase identifies the encryption level and, for 1-RTT packets, the
// rotating key generation that governs a packet's header protection.
type KeyPhase uint8

const (
	// KeyPhaseInitial is the key phase of Initial packets
	KeyPhaseInitial KeyPhase = iota
	// KeyPhaseZeroRTT is the key phase of 0-RTT packets
	KeyPhaseZeroRTT
	// KeyPhaseHandshake is the key phase of Handshake packets
	KeyPhaseHandshake
	// KeyPhaseOneRTT0 is the key phase of 1-RTT packets with the key phase bit unset
	KeyPhaseOneRTT0
	// KeyPhaseOneRTT1 is the key phase of 1-RTT packets with the key phase bit set
	KeyPhaseOneRTT1
)

func (p KeyPhase) String() string {
	switch p {
	case KeyPhaseInitial:
		return "Initial"
	case KeyPhaseZeroRTT:
		return "0-RTT"
	case KeyPhaseHandshake:
		return "Handshake"
	case KeyPhaseOneRTT0:
		return "1-RTT (phase 0)"
	case KeyPhaseOneRTT1:
		return "1-RTT (phase 1)"
	default:
		return "unknown"
	}
}

// Bit returns the key phase bit carried by 1-RTT packets of this phase.
func (p KeyPhase) Bit() KeyPhaseBit {
	switch p {
	case KeyPhaseOneRTT0:
		return KeyPhaseZero
	case KeyPhaseOneRTT1:
		return KeyPhaseOne
	default:
		return KeyPhaseUndefined
	}
}

// OneRTTPhase returns the 1-RTT key phase carrying the given key phase bit.
// It is the inverse of KeyPhase.Bit for the two 1-RTT phases.
func OneRTTPhase(bit KeyPhaseBit) KeyPhase {
	if bit == KeyPhaseOne {
		return KeyPhaseOneRTT1
	}
	return KeyPhaseOneRTT0
}
