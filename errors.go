package quichp

import (
	"errors"

	"github.com/nettrix/quichp/internal/handshake"
	"github.com/nettrix/quichp/internal/wire"
)

// ErrKeysNotYetAvailable is returned when the key material for the packet's
// key phase has not been installed yet. The caller can buffer the packet and
// retry once the handshake progresses, or drop it.
var ErrKeysNotYetAvailable = errors.New("quichp: header protection keys at this encryption level not yet available")

// ErrInvalidGeometry is returned when the position of the header protection
// sample or the packet number cannot be resolved within the packet's bounds.
// The packet is malformed (or adversarial) and has to be dropped.
var ErrInvalidGeometry = wire.ErrInvalidGeometry

// ErrHeaderProtectionFailed is returned when the header protection cipher
// itself fails. The packet has to be dropped.
var ErrHeaderProtectionFailed = handshake.ErrHeaderProtectionFailed
