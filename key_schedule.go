package quichp

import "github.com/nettrix/quichp/internal/handshake"

// DeriveHeaderProtectionKey derives the header protection key for a TLS
// cipher suite from its traffic secret (the "quic hp" label of RFC 9001).
// It is a convenience for KeySchedule implementations fed with traffic
// secrets rather than pre-derived keys.
func DeriveHeaderProtectionKey(suiteID uint16, trafficSecret []byte) ([]byte, error) {
	return handshake.DeriveHeaderProtectionKey(suiteID, trafficSecret)
}

type staticKeys struct {
	suiteID uint16
	hpKey   [2][]byte // indexed by Direction
}

// A StaticKeySchedule is a KeySchedule fed directly with derived header
// protection keys, one set per key phase and direction. It implements no
// rotation or drop policy of its own; the handshake layer installs and
// removes keys as encryption levels come and go.
//
// Callers serialize access together with the protect/unprotect calls that
// read from it.
type StaticKeySchedule struct {
	phases map[KeyPhase]*staticKeys
}

var _ KeySchedule = &StaticKeySchedule{}

// NewStaticKeySchedule creates a StaticKeySchedule with no keys installed.
func NewStaticKeySchedule() *StaticKeySchedule {
	return &StaticKeySchedule{phases: make(map[KeyPhase]*staticKeys)}
}

// Install installs the header protection key for a key phase and direction.
// Installing a key phase a second time replaces the previous key material,
// but the cipher suite of a phase cannot change once set.
func (s *StaticKeySchedule) Install(phase KeyPhase, dir Direction, suiteID uint16, hpKey []byte) {
	keys, ok := s.phases[phase]
	if !ok {
		keys = &staticKeys{suiteID: suiteID}
		s.phases[phase] = keys
	}
	if keys.suiteID != suiteID {
		panic("quichp: cipher suite of an installed key phase changed")
	}
	keys.hpKey[dir] = hpKey
}

// Drop removes all key material for a key phase, e.g. once an encryption
// level is no longer in use.
func (s *StaticKeySchedule) Drop(phase KeyPhase) {
	delete(s.phases, phase)
}

// Cipher implements KeySchedule.
func (s *StaticKeySchedule) Cipher(phase KeyPhase) (uint16, bool) {
	keys, ok := s.phases[phase]
	if !ok {
		return 0, false
	}
	return keys.suiteID, true
}

// KeyMaterial implements KeySchedule.
func (s *StaticKeySchedule) KeyMaterial(phase KeyPhase, dir Direction) ([]byte, bool) {
	keys, ok := s.phases[phase]
	if !ok || keys.hpKey[dir] == nil {
		return nil, false
	}
	return keys.hpKey[dir], true
}
