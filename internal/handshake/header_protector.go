package handshake

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/tls"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20"

	"github.com/nettrix/quichp/internal/protocol"
)

// ErrHeaderProtectionFailed is returned when the header protection cipher
// itself fails. This is not expected in a correct configuration; it is kept
// distinct from "keys not installed", which is detected before any
// cryptographic operation is attempted.
var ErrHeaderProtectionFailed = errors.New("header protection cipher failed")

// A HeaderProtector generates the keystream mask that obfuscates the
// protected bits of the first header byte and the packet number.
type HeaderProtector interface {
	// Mask derives the header protection mask from a ciphertext sample.
	// Byte 0 of the mask guards the first header byte, bytes 1..4 guard the
	// packet number. The mask is a pure function of the key and the sample.
	// The returned slice is only valid until the next call.
	Mask(sample []byte) ([]byte, error)
}

// NewHeaderProtector creates the header protection cipher for a TLS cipher
// suite, keyed with an already-derived header protection key.
func NewHeaderProtector(suiteID uint16, hpKey []byte) (HeaderProtector, error) {
	switch suiteID {
	case tls.TLS_AES_128_GCM_SHA256, tls.TLS_AES_256_GCM_SHA384:
		return newAESHeaderProtector(hpKey)
	case tls.TLS_CHACHA20_POLY1305_SHA256:
		return newChaChaHeaderProtector(hpKey)
	default:
		return nil, fmt.Errorf("%w: unknown cipher suite %d", ErrHeaderProtectionFailed, suiteID)
	}
}

type aesHeaderProtector struct {
	block cipher.Block
	mask  [protocol.SampleSize]byte
}

var _ HeaderProtector = &aesHeaderProtector{}

func newAESHeaderProtector(hpKey []byte) (*aesHeaderProtector, error) {
	block, err := aes.NewCipher(hpKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrHeaderProtectionFailed, err)
	}
	return &aesHeaderProtector{block: block}, nil
}

func (p *aesHeaderProtector) Mask(sample []byte) ([]byte, error) {
	if len(sample) != p.block.BlockSize() {
		return nil, fmt.Errorf("%w: invalid sample size %d", ErrHeaderProtectionFailed, len(sample))
	}
	p.block.Encrypt(p.mask[:], sample)
	return p.mask[:], nil
}

type chachaHeaderProtector struct {
	key  [chacha20.KeySize]byte
	mask [1 + protocol.MaxPacketNumberLen]byte
}

var _ HeaderProtector = &chachaHeaderProtector{}

func newChaChaHeaderProtector(hpKey []byte) (*chachaHeaderProtector, error) {
	if len(hpKey) != chacha20.KeySize {
		return nil, fmt.Errorf("%w: invalid ChaCha20 key size %d", ErrHeaderProtectionFailed, len(hpKey))
	}
	p := &chachaHeaderProtector{}
	copy(p.key[:], hpKey)
	return p, nil
}

func (p *chachaHeaderProtector) Mask(sample []byte) ([]byte, error) {
	if len(sample) != protocol.SampleSize {
		return nil, fmt.Errorf("%w: invalid sample size %d", ErrHeaderProtectionFailed, len(sample))
	}
	// The first 4 bytes of the sample are the block counter, the remaining
	// 12 bytes the nonce.
	c, err := chacha20.NewUnauthenticatedCipher(p.key[:], sample[4:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrHeaderProtectionFailed, err)
	}
	c.SetCounter(binary.LittleEndian.Uint32(sample[:4]))
	for i := range p.mask {
		p.mask[i] = 0
	}
	c.XORKeyStream(p.mask[:], p.mask[:])
	return p.mask[:], nil
}
