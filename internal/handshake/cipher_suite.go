package handshake

import (
	"crypto"
	"crypto/tls"
	"fmt"
)

type cipherSuite struct {
	ID     uint16
	Hash   crypto.Hash
	KeyLen int
}

func getCipherSuite(id uint16) (*cipherSuite, error) {
	switch id {
	case tls.TLS_AES_128_GCM_SHA256:
		return &cipherSuite{ID: tls.TLS_AES_128_GCM_SHA256, Hash: crypto.SHA256, KeyLen: 16}, nil
	case tls.TLS_CHACHA20_POLY1305_SHA256:
		return &cipherSuite{ID: tls.TLS_CHACHA20_POLY1305_SHA256, Hash: crypto.SHA256, KeyLen: 32}, nil
	case tls.TLS_AES_256_GCM_SHA384:
		return &cipherSuite{ID: tls.TLS_AES_256_GCM_SHA384, Hash: crypto.SHA384, KeyLen: 32}, nil
	default:
		return nil, fmt.Errorf("unknown cipher suite: %d", id)
	}
}

// DeriveHeaderProtectionKey derives the header protection key from a TLS
// traffic secret, using the "quic hp" label of RFC 9001, section 5.4.1.
// Deriving and rotating the traffic secrets themselves is the key schedule's
// business, not this package's.
func DeriveHeaderProtectionKey(suiteID uint16, trafficSecret []byte) ([]byte, error) {
	suite, err := getCipherSuite(suiteID)
	if err != nil {
		return nil, err
	}
	return hkdfExpandLabel(suite.Hash, trafficSecret, []byte{}, "quic hp", suite.KeyLen), nil
}
