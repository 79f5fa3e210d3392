package handshake

import (
	"crypto/tls"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func splitHexString(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// Known-answer tests from RFC 9001, appendix A.

func TestAESHeaderProtectionMask(t *testing.T) {
	t.Run("client Initial", func(t *testing.T) {
		hp, err := NewHeaderProtector(
			tls.TLS_AES_128_GCM_SHA256,
			splitHexString(t, "9f50449e04a0e810283a1e9933adedd2"),
		)
		require.NoError(t, err)
		mask, err := hp.Mask(splitHexString(t, "d1b1c98dd7689fb8ec11d242b123dc9b"))
		require.NoError(t, err)
		require.Equal(t, splitHexString(t, "437b9aec36"), mask[:5])
	})

	t.Run("server Initial", func(t *testing.T) {
		hp, err := NewHeaderProtector(
			tls.TLS_AES_128_GCM_SHA256,
			splitHexString(t, "c206b8d9b9f0f37644430b490eeaa314"),
		)
		require.NoError(t, err)
		mask, err := hp.Mask(splitHexString(t, "2cd0991cd25b0aac406a5816b6394100"))
		require.NoError(t, err)
		require.Equal(t, splitHexString(t, "2ec0d8356a"), mask[:5])
	})
}

func TestChaChaHeaderProtectionMask(t *testing.T) {
	hp, err := NewHeaderProtector(
		tls.TLS_CHACHA20_POLY1305_SHA256,
		splitHexString(t, "25a282b9e82f06f21f488917a4fc8f1b73573685608597d0efcb076b0ab7a7a4"),
	)
	require.NoError(t, err)
	mask, err := hp.Mask(splitHexString(t, "5e5cd55c41f69080575d7999c25a5bfb"))
	require.NoError(t, err)
	require.Equal(t, splitHexString(t, "aefefe7d03"), mask[:5])
}

func TestMaskIsDeterministic(t *testing.T) {
	for _, tt := range []struct {
		name    string
		suiteID uint16
		keyLen  int
	}{
		{"AES-128", tls.TLS_AES_128_GCM_SHA256, 16},
		{"AES-256", tls.TLS_AES_256_GCM_SHA384, 32},
		{"ChaCha20", tls.TLS_CHACHA20_POLY1305_SHA256, 32},
	} {
		t.Run(tt.name, func(t *testing.T) {
			key := make([]byte, tt.keyLen)
			for i := range key {
				key[i] = byte(i)
			}
			sample := splitHexString(t, "000102030405060708090a0b0c0d0e0f")
			hp, err := NewHeaderProtector(tt.suiteID, key)
			require.NoError(t, err)
			mask1, err := hp.Mask(sample)
			require.NoError(t, err)
			first := append([]byte{}, mask1...)
			mask2, err := hp.Mask(sample)
			require.NoError(t, err)
			require.Equal(t, first, mask2)
		})
	}
}

func TestNewHeaderProtectorErrors(t *testing.T) {
	t.Run("unknown cipher suite", func(t *testing.T) {
		_, err := NewHeaderProtector(0x1337, make([]byte, 16))
		require.ErrorIs(t, err, ErrHeaderProtectionFailed)
	})

	t.Run("AES key of the wrong size", func(t *testing.T) {
		_, err := NewHeaderProtector(tls.TLS_AES_128_GCM_SHA256, make([]byte, 17))
		require.ErrorIs(t, err, ErrHeaderProtectionFailed)
	})

	t.Run("ChaCha20 key of the wrong size", func(t *testing.T) {
		_, err := NewHeaderProtector(tls.TLS_CHACHA20_POLY1305_SHA256, make([]byte, 16))
		require.ErrorIs(t, err, ErrHeaderProtectionFailed)
	})
}

func TestMaskSampleSizeErrors(t *testing.T) {
	for _, suiteID := range []uint16{tls.TLS_AES_128_GCM_SHA256, tls.TLS_CHACHA20_POLY1305_SHA256} {
		keyLen := 16
		if suiteID == tls.TLS_CHACHA20_POLY1305_SHA256 {
			keyLen = 32
		}
		hp, err := NewHeaderProtector(suiteID, make([]byte, keyLen))
		require.NoError(t, err)
		_, err = hp.Mask(make([]byte, 15))
		require.ErrorIs(t, err, ErrHeaderProtectionFailed)
		_, err = hp.Mask(make([]byte, 17))
		require.ErrorIs(t, err, ErrHeaderProtectionFailed)
	}
}

func TestDeriveHeaderProtectionKey(t *testing.T) {
	t.Run("client Initial", func(t *testing.T) {
		key, err := DeriveHeaderProtectionKey(
			tls.TLS_AES_128_GCM_SHA256,
			splitHexString(t, "c00cf151ca5be075ed0ebfb5c80323c42d6b7db67881289af4008f1f6c357aea"),
		)
		require.NoError(t, err)
		require.Equal(t, splitHexString(t, "9f50449e04a0e810283a1e9933adedd2"), key)
	})

	t.Run("server Initial", func(t *testing.T) {
		key, err := DeriveHeaderProtectionKey(
			tls.TLS_AES_128_GCM_SHA256,
			splitHexString(t, "3c199828fd139efd216c155ad844cc81fb82fa8d7446fa7d78be803acdda951b"),
		)
		require.NoError(t, err)
		require.Equal(t, splitHexString(t, "c206b8d9b9f0f37644430b490eeaa314"), key)
	})

	t.Run("ChaCha20", func(t *testing.T) {
		key, err := DeriveHeaderProtectionKey(
			tls.TLS_CHACHA20_POLY1305_SHA256,
			splitHexString(t, "9ac312a7f877468ebe69422748ad00a15443f18203a07d6060f688f30f21632b"),
		)
		require.NoError(t, err)
		require.Equal(t, splitHexString(t, "25a282b9e82f06f21f488917a4fc8f1b73573685608597d0efcb076b0ab7a7a4"), key)
	})

	t.Run("unknown cipher suite", func(t *testing.T) {
		_, err := DeriveHeaderProtectionKey(0x1337, make([]byte, 32))
		require.Error(t, err)
	})
}
