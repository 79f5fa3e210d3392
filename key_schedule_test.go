package quichp_test

import (
	"crypto/tls"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nettrix/quichp"
)

func TestStaticKeySchedule(t *testing.T) {
	keys := quichp.NewStaticKeySchedule()

	_, ok := keys.Cipher(quichp.KeyPhaseInitial)
	require.False(t, ok)
	_, ok = keys.KeyMaterial(quichp.KeyPhaseInitial, quichp.DirectionEncrypt)
	require.False(t, ok)

	encKey := []byte{1, 2, 3}
	keys.Install(quichp.KeyPhaseInitial, quichp.DirectionEncrypt, tls.TLS_AES_128_GCM_SHA256, encKey)

	suiteID, ok := keys.Cipher(quichp.KeyPhaseInitial)
	require.True(t, ok)
	require.Equal(t, tls.TLS_AES_128_GCM_SHA256, suiteID)
	key, ok := keys.KeyMaterial(quichp.KeyPhaseInitial, quichp.DirectionEncrypt)
	require.True(t, ok)
	require.Equal(t, encKey, key)
	// the other direction is still missing
	_, ok = keys.KeyMaterial(quichp.KeyPhaseInitial, quichp.DirectionDecrypt)
	require.False(t, ok)

	decKey := []byte{4, 5, 6}
	keys.Install(quichp.KeyPhaseInitial, quichp.DirectionDecrypt, tls.TLS_AES_128_GCM_SHA256, decKey)
	key, ok = keys.KeyMaterial(quichp.KeyPhaseInitial, quichp.DirectionDecrypt)
	require.True(t, ok)
	require.Equal(t, decKey, key)

	// other phases are unaffected
	_, ok = keys.Cipher(quichp.KeyPhaseHandshake)
	require.False(t, ok)

	keys.Drop(quichp.KeyPhaseInitial)
	_, ok = keys.Cipher(quichp.KeyPhaseInitial)
	require.False(t, ok)
	_, ok = keys.KeyMaterial(quichp.KeyPhaseInitial, quichp.DirectionEncrypt)
	require.False(t, ok)
}

func TestStaticKeyScheduleReplacesKeys(t *testing.T) {
	keys := quichp.NewStaticKeySchedule()
	keys.Install(quichp.KeyPhaseOneRTT0, quichp.DirectionEncrypt, tls.TLS_CHACHA20_POLY1305_SHA256, []byte{1})
	keys.Install(quichp.KeyPhaseOneRTT0, quichp.DirectionEncrypt, tls.TLS_CHACHA20_POLY1305_SHA256, []byte{2})
	key, ok := keys.KeyMaterial(quichp.KeyPhaseOneRTT0, quichp.DirectionEncrypt)
	require.True(t, ok)
	require.Equal(t, []byte{2}, key)
}

func TestStaticKeyScheduleSuiteChangePanics(t *testing.T) {
	keys := quichp.NewStaticKeySchedule()
	keys.Install(quichp.KeyPhaseOneRTT0, quichp.DirectionEncrypt, tls.TLS_AES_128_GCM_SHA256, []byte{1})
	require.Panics(t, func() {
		keys.Install(quichp.KeyPhaseOneRTT0, quichp.DirectionDecrypt, tls.TLS_CHACHA20_POLY1305_SHA256, []byte{2})
	})
}
