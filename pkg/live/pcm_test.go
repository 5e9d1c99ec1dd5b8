package live

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePCM16(t *testing.T) {
	got := DecodePCM16(EncodePCM16([]float32{0, 0.5, -0.5, 1.5, -2}))
	assert.Equal(t, []float32{0, 0.5, -0.5, 32767.0 / 32768, -1}, got)
}

func TestEncodePCM16_LittleEndian(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x40}, EncodePCM16([]float32{0.5}))
	assert.Equal(t, []byte{0x00, 0x80}, EncodePCM16([]float32{-1}))
}

func TestDecodePCM16_IgnoresTrailingByte(t *testing.T) {
	assert.Len(t, DecodePCM16([]byte{0, 0, 1}), 1)
}

func TestNewBlob(t *testing.T) {
	b := NewBlob([]float32{0.25})
	assert.Equal(t, "audio/pcm;rate=16000", b.MimeType)
	raw, err := base64.StdEncoding.DecodeString(b.Data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x20}, raw)
}

func TestDecodeBlob(t *testing.T) {
	pcm := EncodePCM16(make([]float32, OutputSampleRate/2))
	buf, err := DecodeBlob(Blob{Data: base64.StdEncoding.EncodeToString(pcm)})
	require.NoError(t, err)
	assert.Equal(t, OutputSampleRate, buf.SampleRate)
	assert.Equal(t, 500*time.Millisecond, buf.Duration())

	_, err = DecodeBlob(Blob{Data: "%%%"})
	assert.Error(t, err)
}
