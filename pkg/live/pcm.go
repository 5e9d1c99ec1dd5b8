package live

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"
)

const (
	// InputSampleRate is the microphone rate expected by the voice service.
	InputSampleRate = 16000
	// OutputSampleRate is the rate of audio returned by the voice service.
	OutputSampleRate = 24000
	// InputMimeType tags every outgoing audio chunk.
	InputMimeType = "audio/pcm;rate=16000"
)

// Blob is a base64 encoded media chunk exchanged with the voice service
type Blob struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Buffer is decoded mono audio ready for playback
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// Duration is the playback length of the buffer
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(b.Samples)) * time.Second / time.Duration(b.SampleRate)
}

// EncodePCM16 converts float samples in [-1, 1] to little-endian 16-bit PCM.
// Out of range samples are clamped.
func EncodePCM16(samples []float32) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		v := s * 32768
		switch {
		case v > 32767:
			v = 32767
		case v < -32768:
			v = -32768
		}
		binary.LittleEndian.PutUint16(out[2*i:], uint16(int16(v)))
	}
	return out
}

// DecodePCM16 converts little-endian 16-bit PCM to float samples. A trailing odd byte is ignored.
func DecodePCM16(data []byte) []float32 {
	out := make([]float32, len(data)/2)
	for i := range out {
		out[i] = float32(int16(binary.LittleEndian.Uint16(data[2*i:]))) / 32768
	}
	return out
}

// NewBlob frames one captured microphone chunk for sending
func NewBlob(samples []float32) Blob {
	return Blob{
		MimeType: InputMimeType,
		Data:     base64.StdEncoding.EncodeToString(EncodePCM16(samples)),
	}
}

// DecodeBlob turns a received audio chunk into a playable buffer at OutputSampleRate
func DecodeBlob(b Blob) (Buffer, error) {
	raw, err := base64.StdEncoding.DecodeString(b.Data)
	if err != nil {
		return Buffer{}, fmt.Errorf("decode audio chunk: %w", err)
	}
	return Buffer{Samples: DecodePCM16(raw), SampleRate: OutputSampleRate}, nil
}
