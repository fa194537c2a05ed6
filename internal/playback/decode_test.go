package playback_test

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"github.com/book-expert/elevenlabs-tts/internal/playback"
	"github.com/book-expert/elevenlabs-tts/internal/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pcmBytes(samples ...int16) []byte {
	raw := make([]byte, 0, len(samples)*2)
	for _, sample := range samples {
		raw = binary.LittleEndian.AppendUint16(raw, uint16(sample))
	}

	return raw
}

func wavBytes(t *testing.T, sampleRate uint32, channels uint16, samples ...int16) []byte {
	t.Helper()

	data := pcmBytes(samples...)

	header := make([]byte, 0, 44)
	header = append(header, "RIFF"...)
	header = binary.LittleEndian.AppendUint32(header, uint32(36+len(data)))
	header = append(header, "WAVE"...)
	header = append(header, "fmt "...)
	header = binary.LittleEndian.AppendUint32(header, 16)
	header = binary.LittleEndian.AppendUint16(header, 1)
	header = binary.LittleEndian.AppendUint16(header, channels)
	header = binary.LittleEndian.AppendUint32(header, sampleRate)
	header = binary.LittleEndian.AppendUint32(header, sampleRate*uint32(channels)*2)
	header = binary.LittleEndian.AppendUint16(header, channels*2)
	header = binary.LittleEndian.AppendUint16(header, 16)
	header = append(header, "data"...)
	header = binary.LittleEndian.AppendUint32(header, uint32(len(data)))

	return append(header, data...)
}

func TestDetectEncoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want playback.Encoding
	}{
		{"id3 tag", []byte("ID3\x04\x00"), playback.EncodingMP3},
		{"mpeg frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, playback.EncodingMP3},
		{"riff container", []byte("RIFF\x00\x00\x00\x00WAVE"), playback.EncodingWAV},
		{"raw pcm", []byte{0x01, 0x00, 0x02, 0x00}, playback.EncodingPCM},
		{"empty", nil, playback.EncodingPCM},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, playback.DetectEncoding(testCase.data))
		})
	}
}

func TestDecode_RawPCMUsesFormatSampleRate(t *testing.T) {
	t.Parallel()

	clip := playback.Clip{
		Data:   pcmBytes(1, -2, 3, -4),
		Format: settings.FormatPCM_24000,
	}

	pcm, err := playback.Decode(clip)
	require.NoError(t, err)

	assert.Equal(t, []int16{1, -2, 3, -4}, pcm.Samples)
	assert.Equal(t, 24000, pcm.SampleRate)
	assert.Equal(t, 1, pcm.Channels)
}

func TestDecode_RawPCMWithMP3FormatFallsBack(t *testing.T) {
	t.Parallel()

	pcm, err := playback.Decode(playback.Clip{Data: pcmBytes(7, 8), Format: settings.FormatMP3_44100_64})
	require.NoError(t, err)

	assert.Equal(t, 44100, pcm.SampleRate)
}

func TestDecode_WAV(t *testing.T) {
	t.Parallel()

	clip := playback.Clip{
		Data:   wavBytes(t, 48000, 2, 10, 20, 30, 40),
		Format: settings.FormatPCM_48000,
	}

	pcm, err := playback.Decode(clip)
	require.NoError(t, err)

	assert.Equal(t, []int16{10, 20, 30, 40}, pcm.Samples)
	assert.Equal(t, 48000, pcm.SampleRate)
	assert.Equal(t, 2, pcm.Channels)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	_, err := playback.Decode(playback.Clip{Data: nil, Format: settings.FormatPCM_44100})
	require.ErrorIs(t, err, playback.ErrEmptyClip)

	_, err = playback.Decode(playback.Clip{Data: []byte("RIFF\x00\x00\x00\x00WAVE"), Format: ""})
	require.ErrorIs(t, err, playback.ErrMalformedWAV)
}

func TestPCM_Duration(t *testing.T) {
	t.Parallel()

	pcm := playback.PCM{Samples: make([]int16, 48000), SampleRate: 24000, Channels: 2}
	assert.Equal(t, time.Second, pcm.Duration())

	assert.Equal(t, time.Duration(0), playback.PCM{}.Duration())
}

func TestPortAudioPlayer_StopWithoutPlayback(t *testing.T) {
	t.Parallel()

	player := playback.NewPortAudioPlayer(0)

	assert.NotPanics(t, player.Stop)
	assert.NotPanics(t, player.Stop)
}

func TestNopPlayer(t *testing.T) {
	t.Parallel()

	var player playback.Player = playback.NopPlayer{}

	require.NoError(t, player.Play(context.Background(), playback.Clip{Data: pcmBytes(1), Format: ""}))
	require.ErrorIs(t, player.Play(context.Background(), playback.Clip{}), playback.ErrEmptyClip)
	player.Stop()
}
