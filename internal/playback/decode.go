package playback

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hajimehoshi/go-mp3"
)

const (
	bytesPerSample = 2
	mp3Channels    = 2
	pcmChannels    = 1

	defaultPCMSampleRate = 44100
	pcmFormatPrefix      = "pcm_"

	riffHeaderSize = 12
	chunkHeader    = 8
)

var (
	// ErrEmptyClip is returned when a clip carries no audio bytes.
	ErrEmptyClip = errors.New("clip contains no audio data")
	// ErrMalformedWAV is returned when a RIFF container has no usable data chunk.
	ErrMalformedWAV = errors.New("malformed wav data")
)

// Encoding identifies how clip bytes are laid out.
type Encoding int

// Supported encodings.
const (
	EncodingPCM Encoding = iota
	EncodingMP3
	EncodingWAV
)

func (e Encoding) String() string {
	switch e {
	case EncodingMP3:
		return "mp3"
	case EncodingWAV:
		return "wav"
	default:
		return "pcm"
	}
}

// PCM is interleaved signed 16-bit audio ready for the output stream.
type PCM struct {
	Samples    []int16
	SampleRate int
	Channels   int
}

// Duration returns the playback length.
func (p PCM) Duration() time.Duration {
	if p.SampleRate <= 0 || p.Channels <= 0 {
		return 0
	}

	frames := len(p.Samples) / p.Channels

	return time.Duration(frames) * time.Second / time.Duration(p.SampleRate)
}

// DetectEncoding sniffs the container from the leading bytes. The service answers
// with MP3 unless the account default says otherwise, so anything without an MP3
// or RIFF signature is treated as raw PCM.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, []byte("ID3")):
		return EncodingMP3
	case bytes.HasPrefix(data, []byte("RIFF")):
		return EncodingWAV
	case len(data) > 1 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return EncodingMP3
	default:
		return EncodingPCM
	}
}

// Decode turns a clip into PCM samples.
func Decode(clip Clip) (PCM, error) {
	if len(clip.Data) == 0 {
		return PCM{}, ErrEmptyClip
	}

	switch DetectEncoding(clip.Data) {
	case EncodingMP3:
		return decodeMP3(clip.Data)
	case EncodingWAV:
		return decodeWAV(clip.Data)
	default:
		return PCM{
			Samples:    bytesToSamples(clip.Data),
			SampleRate: pcmSampleRate(string(clip.Format)),
			Channels:   pcmChannels,
		}, nil
	}
}

func decodeMP3(data []byte) (PCM, error) {
	decoder, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return PCM{}, fmt.Errorf("failed to open mp3 stream: %w", err)
	}

	raw, err := io.ReadAll(decoder)
	if err != nil {
		return PCM{}, fmt.Errorf("failed to decode mp3 stream: %w", err)
	}

	return PCM{
		Samples:    bytesToSamples(raw),
		SampleRate: decoder.SampleRate(),
		Channels:   mp3Channels,
	}, nil
}

// decodeWAV walks the RIFF chunks for "fmt " and "data". Only 16-bit PCM is accepted.
func decodeWAV(data []byte) (PCM, error) {
	if len(data) < riffHeaderSize || string(data[8:12]) != "WAVE" {
		return PCM{}, ErrMalformedWAV
	}

	var (
		pcm      PCM
		haveFmt  bool
		position = riffHeaderSize
	)

	for position+chunkHeader <= len(data) {
		chunkID := string(data[position : position+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[position+4 : position+chunkHeader]))
		bodyStart := position + chunkHeader

		bodyEnd := bodyStart + chunkSize
		if bodyEnd > len(data) || chunkSize < 0 {
			bodyEnd = len(data)
		}

		switch chunkID {
		case "fmt ":
			if bodyEnd-bodyStart < 16 {
				return PCM{}, ErrMalformedWAV
			}

			body := data[bodyStart:bodyEnd]
			pcm.Channels = int(binary.LittleEndian.Uint16(body[2:4]))
			pcm.SampleRate = int(binary.LittleEndian.Uint32(body[4:8]))

			bitsPerSample := binary.LittleEndian.Uint16(body[14:16])
			if bitsPerSample != 16 {
				return PCM{}, fmt.Errorf("%w: %d-bit samples", ErrMalformedWAV, bitsPerSample)
			}

			haveFmt = true
		case "data":
			if !haveFmt {
				return PCM{}, ErrMalformedWAV
			}

			pcm.Samples = bytesToSamples(data[bodyStart:bodyEnd])

			return pcm, nil
		}

		// Chunks are word aligned.
		position = bodyStart + chunkSize + chunkSize%2
	}

	return PCM{}, ErrMalformedWAV
}

func pcmSampleRate(format string) int {
	rate, err := strconv.Atoi(strings.TrimPrefix(format, pcmFormatPrefix))
	if err != nil || !strings.HasPrefix(format, pcmFormatPrefix) || rate <= 0 {
		return defaultPCMSampleRate
	}

	return rate
}

func bytesToSamples(raw []byte) []int16 {
	samples := make([]int16, len(raw)/bytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*bytesPerSample : i*bytesPerSample+bytesPerSample]))
	}

	return samples
}
