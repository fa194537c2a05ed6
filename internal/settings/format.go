package settings

import "strings"

// OutputFormat is a codec, sample-rate and bitrate identifier recognised by ElevenLabs.
// It only selects the extension of saved clips; synthesis calls do not send it.
type OutputFormat string

// Canonical output formats.
const (
	FormatMP3_44100_192 OutputFormat = "mp3_44100_192"
	FormatMP3_44100_128 OutputFormat = "mp3_44100_128"
	FormatMP3_44100_96  OutputFormat = "mp3_44100_96"
	FormatMP3_44100_64  OutputFormat = "mp3_44100_64"
	FormatPCM_48000     OutputFormat = "pcm_48000"
	FormatPCM_44100     OutputFormat = "pcm_44100"
	FormatPCM_24000     OutputFormat = "pcm_24000"
)

// File extensions for saved clips.
const (
	ExtensionMP3 = "mp3"
	ExtensionWAV = "wav"
)

const mp3Prefix = "mp3"

var outputFormatLabels = map[OutputFormat]string{
	FormatMP3_44100_192: "MP3 - 44.1kHz 192kbps",
	FormatMP3_44100_128: "MP3 - 44.1kHz 128kbps",
	FormatMP3_44100_96:  "MP3 - 44.1kHz 96kbps",
	FormatMP3_44100_64:  "MP3 - 44.1kHz 64kbps",
	FormatPCM_48000:     "WAV - 48kHz PCM",
	FormatPCM_44100:     "WAV - 44.1kHz PCM",
	FormatPCM_24000:     "WAV - 24kHz PCM",
}

// OutputFormats returns the supported formats in display order.
func OutputFormats() []OutputFormat {
	return []OutputFormat{
		FormatMP3_44100_192,
		FormatMP3_44100_128,
		FormatMP3_44100_96,
		FormatMP3_44100_64,
		FormatPCM_48000,
		FormatPCM_44100,
		FormatPCM_24000,
	}
}

// Valid reports whether the format belongs to the supported enumeration.
func (f OutputFormat) Valid() bool {
	_, ok := outputFormatLabels[f]

	return ok
}

// Label returns the human readable description, or the raw identifier when unknown.
func (f OutputFormat) Label() string {
	label, ok := outputFormatLabels[f]
	if !ok {
		return string(f)
	}

	return label
}

// IsMP3 reports whether clips in this format carry MP3 frames.
func (f OutputFormat) IsMP3() bool {
	return strings.HasPrefix(string(f), mp3Prefix)
}

// Extension returns "mp3" for MP3 formats and "wav" for everything else.
func (f OutputFormat) Extension() string {
	if f.IsMP3() {
		return ExtensionMP3
	}

	return ExtensionWAV
}
