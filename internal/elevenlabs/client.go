// Package elevenlabs is a thin client for the ElevenLabs text-to-speech REST API.
//
// Each call is a single stateless request/response exchange. Nothing is retried and
// nothing serialises concurrent calls on the same client.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/book-expert/elevenlabs-tts/internal/voice"
)

// DefaultBaseURL is the public ElevenLabs API host.
const DefaultBaseURL = "https://api.elevenlabs.io"

// API endpoints and paths.
const (
	apiVoices       = "/v1/voices"
	apiTextToSpeech = "/v1/text-to-speech/"
)

// HTTP headers.
const (
	headerAPIKey      = "xi-api-key"
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	contentTypeJSON   = "application/json"
	contentTypeMPEG   = "audio/mpeg"
)

// Error messages.
const (
	errFmtRequestFailed    = "request to %s failed"
	errFmtNonSuccessStatus = "ElevenLabs returned %s: %s"
	errReceivedEmptyAudio  = "received empty audio data"
	errReadAudio           = "failed to read audio data"
	errDecodeVoices        = "failed to decode voice listing"
	maxErrorBodyBytes      = 4096
)

// HTTPClient talks to the ElevenLabs API with a static API key.
type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

type voicesEnvelope struct {
	Voices []voice.Voice `json:"voices"`
}

// errorEnvelope covers the error shapes the API returns: {"detail": "..."} and
// {"detail": {"status": "...", "message": "..."}}.
type errorEnvelope struct {
	Detail json.RawMessage `json:"detail"`
}

type errorDetail struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// NewHTTPClient creates a client for baseURL authenticated with apiKey.
// A zero timeout leaves the HTTP stack default in place.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the API root the client targets.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// ListVoices returns the voices available to the API key in server order.
func (c *HTTPClient) ListVoices(ctx context.Context) ([]voice.Voice, error) {
	if c.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	endpoint := c.baseURL + apiVoices

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, newTransportError("failed to create voices request", err)
	}

	c.setCommonHeaders(req)
	req.Header.Set(headerAccept, contentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newTransportError(fmt.Sprintf(errFmtRequestFailed, apiVoices), err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, parseErrorResponse(resp)
	}

	var envelope voicesEnvelope

	err = json.NewDecoder(resp.Body).Decode(&envelope)
	if err != nil {
		return nil, newTransportError(errDecodeVoices, err)
	}

	return envelope.Voices, nil
}

// Synthesize converts req.Text to speech and returns one complete audio clip.
// The codec is whatever the endpoint returns by default; no output format is requested.
func (c *HTTPClient) Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error) {
	validationErr := c.validate(req)
	if validationErr != nil {
		return nil, validationErr
	}

	requestBody, err := json.Marshal(req.body())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	path := apiTextToSpeech + url.PathEscape(req.VoiceID)

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		bytes.NewReader(requestBody),
	)
	if err != nil {
		return nil, newTransportError("failed to create synthesis request", err)
	}

	c.setCommonHeaders(httpReq)
	httpReq.Header.Set(headerContentType, contentTypeJSON)
	httpReq.Header.Set(headerAccept, contentTypeMPEG)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, newTransportError(fmt.Sprintf(errFmtRequestFailed, path), err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return nil, parseErrorResponse(resp)
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(errReadAudio, err)
	}

	if len(audioData) == 0 {
		return nil, newStatusError(resp.StatusCode, errReceivedEmptyAudio)
	}

	return audioData, nil
}

func (c *HTTPClient) validate(req SynthesisRequest) error {
	if c.apiKey == "" {
		return ErrAPIKeyMissing
	}

	if req.VoiceID == "" {
		return ErrVoiceNotSelected
	}

	if strings.TrimSpace(req.Text) == "" {
		return ErrTextEmpty
	}

	return nil
}

func (c *HTTPClient) setCommonHeaders(req *http.Request) {
	req.Header.Set(headerAPIKey, c.apiKey)
}

func isSuccess(statusCode int) bool {
	return statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices
}

// parseErrorResponse extracts the service's error message, falling back to the raw
// body so diagnostic information is preserved.
func parseErrorResponse(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	message := strings.TrimSpace(string(body))

	var envelope errorEnvelope

	err := json.Unmarshal(body, &envelope)
	if err == nil && len(envelope.Detail) > 0 {
		message = detailMessage(envelope.Detail, message)
	}

	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	return newStatusError(resp.StatusCode, fmt.Sprintf(errFmtNonSuccessStatus, resp.Status, message))
}

func detailMessage(raw json.RawMessage, fallback string) string {
	var text string

	err := json.Unmarshal(raw, &text)
	if err == nil && text != "" {
		return text
	}

	var detail errorDetail

	err = json.Unmarshal(raw, &detail)
	if err == nil && detail.Message != "" {
		if detail.Status == "" {
			return detail.Message
		}

		return detail.Status + ": " + detail.Message
	}

	return fallback
}
