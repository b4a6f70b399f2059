// Package transcribe sends recorded WAV audio to the remote speech-to-text
// endpoint and returns the recognized text.
package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KonstantinSKY/voice-ptt/internal/audio"
)

const (
	DefaultEndpoint = "https://api.openai.com/v1/audio/transcriptions"
	uploadFileName  = "recording.wav"
)

// APIError carries a non-2xx response from the transcription endpoint.
// Body is the server response verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return "OpenAI API error: " + e.Body
}

// Client posts recordings to the transcription endpoint. It is safe for
// concurrent use by independent jobs.
type Client struct {
	apiKey   string
	model    string
	language string
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithEndpoint overrides the transcription URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) { c.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.http = client }
}

// WithLogger enables debug request timings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New builds a client. An empty language omits the language form field.
func New(apiKey, model, language string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		model:    model,
		language: strings.TrimSpace(language),
		endpoint: DefaultEndpoint,
		http: &http.Client{
			Timeout: 2 * time.Minute,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transcribe encodes samples as recording.wav in a per-call temp directory,
// uploads it, and removes the directory.
func (c *Client) Transcribe(ctx context.Context, samples []int16, spec audio.WAVSpec) (string, error) {
	dir, err := os.MkdirTemp("", "voice-ptt-job-*")
	if err != nil {
		return "", fmt.Errorf("create job temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, uploadFileName)
	if err := audio.WriteWAV(path, samples, spec); err != nil {
		return "", err
	}
	return c.TranscribeWAVFile(ctx, path)
}

// TranscribeWAVFile uploads an existing WAV file and returns the trimmed text.
func (c *Client) TranscribeWAVFile(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read wav %q: %w", path, err)
	}

	body, contentType, err := c.encodeForm(data)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("send transcription request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}

	var decoded struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(resp.Body, &decoded); err != nil {
		return "", fmt.Errorf("parse transcription response: %w", err)
	}
	if decoded.Text == nil {
		return "", fmt.Errorf("parse transcription response: %w", errors.New("missing text field"))
	}
	return strings.TrimSpace(*decoded.Text), nil
}

func (c *Client) encodeForm(wav []byte) (io.Reader, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, uploadFileName))
	header.Set("Content-Type", "audio/wav")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(wav); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}

	if err := writer.WriteField("model", c.model); err != nil {
		return nil, "", fmt.Errorf("write model field: %w", err)
	}
	if c.language != "" {
		if err := writer.WriteField("language", c.language); err != nil {
			return nil, "", fmt.Errorf("write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}
	return &body, writer.FormDataContentType(), nil
}
