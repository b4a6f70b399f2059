package transcribe

import (
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"
)

// timings records per-request network phases for debug logging.
type timings struct {
	ConnWait   time.Duration
	ConnReused bool
	DNS        time.Duration
	TCP        time.Duration
	TLS        time.Duration
	Upload     time.Duration
	TTFB       time.Duration
	Total      time.Duration
}

type tracedResponse struct {
	StatusCode int
	Body       []byte
	Timings    timings
}

// do executes req with an httptrace hook and reads the full body.
func (c *Client) do(req *http.Request) (*tracedResponse, error) {
	var t timings
	var getConn, dnsStart, tcpStart, tlsStart, wroteHeaders, wroteRequest time.Time

	trace := &httptrace.ClientTrace{
		GetConn: func(string) { getConn = time.Now() },
		GotConn: func(info httptrace.GotConnInfo) {
			t.ConnWait = time.Since(getConn)
			t.ConnReused = info.Reused
		},
		DNSStart:          func(httptrace.DNSStartInfo) { dnsStart = time.Now() },
		DNSDone:           func(httptrace.DNSDoneInfo) { t.DNS = time.Since(dnsStart) },
		ConnectStart:      func(_, _ string) { tcpStart = time.Now() },
		ConnectDone:       func(_, _ string, _ error) { t.TCP = time.Since(tcpStart) },
		TLSHandshakeStart: func() { tlsStart = time.Now() },
		TLSHandshakeDone:  func(tls.ConnectionState, error) { t.TLS = time.Since(tlsStart) },
		WroteHeaders:      func() { wroteHeaders = time.Now() },
		WroteRequest: func(httptrace.WroteRequestInfo) {
			wroteRequest = time.Now()
			if !wroteHeaders.IsZero() {
				t.Upload = wroteRequest.Sub(wroteHeaders)
			}
		},
		GotFirstResponseByte: func() {
			if !wroteRequest.IsZero() {
				t.TTFB = time.Since(wroteRequest)
			}
		},
	}

	req = req.WithContext(httptrace.WithClientTrace(req.Context(), trace))
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	t.Total = time.Since(started)

	if c.logger != nil {
		c.logger.Debug("transcription request finished",
			"status", resp.StatusCode,
			"bytes", len(body),
			"conn_reused", t.ConnReused,
			"conn_wait_ms", t.ConnWait.Milliseconds(),
			"dns_ms", t.DNS.Milliseconds(),
			"tcp_ms", t.TCP.Milliseconds(),
			"tls_ms", t.TLS.Milliseconds(),
			"upload_ms", t.Upload.Milliseconds(),
			"ttfb_ms", t.TTFB.Milliseconds(),
			"total_ms", t.Total.Milliseconds(),
		)
	}

	return &tracedResponse{StatusCode: resp.StatusCode, Body: body, Timings: t}, nil
}
