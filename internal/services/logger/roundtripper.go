package logger

import (
	"bytes"
	"io"
	"net/http"
	"regexp"
	"time"

	"go.uber.org/zap"
)

// maxBodySnippet bounds how much of a failed provider response is read for
// the log. The rest of the body is streamed to the caller untouched.
const maxBodySnippet = 2048

// RoundTripper logs every outbound provider call. Request headers are never
// logged since they carry the API key.
type RoundTripper struct {
	Logger *zap.Logger
	Proxy  http.RoundTripper
}

func NewRoundTripper(logger *zap.Logger, proxy http.RoundTripper) *RoundTripper {
	if proxy == nil {
		proxy = http.DefaultTransport
	}
	return &RoundTripper{
		Logger: logger,
		Proxy:  proxy,
	}
}

func (l *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := l.Proxy.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		l.Logger.Error("HTTP request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status_code", resp.StatusCode),
		zap.Duration("duration", duration),
	}

	// Success bodies echo the subscriber back, so only failures are sampled.
	if resp.StatusCode >= http.StatusBadRequest {
		head, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippet))
		if err != nil {
			l.Logger.Warn("Failed to read response body",
				zap.String("method", req.Method),
				zap.String("url", req.URL.String()),
				zap.Error(err),
			)
		}
		resp.Body = &replayBody{
			Reader: io.MultiReader(bytes.NewReader(head), resp.Body),
			Closer: resp.Body,
		}
		fields = append(fields, zap.ByteString("body_snipped", redactEmails(head)))
	}

	l.Logger.Info("HTTP request completed", fields...)

	return resp, nil
}

// replayBody puts the logged prefix back in front of the unread remainder.
type replayBody struct {
	io.Reader
	io.Closer
}

var emailPattern = regexp.MustCompile(`[^\s"'<>@]+@[^\s"'<>@]+`)

func redactEmails(b []byte) []byte {
	return emailPattern.ReplaceAll(b, []byte("[redacted]"))
}
