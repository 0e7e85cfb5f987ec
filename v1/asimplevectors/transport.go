package asimplevectors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/billionvectors/asimplevectors-go/v1/asimplevectors"

	headerRequestID = "X-Request-Id"

	// maxErrorBody caps how much of a failed response is kept on a StatusError.
	maxErrorBody = 64 << 10
)

// transport issues HTTP requests against the server. It never retries.
type transport struct {
	baseURL   string
	http      *http.Client
	auth      *AuthContext
	userAgent string
	tracer    trace.Tracer

	client *Client
}

func newTransport(cfg *Config, httpClient *http.Client, auth *AuthContext, c *Client) *transport {
	return &transport{
		baseURL:   cfg.Endpoint(),
		http:      httpClient,
		auth:      auth,
		userAgent: cfg.UserAgent,
		tracer:    otel.Tracer(instrumentationName),
		client:    c,
	}
}

// buildPath formats a request path, escaping every argument as a path
// parameter.
func buildPath(format string, args ...interface{}) (string, error) {
	escaped := make([]interface{}, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok && s == "" {
			return "", invalidArgument("empty path parameter in %q", format)
		}
		v, err := runtime.StyleParamWithLocation("simple", false, "param", runtime.ParamLocationPath, arg)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		escaped[i] = v
	}
	return fmt.Sprintf(format, escaped...), nil
}

// send performs a JSON request and returns the status and the full body of
// a 2xx response. A nil payload sends no body.
func (t *transport) send(ctx context.Context, op, method, path string, query url.Values, payload interface{}) (status int, body []byte, err error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	ctx, span := t.startSpan(ctx, op, method, path)
	start := time.Now()
	defer func() {
		t.finish(ctx, span, op, method, path, start, status, int64(len(body)), err)
	}()

	resp, err := t.do(ctx, method, path, query, reqBody, "application/json")
	if err != nil {
		return statusOf(err), nil, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Method: method, Path: path, Err: err}
	}
	return resp.StatusCode, body, nil
}

// stream performs a GET and copies a 2xx body into w.
func (t *transport) stream(ctx context.Context, op, path string, w io.Writer) (n int64, err error) {
	ctx, span := t.startSpan(ctx, op, http.MethodGet, path)
	start := time.Now()
	status := 0
	defer func() {
		t.finish(ctx, span, op, http.MethodGet, path, start, status, n, err)
	}()

	resp, err := t.do(ctx, http.MethodGet, path, nil, nil, "")
	if err != nil {
		status = statusOf(err)
		return 0, err
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	n, err = io.Copy(w, resp.Body)
	if err != nil {
		return n, &TransportError{Method: http.MethodGet, Path: path, Err: err}
	}
	return n, nil
}

// sendMultipart POSTs r as the file part named field of a multipart form.
// The form is produced while the request is being written, so r is never
// buffered in memory.
func (t *transport) sendMultipart(ctx context.Context, op, path, field, fileName string, r io.Reader) (status int, body []byte, err error) {
	ctx, span := t.startSpan(ctx, op, http.MethodPost, path)
	start := time.Now()
	var written atomic.Int64
	defer func() {
		t.finish(ctx, span, op, http.MethodPost, path, start, status, written.Load(), err)
	}()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile(field, fileName)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		n, err := io.Copy(part, r)
		written.Store(n)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	resp, err := t.do(ctx, http.MethodPost, path, nil, pr, mw.FormDataContentType())
	// Unblocks the writer goroutine if the request ended early.
	pr.Close()
	if err != nil {
		return statusOf(err), nil, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, &TransportError{Method: http.MethodPost, Path: path, Err: err}
	}
	return resp.StatusCode, body, nil
}

// do sends one request and returns the response for 2xx statuses. Any other
// status is returned as *StatusError with the body already drained.
func (t *transport) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	target := t.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	if contentType != "" && body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if t.userAgent != "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	req.Header.Set(headerRequestID, uuid.NewString())
	if token := t.auth.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       bytes.TrimSpace(raw),
		}
	}
	return resp, nil
}

func (t *transport) startSpan(ctx context.Context, op, method, path string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "asimplevectors."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("server.address", t.baseURL),
		),
	)
}

// finish ends the span, logs the exchange and notifies the observer.
func (t *transport) finish(ctx context.Context, span trace.Span, op, method, path string, start time.Time, status int, size int64, err error) {
	duration := time.Since(start)

	if status != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()

	fields := map[string]interface{}{
		"operation":   op,
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": duration.Milliseconds(),
		"bytes":       size,
	}
	if logger := t.client.logger; logger != nil {
		if err != nil {
			logger.WarnWithContext(ctx, "asimplevectors request failed", err, fields)
		} else {
			logger.DebugWithContext(ctx, "asimplevectors request", nil, fields)
		}
	}

	t.client.observeOperation(op, resourceOf(path), method, duration, err, size, map[string]interface{}{
		"status": status,
	})
}

func statusOf(err error) int {
	if se, ok := err.(*StatusError); ok {
		return se.StatusCode
	}
	return 0
}

// resourceOf returns the resource family of a path: the space name for
// space-scoped paths, otherwise the first segment after /api.
func resourceOf(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) > 0 && segments[0] == "api" {
		segments = segments[1:]
	}
	if len(segments) >= 2 && segments[0] == "space" {
		if name, err := url.PathUnescape(segments[1]); err == nil {
			return name
		}
		return segments[1]
	}
	if len(segments) > 0 {
		return segments[0]
	}
	return ""
}
