package carmuseum

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// HandleLambda serves an API Gateway HTTP API (payload v2) event through the
// same Echo routes and middleware as the standalone server.
func (a *App) HandleLambda(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	req, err := newLambdaRequest(ctx, event)
	if err != nil {
		a.Logger.Warn("bad lambda event", zap.Error(err))
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusBadRequest,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       `{"error":"Bad Request","status":400}`,
		}, nil
	}

	w := newLambdaResponseWriter()
	a.Echo.ServeHTTP(w, req)
	return w.response(), nil
}

func newLambdaRequest(ctx context.Context, event events.APIGatewayV2HTTPRequest) (*http.Request, error) {
	method := event.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodGet
	}
	path := event.RawPath
	if path == "" {
		path = event.RequestContext.HTTP.Path
	}
	if path == "" {
		path = "/"
	}

	u := &url.URL{Path: path, RawQuery: event.RawQueryString}
	if u.RawQuery == "" && len(event.QueryStringParameters) > 0 {
		q := url.Values{}
		for k, v := range event.QueryStringParameters {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	body := []byte(event.Body)
	if event.IsBase64Encoded && event.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("decode body: %w", err)
		}
		body = decoded
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range event.Headers {
		req.Header.Set(k, v)
	}
	if len(event.Cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(event.Cookies, "; "))
	}
	req.Host = req.Header.Get("Host")
	if req.Host == "" {
		req.Host = event.RequestContext.DomainName
	}
	if ip := event.RequestContext.HTTP.SourceIP; ip != "" {
		req.RemoteAddr = net.JoinHostPort(ip, "0")
	}
	req.RequestURI = u.RequestURI()
	return req, nil
}

type lambdaResponseWriter struct {
	header http.Header
	body   bytes.Buffer
	status int
}

func newLambdaResponseWriter() *lambdaResponseWriter {
	return &lambdaResponseWriter{header: make(http.Header)}
}

func (w *lambdaResponseWriter) Header() http.Header { return w.header }

func (w *lambdaResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.body.Write(b)
}

// Flush is a no-op; the body is returned in one piece.
func (w *lambdaResponseWriter) Flush() {}

func (w *lambdaResponseWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
}

// response converts the captured output. Compressed bodies are returned
// base64 encoded as API Gateway requires for binary payloads.
func (w *lambdaResponseWriter) response() events.APIGatewayV2HTTPResponse {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	headers := make(map[string]string, len(w.header))
	var cookies []string
	for k, v := range w.header {
		if k == "Set-Cookie" {
			cookies = append(cookies, v...)
			continue
		}
		headers[k] = strings.Join(v, ",")
	}
	resp := events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    headers,
		Cookies:    cookies,
	}
	if w.header.Get("Content-Encoding") != "" {
		resp.Body = base64.StdEncoding.EncodeToString(w.body.Bytes())
		resp.IsBase64Encoded = true
	} else {
		resp.Body = w.body.String()
	}
	return resp
}
