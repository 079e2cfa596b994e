package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrExchangeFailed is the single failure category of an exchange. Network
// errors, HTTP error statuses and unusable bodies all wrap it.
var ErrExchangeFailed = errors.New("chat exchange failed")

// Request is the JSON body posted to the chat endpoint.
// SessionID is nil until the endpoint has assigned one and encodes as null.
type Request struct {
	Message   string  `json:"message"`
	Language  string  `json:"language"`
	SessionID *string `json:"session_id"`
}

// Response is the JSON body returned by the chat endpoint.
// Language and SessionID are optional; when set they overwrite local state.
type Response struct {
	Reply     string `json:"reply"`
	Language  string `json:"language,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// Transport performs one request/response exchange.
type Transport interface {
	Exchange(ctx context.Context, req Request) (Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req Request) (Response, error)

// Exchange implements Transport.
func (f TransportFunc) Exchange(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// HTTPTransport posts requests to a configured endpoint URL.
type HTTPTransport struct {
	client *resty.Client
	url    string
}

// NewHTTPTransport creates a transport for apiURL. A zero timeout means the
// request waits until the endpoint answers or ctx is cancelled.
func NewHTTPTransport(apiURL string, timeout time.Duration) (*HTTPTransport, error) {
	return newHTTPTransportWithClient(apiURL, &http.Client{Timeout: timeout})
}

func newHTTPTransportWithClient(apiURL string, httpClient *http.Client) (*HTTPTransport, error) {
	if strings.TrimSpace(apiURL) == "" {
		return nil, fmt.Errorf("chat api_url is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	client := resty.NewWithClient(httpClient).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPTransport{client: client, url: apiURL}, nil
}

// Exchange implements Transport.
func (t *HTTPTransport) Exchange(ctx context.Context, req Request) (Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: encode request: %v", ErrExchangeFailed, err)
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(t.url)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}
	if !resp.IsSuccess() {
		return Response{}, fmt.Errorf("%w: unexpected status %d", ErrExchangeFailed, resp.StatusCode())
	}

	return decodeResponse(resp.Body())
}

// decodeResponse requires a JSON object with a string reply field.
func decodeResponse(body []byte) (Response, error) {
	var raw struct {
		Reply     *string `json:"reply"`
		Language  string  `json:"language"`
		SessionID string  `json:"session_id"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Response{}, fmt.Errorf("%w: decode response: %v", ErrExchangeFailed, err)
	}
	if raw.Reply == nil {
		return Response{}, fmt.Errorf("%w: response has no reply", ErrExchangeFailed)
	}
	return Response{
		Reply:     *raw.Reply,
		Language:  raw.Language,
		SessionID: raw.SessionID,
	}, nil
}
