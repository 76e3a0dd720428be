package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxInputChars is the largest input the backend accepts reliably;
// longer content is truncated before transmission.
const MaxInputChars = 1500

// Backend is what the orchestrator and the refresh worker call.
type Backend interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Client talks to a HuggingFace-style inference endpoint. It classifies
// the response into exactly one outcome and never retries; retry policy
// belongs to the caller.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
	}
}

type summarizeRequest struct {
	Text string `json:"text"`
}

type resultObject struct {
	SummaryText string `json:"summary_text"`
}

type errorObject struct {
	Error         *string  `json:"error"`
	EstimatedTime *float64 `json:"estimated_time"`
}

func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(summarizeRequest{Text: Truncate(text)})
	if err != nil {
		return "", &Error{Kind: KindUnexpected, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Kind: KindUnexpected, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return "", &Error{Kind: KindUnexpected, Message: err.Error()}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return "", &Error{Kind: KindUnexpected, Message: err.Error()}
	}

	return classify(raw, res.StatusCode)
}

// classify maps the response body onto the tagged outcome set:
// result array, loading object, error object, or unrecognized.
func classify(raw []byte, status int) (string, error) {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var results []resultObject
		if err := json.Unmarshal(trimmed, &results); err == nil {
			if len(results) > 0 && results[0].SummaryText != "" {
				return results[0].SummaryText, nil
			}
		}
		return "", &Error{Kind: KindUnexpected, Message: fmt.Sprintf("empty result set (status %d)", status)}
	}

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var eo errorObject
		if err := json.Unmarshal(trimmed, &eo); err == nil && eo.Error != nil {
			if eo.EstimatedTime != nil {
				return "", &Error{Kind: KindModelLoading, Message: *eo.Error, EstimatedTime: *eo.EstimatedTime}
			}
			return "", &Error{Kind: KindBackend, Message: *eo.Error}
		}
	}

	return "", &Error{Kind: KindUnexpected, Message: fmt.Sprintf("unrecognized response (status %d)", status)}
}

// Truncate bounds text to MaxInputChars characters.
func Truncate(text string) string {
	r := []rune(text)
	if len(r) <= MaxInputChars {
		return text
	}
	return string(r[:MaxInputChars])
}
