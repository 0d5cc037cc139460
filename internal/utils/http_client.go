package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so adapters can build requests directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient points a resty client at baseURL. A bare host:port gets an
// http:// scheme. Retries are left to the caller.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if baseURL != "" && !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
