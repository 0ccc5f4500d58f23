// Package manifest talks to the remote plugin repository: the plugins.json
// manifest and the plugin artifacts it points at.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/mre31/ppm/internal/core/domain"
	"github.com/mre31/ppm/internal/logging"
)

// ManifestFile is the repository-relative path of the plugin manifest.
const ManifestFile = "plugins.json"

// Client fetches the manifest and plugin files over HTTP. Transient failures
// are retried by the underlying client up to the configured bound; a
// malformed manifest is never retried.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	log     *logging.Logger
}

// NewClient creates a repository client. retryMax bounds how many times a
// failed request is retried; zero disables retries entirely.
func NewClient(baseURL string, timeout time.Duration, retryMax int, log *logging.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = timeout
	rc.Logger = nil

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    rc,
		log:     log.Sub("manifest"),
	}
}

// FetchManifest retrieves plugins.json, decodes it strictly, and validates
// every entry. Decode and validation failures are a ParseError, everything
// transport-related is a NetworkError.
func (c *Client) FetchManifest(ctx context.Context) (domain.RemoteManifest, error) {
	var manifest domain.RemoteManifest

	url := c.baseURL + "/" + ManifestFile
	c.log.Debug().Str("url", url).Msg("fetching plugin manifest")

	body, err := c.get(ctx, url)
	if err != nil {
		return manifest, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&manifest); err != nil {
		return manifest, &domain.ParseError{Reason: "failed to decode manifest JSON", Err: err}
	}
	if manifest.Plugins == nil {
		manifest.Plugins = make(map[string]domain.PluginDescriptor)
	}

	if err := manifest.Validate(); err != nil {
		return manifest, err
	}

	c.log.Debug().Int("plugins", len(manifest.Plugins)).Msg("manifest fetched")
	return manifest, nil
}

// FetchPlugin downloads the plugin file a descriptor points at and returns
// its raw bytes. The caller is responsible for the integrity check.
func (c *Client) FetchPlugin(ctx context.Context, desc domain.PluginDescriptor) ([]byte, error) {
	url := c.baseURL + "/" + strings.TrimPrefix(desc.File, "/")
	c.log.Debug().Str("url", url).Msg("downloading plugin")
	return c.get(ctx, url)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &domain.NetworkError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", "ppm/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.NetworkError{
			URL: url,
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{URL: url, Err: err}
	}
	return body, nil
}
