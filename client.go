// Package hippo is a client for the Hippo server: it logs in with user
// credentials and registers application revisions.
package hippo

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/reconquest/cog"
	"github.com/reconquest/hippo-go/internal/masker"
	"github.com/reconquest/hippo-go/internal/set"
	"github.com/reconquest/karma-go"
)

var schemes = set.NewStringSet("http", "https")

// Client talks to a single Hippo server on behalf of a logged in user.
//
// A Client never changes after New returns, it is safe to share it between
// goroutines. Logging in again requires a new Client.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	token      string
	userAgent  string

	log    *cog.Logger
	masker *masker.Replacer
}

// New logs in to the Hippo server at baseURL and returns a ready to use
// Client.
func New(
	ctx context.Context,
	baseURL string,
	username string,
	password string,
	options Options,
) (*Client, error) {
	logger := options.getLogger()

	base, err := parseBaseURL(baseURL, logger)
	if err != nil {
		return nil, err
	}

	err = options.validate()
	if err != nil {
		return nil, err
	}

	httpClient, err := options.newHTTPClient()
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    base,
		userAgent:  options.getUserAgent(),
		log:        logger,
		masker:     masker.NewReplacer(password),
	}

	token, err := client.createToken(ctx, username, password)
	if err != nil {
		return nil, err
	}

	client.token = token
	client.masker = masker.NewReplacer(token)

	logger.Infof(
		karma.Describe("url", base.String()).Describe("username", username),
		"successfully logged in",
	)

	return client, nil
}

func parseBaseURL(raw string, logger *cog.Logger) (*url.URL, error) {
	// Without the trailing slash the last segment is treated as a file and
	// relative paths replace it instead of being appended.
	if !strings.HasSuffix(raw, "/") {
		logger.Debugf(
			karma.Describe("url", raw),
			"base url is missing trailing slash, adding",
		)

		raw += "/"
	}

	base, err := url.Parse(raw)
	if err != nil {
		return nil, newError(KindInvalidURL, err)
	}

	if !schemes.Has(base.Scheme) {
		return nil, newErrorf(
			KindInvalidURL,
			"unknown scheme specified: %q; known are: %v",
			base.Scheme, schemes.List(),
		).describe("url", raw)
	}

	if base.Host == "" {
		return nil, newErrorf(
			KindInvalidURL,
			"base url has no host",
		).describe("url", raw)
	}

	return base, nil
}

// BaseURL returns a copy of the normalized base URL, it always ends with a
// slash.
func (client *Client) BaseURL() *url.URL {
	base := *client.baseURL
	return &base
}

// Token returns the bearer token obtained during login.
func (client *Client) Token() string {
	return client.token
}

func (client *Client) request() *request {
	return newRequest(client.httpClient).
		BaseURL(client.baseURL).
		Logger(client.log).
		Masker(client.masker).
		UserAgent(client.userAgent).
		Header(headerAccept, mimeTypeJSON).
		Header(headerContentType, mimeTypeJSON)
}

// Raw sends an authenticated request to path, resolved against the base URL,
// and returns the response as is: the status code is not checked and the
// caller must close the response body.
//
// A nil body sends no payload and Content-Length: 0, otherwise
// Content-Length is len(body).
func (client *Client) Raw(
	ctx context.Context,
	method string,
	path string,
	body []byte,
) (*http.Response, error) {
	request := client.request().
		Method(method).
		Path(path).
		Bearer(client.token)

	if body != nil {
		request.Payload(body)
	}

	return request.Do(ctx)
}
