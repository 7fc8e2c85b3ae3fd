package hippo

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/reconquest/cog"
	"github.com/reconquest/hippo-go/internal/builtin"
	"github.com/reconquest/pkg/log"
)

// Options configures a Client. The zero value is the default configuration:
// certificates are validated and requests have no timeout.
type Options struct {
	// DangerAcceptInvalidCerts disables TLS certificate validation. Use it
	// only against development servers with self-signed certificates.
	DangerAcceptInvalidCerts bool

	// Timeout limits every request made by the client, zero means no limit.
	Timeout time.Duration

	// UserAgent defaults to hippo-go/<version>.
	UserAgent string

	// HTTPClient replaces the default HTTP client. It is copied, the given
	// value is never modified.
	HTTPClient *http.Client

	// Logger defaults to a child of the global logger prefixed with [hippo].
	Logger *cog.Logger
}

func (options Options) validate() error {
	if options.Timeout < 0 {
		return newErrorf(
			KindInvalidConfig,
			"timeout must not be negative, got: %s", options.Timeout,
		)
	}

	return nil
}

func (options Options) getUserAgent() string {
	if options.UserAgent != "" {
		return options.UserAgent
	}

	return "hippo-go/" + builtin.Version
}

func (options Options) getLogger() *cog.Logger {
	if options.Logger != nil {
		return options.Logger
	}

	return log.NewChildWithPrefix("[hippo]")
}

func (options Options) newHTTPClient() (*http.Client, error) {
	client := &http.Client{}
	if options.HTTPClient != nil {
		copied := *options.HTTPClient
		client = &copied
	}

	if options.Timeout > 0 {
		client.Timeout = options.Timeout
	}

	if !options.DangerAcceptInvalidCerts {
		return client, nil
	}

	roundTripper := client.Transport
	if roundTripper == nil {
		roundTripper = http.DefaultTransport
	}

	transport, ok := roundTripper.(*http.Transport)
	if !ok {
		return nil, newErrorf(
			KindOther,
			"unable to disable certificate validation for transport of type %T",
			roundTripper,
		)
	}

	transport = transport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}

	transport.TLSClientConfig.InsecureSkipVerify = true

	client.Transport = transport

	return client, nil
}

func (options Options) String() string {
	return fmt.Sprintf(
		"danger_accept_invalid_certs=%t timeout=%s",
		options.DangerAcceptInvalidCerts,
		options.Timeout,
	)
}
