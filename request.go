package hippo

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/reconquest/cog"
	"github.com/reconquest/hippo-go/internal/masker"
	"github.com/reconquest/karma-go"
)

const (
	mimeTypeJSON = "application/json"

	headerAccept        = "Accept"
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerUserAgent     = "User-Agent"
)

type request struct {
	httpClient *http.Client
	log        *cog.Logger
	masker     masker.Masker

	baseURL *url.URL
	method  string
	path    string

	hasPayload bool
	payload    []byte

	headers http.Header
}

func newRequest(client *http.Client) *request {
	request := &request{}
	request.httpClient = client
	request.headers = http.Header{}
	return request
}

func (request *request) BaseURL(base *url.URL) *request {
	request.baseURL = base
	return request
}

func (request *request) Logger(logger *cog.Logger) *request {
	request.log = logger
	return request
}

func (request *request) Masker(masker masker.Masker) *request {
	request.masker = masker
	return request
}

func (request *request) POST() *request {
	return request.Method(http.MethodPost)
}

func (request *request) Method(name string) *request {
	request.method = name
	return request
}

func (request *request) Path(path string) *request {
	request.path = path
	return request
}

func (request *request) Header(name string, value string) *request {
	request.headers.Set(name, value)
	return request
}

func (request *request) UserAgent(useragent string) *request {
	return request.Header(headerUserAgent, useragent)
}

func (request *request) Bearer(token string) *request {
	return request.Header(headerAuthorization, "Bearer "+token)
}

// Payload sets the request body as is, Content-Length is the byte length of
// the payload. Requests without payload are sent with Content-Length: 0.
func (request *request) Payload(body []byte) *request {
	request.hasPayload = true
	request.payload = body
	return request
}

func (request *request) mask(text string) string {
	if request.masker == nil {
		return text
	}

	return request.masker.Mask(text)
}

func (request *request) getURL() (*url.URL, error) {
	reference, err := url.Parse(request.path)
	if err != nil {
		return nil, newError(KindInvalidURL, err).
			describe("path", request.path)
	}

	return request.baseURL.ResolveReference(reference), nil
}

// Do sends the request and returns the response without looking at its
// status code. The caller must close the response body.
func (request *request) Do(ctx context.Context) (*http.Response, error) {
	if request.method == "" {
		request.method = http.MethodGet
	}

	target, err := request.getURL()
	if err != nil {
		return nil, err
	}

	url := target.String()

	context := karma.Describe("method", request.method).
		Describe("url", url)

	var body io.Reader
	if request.hasPayload {
		body = bytes.NewReader(request.payload)

		context = context.Describe(
			"payload",
			request.mask(string(request.payload)),
		)
	}

	httpRequest, err := http.NewRequestWithContext(
		ctx, request.method, url, body,
	)
	if err != nil {
		return nil, newError(KindHTTPClient, err).
			describe("method", request.method).
			describe("url", url)
	}

	httpRequest.ContentLength = int64(len(request.payload))

	debugContext := context
	for key := range request.headers {
		value := request.headers.Get(key)
		debugContext = debugContext.Describe("header "+key, request.mask(value))
		httpRequest.Header.Set(key, value)
	}

	if request.log != nil {
		request.log.Tracef(debugContext, "sending http request")
	}

	httpResponse, err := request.httpClient.Do(httpRequest)
	if err != nil {
		return nil, newError(KindHTTPClient, err).
			describe("method", request.method).
			describe("url", url)
	}

	if request.log != nil {
		request.log.Tracef(
			context.Describe("status_code", httpResponse.StatusCode),
			"received http response",
		)
	}

	return httpResponse, nil
}

// readBody reads and closes the response body.
func readBody(response *http.Response) ([]byte, error) {
	defer response.Body.Close()

	data, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, newError(KindIO, err).
			describe("status_code", response.StatusCode)
	}

	return data, nil
}
