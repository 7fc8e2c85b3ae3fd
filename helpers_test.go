package hippo

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/reconquest/pkg/log"
)

var ctx = context.Background()

func init() {
	log.SetLevel(log.LevelTrace)
}

const testToken = "abc123"

func newServer(t *testing.T, routes map[string]http.HandlerFunc) *httptest.Server {
	mux := http.NewServeMux()
	for path, handler := range routes {
		mux.HandleFunc(path, handler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func respond(status int, body string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		_, _ = ioutil.ReadAll(request.Body)

		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}
}

func login(token string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		if request.Method != http.MethodPost {
			writer.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		respond(
			http.StatusOK,
			`{"token":"`+token+`","expiration":"2099-01-01"}`,
		)(writer, request)
	}
}

func newTestClient(
	t *testing.T,
	routes map[string]http.HandlerFunc,
) (*Client, *httptest.Server) {
	if _, ok := routes["/"+pathCreateToken]; !ok {
		routes["/"+pathCreateToken] = login(testToken)
	}

	server := newServer(t, routes)

	client, err := New(ctx, server.URL, "admin", "Passw0rd!", Options{})
	if err != nil {
		t.Fatalf("unable to create client: %s", err)
	}

	return client, server
}

type recorded struct {
	method  string
	path    string
	headers http.Header
	length  int64
	body    []byte
}

type recorder struct {
	mutex    sync.Mutex
	requests []recorded
}

func (recorder *recorder) handler(status int, body string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		data, _ := ioutil.ReadAll(request.Body)

		recorder.mutex.Lock()
		recorder.requests = append(recorder.requests, recorded{
			method:  request.Method,
			path:    request.URL.Path,
			headers: request.Header.Clone(),
			length:  request.ContentLength,
			body:    data,
		})
		recorder.mutex.Unlock()

		writer.WriteHeader(status)
		_, _ = writer.Write([]byte(body))
	}
}

func (recorder *recorder) count() int {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()

	return len(recorder.requests)
}

// last returns the most recent request, zero value if there were none.
func (recorder *recorder) last() recorded {
	recorder.mutex.Lock()
	defer recorder.mutex.Unlock()

	if len(recorder.requests) == 0 {
		return recorded{}
	}

	return recorder.requests[len(recorder.requests)-1]
}
