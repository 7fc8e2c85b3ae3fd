package hippo

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClient_RegisterRevisionByStorageID_ReturnsNilOnCreated(t *testing.T) {
	test := assert.New(t)

	var revision recorder
	client, _ := newTestClient(t, map[string]http.HandlerFunc{
		"/api/revision": revision.handler(http.StatusCreated, ""),
	})

	err := client.RegisterRevisionByStorageID(ctx, "hippos.rocks/helloworld", "1.1.3")
	test.NoError(err)

	request := revision.last()
	test.Equal(http.MethodPost, request.method)
	test.Equal("Bearer "+testToken, request.headers.Get("Authorization"))
	test.EqualValues(len(request.body), request.length)
	test.JSONEq(
		`{
			"appId": null,
			"appStorageId": "hippos.rocks/helloworld",
			"revisionNumber": "1.1.3"
		}`,
		string(request.body),
	)
}

func TestClient_RegisterRevisionByApplication_SendsAppID(t *testing.T) {
	test := assert.New(t)

	var revision recorder
	client, _ := newTestClient(t, map[string]http.HandlerFunc{
		"/api/revision": revision.handler(http.StatusCreated, ""),
	})

	id := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

	err := client.RegisterRevisionByApplication(ctx, id, "2.0.0")
	test.NoError(err)

	var body map[string]interface{}
	test.NoError(json.Unmarshal(revision.last().body, &body))
	test.Equal(
		map[string]interface{}{
			"appId":          "550e8400-e29b-41d4-a716-446655440000",
			"appStorageId":   nil,
			"revisionNumber": "2.0.0",
		},
		body,
	)
}

func TestClient_RegisterRevisionByStorageID_ReturnsInvalidRequest(t *testing.T) {
	test := assert.New(t)

	client, _ := newTestClient(t, map[string]http.HandlerFunc{
		"/api/revision": respond(http.StatusBadRequest, "bad revision"),
	})

	err := client.RegisterRevisionByStorageID(ctx, "hippos.rocks/helloworld", "1.1.3")

	var hippoErr *Error
	if test.True(errors.As(err, &hippoErr), "error: %v", err) {
		test.Equal(KindInvalidRequest, hippoErr.Kind)
		test.Equal(http.StatusBadRequest, hippoErr.StatusCode)
		if test.NotNil(hippoErr.Message) {
			test.Equal("bad revision", *hippoErr.Message)
		}
	}
}

func TestClient_RegisterRevision_ReturnsInvalidRequestOnAnyOtherStatus(t *testing.T) {
	test := assert.New(t)

	for _, status := range []int{
		http.StatusOK,
		http.StatusAccepted,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusConflict,
		http.StatusInternalServerError,
	} {
		client, _ := newTestClient(t, map[string]http.HandlerFunc{
			"/api/revision": respond(status, "status "+http.StatusText(status)),
		})

		err := client.RegisterRevisionByApplication(ctx, uuid.New(), "1.0.0")

		var hippoErr *Error
		if test.True(errors.As(err, &hippoErr), "status: %d", status) {
			test.Equal(KindInvalidRequest, hippoErr.Kind)
			test.Equal(status, hippoErr.StatusCode)
			if test.NotNil(hippoErr.Message) {
				test.Equal("status "+http.StatusText(status), *hippoErr.Message)
			}
		}
	}
}

func TestClient_RegisterRevision_DecodesInvalidUTF8Lossily(t *testing.T) {
	test := assert.New(t)

	client, _ := newTestClient(t, map[string]http.HandlerFunc{
		"/api/revision": respond(http.StatusBadRequest, "bad \xff\xfe revision"),
	})

	err := client.RegisterRevisionByStorageID(ctx, "hippos.rocks/helloworld", "1.1.3")

	var hippoErr *Error
	if test.True(errors.As(err, &hippoErr), "error: %v", err) {
		if test.NotNil(hippoErr.Message) {
			test.Equal("bad \uFFFD revision", *hippoErr.Message)
		}
	}
}

func TestClient_RegisterRevision_WrapsTransportErrorAsOther(t *testing.T) {
	test := assert.New(t)

	client, server := newTestClient(t, map[string]http.HandlerFunc{})
	server.Close()

	err := client.RegisterRevisionByStorageID(ctx, "hippos.rocks/helloworld", "1.1.3")
	test.True(errors.Is(err, ErrOther), "error: %v", err)
	test.True(errors.Is(err, ErrHTTPClient), "error: %v", err)
}

func TestClient_RegisterRevision_IsSafeForConcurrentUse(t *testing.T) {
	test := assert.New(t)

	var revision recorder
	client, _ := newTestClient(t, map[string]http.HandlerFunc{
		"/api/revision": revision.handler(http.StatusCreated, ""),
	})

	wg := sync.WaitGroup{}
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- client.RegisterRevisionByApplication(ctx, uuid.New(), "1.0.0")
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		test.NoError(err)
	}

	test.Equal(20, revision.count())
}
