package hippo

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/reconquest/hippo-go/internal/ptr"
	"github.com/reconquest/hippo-go/internal/requests"
	"github.com/reconquest/karma-go"
)

const pathRegisterRevision = "api/revision"

// RegisterRevisionByApplication registers a revision of the application with
// the given identifier.
func (client *Client) RegisterRevisionByApplication(
	ctx context.Context,
	applicationID uuid.UUID,
	revisionNumber string,
) error {
	return client.registerRevision(
		ctx,
		requests.NewRegisterRevisionByApplication(applicationID, revisionNumber),
	)
}

// RegisterRevisionByStorageID registers a revision of the application stored
// under the given storage (bindle) identifier, for example
// "hippos.rocks/helloworld".
func (client *Client) RegisterRevisionByStorageID(
	ctx context.Context,
	storageID string,
	revisionNumber string,
) error {
	return client.registerRevision(
		ctx,
		requests.NewRegisterRevisionByStorageID(storageID, revisionNumber),
	)
}

// registerRevision succeeds only on 201 Created, every other status is
// reported as KindInvalidRequest with the response body as the message.
func (client *Client) registerRevision(
	ctx context.Context,
	request *requests.RegisterRevision,
) error {
	context := karma.Describe("revision_number", request.RevisionNumber)
	if request.AppID != nil {
		context = context.Describe("app_id", ptr.String(request.AppID))
	}
	if request.AppStorageID != nil {
		context = context.Describe("app_storage_id", ptr.String(request.AppStorageID))
	}

	client.log.Debugf(context, "registering revision")

	payload, err := json.Marshal(request)
	if err != nil {
		return newError(KindSerialization, err)
	}

	response, err := client.Raw(ctx, http.MethodPost, pathRegisterRevision, payload)
	if err != nil {
		return newError(KindOther, err)
	}

	body, readErr := readBody(response)

	if response.StatusCode == http.StatusCreated {
		client.log.Infof(context, "revision registered")
		return nil
	}

	if readErr != nil {
		return &Error{
			Kind:       KindInvalidRequest,
			StatusCode: response.StatusCode,
			Err:        readErr,
		}
	}

	return newStatusError(KindInvalidRequest, response.StatusCode, body)
}
