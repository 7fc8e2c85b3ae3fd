package hippo

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/reconquest/hippo-go/internal/requests"
	"github.com/reconquest/hippo-go/internal/responses"
	"github.com/reconquest/karma-go"
)

const pathCreateToken = "account/createtoken"

// createToken exchanges the credentials for a bearer token. The status code
// is checked before the body is decoded, so rejected credentials surface as
// KindUnauthorized rather than as a decoding failure.
func (client *Client) createToken(
	ctx context.Context,
	username string,
	password string,
) (string, error) {
	client.log.Debugf(
		karma.Describe("username", username),
		"requesting access token",
	)

	payload, err := json.Marshal(requests.NewCreateToken(username, password))
	if err != nil {
		return "", newError(KindSerialization, err)
	}

	response, err := client.request().
		POST().
		Path(pathCreateToken).
		Payload(payload).
		Do(ctx)
	if err != nil {
		return "", err
	}

	body, err := readBody(response)
	if err != nil {
		return "", err
	}

	err = checkTokenStatus(response.StatusCode, body)
	if err != nil {
		return "", err
	}

	token, err := responses.UnmarshalCreateToken(body)
	if err != nil {
		return "", newError(KindSerialization, err).
			describe("status_code", response.StatusCode)
	}

	return token.Token, nil
}

func checkTokenStatus(statusCode int, body []byte) error {
	switch {
	case statusCode == http.StatusUnauthorized,
		statusCode == http.StatusForbidden:
		return newStatusError(KindUnauthorized, statusCode, body)

	case statusCode >= http.StatusInternalServerError:
		return newStatusError(KindServerError, statusCode, body)

	case statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices:
		return newStatusError(KindInvalidRequest, statusCode, body)
	}

	return nil
}
