package responses

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

type CreateToken struct {
	Token      string `json:"token"`
	Expiration string `json:"expiration"`
}

// UnmarshalStrict decodes exactly one JSON object into dst, unknown fields
// and trailing data are rejected.
func UnmarshalStrict(data []byte, dst interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err != nil {
		return err
	}

	if _, err := decoder.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON object")
	}

	return nil
}

// UnmarshalCreateToken additionally requires both fields to be present.
func UnmarshalCreateToken(data []byte) (CreateToken, error) {
	var raw struct {
		Token      *string `json:"token"`
		Expiration *string `json:"expiration"`
	}

	err := UnmarshalStrict(data, &raw)
	if err != nil {
		return CreateToken{}, err
	}

	if raw.Token == nil {
		return CreateToken{}, errors.New("missing field: token")
	}

	if raw.Expiration == nil {
		return CreateToken{}, errors.New("missing field: expiration")
	}

	return CreateToken{
		Token:      *raw.Token,
		Expiration: *raw.Expiration,
	}, nil
}
