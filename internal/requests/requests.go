package requests

import (
	"github.com/google/uuid"
	"github.com/reconquest/hippo-go/internal/ptr"
)

type CreateToken struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewCreateToken(username, password string) *CreateToken {
	return &CreateToken{
		Username: username,
		Password: password,
	}
}

// RegisterRevision always carries both identifiers on the wire, exactly one
// of them is non-null. Use the constructors below to build it.
type RegisterRevision struct {
	AppID          *string `json:"appId"`
	AppStorageID   *string `json:"appStorageId"`
	RevisionNumber string  `json:"revisionNumber"`
}

func NewRegisterRevisionByApplication(
	applicationID uuid.UUID,
	revisionNumber string,
) *RegisterRevision {
	return &RegisterRevision{
		AppID:          ptr.StringPtr(applicationID.String()),
		RevisionNumber: revisionNumber,
	}
}

func NewRegisterRevisionByStorageID(
	storageID string,
	revisionNumber string,
) *RegisterRevision {
	return &RegisterRevision{
		AppStorageID:   ptr.StringPtr(storageID),
		RevisionNumber: revisionNumber,
	}
}
