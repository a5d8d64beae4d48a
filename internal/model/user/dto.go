package user

import (
	"github.com/deppfellow/userapi/internal/validation"
)

// ------------------------------------------------------------

// CreateUserRequest is the body of the create endpoints.
type CreateUserRequest struct {
	UserID      string `json:"userID" validate:"required,len=10"`
	Name        string `json:"name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,len=10,number"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}

// ToUser builds the entity to insert. RemainingChats takes the default.
func (r *CreateUserRequest) ToUser() *User {
	return &User{
		UserID:         r.UserID,
		Name:           r.Name,
		Email:          r.Email,
		PhoneNumber:    r.PhoneNumber,
		RemainingChats: DefaultRemainingChats,
	}
}

// ------------------------------------------------------------

// UpdateUserRequest is the body of the update endpoints.
//
// A nil field is left untouched; at least one must be present.
type UpdateUserRequest struct {
	UserID      string  `json:"userID" validate:"required,len=10"`
	Name        *string `json:"name" validate:"omitnil,min=1"`
	Email       *string `json:"email" validate:"omitnil,email"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitnil,len=10,number"`
}

// ErrNoUpdateFields is the message of an update carrying only the userID.
const ErrNoUpdateFields = "At least one field to update must be provided"

func (r *UpdateUserRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if !r.HasChanges() {
		return validation.CustomValidationErrors{
			{Field: "", Message: ErrNoUpdateFields},
		}
	}

	return nil
}

// HasChanges reports whether any updatable field was supplied.
func (r *UpdateUserRequest) HasChanges() bool {
	return r.Name != nil || r.Email != nil || r.PhoneNumber != nil
}

// ------------------------------------------------------------

// DeleteUserRequest is the body of the delete endpoints.
type DeleteUserRequest struct {
	UserID string `json:"userID" validate:"required,len=10"`
}

func (r *DeleteUserRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

// GetUserRequest carries the path parameter of the read-one endpoint.
type GetUserRequest struct {
	UserID string `param:"userID" validate:"required"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

// ------------------------------------------------------------

// ListUsersRequest has no inputs; the list endpoints take no filters.
type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error {
	return nil
}
