// Package user holds the User entity and the request payloads of the user
// endpoints.
package user

// DefaultRemainingChats is assigned by the store when a user is created.
const DefaultRemainingChats = 5

// User is one row of the users table.
//
// UserID is the caller-supplied primary key and never changes after
// creation. RemainingChats is owned by the store and never written by the
// user endpoints.
type User struct {
	UserID         string `json:"userID" db:"user_id"`
	Name           string `json:"name" db:"name"`
	Email          string `json:"email" db:"email"`
	PhoneNumber    string `json:"phoneNumber" db:"phone_number"`
	RemainingChats int    `json:"remainingChats" db:"remaining_chats"`
}
