package model

import "time"

// User represents an application user record as stored in the `users`
// table. The password hash never leaves the server: the json tag hides it
// from every response body.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – display name chosen at registration.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
