package domain

import "time"

// UserType is the closed set of marketplace roles.
type UserType string

const (
	UserTypeVendor   UserType = "vendor"
	UserTypeSupplier UserType = "supplier"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeVendor, UserTypeSupplier:
		return true
	}
	return false
}

// User is a marketplace account. The bcrypt hash is stored alongside the
// document but never serialized to clients.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	UserType     UserType  `bson:"user_type" json:"user_type"`
	PasswordHash string    `bson:"password" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}
