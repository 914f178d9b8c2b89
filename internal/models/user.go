package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

const AccountStatusActive = "active"

// User represents a registered account. Accounts are never hard-deleted in
// the normal flow; admin delete is an ad hoc management action.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"userId" json:"userId"`
	FirstName         string             `bson:"firstName" json:"firstName"`
	LastName          string             `bson:"lastName" json:"lastName"`
	Email             string             `bson:"email" json:"email"`
	PasswordHash      string             `bson:"passwordHash" json:"-"`
	Role              string             `bson:"role" json:"role"`
	AccountStatus     string             `bson:"accountStatus" json:"accountStatus"`
	IsEmailVerified   bool               `bson:"isEmailVerified" json:"isEmailVerified"`
	VerificationToken string             `bson:"verificationToken,omitempty" json:"-"`
	TokenExpiry       *time.Time         `bson:"tokenExpiry,omitempty" json:"-"`
	Address           string             `bson:"address,omitempty" json:"address,omitempty"`
	ContactNumber     string             `bson:"contactNumber,omitempty" json:"contactNumber,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
