// Package models defines the wallet's records and the session reference.
package models

import (
	"time"

	"github.com/uptrace/bun"
)

// User is an identity record. SecretHash is a bcrypt hash; the plaintext
// secret is never stored.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID         string    `bun:"id,pk"`
	Name       string    `bun:"name,notnull"`
	Email      string    `bun:"email,notnull,unique"`
	SecretHash []byte    `bun:"secret_hash,notnull"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
}

// Ref returns the weak session reference for u.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Email: u.Email}
}

// Card is a stored payment card. All fields are opaque strings kept exactly
// as entered. ID grows with insertion order.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID           int64     `bun:"id,pk,autoincrement"`
	OwnerName    string    `bun:"owner_name,notnull"`
	TaxID        string    `bun:"tax_id,notnull"`
	Number       string    `bun:"number,notnull"`
	Expiry       string    `bun:"expiry,notnull"`
	SecurityCode string    `bun:"security_code,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}

// UserRef identifies the authenticated principal without owning the User
// record. Token is the signed session token minted at login.
type UserRef struct {
	ID    string
	Email string
	Token string
}

// Transaction is one line of a card's recent activity.
type Transaction struct {
	Description string
	Amount      int64 // minor units, negative for debits
	Date        time.Time
}
