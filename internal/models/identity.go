package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the explicit shopper identity threaded into cart operations:
// either an authenticated user or a token-identified guest session. It is
// resolved once per request by the identity middleware instead of being
// re-derived from cookies inside every operation.
type Identity struct {
	Kind       OwnerKind
	UserID     uuid.UUID
	GuestToken string
}

func UserIdentity(userID uuid.UUID) Identity {
	return Identity{Kind: OwnerUser, UserID: userID}
}

func GuestIdentity(token string) Identity {
	return Identity{Kind: OwnerGuest, GuestToken: token}
}

func (i Identity) IsUser() bool {
	return i.Kind == OwnerUser
}

// JWT claims issued by the external auth service. The core only verifies the
// signature and reads the user id; token issuance lives elsewhere.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}
