package usecase

import "github.com/google/uuid"

// GuestContact is the contact detail captured for unauthenticated checkout.
type GuestContact struct {
	Name  string
	Email string
	Phone string
}

// Identity is either an authenticated user or a guest with contact details.
// There is no string sentinel: guest-ness is the absence of a user ID.
type Identity struct {
	userID *uuid.UUID
	email  string
	guest  GuestContact
}

func Authenticated(userID uuid.UUID) Identity {
	return Identity{userID: &userID}
}

// AuthenticatedWithEmail carries the account email resolved from the
// bearer token, so confirmation emails reach registered users too.
func AuthenticatedWithEmail(userID uuid.UUID, email string) Identity {
	return Identity{userID: &userID, email: email}
}

func Guest(contact GuestContact) Identity {
	return Identity{guest: contact}
}

func (i Identity) UserID() (uuid.UUID, bool) {
	if i.userID == nil {
		return uuid.Nil, false
	}
	return *i.userID, true
}

func (i Identity) Contact() GuestContact {
	return i.guest
}

// Email returns the best-known contact email for this identity. Empty
// when an authenticated user's token carried no email claim.
func (i Identity) Email() string {
	if i.userID != nil {
		return i.email
	}
	return i.guest.Email
}

func (i Identity) IsGuest() bool {
	return i.userID == nil
}
