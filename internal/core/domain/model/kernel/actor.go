package kernel

import "strings"

// Actor is the authenticated caller of an operation, supplied per call by the
// identity collaborator.
type Actor struct {
	UserID UUID
	Name   string
	Staff  bool
}

// NewActor validates the user id. An empty name falls back to the id.
func NewActor(userID UUID, name string, staff bool) (Actor, error) {
	if err := userID.Validate(); err != nil {
		return Actor{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = userID.String()
	}
	return Actor{UserID: userID, Name: name, Staff: staff}, nil
}

func (a Actor) Validate() error {
	return a.UserID.Validate()
}

// Owns reports whether the actor is the user identified by ownerID.
func (a Actor) Owns(ownerID UUID) bool {
	return a.UserID.IsEqual(ownerID)
}

// CanAccess reports whether the actor may see or act on a resource owned by ownerID.
func (a Actor) CanAccess(ownerID UUID) bool {
	return a.Staff || a.Owns(ownerID)
}
