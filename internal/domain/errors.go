package domain

import "errors"

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrNotAMember means the actor has no membership in the target team.
	ErrNotAMember = errors.New("not a member of this team")

	// ErrInsufficientPermission means the actor's role does not grant the
	// required permission.
	ErrInsufficientPermission = errors.New("insufficient permission")

	// ErrOwnerProtected guards the owner membership against edits and the
	// owner role against grants by non-owners.
	ErrOwnerProtected = errors.New("owner membership is protected")

	// ErrInvalidRole means the role string is not one of the known roles.
	ErrInvalidRole = errors.New("invalid role")

	// ErrAlreadyMember means the user already has a membership in the team.
	ErrAlreadyMember = errors.New("user is already a team member")

	// ErrEmptyName means a required name was blank after trimming.
	ErrEmptyName = errors.New("name must not be empty")
)
