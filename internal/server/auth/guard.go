package auth

import "github.com/dmitrijs2005/gophcourses/internal/common"

// RequireAuthenticated denies anonymous callers.
func RequireAuthenticated(id Identity) error {
	if !id.Authenticated {
		return common.ErrUnauthorized
	}
	return nil
}

// RequireSelf allows only the owner of targetID.
func RequireSelf(id Identity, targetID string) error {
	if !id.Authenticated || id.SubjectID == "" || id.SubjectID != targetID {
		return common.ErrForbidden
	}
	return nil
}
