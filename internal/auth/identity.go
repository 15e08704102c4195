package auth

import "github.com/justsurfingit/jobly-api/internal/apperr"

// Identity is the verified caller attached to a request.
type Identity struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// The guards below report nil on success and an Unauthorized *apperr.Error
// otherwise. A nil identity means the request carried no valid token.

func RequireLoggedIn(id *Identity) error {
	if id == nil {
		return apperr.Unauthorized("")
	}
	return nil
}

func RequireAdmin(id *Identity) error {
	if id == nil || !id.IsAdmin {
		return apperr.Unauthorized("")
	}
	return nil
}

func RequireSelfOrAdmin(id *Identity, username string) error {
	if id == nil {
		return apperr.Unauthorized("")
	}
	if !id.IsAdmin && id.Username != username {
		return apperr.Unauthorized("")
	}
	return nil
}
