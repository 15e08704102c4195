package dtos

type TokenRequest struct {
	Username string `json:"username" binding:"required,min=1,max=25"`
	Password string `json:"password" binding:"required,min=1"`
}

type UserRegisterRequest struct {
	Username  string `json:"username" binding:"required,min=1,max=25"`
	Password  string `json:"password" binding:"required,min=5,max=20"`
	FirstName string `json:"firstName" binding:"required,min=1,max=30"`
	LastName  string `json:"lastName" binding:"required,min=1,max=30"`
	Email     string `json:"email" binding:"required,email,min=6,max=60"`
}

// UserCreationRequest is the admin-only variant of registration.
type UserCreationRequest struct {
	UserRegisterRequest
	IsAdmin bool `json:"isAdmin"`
}

type UserUpdateRequest struct {
	Password  *string `json:"password" binding:"omitempty,min=5,max=20"`
	FirstName *string `json:"firstName" binding:"omitempty,min=1,max=30"`
	LastName  *string `json:"lastName" binding:"omitempty,min=1,max=30"`
	Email     *string `json:"email" binding:"omitempty,email,min=6,max=60"`
}

func (r *UserUpdateRequest) Changes() map[string]any {
	changes := map[string]any{}
	if r.Password != nil {
		changes["password"] = *r.Password
	}
	if r.FirstName != nil {
		changes["firstName"] = *r.FirstName
	}
	if r.LastName != nil {
		changes["lastName"] = *r.LastName
	}
	if r.Email != nil {
		changes["email"] = *r.Email
	}
	return changes
}
