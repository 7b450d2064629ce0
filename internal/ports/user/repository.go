package user

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/wiky-avis/Yatube/internal/core/user"
)

// UserRepository stores and loads users.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	// Update saves the editable account fields of u.
	Update(ctx context.Context, u *user.User) error
	// Delete removes the user together with everything they own.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreatedHook runs after a user row has been committed.
type CreatedHook func(ctx context.Context, u *UserDTO) error

// UserUpdate carries account edits. Nil fields stay unchanged.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Username  *string
	Email     *string
	Password  *string
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	FullName  string `json:"full_name"`
}

func ToDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID.String(),
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		FullName:  u.FullName(),
	}
}
