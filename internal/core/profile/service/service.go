package profileapp

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"

	profileEntity "github.com/wiky-avis/Yatube/internal/core/profile"
	userEntity "github.com/wiky-avis/Yatube/internal/core/user"
	profilePort "github.com/wiky-avis/Yatube/internal/ports/profile"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

// HookRegistry is satisfied by the user service.
type HookRegistry interface {
	OnUserCreated(hook userPort.CreatedHook)
}

type ProfileService struct {
	ProfileRepository profilePort.ProfileRepository
}

func NewProfileService(repo profilePort.ProfileRepository) *ProfileService {
	return &ProfileService{ProfileRepository: repo}
}

// Register makes every new user get a default profile.
func (s *ProfileService) Register(users HookRegistry) {
	users.OnUserCreated(s.CreateDefault)
}

func (s *ProfileService) CreateDefault(ctx context.Context, u *userPort.UserDTO) error {
	uid, err := uuid.FromString(u.ID)
	if err != nil {
		return userEntity.ErrUserNotFound
	}
	return s.ProfileRepository.Create(ctx, &profileEntity.Profile{
		UserID: uid,
		Photo:  profileEntity.DefaultPhoto,
	})
}

// EnsureProfile returns the user's profile, creating a default one if it
// is missing.
func (s *ProfileService) EnsureProfile(ctx context.Context, userID string) (*profilePort.ProfileDTO, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}

	p, err := s.ProfileRepository.FindByUserID(ctx, uid)
	if errors.Is(err, profileEntity.ErrProfileNotFound) {
		p = &profileEntity.Profile{UserID: uid, Photo: profileEntity.DefaultPhoto}
		if err = s.ProfileRepository.Create(ctx, p); err != nil {
			return nil, err
		}
		p, err = s.ProfileRepository.FindByUserID(ctx, uid)
	}
	if err != nil {
		return nil, err
	}
	return &profilePort.ProfileDTO{UserID: p.UserID.String(), Photo: p.Photo}, nil
}

func (s *ProfileService) UpdatePhoto(ctx context.Context, userID, photo string) (*profilePort.ProfileDTO, error) {
	if _, err := s.EnsureProfile(ctx, userID); err != nil {
		return nil, err
	}
	if photo == "" {
		photo = profileEntity.DefaultPhoto
	}
	if err := s.ProfileRepository.UpdatePhoto(ctx, uuid.FromStringOrNil(userID), photo); err != nil {
		return nil, err
	}
	return &profilePort.ProfileDTO{UserID: userID, Photo: photo}, nil
}
