package followerapp

import (
	"context"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/wiky-avis/Yatube/internal/config"
	followerEntity "github.com/wiky-avis/Yatube/internal/core/follower"
	userEntity "github.com/wiky-avis/Yatube/internal/core/user"
	followerPort "github.com/wiky-avis/Yatube/internal/ports/follower"
)

type FollowerService struct {
	FollowerRepository followerPort.FollowerRepository
	// Strict makes Unfollow fail with ErrNotFollowing when there is no edge.
	Strict bool
}

func NewFollowerService(repo followerPort.FollowerRepository) *FollowerService {
	return &FollowerService{
		FollowerRepository: repo,
		Strict:             true,
	}
}

// Follow creates the edge user -> author. Following yourself or an author
// you already follow is a silent no-op; the result reports whether an edge
// was created.
func (s *FollowerService) Follow(ctx context.Context, userID, authorID string) (bool, error) {
	uid, aid, err := parsePair(userID, authorID)
	if err != nil {
		return false, err
	}
	if uid == aid {
		return false, nil
	}

	created, err := s.FollowerRepository.Follow(ctx, &followerEntity.Follow{
		UserID:   uid,
		AuthorID: aid,
	})
	if err != nil {
		return false, err
	}
	if created {
		config.Logger.Info("Followed author", zap.String("userID", userID), zap.String("authorID", authorID))
	}
	return created, nil
}

func (s *FollowerService) Unfollow(ctx context.Context, userID, authorID string) error {
	uid, aid, err := parsePair(userID, authorID)
	if err != nil {
		return err
	}

	removed, err := s.FollowerRepository.Unfollow(ctx, uid, aid)
	if err != nil {
		return err
	}
	if !removed && s.Strict {
		return followerEntity.ErrNotFollowing
	}
	return nil
}

func (s *FollowerService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	uid, aid, err := parsePair(userID, authorID)
	if err != nil {
		return false, err
	}
	return s.FollowerRepository.IsFollowing(ctx, uid, aid)
}

func (s *FollowerService) FollowerCount(ctx context.Context, userID string) (int64, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return 0, userEntity.ErrUserNotFound
	}
	return s.FollowerRepository.CountFollowers(ctx, uid)
}

func (s *FollowerService) FollowingCount(ctx context.Context, userID string) (int64, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return 0, userEntity.ErrUserNotFound
	}
	return s.FollowerRepository.CountFollowing(ctx, uid)
}

func (s *FollowerService) GetFollowers(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	followers, err := s.FollowerRepository.GetFollowers(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toDTOs(followers), nil
}

func (s *FollowerService) GetFollowing(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	following, err := s.FollowerRepository.GetFollowing(ctx, uid)
	if err != nil {
		return nil, err
	}
	return toDTOs(following), nil
}

func toDTOs(follows []*followerEntity.Follow) []*followerPort.FollowerDTO {
	dtos := make([]*followerPort.FollowerDTO, 0, len(follows))
	for _, f := range follows {
		dtos = append(dtos, followerPort.ToDTO(f))
	}
	return dtos
}

func parsePair(userID, authorID string) (uuid.UUID, uuid.UUID, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, userEntity.ErrUserNotFound
	}
	aid, err := uuid.FromString(authorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, userEntity.ErrUserNotFound
	}
	return uid, aid, nil
}
