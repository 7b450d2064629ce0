package groupapp

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/wiky-avis/Yatube/internal/config"
	groupEntity "github.com/wiky-avis/Yatube/internal/core/group"
	groupPort "github.com/wiky-avis/Yatube/internal/ports/group"
)

type GroupService struct {
	GroupRepository groupPort.GroupRepository
}

func NewGroupService(repo groupPort.GroupRepository) *GroupService {
	return &GroupService{GroupRepository: repo}
}

func (s *GroupService) CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, groupEntity.ErrEmptyTitle
	}
	if !groupEntity.ValidSlug(slug) {
		return nil, groupEntity.ErrInvalidSlug
	}

	if _, err := s.GroupRepository.FindBySlug(ctx, slug); err == nil {
		return nil, groupEntity.ErrSlugTaken
	}

	g, err := s.GroupRepository.Create(ctx, &groupEntity.Group{
		Title:       title,
		Slug:        slug,
		Description: description,
	})
	if err != nil {
		return nil, err
	}
	config.Logger.Info("Created group", zap.String("slug", g.Slug))
	return groupPort.ToDTO(g), nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error) {
	groups, err := s.GroupRepository.List(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]*groupPort.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dtos = append(dtos, groupPort.ToDTO(g))
	}
	return dtos, nil
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return groupPort.ToDTO(g), nil
}

// DeleteGroup removes the group; its posts stay published without a group.
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.GroupRepository.Delete(ctx, g.ID)
}
