package postapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/wiky-avis/Yatube/internal/config"
	postEntity "github.com/wiky-avis/Yatube/internal/core/post"
	userEntity "github.com/wiky-avis/Yatube/internal/core/user"
	followerPort "github.com/wiky-avis/Yatube/internal/ports/follower"
	groupPort "github.com/wiky-avis/Yatube/internal/ports/group"
	postPort "github.com/wiky-avis/Yatube/internal/ports/post"
)

type PostService struct {
	PostRepository     postPort.PostRepository
	GroupRepository    groupPort.GroupRepository
	FollowerRepository followerPort.FollowerRepository
	Now                func() time.Time
}

func NewPostService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	followerRepo followerPort.FollowerRepository,
) *PostService {
	return &PostService{
		PostRepository:     postRepo,
		GroupRepository:    groupRepo,
		FollowerRepository: followerRepo,
		Now:                time.Now,
	}
}

// CreatePost publishes a post, optionally into the group with groupSlug.
func (s *PostService) CreatePost(ctx context.Context, authorID, text, groupSlug string, image *string) (*postPort.PostDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, postEntity.ErrEmptyText
	}

	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}

	p, err := s.PostRepository.Create(ctx, &postEntity.Post{
		Text:      text,
		AuthorID:  uid,
		GroupID:   groupID,
		Image:     nonEmpty(image),
		CreatedAt: s.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	config.Logger.Info("Created post", zap.String("postID", p.ID.String()), zap.String("authorID", authorID))

	created, err := s.PostRepository.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(created), nil
}

// GetPost returns the post view. The post must belong to username.
func (s *PostService) GetPost(ctx context.Context, username, postID, viewerID string) (*postPort.PostViewDTO, error) {
	p, err := s.loadPost(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.PostRepository.ListComments(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	view := &postPort.PostViewDTO{
		Post:     postPort.ToDTO(p),
		Comments: make([]*postPort.CommentDTO, 0, len(comments)),
	}
	for _, c := range comments {
		view.Comments = append(view.Comments, postPort.CommentToDTO(c))
	}

	authorID := p.AuthorID
	if view.AuthorPostCount, err = s.PostRepository.Count(ctx, postPort.Query{AuthorID: &authorID}); err != nil {
		return nil, err
	}
	if view.FollowerCount, err = s.FollowerRepository.CountFollowers(ctx, authorID); err != nil {
		return nil, err
	}
	if view.FollowingCount, err = s.FollowerRepository.CountFollowing(ctx, authorID); err != nil {
		return nil, err
	}
	if vid, err := uuid.FromString(viewerID); err == nil {
		if view.Following, err = s.FollowerRepository.IsFollowing(ctx, vid, authorID); err != nil {
			return nil, err
		}
	}
	return view, nil
}

// EditPost replaces text, group and image. Only the author may edit.
func (s *PostService) EditPost(ctx context.Context, editorID, username, postID, text, groupSlug string, image *string) (*postPort.PostDTO, error) {
	p, err := s.loadPost(ctx, username, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID.String() != editorID {
		return nil, postEntity.ErrNotAuthor
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, postEntity.ErrEmptyText
	}

	groupID, err := s.resolveGroup(ctx, groupSlug)
	if err != nil {
		return nil, err
	}
	p.Text = text
	p.GroupID = groupID
	p.Image = nonEmpty(image)

	if err := s.PostRepository.Update(ctx, p); err != nil {
		return nil, err
	}
	updated, err := s.PostRepository.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTO(updated), nil
}

func (s *PostService) DeletePost(ctx context.Context, editorID, username, postID string) error {
	p, err := s.loadPost(ctx, username, postID)
	if err != nil {
		return err
	}
	if p.AuthorID.String() != editorID {
		return postEntity.ErrNotAuthor
	}
	return s.PostRepository.Delete(ctx, p.ID)
}

func (s *PostService) AddComment(ctx context.Context, authorID, username, postID, text string) (*postPort.CommentDTO, error) {
	uid, err := uuid.FromString(authorID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, postEntity.ErrEmptyText
	}
	p, err := s.loadPost(ctx, username, postID)
	if err != nil {
		return nil, err
	}

	c, err := s.PostRepository.AddComment(ctx, &postEntity.Comment{
		PostID:    p.ID,
		AuthorID:  uid,
		Text:      text,
		CreatedAt: s.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return postPort.CommentToDTO(c), nil
}

func (s *PostService) loadPost(ctx context.Context, username, postID string) (*postEntity.Post, error) {
	pid, err := uuid.FromString(postID)
	if err != nil {
		return nil, postEntity.ErrPostNotFound
	}
	p, err := s.PostRepository.FindByID(ctx, pid)
	if err != nil {
		return nil, err
	}
	if p.Author == nil || p.Author.Username != username {
		return nil, postEntity.ErrPostNotFound
	}
	return p, nil
}

// resolveGroup maps an optional slug to a group id.
func (s *PostService) resolveGroup(ctx context.Context, slug string) (*uuid.UUID, error) {
	if slug == "" {
		return nil, nil
	}
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &g.ID, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
