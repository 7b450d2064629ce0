package feedapp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"github.com/wiky-avis/Yatube/internal/config"
	"github.com/wiky-avis/Yatube/internal/core/feed"
	profileEntity "github.com/wiky-avis/Yatube/internal/core/profile"
	userEntity "github.com/wiky-avis/Yatube/internal/core/user"
	feedPort "github.com/wiky-avis/Yatube/internal/ports/feed"
	followerPort "github.com/wiky-avis/Yatube/internal/ports/follower"
	groupPort "github.com/wiky-avis/Yatube/internal/ports/group"
	postPort "github.com/wiky-avis/Yatube/internal/ports/post"
	profilePort "github.com/wiky-avis/Yatube/internal/ports/profile"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

const globalFirstPageKey = "feed:global:1"

// CachePolicy controls caching of the global feed's first page. New posts
// do not invalidate the entry; it goes stale until TTL lapses. A zero TTL
// disables caching.
type CachePolicy struct {
	TTL time.Duration
}

func (p CachePolicy) Enabled() bool { return p.TTL > 0 }

type FeedService struct {
	PostRepository     postPort.PostRepository
	GroupRepository    groupPort.GroupRepository
	UserRepository     userPort.UserRepository
	FollowerRepository followerPort.FollowerRepository
	ProfileRepository  profilePort.ProfileRepository
	Cache              feedPort.FeedCache
	CachePolicy        CachePolicy
	PageSize           int
}

func NewFeedService(
	postRepo postPort.PostRepository,
	groupRepo groupPort.GroupRepository,
	userRepo userPort.UserRepository,
	followerRepo followerPort.FollowerRepository,
	profileRepo profilePort.ProfileRepository,
	cache feedPort.FeedCache,
	policy CachePolicy,
) *FeedService {
	return &FeedService{
		PostRepository:     postRepo,
		GroupRepository:    groupRepo,
		UserRepository:     userRepo,
		FollowerRepository: followerRepo,
		ProfileRepository:  profileRepo,
		Cache:              cache,
		CachePolicy:        policy,
		PageSize:           feed.DefaultPageSize,
	}
}

// GlobalFeed returns every post, newest first. The first page may be served
// from the cache.
func (s *FeedService) GlobalFeed(ctx context.Context, page int) (*feedPort.Page, error) {
	cacheable := page <= 1 && s.Cache != nil && s.CachePolicy.Enabled()
	if cacheable {
		if p, ok := s.cachedPage(ctx, globalFirstPageKey); ok {
			return p, nil
		}
	}

	p, err := s.page(ctx, postPort.Query{}, page)
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.storePage(ctx, globalFirstPageKey, p)
	}
	return p, nil
}

func (s *FeedService) GroupFeed(ctx context.Context, slug string, page int) (*feedPort.GroupPage, error) {
	g, err := s.GroupRepository.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	p, err := s.page(ctx, postPort.Query{GroupID: &g.ID}, page)
	if err != nil {
		return nil, err
	}
	return &feedPort.GroupPage{Group: groupPort.ToDTO(g), Page: p}, nil
}

// ProfileFeed returns an author's posts with their counters. viewerID may be
// empty for anonymous visitors.
func (s *FeedService) ProfileFeed(ctx context.Context, username string, page int, viewerID string) (*feedPort.ProfilePage, error) {
	author, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	p, err := s.page(ctx, postPort.Query{AuthorID: &author.ID}, page)
	if err != nil {
		return nil, err
	}
	out := &feedPort.ProfilePage{
		Author:    userPort.ToDTO(author),
		Photo:     profileEntity.DefaultPhoto,
		Page:      p,
		PostCount: p.Total,
	}

	if s.ProfileRepository != nil {
		prof, err := s.ProfileRepository.FindByUserID(ctx, author.ID)
		switch {
		case err == nil:
			out.Photo = prof.Photo
		case !errors.Is(err, profileEntity.ErrProfileNotFound):
			return nil, err
		}
	}

	if out.FollowerCount, err = s.FollowerRepository.CountFollowers(ctx, author.ID); err != nil {
		return nil, err
	}
	if out.FollowingCount, err = s.FollowerRepository.CountFollowing(ctx, author.ID); err != nil {
		return nil, err
	}
	if vid, err := uuid.FromString(viewerID); err == nil {
		if out.Following, err = s.FollowerRepository.IsFollowing(ctx, vid, author.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FollowedFeed returns posts by the authors userID follows.
func (s *FeedService) FollowedFeed(ctx context.Context, userID string, page int) (*feedPort.Page, error) {
	uid, err := uuid.FromString(userID)
	if err != nil {
		return nil, userEntity.ErrUserNotFound
	}
	return s.page(ctx, postPort.Query{FollowedBy: &uid}, page)
}

// Search matches the query against post text, author username and group
// title or description. An empty query yields an empty page.
func (s *FeedService) Search(ctx context.Context, query string, page int) (*feedPort.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.emptyPage(), nil
	}
	return s.page(ctx, postPort.Query{Search: query}, page)
}

func (s *FeedService) page(ctx context.Context, q postPort.Query, n int) (*feedPort.Page, error) {
	total, err := s.PostRepository.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	w := feed.Paginate(total, n, s.PageSize)

	out := &feedPort.Page{
		Number:      w.Number,
		Size:        w.Size,
		Total:       total,
		NumPages:    w.NumPages,
		HasNext:     w.HasNext(),
		HasPrevious: w.HasPrevious(),
		Posts:       []*postPort.PostDTO{},
	}
	if total == 0 {
		return out, nil
	}

	posts, err := s.PostRepository.List(ctx, q, w.Offset, w.Size)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		out.Posts = append(out.Posts, postPort.ToDTO(p))
	}
	return out, nil
}

func (s *FeedService) emptyPage() *feedPort.Page {
	w := feed.Paginate(0, 1, s.PageSize)
	return &feedPort.Page{
		Number:   w.Number,
		Size:     w.Size,
		NumPages: w.NumPages,
		Posts:    []*postPort.PostDTO{},
	}
}

// cachedPage treats any cache failure as a miss.
func (s *FeedService) cachedPage(ctx context.Context, key string) (*feedPort.Page, bool) {
	raw, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		config.Logger.Warn("Feed cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var p feedPort.Page
	if err := json.Unmarshal(raw, &p); err != nil {
		config.Logger.Warn("Feed cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &p, true
}

func (s *FeedService) storePage(ctx context.Context, key string, p *feedPort.Page) {
	raw, err := json.Marshal(p)
	if err != nil {
		config.Logger.Warn("Feed page encode failed", zap.Error(err))
		return
	}
	if err := s.Cache.Set(ctx, key, raw, s.CachePolicy.TTL); err != nil {
		config.Logger.Warn("Feed cache write failed", zap.String("key", key), zap.Error(err))
	}
}
