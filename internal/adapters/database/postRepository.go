package database

import (
	"context"
	"strings"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wiky-avis/Yatube/internal/core/follower"
	"github.com/wiky-avis/Yatube/internal/core/outbox"
	"github.com/wiky-avis/Yatube/internal/core/post"
	postPort "github.com/wiky-avis/Yatube/internal/ports/post"
)

// PostRepositoryDatabase implements PostRepository on gorm.
type PostRepositoryDatabase struct {
	DB *gorm.DB
}

func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{DB: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	err := repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		payload := map[string]any{
			"post_id":   p.ID.String(),
			"author_id": p.AuthorID.String(),
		}
		if p.GroupID != nil {
			payload["group_id"] = p.GroupID.String()
		}
		return insertEvent(tx, outbox.PostCreated, p.ID, payload)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := repo.DB.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, notFound(err, post.ErrPostNotFound)
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) Update(ctx context.Context, p *post.Post) error {
	return repo.DB.WithContext(ctx).Model(&post.Post{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"text":     p.Text,
			"group_id": p.GroupID,
			"image":    p.Image,
		}).Error
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&post.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&post.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return post.ErrPostNotFound
		}
		return nil
	})
}

func (repo *PostRepositoryDatabase) List(ctx context.Context, q postPort.Query, offset, limit int) ([]*post.Post, error) {
	var posts []*post.Post
	if err := repo.scoped(ctx, q).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) Count(ctx context.Context, q postPort.Query) (int64, error) {
	var n int64
	if err := repo.scoped(ctx, q).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// likeEscaper makes search terms match literally, with '!' as the escape
// character on every supported store.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// scoped builds the shared WHERE clause for listing and counting.
func (repo *PostRepositoryDatabase) scoped(ctx context.Context, q postPort.Query) *gorm.DB {
	db := repo.DB.WithContext(ctx).Model(&post.Post{})
	if q.AuthorID != nil {
		db = db.Where("posts.author_id = ?", *q.AuthorID)
	}
	if q.GroupID != nil {
		db = db.Where("posts.group_id = ?", *q.GroupID)
	}
	if q.FollowedBy != nil {
		authors := repo.DB.WithContext(ctx).Model(&follower.Follow{}).
			Select("author_id").
			Where("user_id = ?", *q.FollowedBy)
		db = db.Where("posts.author_id IN (?)", authors)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		db = db.
			Joins("LEFT JOIN users ON users.id = posts.author_id").
			Joins("LEFT JOIN post_groups ON post_groups.id = posts.group_id").
			Where("(LOWER(posts.text) LIKE ? ESCAPE '!' OR LOWER(users.username) LIKE ? ESCAPE '!' OR "+
				"LOWER(post_groups.title) LIKE ? ESCAPE '!' OR LOWER(post_groups.description) LIKE ? ESCAPE '!')",
				like, like, like, like)
	}
	return db
}

func (repo *PostRepositoryDatabase) AddComment(ctx context.Context, c *post.Comment) (*post.Comment, error) {
	if err := repo.DB.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (repo *PostRepositoryDatabase) ListComments(ctx context.Context, postID uuid.UUID) ([]*post.Comment, error) {
	var comments []*post.Comment
	if err := repo.DB.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
