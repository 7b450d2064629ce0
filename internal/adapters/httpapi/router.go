package httpapi

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/wiky-avis/Yatube/internal/adapters/httpapi/middleware"
	feedPort "github.com/wiky-avis/Yatube/internal/ports/feed"
	followerPort "github.com/wiky-avis/Yatube/internal/ports/follower"
	groupPort "github.com/wiky-avis/Yatube/internal/ports/group"
	messagePort "github.com/wiky-avis/Yatube/internal/ports/message"
	postPort "github.com/wiky-avis/Yatube/internal/ports/post"
	profilePort "github.com/wiky-avis/Yatube/internal/ports/profile"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

// Inbound ports the handlers depend on.

type UserUseCase interface {
	LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error)
	RegisterUser(ctx context.Context, firstName, lastName, username, email, password string) (*userPort.UserDTO, error)
	GetByUsername(ctx context.Context, username string) (*userPort.UserDTO, error)
	UpdateUser(ctx context.Context, userID string, upd userPort.UserUpdate) (*userPort.UserDTO, error)
	DeleteUser(ctx context.Context, userID string) error
}

type ProfileUseCase interface {
	EnsureProfile(ctx context.Context, userID string) (*profilePort.ProfileDTO, error)
	UpdatePhoto(ctx context.Context, userID, photo string) (*profilePort.ProfileDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, authorID, text, groupSlug string, image *string) (*postPort.PostDTO, error)
	GetPost(ctx context.Context, username, postID, viewerID string) (*postPort.PostViewDTO, error)
	EditPost(ctx context.Context, editorID, username, postID, text, groupSlug string, image *string) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, editorID, username, postID string) error
	AddComment(ctx context.Context, authorID, username, postID, text string) (*postPort.CommentDTO, error)
}

type GroupUseCase interface {
	CreateGroup(ctx context.Context, title, slug, description string) (*groupPort.GroupDTO, error)
	ListGroups(ctx context.Context) ([]*groupPort.GroupDTO, error)
	GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error)
	DeleteGroup(ctx context.Context, slug string) error
}

type FollowerUseCase interface {
	Follow(ctx context.Context, userID, authorID string) (bool, error)
	Unfollow(ctx context.Context, userID, authorID string) error
	GetFollowers(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error)
	GetFollowing(ctx context.Context, userID string) ([]*followerPort.FollowerDTO, error)
}

type FeedUseCase interface {
	GlobalFeed(ctx context.Context, page int) (*feedPort.Page, error)
	GroupFeed(ctx context.Context, slug string, page int) (*feedPort.GroupPage, error)
	ProfileFeed(ctx context.Context, username string, page int, viewerID string) (*feedPort.ProfilePage, error)
	FollowedFeed(ctx context.Context, userID string, page int) (*feedPort.Page, error)
	Search(ctx context.Context, query string, page int) (*feedPort.Page, error)
}

type MessageUseCase interface {
	Inbox(ctx context.Context, userID string) (*messagePort.InboxDTO, error)
	CheckRecipient(ctx context.Context, username string) messagePort.RecipientCheck
	CreateTopic(ctx context.Context, senderID, recipientUsername, subject, body string) (*messagePort.TopicDTO, error)
	ReadTopic(ctx context.Context, userID, topicID string) (*messagePort.ThreadDTO, error)
	AppendMessage(ctx context.Context, topicID, senderID, body string) (*messagePort.MessageDTO, error)
	DeleteTopics(ctx context.Context, userID string, topicIDs []string) (int, error)
}

// UseCases bundles everything SetupRoutes wires into handlers.
type UseCases struct {
	Users    UserUseCase
	Profiles ProfileUseCase
	Posts    PostUseCase
	Groups   GroupUseCase
	Follows  FollowerUseCase
	Feeds    FeedUseCase
	Messages MessageUseCase
}

// SetupRoutes only routes; use cases are injected from outside.
func SetupRoutes(uc UseCases, jwtSecret []byte) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	users := NewUserController(uc.Users, uc.Profiles)
	posts := NewPostController(uc.Posts)
	groups := NewGroupController(uc.Groups)
	follows := NewFollowerController(uc.Follows, uc.Users)
	feeds := NewFeedController(uc.Feeds)
	messages := NewMessageController(uc.Messages)

	auth := middleware.JWTAuthMiddleware(jwtSecret)
	optional := middleware.OptionalJWTMiddleware(jwtSecret)

	r.POST("/register", users.RegisterUser)
	r.POST("/login", users.LoginUser)

	r.GET("/", feeds.GlobalFeed)
	r.GET("/search", feeds.Search)
	r.GET("/follow", auth, feeds.FollowedFeed)
	r.GET("/group/:slug", feeds.GroupFeed)

	r.GET("/groups", groups.ListGroups)
	r.POST("/groups", auth, groups.CreateGroup)
	r.GET("/groups/:slug", groups.GetGroup)
	r.DELETE("/groups/:slug", auth, groups.DeleteGroup)

	r.POST("/posts", auth, posts.CreatePost)

	u := r.Group("/users/:username")
	{
		u.GET("", optional, feeds.ProfileFeed)
		u.POST("/follow", auth, follows.Follow)
		u.POST("/unfollow", auth, follows.Unfollow)
		u.GET("/followers", follows.GetFollowers)
		u.GET("/following", follows.GetFollowing)

		u.GET("/posts/:id", optional, posts.GetPost)
		u.PUT("/posts/:id", auth, posts.EditPost)
		u.DELETE("/posts/:id", auth, posts.DeletePost)
		u.POST("/posts/:id/comments", auth, posts.AddComment)
	}

	me := r.Group("/me", auth)
	{
		me.PUT("/profile", users.UpdateProfile)
		me.DELETE("", users.DeleteMe)
	}

	m := r.Group("/messages", auth)
	{
		m.GET("", messages.Inbox)
		m.POST("", messages.CreateTopic)
		m.POST("/delete", messages.DeleteTopics)
		m.GET("/:id", messages.ReadTopic)
		m.POST("/:id/answer", messages.Answer)
	}

	return r
}
