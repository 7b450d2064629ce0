package userapp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/wiky-avis/Yatube/internal/adapters/database"
	"github.com/wiky-avis/Yatube/internal/adapters/database/dbtest"
	"github.com/wiky-avis/Yatube/internal/adapters/httpapi/middleware"
	"github.com/wiky-avis/Yatube/internal/core/follower"
	"github.com/wiky-avis/Yatube/internal/core/message"
	"github.com/wiky-avis/Yatube/internal/core/outbox"
	"github.com/wiky-avis/Yatube/internal/core/post"
	"github.com/wiky-avis/Yatube/internal/core/profile"
	profileapp "github.com/wiky-avis/Yatube/internal/core/profile/service"
	userEntity "github.com/wiky-avis/Yatube/internal/core/user"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

var secret = []byte("test-secret")

func setup(t *testing.T) (*gorm.DB, *UserService) {
	t.Helper()
	db := dbtest.Open(t)
	svc := NewUserService(database.NewUserRepositoryDatabase(db), secret)
	profileapp.NewProfileService(database.NewProfileRepositoryDatabase(db)).Register(svc)
	return db, svc
}

func TestRegisterUserCreatesProfile(t *testing.T) {
	db, svc := setup(t)

	dto, err := svc.RegisterUser(context.Background(), "Leo", "Tolstoy", "leo", "leo@example.com", "war-and-peace")
	require.NoError(t, err)
	assert.Equal(t, "leo", dto.Username)
	assert.Equal(t, "Leo Tolstoy", dto.FullName)

	var p profile.Profile
	require.NoError(t, db.Where("user_id = ?", dto.ID).First(&p).Error)
	assert.Equal(t, profile.DefaultPhoto, p.Photo)

	var stored userEntity.User
	require.NoError(t, db.Where("username = ?", "leo").First(&stored).Error)
	assert.NotEqual(t, "war-and-peace", stored.Password)

	var events int64
	require.NoError(t, db.Model(&outbox.Event{}).Where("event_type = ?", outbox.UserRegistered).Count(&events).Error)
	assert.Equal(t, int64(1), events)
}

func TestRegisterUserRejectsDuplicatesAndBlanks(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "", "", "leo", "", "pw")
	require.NoError(t, err)

	_, err = svc.RegisterUser(ctx, "", "", "leo", "", "other")
	assert.ErrorIs(t, err, userEntity.ErrUserTaken)

	_, err = svc.RegisterUser(ctx, "", "", "  ", "", "pw")
	assert.ErrorIs(t, err, userEntity.ErrInvalidSignup)

	_, err = svc.RegisterUser(ctx, "", "", "ann", "", "")
	assert.ErrorIs(t, err, userEntity.ErrInvalidSignup)
}

func TestRegisterUserReportsHookFailure(t *testing.T) {
	_, svc := setup(t)
	svc.OnUserCreated(func(ctx context.Context, u *userPort.UserDTO) error {
		return assert.AnError
	})

	dto, err := svc.RegisterUser(context.Background(), "", "", "leo", "", "pw")
	assert.ErrorIs(t, err, assert.AnError)
	require.NotNil(t, dto)
	assert.Equal(t, "leo", dto.Username)
}

func TestLoginUser(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	svc.Now = func() time.Time { return now }

	dto, err := svc.RegisterUser(ctx, "", "", "leo", "", "pw")
	require.NoError(t, err)

	resp, err := svc.LoginUser(ctx, "leo", "pw")
	require.NoError(t, err)
	assert.Equal(t, now.Add(TokenTTL).Unix(), resp.ExpiresAt)

	subject, err := middleware.ParseToken(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, dto.ID, subject)

	_, err = svc.LoginUser(ctx, "leo", "wrong")
	assert.ErrorIs(t, err, userEntity.ErrInvalidCredentials)

	_, err = svc.LoginUser(ctx, "ghost", "pw")
	assert.ErrorIs(t, err, userEntity.ErrInvalidCredentials)
}

func TestDeleteUserCascades(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()

	leo, err := svc.RegisterUser(ctx, "", "", "leo", "", "pw")
	require.NoError(t, err)
	ann, err := svc.RegisterUser(ctx, "", "", "ann", "", "pw")
	require.NoError(t, err)

	var leoUser, annUser userEntity.User
	require.NoError(t, db.First(&leoUser, "id = ?", leo.ID).Error)
	require.NoError(t, db.First(&annUser, "id = ?", ann.ID).Error)

	leoPost := &post.Post{Text: "leo's", AuthorID: leoUser.ID}
	annPost := &post.Post{Text: "ann's", AuthorID: annUser.ID}
	require.NoError(t, db.Omit("Author", "Group").Create(leoPost).Error)
	require.NoError(t, db.Omit("Author", "Group").Create(annPost).Error)
	require.NoError(t, db.Omit("Post", "Author").Create(&post.Comment{PostID: leoPost.ID, AuthorID: annUser.ID, Text: "nice"}).Error)
	require.NoError(t, db.Omit("Post", "Author").Create(&post.Comment{PostID: annPost.ID, AuthorID: leoUser.ID, Text: "thanks"}).Error)
	require.NoError(t, db.Omit("Post", "Author").Create(&post.Comment{PostID: annPost.ID, AuthorID: annUser.ID, Text: "mine"}).Error)
	require.NoError(t, db.Omit("User", "Author").Create(&follower.Follow{UserID: annUser.ID, AuthorID: leoUser.ID}).Error)
	require.NoError(t, db.Omit("User", "Author").Create(&follower.Follow{UserID: leoUser.ID, AuthorID: annUser.ID}).Error)

	topic := &message.Topic{SenderID: annUser.ID, RecipientID: leoUser.ID, Subject: "hi", LastSentAt: time.Now().UTC()}
	require.NoError(t, db.Omit("Sender", "Recipient").Create(topic).Error)
	require.NoError(t, db.Omit("Topic", "Sender").Create(&message.Message{TopicID: topic.ID, SenderID: annUser.ID, Body: "hello", SentAt: time.Now().UTC()}).Error)

	require.NoError(t, svc.DeleteUser(ctx, leo.ID))

	count := func(model any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(1), count(&userEntity.User{}))
	assert.Equal(t, int64(1), count(&post.Post{}))
	assert.Equal(t, int64(1), count(&post.Comment{}), "only ann's own comment on her post survives")
	assert.Zero(t, count(&follower.Follow{}))
	assert.Zero(t, count(&message.Topic{}))
	assert.Zero(t, count(&message.Message{}))
	assert.Equal(t, int64(1), count(&profile.Profile{}))

	assert.ErrorIs(t, svc.DeleteUser(ctx, leo.ID), userEntity.ErrUserNotFound)
	assert.ErrorIs(t, svc.DeleteUser(ctx, "bogus"), userEntity.ErrUserNotFound)
}

func strPtr(s string) *string { return &s }

func TestUpdateUser(t *testing.T) {
	db, svc := setup(t)
	ctx := context.Background()

	leo, err := svc.RegisterUser(ctx, "Leo", "", "leo", "", "old-password")
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, "", "", "ann", "", "pw")
	require.NoError(t, err)

	dto, err := svc.UpdateUser(ctx, leo.ID, userPort.UserUpdate{
		LastName: strPtr("Tolstoy"),
		Username: strPtr("  lev "),
		Email:    strPtr("lev@example.com"),
		Password: strPtr("new-password"),
	})
	require.NoError(t, err)
	assert.Equal(t, "lev", dto.Username)
	assert.Equal(t, "Leo Tolstoy", dto.FullName)
	assert.Equal(t, "lev@example.com", dto.Email)

	var stored userEntity.User
	require.NoError(t, db.First(&stored, "id = ?", leo.ID).Error)
	assert.Equal(t, "lev", stored.Username)
	assert.NotEqual(t, "new-password", stored.Password)

	_, err = svc.LoginUser(ctx, "lev", "new-password")
	assert.NoError(t, err)
	_, err = svc.LoginUser(ctx, "lev", "old-password")
	assert.ErrorIs(t, err, userEntity.ErrInvalidCredentials)

	// keeping your own username is fine
	_, err = svc.UpdateUser(ctx, leo.ID, userPort.UserUpdate{Username: strPtr("lev")})
	assert.NoError(t, err)
}

func TestUpdateUserRejections(t *testing.T) {
	_, svc := setup(t)
	ctx := context.Background()

	leo, err := svc.RegisterUser(ctx, "", "", "leo", "", "pw")
	require.NoError(t, err)
	_, err = svc.RegisterUser(ctx, "", "", "ann", "", "pw")
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, leo.ID, userPort.UserUpdate{Username: strPtr("ann")})
	assert.ErrorIs(t, err, userEntity.ErrUserTaken)

	_, err = svc.UpdateUser(ctx, leo.ID, userPort.UserUpdate{Username: strPtr(" ")})
	assert.ErrorIs(t, err, userEntity.ErrInvalidSignup)

	_, err = svc.UpdateUser(ctx, leo.ID, userPort.UserUpdate{Password: strPtr("")})
	assert.ErrorIs(t, err, userEntity.ErrInvalidSignup)

	_, err = svc.UpdateUser(ctx, "bogus", userPort.UserUpdate{})
	assert.ErrorIs(t, err, userEntity.ErrUserNotFound)

	got, err := svc.GetByUsername(ctx, "leo")
	require.NoError(t, err)
	assert.Equal(t, leo.ID, got.ID)
}
