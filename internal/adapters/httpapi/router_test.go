package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wiky-avis/Yatube/internal/core/group"
	"github.com/wiky-avis/Yatube/internal/core/message"
	"github.com/wiky-avis/Yatube/internal/core/post"
	"github.com/wiky-avis/Yatube/internal/core/user"
	feedPort "github.com/wiky-avis/Yatube/internal/ports/feed"
	groupPort "github.com/wiky-avis/Yatube/internal/ports/group"
	messagePort "github.com/wiky-avis/Yatube/internal/ports/message"
	postPort "github.com/wiky-avis/Yatube/internal/ports/post"
	profilePort "github.com/wiky-avis/Yatube/internal/ports/profile"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

var testSecret = []byte("router-secret")

func init() { gin.SetMode(gin.TestMode) }

// Fakes embed the use case interface and override only what a test calls.

type fakeFeeds struct {
	FeedUseCase
	gotPage int
}

func (f *fakeFeeds) GlobalFeed(ctx context.Context, page int) (*feedPort.Page, error) {
	f.gotPage = page
	return &feedPort.Page{Number: 1, NumPages: 1, Posts: []*postPort.PostDTO{}}, nil
}

func (f *fakeFeeds) ProfileFeed(ctx context.Context, username string, page int, viewerID string) (*feedPort.ProfilePage, error) {
	return nil, user.ErrUserNotFound
}

func (f *fakeFeeds) FollowedFeed(ctx context.Context, userID string, page int) (*feedPort.Page, error) {
	return &feedPort.Page{Number: page}, nil
}

type fakePosts struct{ PostUseCase }

func (fakePosts) EditPost(ctx context.Context, editorID, username, postID, text, groupSlug string, image *string) (*postPort.PostDTO, error) {
	return nil, post.ErrNotAuthor
}

type fakeMessages struct {
	MessageUseCase
	created bool
}

func (f *fakeMessages) CheckRecipient(ctx context.Context, username string) messagePort.RecipientCheck {
	if username == "bob" {
		return messagePort.RecipientCheck{OK: true}
	}
	return messagePort.RecipientCheck{Reason: message.ErrRecipientNotFound.Error()}
}

func (f *fakeMessages) CreateTopic(ctx context.Context, senderID, recipientUsername, subject, body string) (*messagePort.TopicDTO, error) {
	f.created = true
	return &messagePort.TopicDTO{ID: "t1", Subject: subject}, nil
}

func (f *fakeMessages) AppendMessage(ctx context.Context, topicID, senderID, body string) (*messagePort.MessageDTO, error) {
	return nil, message.ErrNotParticipant
}

func (f *fakeMessages) ReadTopic(ctx context.Context, userID, topicID string) (*messagePort.ThreadDTO, error) {
	return nil, message.ErrTopicNotFound
}

type fakeUsers struct {
	UserUseCase
	gotUpdate userPort.UserUpdate
}

func (*fakeUsers) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	return nil, user.ErrInvalidCredentials
}

func (*fakeUsers) RegisterUser(ctx context.Context, firstName, lastName, username, email, password string) (*userPort.UserDTO, error) {
	return nil, user.ErrUserTaken
}

func (f *fakeUsers) UpdateUser(ctx context.Context, userID string, upd userPort.UserUpdate) (*userPort.UserDTO, error) {
	f.gotUpdate = upd
	if upd.Username != nil && *upd.Username == "ann" {
		return nil, user.ErrUserTaken
	}
	dto := &userPort.UserDTO{ID: userID, Username: "leo"}
	if upd.Username != nil {
		dto.Username = *upd.Username
	}
	return dto, nil
}

type fakeProfiles struct {
	ProfileUseCase
	photoSet bool
}

func (f *fakeProfiles) EnsureProfile(ctx context.Context, userID string) (*profilePort.ProfileDTO, error) {
	return &profilePort.ProfileDTO{UserID: userID, Photo: "users/avatar180.jpg"}, nil
}

func (f *fakeProfiles) UpdatePhoto(ctx context.Context, userID, photo string) (*profilePort.ProfileDTO, error) {
	f.photoSet = true
	return &profilePort.ProfileDTO{UserID: userID, Photo: photo}, nil
}

type fakeGroups struct {
	GroupUseCase
	deleted []string
}

func (f *fakeGroups) GetBySlug(ctx context.Context, slug string) (*groupPort.GroupDTO, error) {
	if slug != "cats" {
		return nil, group.ErrGroupNotFound
	}
	return &groupPort.GroupDTO{ID: "g1", Title: "Cats", Slug: slug}, nil
}

func (f *fakeGroups) DeleteGroup(ctx context.Context, slug string) error {
	if slug != "cats" {
		return group.ErrGroupNotFound
	}
	f.deleted = append(f.deleted, slug)
	return nil
}

type fakes struct {
	users    *fakeUsers
	profiles *fakeProfiles
	groups   *fakeGroups
}

func newRouter() (*gin.Engine, *fakeFeeds, *fakeMessages) {
	r, feeds, msgs, _ := newRouterWithFakes()
	return r, feeds, msgs
}

func newRouterWithFakes() (*gin.Engine, *fakeFeeds, *fakeMessages, *fakes) {
	feeds := &fakeFeeds{}
	msgs := &fakeMessages{}
	f := &fakes{users: &fakeUsers{}, profiles: &fakeProfiles{}, groups: &fakeGroups{}}
	r := SetupRoutes(UseCases{
		Users:    f.users,
		Profiles: f.profiles,
		Posts:    fakePosts{},
		Groups:   f.groups,
		Feeds:    feeds,
		Messages: msgs,
	}, testSecret)
	return r, feeds, msgs, f
}

func token(t *testing.T, subject string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(testSecret)
	require.NoError(t, err)
	return s
}

func do(r http.Handler, method, path, body, tok string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGlobalFeedPageParam(t *testing.T) {
	r, feeds, _ := newRouter()

	tests := []struct {
		query string
		want  int
	}{
		{"", 1},
		{"?page=3", 3},
		{"?page=abc", 1},
		{"?page=-2", -2},
	}
	for _, tt := range tests {
		w := do(r, http.MethodGet, "/"+tt.query, "", "")
		assert.Equal(t, http.StatusOK, w.Code, tt.query)
		assert.Equal(t, tt.want, feeds.gotPage, tt.query)
	}
}

func TestUnknownProfileIs404(t *testing.T) {
	r, _, _ := newRouter()

	w := do(r, http.MethodGet, "/users/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthRequired(t *testing.T) {
	r, _, _ := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/follow", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/messages/x", "", "not-a-token").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/follow", "", token(t, "u1")).Code)
}

func TestEditPostByOtherUserRedirects(t *testing.T) {
	r, _, _ := newRouter()

	w := do(r, http.MethodPut, "/users/leo/posts/p1", `{"text":"hijack"}`, token(t, "u2"))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/users/leo/posts/p1", w.Header().Get("Location"))
}

func TestAnswerByOutsiderRedirectsToInbox(t *testing.T) {
	r, _, _ := newRouter()

	w := do(r, http.MethodPost, "/messages/t1/answer", `{"body":"hi"}`, token(t, "carol"))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/messages", w.Header().Get("Location"))

	w = do(r, http.MethodGet, "/messages/t1", "", token(t, "carol"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateTopicChecksRecipientFirst(t *testing.T) {
	r, _, msgs := newRouter()

	w := do(r, http.MethodPost, "/messages", `{"recipient":"nobody","body":"hi"}`, token(t, "alice"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "recipient not found")
	assert.False(t, msgs.created)

	w = do(r, http.MethodPost, "/messages", `{"recipient":"bob","subject":"s","body":"hi"}`, token(t, "alice"))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/messages/t1", w.Header().Get("Location"))
	assert.True(t, msgs.created)
}

func TestUserErrorsMapToStatus(t *testing.T) {
	r, _, _ := newRouter()

	w := do(r, http.MethodPost, "/login", `{"username":"leo","password":"x"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/register", `{"username":"leo","password":"long-enough"}`, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/register", `{"username":"leo","password":"short"}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProfileEditsAccountAndPhoto(t *testing.T) {
	r, _, _, f := newRouterWithFakes()

	w := do(r, http.MethodPut, "/me/profile", `{"username":"lev","last_name":"Tolstoy"}`, token(t, "u1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"lev"`)
	assert.Contains(t, w.Body.String(), `"photo":"users/avatar180.jpg"`)
	require.NotNil(t, f.users.gotUpdate.LastName)
	assert.Equal(t, "Tolstoy", *f.users.gotUpdate.LastName)
	assert.Nil(t, f.users.gotUpdate.Email)
	assert.False(t, f.profiles.photoSet)

	w = do(r, http.MethodPut, "/me/profile", `{"photo":"users/leo.jpg"}`, token(t, "u1"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"photo":"users/leo.jpg"`)
	assert.True(t, f.profiles.photoSet)

	w = do(r, http.MethodPut, "/me/profile", `{"username":"ann"}`, token(t, "u1"))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPut, "/me/profile", `{"password":"short"}`, token(t, "u1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPut, "/me/profile", `{"username":"lev"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGroupBySlugRoutes(t *testing.T) {
	r, _, _, f := newRouterWithFakes()

	w := do(r, http.MethodGet, "/groups/cats", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"cats"`)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/groups/birds", "", "").Code)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodDelete, "/groups/cats", "", "").Code)
	assert.Empty(t, f.groups.deleted)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/groups/cats", "", token(t, "u1")).Code)
	assert.Equal(t, []string{"cats"}, f.groups.deleted)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/groups/birds", "", token(t, "u1")).Code)
}
