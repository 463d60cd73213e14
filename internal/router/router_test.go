package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"commune/internal/auth"
	apperrors "commune/internal/errors"
	"commune/internal/handler"
	"commune/internal/model"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	args := m.Called(ctx, username, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*model.User), args.Error(2)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockPostService is a mock implementation of service.PostService.
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, authorID uuid.UUID, content string, images []string, groupID *uuid.UUID) (*model.Post, error) {
	args := m.Called(ctx, authorID, content, images, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Feed(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostService) GroupPosts(ctx context.Context, groupID uuid.UUID) ([]model.Post, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

// MockGroupService is a mock implementation of service.GroupService.
type MockGroupService struct {
	mock.Mock
}

func (m *MockGroupService) Create(ctx context.Context, creatorID uuid.UUID, name, description string, memberIDs []uuid.UUID) (*model.Group, error) {
	args := m.Called(ctx, creatorID, name, description, memberIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Group), args.Error(1)
}

// MockMessageService is a mock implementation of service.MessageService.
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*model.Message, error) {
	args := m.Called(ctx, senderID, receiverID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageService) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

type testApp struct {
	e        *echo.Echo
	tokens   *auth.TokenService
	auths    *MockAuthService
	users    *MockUserService
	posts    *MockPostService
	groups   *MockGroupService
	messages *MockMessageService
}

func newTestApp() *testApp {
	app := &testApp{
		e:        echo.New(),
		tokens:   auth.NewTokenService("test-secret"),
		auths:    new(MockAuthService),
		users:    new(MockUserService),
		posts:    new(MockPostService),
		groups:   new(MockGroupService),
		messages: new(MockMessageService),
	}
	Register(
		app.e,
		auth.Guard(app.tokens),
		handler.NewAuthHandler(app.auths),
		handler.NewUserHandler(app.users),
		handler.NewPostHandler(app.posts),
		handler.NewGroupHandler(app.groups),
		handler.NewMessageHandler(app.messages),
	)
	return app
}

func (app *testApp) request(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, token)
	}
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)
	return rec
}

func TestWelcome(t *testing.T) {
	app := newTestApp()

	rec := app.request(http.MethodGet, "/", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to the Commune API"}`, rec.Body.String())
}

func TestGuard_MissingTokenVsInvalidToken(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name         string
		token        string
		expectedCode int
		expectedBody string
	}{
		{
			name:         "no credential header",
			token:        "",
			expectedCode: http.StatusUnauthorized,
			expectedBody: `{"message":"Access denied"}`,
		},
		{
			name:         "syntactically invalid credential",
			token:        "not-a-token",
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"Invalid token"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request(http.MethodPost, "/posts", tt.token, `{"content":"hi"}`)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestGuard_TamperedToken(t *testing.T) {
	app := newTestApp()

	token, err := app.tokens.Issue(&model.User{ID: uuid.New(), Username: "alice"})
	assert.NoError(t, err)
	tampered := token + "x"

	rec := app.request(http.MethodPost, "/posts", tampered, `{"content":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
}

// TestRegisterLoginPostFeed walks the happy path: register, login, create
// a post with the issued token, read it back from the feed.
func TestRegisterLoginPostFeed(t *testing.T) {
	app := newTestApp()
	alice := &model.User{ID: uuid.New(), Username: "alice", Email: "a@x.com"}

	// register
	app.auths.On("Register", mock.Anything, "alice", "a@x.com", "pw1").Return(alice, nil)
	rec := app.request(http.MethodPost, "/users/register", "", `{"username":"alice","email":"a@x.com","password":"pw1"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	// login
	token, err := app.tokens.Issue(alice)
	assert.NoError(t, err)
	app.auths.On("Login", mock.Anything, "a@x.com", "pw1").Return(token, alice, nil)
	rec = app.request(http.MethodPost, "/users/login", "", `{"email":"a@x.com","password":"pw1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var loginResp struct {
		Token string `json:"token"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loginResp))
	assert.Equal(t, token, loginResp.Token)

	// login with the wrong password
	app.auths.On("Login", mock.Anything, "a@x.com", "wrong").Return("", nil, apperrors.ErrInvalidCredential)
	rec = app.request(http.MethodPost, "/users/login", "", `{"email":"a@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// login with an unknown email
	app.auths.On("Login", mock.Anything, "b@x.com", "pw1").Return("", nil, apperrors.ErrEmailNotFound)
	rec = app.request(http.MethodPost, "/users/login", "", `{"email":"b@x.com","password":"pw1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// create a post with the issued token: author is the token identity
	created := &model.Post{ID: uuid.New(), AuthorID: alice.ID, Content: "hi"}
	app.posts.On("Create", mock.Anything, alice.ID, "hi", []string(nil), (*uuid.UUID)(nil)).Return(created, nil)
	rec = app.request(http.MethodPost, "/posts", loginResp.Token, `{"content":"hi"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var postResp struct {
		Author string `json:"author"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &postResp))
	assert.Equal(t, alice.ID.String(), postResp.Author)

	// read the feed: author populated with public profile fields
	created.Author = *alice
	app.posts.On("Feed", mock.Anything).Return([]model.Post{*created}, nil)
	rec = app.request(http.MethodGet, "/posts", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var feed []struct {
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
		Content string `json:"content"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Len(t, feed, 1)
	assert.Equal(t, "alice", feed[0].Author.Username)
	assert.Equal(t, "hi", feed[0].Content)

	app.auths.AssertExpectations(t)
	app.posts.AssertExpectations(t)
}

func TestGroupPostEndpointErrors(t *testing.T) {
	app := newTestApp()
	member := &model.User{ID: uuid.New(), Username: "alice"}
	groupID := uuid.New()

	token, err := app.tokens.Issue(member)
	assert.NoError(t, err)

	// non-member posting into the group
	app.posts.On("Create", mock.Anything, member.ID, "intruding", []string(nil), &groupID).
		Return(nil, apperrors.ErrNotGroupMember).Once()
	rec := app.request(http.MethodPost, "/groups/"+groupID.String()+"/posts", token, `{"content":"intruding"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// posting into a missing group
	app.posts.On("Create", mock.Anything, member.ID, "intruding", []string(nil), &groupID).
		Return(nil, apperrors.ErrGroupNotFound).Once()
	rec = app.request(http.MethodPost, "/groups/"+groupID.String()+"/posts", token, `{"content":"intruding"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	app.posts.AssertExpectations(t)
}
