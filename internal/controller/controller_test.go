package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"simple-notes-be/internal/controller"
	"simple-notes-be/internal/pkg/identity"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/pkg/serverutils"
	"simple-notes-be/internal/repository/dynamo"
	"simple-notes-be/internal/repository/dynamo/dynamotest"
	"simple-notes-be/internal/repository/memory"
	"simple-notes-be/internal/service"
	"simple-notes-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const cookieName = "session"

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, events.Event) {}

type testServer struct {
	app      *fiber.App
	fake     *dynamotest.Client
	verifier *identity.HMACVerifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.NewNopLogger()

	fake := dynamotest.New()
	fake.CreateTable("notes", "id")
	fake.CreateTable("users", "user_id")
	notes := dynamo.NewNoteRepository(fake, dynamo.NoteTableConfig{Table: "notes"}, log)
	users := dynamo.NewUserRepository(fake, "users", log)
	verifier := identity.NewHMACVerifier("secret", "")

	authService := service.NewAuthService(users, memory.NewSessionRepository(nil), verifier, nopPublisher{}, time.Hour, log)
	noteService := service.NewNoteService(notes, users, nopPublisher{}, log)
	userService := service.NewUserService(users, authService)
	auth := serverutils.AuthMiddleware(authService, cookieName)

	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandler(log)})
	controller.NewPublicNoteController(noteService).RegisterRoutes(app)
	controller.NewNoteController(noteService, authService, auth).RegisterRoutes(app)
	controller.NewUserController(userService, auth).RegisterRoutes(app)
	controller.NewAuthController(authService, auth, controller.CookieConfig{Name: cookieName}).RegisterRoutes(app)

	return &testServer{app: app, fake: fake, verifier: verifier}
}

func (s *testServer) token(t *testing.T, userId string, anonymous bool) string {
	t.Helper()
	token, err := s.verifier.Issue(identity.Identity{UserId: userId, IsAnonymous: anonymous, Email: userId + "@example.com"}, time.Hour)
	require.NoError(t, err)
	return token
}

type response struct {
	Status  int
	Body    map[string]interface{}
	Cookies []*http.Cookie
	Header  http.Header
}

func (r response) data() map[string]interface{} {
	d, _ := r.Body["data"].(map[string]interface{})
	return d
}

// request sends body as JSON. auth is either a session id ("session:<id>") or
// a bearer token.
func (s *testServer) request(t *testing.T, method, path string, body interface{}, auth string) response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if len(auth) > 8 && auth[:8] == "session:" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: auth[8:]})
	} else if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+auth)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := response{Status: resp.StatusCode, Cookies: resp.Cookies(), Header: resp.Header}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out.Body), string(raw))
	}
	return out
}

func sessionCookie(t *testing.T, r response) *http.Cookie {
	t.Helper()
	for _, c := range r.Cookies {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", cookieName)
	return nil
}
