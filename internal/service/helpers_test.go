package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"simple-notes-be/internal/pkg/identity"
	"simple-notes-be/internal/pkg/logger"
	"simple-notes-be/internal/repository/contract"
	"simple-notes-be/internal/repository/contracttest"
	"simple-notes-be/internal/repository/dynamo"
	"simple-notes-be/internal/repository/dynamo/dynamotest"
	"simple-notes-be/internal/repository/memory"
	"simple-notes-be/pkg/events"

	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.EventType()
	}
	return types
}

type fixture struct {
	fake      *dynamotest.Client
	notes     contract.NoteRepository
	users     contract.UserRepository
	sessions  contract.SessionRepository
	verifier  *identity.HMACVerifier
	published *recordingPublisher
	clock     *contracttest.Clock

	noteService *noteService
	authService *authService
	userService *userService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNopLogger()
	clock := contracttest.NewClock()

	fake := dynamotest.New()
	fake.CreateTable("notes", "id")
	fake.AddIndex("notes", "by-user", "user_id", "updated_at")
	fake.AddIndex("notes", "public", "privacy", "updated_at")
	fake.CreateTable("users", "user_id")

	f := &fixture{
		fake: fake,
		notes: dynamo.NewNoteRepository(fake, dynamo.NoteTableConfig{
			Table: "notes", UserIndex: "by-user", PublicIndex: "public",
		}, log, dynamo.WithClock(clock.Now)),
		users:     dynamo.NewUserRepository(fake, "users", log),
		sessions:  memory.NewSessionRepository(clock.Now),
		verifier:  identity.NewHMACVerifier(testSecret, ""),
		published: &recordingPublisher{},
		clock:     clock,
	}

	f.noteService = NewNoteService(f.notes, f.users, f.published, log).(*noteService)
	f.noteService.now = clock.Now
	f.authService = NewAuthService(f.users, f.sessions, f.verifier, f.published, time.Hour, log).(*authService)
	f.authService.now = clock.Now
	f.userService = NewUserService(f.users, f.authService).(*userService)
	f.userService.now = clock.Now
	return f
}

func (f *fixture) token(t *testing.T, userId string, anonymous bool, email string) string {
	t.Helper()
	token, err := f.verifier.Issue(identity.Identity{UserId: userId, IsAnonymous: anonymous, Email: email}, time.Hour)
	require.NoError(t, err)
	return token
}

func ptr[T any](v T) *T {
	return &v
}
