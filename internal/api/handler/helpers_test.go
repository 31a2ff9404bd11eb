package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tutorlink/tutorlink-api/internal/core/domain"
	"github.com/tutorlink/tutorlink-api/internal/core/ports"
	"github.com/tutorlink/tutorlink-api/internal/core/service"
	"github.com/tutorlink/tutorlink-api/internal/infrastructure/db/memory"
)

const testResetURL = "https://tutorlink.test/account/reset"

type captureNotifier struct {
	mu     sync.Mutex
	bodies []string
}

func (n *captureNotifier) Send(_ context.Context, _, _, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bodies = append(n.bodies, body)
	return nil
}

func (n *captureNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.bodies) == 0 {
		return ""
	}
	return n.bodies[len(n.bodies)-1]
}

type testDeps struct {
	store     *memory.Store
	accounts  *service.AccountService
	resets    *service.PasswordResetService
	directory ports.TutorDirectory
	sessions  *service.JWTSessionIssuer
	notifier  *captureNotifier
}

func newTestDeps() *testDeps {
	store := memory.NewStore()
	hasher := service.NewCredentialHasher(service.AlgorithmSHA256)
	notifier := &captureNotifier{}
	return &testDeps{
		store:     store,
		accounts:  service.NewAccountService(store.Accounts(), store.Tutors(), hasher, nil, zerolog.Nop()),
		resets:    service.NewPasswordResetService(store.Accounts(), hasher, notifier, 0, zerolog.Nop()),
		directory: service.NewTutorDirectory(store.Tutors(), nil, zerolog.Nop()),
		sessions:  service.NewJWTSessionIssuer("secret", time.Hour),
		notifier:  notifier,
	}
}

func (d *testDeps) register(t *testing.T, email, username, role, skills string) *domain.Account {
	t.Helper()
	acc, err := d.accounts.Register(context.Background(), ports.RegisterInput{
		Email: email, Username: username, Password: "Password123!",
		FirstName: "Test", LastName: "User", Role: role, Skills: skills,
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return acc
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// httpCode returns the status carried by an *echo.HTTPError, or 0.
func httpCode(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}
