package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	ferrors "github.com/PentesterFlow/OpenFuzzer/internal/errors"
)

// loginController simulates a login page. On successful credentials it
// moves the current URL to the dashboard; otherwise it stays put.
type loginController struct {
	current    string
	acceptPass string
	filled     map[string]string
	failNav    bool
}

func newLoginController() *loginController {
	return &loginController{
		acceptPass: "hunter2",
		filled:     make(map[string]string),
	}
}

func (l *loginController) Navigate(_ context.Context, url string) error {
	if l.failNav {
		return errors.New("connection refused")
	}
	l.current = url
	return nil
}

func (l *loginController) FillField(selector, value string) error {
	l.filled[selector] = value
	return nil
}

func (l *loginController) Click(string) error { return nil }

func (l *loginController) SubmitForm(string) (*browser.ResponseRecord, error) {
	if l.filled[`[name="password"]`] == l.acceptPass {
		l.current = "https://example.com/dashboard"
	}
	return &browser.ResponseRecord{Status: 200, URL: l.current}, nil
}

func (l *loginController) ExtractLinks() ([]string, error)       { return nil, nil }
func (l *loginController) ExtractForms() ([]browser.Form, error) { return nil, nil }
func (l *loginController) CurrentURL() string                    { return l.current }
func (l *loginController) Close() error                          { return nil }

func TestAuthenticateSuccess(t *testing.T) {
	ctrl := newLoginController()
	a := NewFormLogin(Credentials{
		LoginURL: "https://example.com/login",
		Username: "admin",
		Password: "hunter2",
	}, nil)

	if err := a.Authenticate(context.Background(), ctrl); err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if ctrl.filled[`[name="username"]`] != "admin" {
		t.Errorf("username field = %q, want admin", ctrl.filled[`[name="username"]`])
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	ctrl := newLoginController()
	a := NewFormLogin(Credentials{
		LoginURL: "https://example.com/login",
		Username: "admin",
		Password: "wrong",
	}, nil)

	err := a.Authenticate(context.Background(), ctrl)
	if err == nil {
		t.Fatal("Authenticate() should fail when the page stays on the login URL")
	}
	if !ferrors.IsAuthError(err) {
		t.Errorf("error %v is not an auth error", err)
	}
}

func TestAuthenticateNavigationFailure(t *testing.T) {
	ctrl := newLoginController()
	ctrl.failNav = true
	a := NewFormLogin(Credentials{
		LoginURL: "https://example.com/login",
		Username: "admin",
		Password: "hunter2",
	}, nil)

	if err := a.Authenticate(context.Background(), ctrl); err == nil {
		t.Error("Authenticate() should surface navigation failures")
	}
}

func TestCredentialsConfigured(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  bool
	}{
		{"empty", Credentials{}, false},
		{"url only", Credentials{LoginURL: "https://x/login"}, false},
		{"complete", Credentials{LoginURL: "https://x/login", Username: "u"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.creds.Configured(); got != tt.want {
				t.Errorf("Configured() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCustomSelectors(t *testing.T) {
	ctrl := newLoginController()
	ctrl.acceptPass = "" // never succeed, we only care about selectors
	a := NewFormLogin(Credentials{
		LoginURL:         "https://example.com/login",
		Username:         "admin",
		Password:         "pw",
		UsernameSelector: "#email",
		PasswordSelector: "#pw",
	}, nil)

	a.Authenticate(context.Background(), ctrl)

	if ctrl.filled["#email"] != "admin" {
		t.Errorf("custom username selector not used: %v", ctrl.filled)
	}
	if ctrl.filled["#pw"] != "pw" {
		t.Errorf("custom password selector not used: %v", ctrl.filled)
	}
}
