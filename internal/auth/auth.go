// Package auth performs form-based login through the shared page
// controller before a scan starts.
package auth

import (
	"context"

	"github.com/PentesterFlow/OpenFuzzer/internal/browser"
	"github.com/PentesterFlow/OpenFuzzer/internal/errors"
	"github.com/PentesterFlow/OpenFuzzer/internal/logger"
	"github.com/PentesterFlow/OpenFuzzer/internal/scope"
)

// Credentials holds form login configuration.
type Credentials struct {
	LoginURL string `json:"login_url" yaml:"login_url"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`

	// Selectors for the login form. Defaults target name-attribute
	// conventions used by most login pages.
	UsernameSelector string `json:"username_selector" yaml:"username_selector"`
	PasswordSelector string `json:"password_selector" yaml:"password_selector"`
	FormSelector     string `json:"form_selector" yaml:"form_selector"`
}

// Configured reports whether login should be attempted at all.
func (c Credentials) Configured() bool {
	return c.LoginURL != "" && c.Username != ""
}

func (c Credentials) withDefaults() Credentials {
	if c.UsernameSelector == "" {
		c.UsernameSelector = `[name="username"]`
	}
	if c.PasswordSelector == "" {
		c.PasswordSelector = `[name="password"]`
	}
	if c.FormSelector == "" {
		c.FormSelector = "form"
	}
	return c
}

// FormLogin authenticates through a login form.
type FormLogin struct {
	creds Credentials
	log   *logger.Logger
}

// NewFormLogin creates a form login authenticator.
func NewFormLogin(creds Credentials, log *logger.Logger) *FormLogin {
	if log == nil {
		log = logger.Nop()
	}
	return &FormLogin{
		creds: creds.withDefaults(),
		log:   log.WithComponent("auth"),
	}
}

// Authenticate navigates to the login URL, fills the credential
// fields and submits. Success is judged by the page leaving the login
// URL; sites that re-render the login page on success will be
// misjudged, which callers should treat as a heuristic, not proof.
func (a *FormLogin) Authenticate(ctx context.Context, ctrl browser.Controller) error {
	creds := a.creds

	if err := ctrl.Navigate(ctx, creds.LoginURL); err != nil {
		return errors.NewAuthError(creds.LoginURL, "could not reach login page", err)
	}

	if err := ctrl.FillField(creds.UsernameSelector, creds.Username); err != nil {
		return errors.NewAuthError(creds.LoginURL, "could not fill username field", err)
	}
	if err := ctrl.FillField(creds.PasswordSelector, creds.Password); err != nil {
		return errors.NewAuthError(creds.LoginURL, "could not fill password field", err)
	}

	if _, err := ctrl.SubmitForm(creds.FormSelector); err != nil {
		return errors.NewAuthError(creds.LoginURL, "could not submit login form", err)
	}

	if !a.succeeded(ctrl.CurrentURL()) {
		return errors.NewAuthError(creds.LoginURL, "still on login page after submit", nil)
	}

	a.log.Infof("authenticated, now at %s", ctrl.CurrentURL())
	return nil
}

// succeeded compares the current URL against the login URL. Identical
// normalized URLs mean the login form re-rendered, i.e. failure.
func (a *FormLogin) succeeded(currentURL string) bool {
	cur, err := scope.NormalizeURL(currentURL)
	if err != nil {
		return false
	}
	login, err := scope.NormalizeURL(a.creds.LoginURL)
	if err != nil {
		return true
	}
	return cur != login
}
