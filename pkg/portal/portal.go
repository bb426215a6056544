// Package portal wires the credential, session and authorization services
// for one persistence context.
package portal

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmcdole/campus-transit/pkg/accounts"
	"github.com/mmcdole/campus-transit/pkg/authentication"
	"github.com/mmcdole/campus-transit/pkg/authorization"
	"github.com/mmcdole/campus-transit/pkg/kvstore"
	"github.com/mmcdole/campus-transit/pkg/logging"
	"github.com/mmcdole/campus-transit/pkg/registration"
	"github.com/mmcdole/campus-transit/pkg/schedule"
	"github.com/mmcdole/campus-transit/pkg/secrets"
	"github.com/mmcdole/campus-transit/pkg/session"
	"github.com/spf13/afero"
)

// SignupSuccessMessage is shown on the sign-in screen after a signup
const SignupSuccessMessage = "Account created successfully! Please sign in."

// Config describes one portal instance
type Config struct {
	// Fs is the filesystem holding DataDir and the optional files below.
	// Defaults to the OS filesystem.
	Fs afero.Fs

	// DataDir is the persistence context
	DataDir string

	// PasswordScheme is one of the secrets scheme names; empty means plaintext
	PasswordScheme string

	// MinPasswordLength overrides the signup minimum when positive
	MinPasswordLength int

	// ScreensFile optionally overrides screen allow-lists
	ScreensFile string

	// TimetableFile optionally replaces the built-in timetable
	TimetableFile string

	// Seeds replaces the built-in accounts when non-nil
	Seeds []accounts.Account

	// Now is the clock used for next departures. Defaults to time.Now.
	Now func() time.Time
}

// Portal is the explicitly constructed application context. Everything that
// reads or writes the session goes through it.
type Portal struct {
	kv         *kvstore.Store
	accounts   *accounts.Store
	sessions   *session.Store
	auth       *authentication.Authenticator
	registrar  *registration.Registrar
	authorizer *authorization.Authorizer
	catalog    *schedule.Catalog
	now        func() time.Time
}

// New builds a portal. Call Init before use to restore a persisted session.
func New(cfg Config) (*Portal, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory is required")
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	seeds := cfg.Seeds
	if seeds == nil {
		seeds = accounts.DefaultSeeds()
	}

	kv, err := kvstore.New(cfg.Fs, cfg.DataDir)
	if err != nil {
		return nil, err
	}

	scheme, err := secrets.ByName(cfg.PasswordScheme)
	if err != nil {
		return nil, err
	}

	accts, err := accounts.NewStore(accounts.NewSeedSource(seeds), accounts.NewRegistry(kv), scheme)
	if err != nil {
		return nil, fmt.Errorf("creating credential store: %w", err)
	}

	sessions, err := session.NewStore(kv)
	if err != nil {
		return nil, fmt.Errorf("creating session store: %w", err)
	}

	auth, err := authentication.NewAuthenticator(accts, sessions)
	if err != nil {
		return nil, fmt.Errorf("creating authenticator: %w", err)
	}

	registrar, err := registration.NewRegistrar(accts,
		registration.WithHasher(scheme),
		registration.WithMinPasswordLength(cfg.MinPasswordLength),
	)
	if err != nil {
		return nil, fmt.Errorf("creating registrar: %w", err)
	}

	var screens authorization.ScreenSource
	if cfg.ScreensFile != "" {
		screens = authorization.NewFileSource(cfg.Fs, cfg.ScreensFile)
	}
	authorizer, err := authorization.NewAuthorizer(screens)
	if err != nil {
		return nil, fmt.Errorf("creating authorizer: %w", err)
	}

	catalog := schedule.DefaultCatalog()
	if cfg.TimetableFile != "" {
		catalog, err = schedule.LoadFile(cfg.Fs, cfg.TimetableFile)
		if err != nil {
			return nil, err
		}
	}

	return &Portal{
		kv:         kv,
		accounts:   accts,
		sessions:   sessions,
		auth:       auth,
		registrar:  registrar,
		authorizer: authorizer,
		catalog:    catalog,
		now:        cfg.Now,
	}, nil
}

// Init restores the persisted session, if any, and returns it
func (p *Portal) Init() *session.Session {
	p.sessions.Load()
	sess := p.sessions.Get()
	if sess != nil {
		logging.App.Info("Session restored", "username", sess.Username, "role", sess.Role)
	}
	return sess
}

// Current returns the signed-in session or nil
func (p *Portal) Current() *session.Session {
	return p.sessions.Get()
}

// State reports whether someone is signed in
func (p *Portal) State() session.State {
	return p.sessions.State()
}

// Login signs a user in, replacing any current session
func (p *Portal) Login(username, password string) (*session.Session, error) {
	return p.auth.Login(username, password)
}

// SignupRequest is the signup form
type SignupRequest struct {
	FullName        string `json:"fullName"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Signup checks the confirmation and registers a student account. The new
// user still has to sign in.
func (p *Portal) Signup(req SignupRequest) error {
	if err := registration.ConfirmPassword(req.Password, req.ConfirmPassword); err != nil {
		return err
	}
	return p.registrar.Signup(req.FullName, req.Username, req.Email, req.Password)
}

// Logout ends the session. The caller should show the sign-in screen next.
func (p *Portal) Logout() error {
	return p.auth.Logout()
}

// Navigate decides whether the current session may open screen
func (p *Portal) Navigate(screen string) authorization.Decision {
	return p.authorizer.AuthorizeScreen(p.sessions.Get(), screen)
}

// Authorizer exposes the screen table
func (p *Portal) Authorizer() *authorization.Authorizer {
	return p.authorizer
}

// Catalog exposes the timetable
func (p *Portal) Catalog() *schedule.Catalog {
	return p.catalog
}

// Accounts exposes the credential store
func (p *Portal) Accounts() *accounts.Store {
	return p.accounts
}

// DataDir is the persistence context directory
func (p *Portal) DataDir() string {
	return p.kv.Dir()
}

// DeniedError is returned by views the current session may not open
type DeniedError struct {
	Screen   string
	Decision authorization.Decision
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("%s: %s", e.Screen, e.Decision)
}

// IsDenied reports whether err is a DeniedError and returns its decision
func IsDenied(err error) (authorization.Decision, bool) {
	var denied *DeniedError
	if errors.As(err, &denied) {
		return denied.Decision, true
	}
	return authorization.Allow, false
}

// guard authorizes screen for the current session and returns it. The
// navigation itself is logged by Navigate, not here.
func (p *Portal) guard(screen string) (*session.Session, error) {
	sess := p.sessions.Get()
	if d := p.authorizer.Decide(sess, screen); d != authorization.Allow {
		return nil, &DeniedError{Screen: screen, Decision: d}
	}
	return sess, nil
}
