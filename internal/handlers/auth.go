// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"khrm/internal/middleware"
	"khrm/internal/models"
	"khrm/internal/oauth"
	"khrm/internal/render"
	"khrm/internal/session"
	"khrm/internal/store"
)

// totpIssuer is the account issuer shown in authenticator apps.
const totpIssuer = "KH Recruitment"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer *render.Renderer
	sessions *session.Store
	users    *store.UserStore
	allowed  *store.AllowedEmailStore
	google   *oauth.Google
}

// NewAuth creates a new Auth handler group. google may be nil when SSO is
// not configured; only the local password form is offered then.
func NewAuth(renderer *render.Renderer, sessions *session.Store, users *store.UserStore, allowed *store.AllowedEmailStore, google *oauth.Google) *Auth {
	return &Auth{
		renderer: renderer,
		sessions: sessions,
		users:    users,
		allowed:  allowed,
		google:   google,
	}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}
	a.loginPage(w, r, http.StatusOK, "")
}

func (a *Auth) loginPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	data := map[string]any{"GoogleEnabled": a.google != nil}
	if msg != "" {
		data["Error"] = msg
	}
	a.renderer.PageStatus(w, r, status, "login", &render.PageData{
		Title: "Sign In",
		Data:  data,
	})
}

// LoginSubmit processes the local password form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	user, err := a.users.FindByEmail(r.Context(), email)
	if err != nil {
		slog.ErrorContext(r.Context(), "login lookup failed", "error", err)
		a.loginPage(w, r, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if user == nil || !a.users.CheckPassword(user, password) {
		a.loginPage(w, r, http.StatusUnauthorized, "Invalid email or password.")
		return
	}

	a.startSession(w, r, user, models.AuthPassword)
}

// GoogleLogin redirects to the Google consent page.
func (a *Auth) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if a.google == nil {
		http.NotFound(w, r)
		return
	}
	state, err := oauth.NewState()
	if err == nil {
		err = a.sessions.SaveState(r.Context(), state)
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "sso state failed", "error", err)
		a.loginPage(w, r, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	http.Redirect(w, r, a.google.AuthCodeURL(state), http.StatusFound)
}

// GoogleCallback completes the SSO flow. Only verified addresses on the
// allow-list may sign in; the first sign-in provisions the account.
func (a *Auth) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if a.google == nil {
		http.NotFound(w, r)
		return
	}
	ctx := r.Context()
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		slog.InfoContext(ctx, "sso cancelled", "error", e)
		a.loginPage(w, r, http.StatusUnauthorized, "Google sign-in was cancelled.")
		return
	}

	ok, err := a.sessions.ConsumeState(ctx, q.Get("state"))
	if err != nil {
		slog.ErrorContext(ctx, "sso state lookup failed", "error", err)
		a.loginPage(w, r, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if !ok {
		a.loginPage(w, r, http.StatusBadRequest, "Sign-in session expired. Please try again.")
		return
	}

	token, err := a.google.Exchange(ctx, q.Get("code"))
	if err != nil {
		slog.WarnContext(ctx, "sso exchange failed", "error", err)
		a.loginPage(w, r, http.StatusUnauthorized, "Google sign-in failed.")
		return
	}
	info, err := a.google.FetchUserInfo(ctx, token)
	if errors.Is(err, oauth.ErrEmailNotVerified) {
		a.loginPage(w, r, http.StatusForbidden, "Your Google email address is not verified.")
		return
	}
	if err != nil {
		slog.WarnContext(ctx, "sso userinfo failed", "error", err)
		a.loginPage(w, r, http.StatusUnauthorized, "Google sign-in failed.")
		return
	}

	allowed, err := a.allowed.IsAllowed(ctx, info.Email)
	if err != nil {
		slog.ErrorContext(ctx, "allow-list lookup failed", "error", err)
		a.loginPage(w, r, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	if !allowed {
		slog.WarnContext(ctx, "sso denied", "email", info.Email)
		a.loginPage(w, r, http.StatusForbidden, "Not authorized.")
		return
	}

	user, err := a.users.ProvisionSSO(ctx, info.Email, info.Name)
	if err != nil {
		slog.ErrorContext(ctx, "sso provision failed", "error", err)
		a.loginPage(w, r, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	a.startSession(w, r, user, models.AuthGoogle)
}

// startSession creates a session awaiting 2FA and routes to setup or
// verification.
func (a *Auth) startSession(w http.ResponseWriter, r *http.Request, user *models.User, provider models.AuthProvider) {
	ctx := r.Context()
	_, err := a.sessions.Create(ctx, w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		Provider:    provider,
	})
	if err != nil {
		slog.ErrorContext(ctx, "session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := a.users.TouchLogin(ctx, user.ID); err != nil {
		slog.WarnContext(ctx, "touch login failed", "user_id", user.ID, "error", err)
	}
	slog.InfoContext(ctx, "login", "user_id", user.ID, "provider", provider)

	if user.Needs2FASetup() {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
}

// TwoFASetupPage generates a TOTP secret and displays the QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := a.users.SetTOTPSecret(r.Context(), sess.UserID, key.Secret()); err != nil {
		slog.ErrorContext(r.Context(), "save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.setupPage(w, r, http.StatusOK, key, "")
}

func (a *Auth) setupPage(w http.ResponseWriter, r *http.Request, status int, key *otp.Key, msg string) {
	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.ErrorContext(r.Context(), "qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data := map[string]any{
		"QRCode": base64.StdEncoding.EncodeToString(png),
		"Secret": key.Secret(),
	}
	if msg != "" {
		data["Error"] = msg
	}
	a.renderer.PageStatus(w, r, status, "2fa_setup", &render.PageData{
		Title: "Set Up Two-Factor Authentication",
		Data:  data,
	})
}

// TwoFAVerifyPage renders the code entry form for enrolled users.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	a.renderer.Page(w, r, "2fa_verify", &render.PageData{
		Title: "Two-Factor Authentication",
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes authentication.
// The first valid code also completes enrollment.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := middleware.SessionFromCtx(ctx)
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	user, err := a.users.FindByID(ctx, sess.UserID)
	if err != nil || user == nil {
		slog.ErrorContext(ctx, "user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}

	code := strings.TrimSpace(r.FormValue("code"))
	if !totp.Validate(code, *user.TOTPSecret) {
		const msg = "Invalid code. Please try again."
		if user.TOTPEnabled {
			a.renderer.PageStatus(w, r, http.StatusUnauthorized, "2fa_verify", &render.PageData{
				Title: "Two-Factor Authentication",
				Data:  map[string]any{"Error": msg},
			})
			return
		}
		key, err := otp.NewKeyFromURL(totpURL(user.Email, *user.TOTPSecret))
		if err != nil {
			slog.ErrorContext(ctx, "totp key rebuild failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		a.setupPage(w, r, http.StatusUnauthorized, key, msg)
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(ctx, user.ID); err != nil {
			slog.ErrorContext(ctx, "enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	sess.Role = user.Role
	if err := a.sessions.Update(ctx, r, sess); err != nil {
		slog.ErrorContext(ctx, "session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.WarnContext(r.Context(), "session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// totpURL rebuilds the otpauth URL for an already issued secret.
func totpURL(email, secret string) string {
	v := url.Values{}
	v.Set("secret", secret)
	v.Set("issuer", totpIssuer)
	return "otpauth://totp/" + url.PathEscape(totpIssuer+":"+email) + "?" + v.Encode()
}
