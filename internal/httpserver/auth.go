// internal/httpserver/auth.go
//
// Registration, login and JWT handling.
// Passwords are hashed with bcrypt; sessions are HS256 JWTs carried as
// an HttpOnly cookie or an Authorization bearer token (plus a ?token=
// query parameter for browser WebSocket clients, which cannot set
// headers on the upgrade request).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/NicolasSauli/Projet-Wordle/internal/store"
)

type authUser struct {
	Email  string `json:"email"`
	Nom    string `json:"nom"`
	Prenom string `json:"prenom"`
}

type ctxUserKey struct{}

type registerReq struct {
	Email    string `json:"email"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
	Password string `json:"password"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateRegister(req registerReq) error {
	if !strings.Contains(req.Email, "@") || len(req.Email) > 254 {
		return errors.New("invalid email")
	}
	if strings.TrimSpace(req.Nom) == "" || strings.TrimSpace(req.Prenom) == "" {
		return errors.New("nom and prenom are required")
	}
	if len(req.Password) < 8 || len(req.Password) > 100 {
		return errors.New("password must be 8–100 chars")
	}
	return nil
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

func signJWT(u authUser) (string, time.Time, error) {
	days := envInt("JWT_EXPIRES_DAYS", 14)
	secret := []byte(os.Getenv("JWT_SECRET"))
	exp := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email":  u.Email,
		"nom":    u.Nom,
		"prenom": u.Prenom,
		"exp":    exp.Unix(),
		"iat":    time.Now().Unix(),
	})
	ss, err := token.SignedString(secret)
	return ss, exp, err
}

func parseJWT(tokenStr string) (*authUser, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	email, _ := claims["email"].(string)
	nom, _ := claims["nom"].(string)
	prenom, _ := claims["prenom"].(string)
	if email == "" {
		return nil, errors.New("invalid token")
	}
	return &authUser{Email: email, Nom: nom, Prenom: prenom}, nil
}

func setAuthCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := os.Getenv("APP_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

func clearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func cookieName() string { return envStr("COOKIE_NAME", "wordle_token") }

// tokenFromRequest extracts the JWT from the Authorization header, the
// auth cookie, or the token query parameter, in that order.
func tokenFromRequest(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName()); err == nil && c.Value != "" {
		return c.Value
	}
	return r.URL.Query().Get("token")
}

// requireAuth rejects requests without a valid token for a still
// existing user, and decorates the context with the authenticated user.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := s.authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey{}, u)))
	})
}

func (s *Server) authenticate(r *http.Request) (*authUser, error) {
	tokenStr := tokenFromRequest(r)
	if tokenStr == "" {
		return nil, errors.New("no token")
	}
	u, err := parseJWT(tokenStr)
	if err != nil {
		return nil, err
	}
	// Ensure the user still exists.
	if ok, err := s.users.Exists(r.Context(), u.Email); err != nil || !ok {
		return nil, errors.New("unknown user")
	}
	return u, nil
}

func currentUser(r *http.Request) (*authUser, error) {
	u, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if u == nil {
		return nil, errors.New("no user")
	}
	return u, nil
}

// ----------------------------- handlers ------------------------------------

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateRegister(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if ok, err := s.users.Exists(r.Context(), req.Email); err != nil {
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	} else if ok {
		writeError(w, http.StatusBadRequest, "email already registered")
		return
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash error")
		return
	}
	u := store.User{
		Email:        req.Email,
		Nom:          strings.TrimSpace(req.Nom),
		Prenom:       strings.TrimSpace(req.Prenom),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(r.Context(), u); err != nil {
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}

	writeJSON(w, http.StatusCreated, authUser{Email: u.Email, Nom: u.Nom, Prenom: u.Prenom})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	u, err := s.users.ByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, store.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "storage error")
		return
	}
	if !checkPassword(u.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}

	au := authUser{Email: u.Email, Nom: u.Nom, Prenom: u.Prenom}
	token, exp, err := signJWT(au)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token error")
		return
	}
	setAuthCookie(w, token, exp)
	writeJSON(w, http.StatusOK, map[string]any{
		"user":  au,
		"token": token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearAuthCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	u, err := currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, u)
}
