// Package cookie signs and verifies the two auth cookies the app uses:
// a short-lived pre-verification cookie set between signup and OTP
// entry, and the session cookie referencing a server-side session row.
//
// The cookie is a transport convenience only. Nothing decoded here may
// be used for authorization directly, callers re-validate the session
// and user rows and only treat decoded fields as lookup keys.
package cookie

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TempAuthName = "next-temp-auth"
	SessionName  = "next-auth-session"

	securePrefix = "__Secure-"
)

// TempAuth links a pending signup to its verification token.
type TempAuth struct {
	UserID     string `json:"userId"`
	Identifier string `json:"identifier"`
	jwt.RegisteredClaims
}

// SessionAuth references a server-side session row.
type SessionAuth struct {
	UserID       string   `json:"userId"`
	SessionToken string   `json:"sessionToken"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

// Jar writes and reads signed auth cookies on a gin request. In
// production cookies get the __Secure- name prefix and the Secure and
// HttpOnly flags; outside production those are dropped so the cookies
// stay inspectable during local development. SameSite is always Lax.
type Jar struct {
	secret     []byte
	domain     string
	production bool
}

func NewJar(secret, domain string, production bool) *Jar {
	return &Jar{
		secret:     []byte(secret),
		domain:     domain,
		production: production,
	}
}

// SetTemp signs and writes the pre-verification cookie.
func (j *Jar) SetTemp(c *gin.Context, userID, identifier string, expires time.Time) error {
	return j.write(c, TempAuthName, &TempAuth{
		UserID:     userID,
		Identifier: identifier,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}, expires)
}

// Temp reads the pre-verification cookie. The bool is false whenever
// the cookie is missing, expired, tampered with or otherwise unusable.
func (j *Jar) Temp(c *gin.Context) (*TempAuth, bool) {
	payload := &TempAuth{}
	if !j.read(c, TempAuthName, payload) {
		return nil, false
	}

	return payload, true
}

func (j *Jar) ClearTemp(c *gin.Context) {
	j.clear(c, TempAuthName)
}

// SetSession signs and writes the session cookie.
func (j *Jar) SetSession(c *gin.Context, payload *SessionAuth, expires time.Time) error {
	payload.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	return j.write(c, SessionName, payload, expires)
}

// Session reads the session cookie, failing closed like Temp.
func (j *Jar) Session(c *gin.Context) (*SessionAuth, bool) {
	payload := &SessionAuth{}
	if !j.read(c, SessionName, payload) {
		return nil, false
	}

	return payload, true
}

func (j *Jar) ClearSession(c *gin.Context) {
	j.clear(c, SessionName)
}

func (j *Jar) name(base string) string {
	if j.production {
		return securePrefix + base
	}

	return base
}

func (j *Jar) write(c *gin.Context, base string, claims jwt.Claims, expires time.Time) error {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return fmt.Errorf("failed to sign %s cookie, %w", base, err)
	}

	maxAge := int(time.Until(expires).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(j.name(base), token, maxAge, "/", j.domain, j.production, j.production)
	return nil
}

func (j *Jar) read(c *gin.Context, base string, claims jwt.Claims) bool {
	raw, err := c.Cookie(j.name(base))
	if err != nil || raw == "" {
		return false
	}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	return true
}

func (j *Jar) clear(c *gin.Context, base string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(j.name(base), "", -1, "/", j.domain, j.production, j.production)
}
