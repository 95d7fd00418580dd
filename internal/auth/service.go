// Package auth orchestrates the signup, OTP verification, login and
// session lifecycle on top of the users, sessions and
// verification_tokens tables.
package auth

import (
	"errors"
	"fmt"
	"time"

	"streamcart/auth-api/internal/model"
	"streamcart/auth-api/pkg/cookie"
	"streamcart/auth-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// OtpTTL is how long a one-time code stays redeemable.
	OtpTTL = 5 * time.Minute

	// SessionTTL is the hard session lifetime. Not sliding, a session
	// created today dies in six months no matter how often it's used.
	SessionTTL = 6 * 30 * 24 * time.Hour

	// ResendCooldown is the minimum wait between OTP resend requests.
	ResendCooldown = time.Minute

	idCharset    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	defaultImage = "/avatar/02-men.png"

	memoKey = "authSession"
)

// OtpSender delivers a one-time code to an email address.
type OtpSender interface {
	SendOtp(to, code string) error
}

// SessionData is what every protected request works with: the live
// session row plus its user with the password hash stripped.
type SessionData struct {
	Session *model.Session
	User    *model.User
}

type Service struct {
	DB    *gorm.DB
	Argon *security.ArgonHash
	Jar   *cookie.Jar

	// Mail is nil in development, in which case the code is logged
	// instead of delivered.
	Mail OtpSender
}

func NewService(db *gorm.DB, argon *security.ArgonHash, jar *cookie.Jar, mail OtpSender) *Service {
	return &Service{
		DB:    db,
		Argon: argon,
		Jar:   jar,
		Mail:  mail,
	}
}

// Signup creates (or re-creates) an unverified account and issues a
// fresh one-time code. An existing verified account with the same
// email is a terminal failure; an unverified one gets its password
// overwritten so an abandoned signup can simply be retried.
func (s *Service) Signup(c *gin.Context, fullName, email, password string) (*Failure, error) {
	var existing model.User

	err := s.DB.Where("email = ?", email).First(&existing).Error
	found := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	if found && existing.Verified() {
		return fieldFailure(KindDuplicateEmail, "email", "This email exist."), nil
	}

	token, err := s.issueToken(email)
	if err != nil {
		return nil, err
	}

	hash, err := s.Argon.GenerateFromPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password, %w", err)
	}

	userID := existing.ID
	if found {
		err = s.DB.Model(&model.User{}).
			Where("email = ?", email).
			Update("password_hash", hash).
			Error
		if err != nil {
			return nil, fmt.Errorf("failed to update password, %w", err)
		}
	} else {
		userID, err = gonanoid.Generate(idCharset, 16)
		if err != nil {
			return nil, fmt.Errorf("failed to generate user ID, %w", err)
		}

		err = s.DB.Create(&model.User{
			ID:           userID,
			FullName:     fullName,
			Email:        email,
			PasswordHash: hash,
			Image:        defaultImage,
			Role:         model.RoleUser,
		}).Error
		if err != nil {
			return nil, fmt.Errorf("failed to create user, %w", err)
		}
	}

	if err := s.Jar.SetTemp(c, userID, email, token.ExpiresAt); err != nil {
		return nil, err
	}

	s.deliverOtp(email, token.Code)
	return nil, nil
}

// VerifyOtp consumes the (email, code) token and marks the user
// verified, both in one transaction so a crash can't leave the token
// gone with the user still unverified. Wrong and expired codes are
// deliberately the same failure, and an expired code is consumed too.
func (s *Service) VerifyOtp(c *gin.Context, email, code string) (*Failure, error) {
	invalid := messageFailure(KindInvalidOtp, "Invalid OTP")

	var expired bool

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var token model.VerificationToken

		err := tx.Where("identifier = ? AND code = ?", email, code).First(&token).Error
		if err != nil {
			return err
		}

		if err := tx.Delete(&token).Error; err != nil {
			return err
		}

		if token.Expired() {
			// Keep the commit so the stale row is gone either way
			expired = true
			return nil
		}

		return tx.Model(&model.User{}).
			Where("email = ?", email).
			Update("email_verified", time.Now()).
			Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid, nil
		}

		return nil, fmt.Errorf("failed to consume verification token, %w", err)
	}

	if expired {
		return invalid, nil
	}

	var user model.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to load verified user, %w", err)
	}

	if err := s.CreateSession(c, &user); err != nil {
		return nil, err
	}

	return nil, nil
}

// Login checks credentials and opens a session. A missing account and
// a wrong password return the exact same message so the endpoint can't
// be used to probe which emails are registered.
func (s *Service) Login(c *gin.Context, email, password string) (*Failure, error) {
	wrong := messageFailure(KindInvalidCredentials, "Email or password is wrong")

	var user model.User

	err := s.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return wrong, nil
		}

		return nil, fmt.Errorf("failed to look up user, %w", err)
	}

	if !user.Verified() {
		// The pending code is useless without a fresh signup, drop it
		err := s.DB.Where("identifier = ?", email).
			Delete(&model.VerificationToken{}).
			Error
		if err != nil {
			return nil, fmt.Errorf("failed to purge verification tokens, %w", err)
		}

		return messageFailure(KindNotVerified,
			"Your account not verified yet, Go to signup page and create your account again."), nil
	}

	ok, err := s.Argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password, %w", err)
	}

	if !ok {
		return wrong, nil
	}

	if err := s.CreateSession(c, &user); err != nil {
		return nil, err
	}

	return nil, nil
}

// CreateSession persists a new session row and sets the session
// cookie. Nothing stops a user from holding several live sessions at
// once, that's allowed.
func (s *Service) CreateSession(c *gin.Context, user *model.User) error {
	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}

	if err := s.DB.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session, %w", err)
	}

	err := s.Jar.SetSession(c, &cookie.SessionAuth{
		UserID:       user.ID,
		SessionToken: session.Token,
		Role:         user.Role,
		Permissions:  user.Permissions,
	}, session.ExpiresAt)
	if err != nil {
		return err
	}

	s.Jar.ClearTemp(c)
	return nil
}

// Signout deletes the session row referenced by the cookie and clears
// both auth cookies. Safe to call with no session at all.
func (s *Service) Signout(c *gin.Context) error {
	payload, ok := s.Jar.Session(c)
	if ok {
		err := s.DB.Where("token = ?", payload.SessionToken).
			Delete(&model.Session{}).
			Error
		if err != nil {
			return fmt.Errorf("failed to delete session, %w", err)
		}
	}

	s.Jar.ClearSession(c)
	s.Jar.ClearTemp(c)
	c.Set(memoKey, (*SessionData)(nil))
	return nil
}

// CurrentSession re-derives the caller's identity. The cookie is only
// trusted as a lookup key: the session row must exist and be live and
// the user must still be verified, otherwise the caller is nobody.
// The result is memoized on the request context, never across requests.
func (s *Service) CurrentSession(c *gin.Context) (*SessionData, error) {
	if memo, ok := c.Get(memoKey); ok {
		return memo.(*SessionData), nil
	}

	data, err := s.lookupSession(c)
	if err != nil {
		return nil, err
	}

	c.Set(memoKey, data)
	return data, nil
}

func (s *Service) lookupSession(c *gin.Context) (*SessionData, error) {
	payload, ok := s.Jar.Session(c)
	if !ok {
		return nil, nil
	}

	// A leftover pre-verification cookie is dead weight once a session
	// cookie shows up, drop it
	if _, stale := s.Jar.Temp(c); stale {
		s.Jar.ClearTemp(c)
	}

	var session model.Session

	err := s.DB.Where("token = ?", payload.SessionToken).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Stale cookie pointing at a deleted session
			return nil, nil
		}

		return nil, fmt.Errorf("failed to look up session, %w", err)
	}

	if session.Expired() {
		return nil, nil
	}

	var user model.User

	err = s.DB.Where("id = ?", session.UserID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to look up session user, %w", err)
	}

	if !user.Verified() {
		return nil, nil
	}

	user.PasswordHash = ""
	return &SessionData{Session: &session, User: &user}, nil
}

// Resend reissues a one-time code for a pending signup, subject to a
// cooldown so the mail sender can't be used as a spam cannon.
func (s *Service) Resend(c *gin.Context) (*Failure, error) {
	payload, ok := s.Jar.Temp(c)
	if !ok {
		return messageFailure(KindInvalidOtp, "No signup in progress"), nil
	}

	var resend model.ResendRequest

	err := s.DB.Where("user_id = ?", payload.UserID).First(&resend).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up resend state, %w", err)
	}

	now := time.Now()

	if resend.Blocked || now.Before(resend.Cooldown) {
		return messageFailure(KindResendCooldown, "Please wait before requesting a new code"), nil
	}

	token, err := s.issueToken(payload.Identifier)
	if err != nil {
		return nil, err
	}

	resend.UserID = payload.UserID
	resend.LastResend = now
	resend.Cooldown = now.Add(ResendCooldown)

	if err := s.DB.Save(&resend).Error; err != nil {
		return nil, fmt.Errorf("failed to record resend, %w", err)
	}

	if err := s.Jar.SetTemp(c, payload.UserID, payload.Identifier, token.ExpiresAt); err != nil {
		return nil, err
	}

	s.deliverOtp(payload.Identifier, token.Code)
	return nil, nil
}

// issueToken purges any stale codes for the email and persists a fresh
// one, so exactly one token is ever live per address.
func (s *Service) issueToken(email string) (*model.VerificationToken, error) {
	err := s.DB.Where("identifier = ?", email).
		Delete(&model.VerificationToken{}).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to purge verification tokens, %w", err)
	}

	code, err := security.GenerateOtp()
	if err != nil {
		return nil, fmt.Errorf("failed to generate OTP, %w", err)
	}

	token := &model.VerificationToken{
		Identifier: email,
		Code:       code,
		ExpiresAt:  time.Now().Add(OtpTTL),
	}

	if err := s.DB.Create(token).Error; err != nil {
		return nil, fmt.Errorf("failed to create verification token, %w", err)
	}

	return token, nil
}

func (s *Service) deliverOtp(email, code string) {
	if s.Mail == nil {
		zap.L().Info("OTP code issued (mail disabled)",
			zap.String("email", email),
			zap.String("code", code),
		)
		return
	}

	if err := s.Mail.SendOtp(email, code); err != nil {
		zap.L().Error("Failed to send OTP mail", zap.Error(err), zap.String("email", email))
	}
}
