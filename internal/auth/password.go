package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"docbuilder-backend/internal/shared/auth"
	"docbuilder-backend/internal/shared/server/respond"
	"docbuilder-backend/internal/users"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password too short")
)

// PasswordService implements email/password sign-up and sign-in.
type PasswordService struct {
	Users *users.Service
	Cost  int
}

func NewPasswordService(usersSvc *users.Service) *PasswordService {
	return &PasswordService{Users: usersSvc, Cost: bcrypt.DefaultCost}
}

// Session is returned to clients after a successful sign-up or sign-in.
type Session struct {
	Token   string        `json:"token"`
	Profile users.Profile `json:"profile"`
}

type signUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRoutes attaches the email/password routes.
func (s *PasswordService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", s.signUp)
	rg.POST("/auth/signin", s.signIn)
}

// SignUp creates a profile with a bcrypt password hash and issues a token.
func (s *PasswordService) SignUp(ctx context.Context, email, password, displayName string) (Session, error) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return Session{}, ErrWeakPassword
	}
	if len(password) > maxPasswordBytes {
		return Session{}, fmt.Errorf("%w: password too long", users.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost())
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}
	profile := users.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}
	if err := s.Users.Register(ctx, profile); err != nil {
		return Session{}, err
	}
	stored, err := s.Users.GetByID(ctx, profile.ID)
	if err != nil {
		return Session{}, err
	}
	return s.session(stored)
}

// SignIn verifies the password against the stored hash. Unknown emails and
// OAuth-only profiles fail the same way as a wrong password.
func (s *PasswordService) SignIn(ctx context.Context, email, password string) (Session, error) {
	profile, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) || errors.Is(err, users.ErrInvalidInput) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if profile.PasswordHash == "" {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(profile)
}

func (s *PasswordService) session(profile users.Profile) (Session, error) {
	token, err := auth.SignJWT(auth.Claims{
		Email:            profile.Email,
		Name:             profile.DisplayName,
		Picture:          profile.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{Subject: profile.ID},
	})
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Profile: profile}, nil
}

func (s *PasswordService) cost() int {
	if s.Cost == 0 {
		return bcrypt.DefaultCost
	}
	return s.Cost
}

func (s *PasswordService) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	session, err := s.SignUp(c.Request.Context(), strings.TrimSpace(req.Email), req.Password, req.DisplayName)
	switch {
	case err == nil:
		respond.JSON(c, http.StatusCreated, session)
	case errors.Is(err, ErrWeakPassword):
		respond.Error(c, http.StatusBadRequest, "weak_password", "password must be at least 6 characters", nil)
	case errors.Is(err, users.ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, users.ErrEmailTaken):
		respond.Error(c, http.StatusConflict, "email_taken", "email already registered", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign up", nil)
	}
}

func (s *PasswordService) signIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}
	session, err := s.SignIn(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		respond.JSON(c, http.StatusOK, session)
	case errors.Is(err, ErrInvalidCredentials):
		respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to sign in", nil)
	}
}
