package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventfeed/eventfeed-api/internal/domain/entity"
	repo "github.com/eventfeed/eventfeed-api/internal/domain/repository"
	"github.com/eventfeed/eventfeed-api/pkg/helpers"
	"github.com/eventfeed/eventfeed-api/pkg/mailer"
)

var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService owns registration and login. Password length and username
// length are enforced by request binding before these methods run.
type AuthService struct {
	Users         repo.UserRepository
	JWT           *helpers.JWTManager
	Logger        *logrus.Logger
	AvatarBaseURL string

	// Optional: welcome email queue. Nil or disabled means no email.
	Pub         *helpers.RabbitPublisher
	MailEnabled bool
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, avatarBaseURL string) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger, AvatarBaseURL: avatarBaseURL}
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Register creates an account and issues a session token. Uniqueness is
// checked email first, then username, so a duplicate email is the error
// reported even when the username also conflicts.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (*Session, error) {
	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	if _, err := s.Users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:        email,
		Username:     username,
		Password:     hash,
		ProfileImage: helpers.AvatarURL(s.AvatarBaseURL, username),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// Concurrent registration can slip past the lookups above and
		// hit the unique constraint instead.
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repo.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}

	s.sendWelcome(ctx, u)

	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password collapse into the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Generate(u.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: u}, nil
}

// GetByID resolves a user for the auth middleware.
func (s *AuthService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.WelcomeJob(u.Email, u.Username)
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email publish failed")
	}
}
