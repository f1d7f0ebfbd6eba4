package accounts

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cinelist/proj/internal/domain/models"
	"cinelist/proj/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UsersStorage interface {
	Insert(ctx context.Context, name, email string, passwordHash []byte) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, email string) error
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type AccountService struct {
	log          *slog.Logger
	storage      UsersStorage
	mailer       MailProvider
	taskExecutor TaskExecutor
	secret       []byte
	tokenTTL     time.Duration
}

// dummyHash is compared against on the unknown-email login path so that the
// unknown-email and wrong-password outcomes cost the same.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

func New(
	log *slog.Logger,
	storage UsersStorage,
	mailer MailProvider,
	taskExecutor TaskExecutor,
	secret string,
	tokenTTL time.Duration,
) *AccountService {
	return &AccountService{
		log:          log,
		storage:      storage,
		mailer:       mailer,
		taskExecutor: taskExecutor,
		secret:       []byte(secret),
		tokenTTL:     tokenTTL,
	}
}

func (s *AccountService) sendWelcomeEmail(email, name string) {
	s.log.Info("sending welcome email", "email", email)
	err := s.mailer.Send(email, "user_welcome.html", map[string]any{
		"name": name,
	})
	if err != nil {
		s.log.Error("Error sending welcome email", "errMsg", err.Error())
	}
}

func (s *AccountService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	const op = "accounts.AccountService.Register"
	log := s.log.With("op", op, "email", email)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	user, err := s.storage.Insert(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email already taken")
			return nil, ErrEmailTaken
		}
		log.Error(err.Error())
		return nil, err
	}
	s.taskExecutor.Add(func() {
		s.sendWelcomeEmail(user.Email, user.Name)
	})
	return user, nil
}

// Login verifies the password and issues a signed session token carrying the
// user's email. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "accounts.AccountService.Login"
	log := s.log.With("op", op, "email", email)
	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			log.Info("login attempt for unknown email")
			return nil, "", ErrInvalidCredentials
		}
		log.Error(err.Error())
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("wrong password")
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.issueToken(user)
	if err != nil {
		log.Error(err.Error())
		return nil, "", err
	}
	return user, token, nil
}

func (s *AccountService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Email,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken validates the token's signature and expiry and returns the
// email it was issued for.
func (s *AccountService) VerifyToken(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

func (s *AccountService) Get(ctx context.Context, email string) (*models.User, error) {
	const op = "accounts.AccountService.Get"
	log := s.log.With("op", op, "email", email)
	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

// Update applies a partial profile edit; empty fields keep their stored
// values, a non-empty password is re-hashed.
func (s *AccountService) Update(ctx context.Context, email, name, newEmail, password string) (*models.User, error) {
	const op = "accounts.AccountService.Update"
	log := s.log.With("op", op, "email", email)
	user, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if name != "" {
		user.Name = name
	}
	if newEmail != "" {
		user.Email = newEmail
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Error(err.Error())
			return nil, err
		}
		user.PasswordHash = hash
	}
	updated, err := s.storage.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("email already taken")
			return nil, ErrEmailTaken
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *AccountService) Delete(ctx context.Context, email string) error {
	const op = "accounts.AccountService.Delete"
	log := s.log.With("op", op, "email", email)
	if err := s.storage.Delete(ctx, email); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
