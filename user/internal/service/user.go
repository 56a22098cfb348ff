package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Alturino/nebula/internal/auth"
	"github.com/Alturino/nebula/internal/config"
	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/repository"
	"github.com/Alturino/nebula/user/pkg/request"
)

type Users interface {
	FindUserByEmail(c context.Context, email string) (repository.User, error)
	UpsertUser(c context.Context, arg repository.UpsertUserParams) (repository.User, error)
}

type Token struct {
	ExpiresAt time.Time `json:"expires_at"`
	Token     string    `json:"token"`
}

type UserService struct {
	users  Users
	config config.Application
	now    func() time.Time
}

func NewUserService(users Users, config config.Application) *UserService {
	return &UserService{users: users, config: config, now: time.Now}
}

func (u *UserService) Login(c context.Context, param request.LoginRequest) (Token, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserService Login").
		Str(constants.KEY_EMAIL, param.Email).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "finding user").Logger()
	logger.Info().Msg("finding user by email")
	user, err := u.users.FindUserByEmail(c, param.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = inErrors.ErrUserNotFound
		}
		err = fmt.Errorf("failed finding user by email with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Token{}, err
	}
	logger.Info().Msg("found user by email")

	logger = logger.With().Str(constants.KEY_PROCESS, "verifying password").Logger()
	logger.Info().Msg("verifying password")
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(param.Password)); err != nil {
		err = fmt.Errorf("failed verifying password with error=%w", inErrors.ErrPasswordMismatch)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Token{}, err
	}
	logger.Info().Msg("verified password")

	logger = logger.With().Str(constants.KEY_PROCESS, "signing token").Logger()
	logger.Info().Msg("signing token")
	c = logger.WithContext(c)
	issuedAt := u.now()
	signed, err := auth.SignToken(c, user.ID, u.config.SecretKey, issuedAt)
	if err != nil {
		err = fmt.Errorf("failed signing token with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Token{}, err
	}
	logger.Info().Msg("signed token")

	return Token{Token: signed, ExpiresAt: issuedAt.Add(auth.TokenLifetime)}, nil
}

// EnsureAdmin writes the configured admin account, replacing the password of
// an existing one.
func (u *UserService) EnsureAdmin(c context.Context) error {
	c, span := otel.Tracer.Start(c, "UserService EnsureAdmin")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "UserService EnsureAdmin").
		Str(constants.KEY_EMAIL, u.config.AdminEmail).
		Logger()

	if u.config.AdminEmail == "" || u.config.AdminPassword == "" {
		logger.Warn().Msg("admin account not configured, skipping")
		return nil
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "hashing password").Logger()
	logger.Info().Msg("hashing password")
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.config.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		err = fmt.Errorf("failed hashing password with error=%w", errors.Join(err, inErrors.ErrFailedHashPassword))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("hashed password")

	logger = logger.With().Str(constants.KEY_PROCESS, "upserting admin").Logger()
	logger.Info().Msg("upserting admin")
	user, err := u.users.UpsertUser(c, repository.UpsertUserParams{
		ID:       uuid.New(),
		Email:    u.config.AdminEmail,
		Password: string(hashed),
	})
	if err != nil {
		err = fmt.Errorf("failed upserting admin with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Str(constants.KEY_USER_ID, user.ID.String()).Msg("upserted admin")

	return nil
}
