package user_test

import (
	"context"
	"testing"
	"time"

	"Recipe-Box-Backend/domain"
	"Recipe-Box-Backend/internal/testutils"
	"Recipe-Box-Backend/pkg/jwt"
	"Recipe-Box-Backend/pkg/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	suite.Suite
	ctx     context.Context
	jwt     jwt.JWTService
	service user.UserService
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	db := testutils.NewTestDB(s.T())
	jwtService, err := jwt.NewJWTService(jwt.Config{Secret: "test-secret", TTL: time.Hour})
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.jwt = jwtService
	s.service = user.NewUserService(user.NewUserRepository(db), jwtService)
}

func (s *UserServiceSuite) register(username, email string) domain.RegisterResponse {
	res, err := s.service.Register(s.ctx, domain.RegisterRequest{
		Username: username,
		Email:    email,
		Password: "password123",
	})
	s.Require().NoError(err)
	return res
}

func (s *UserServiceSuite) TestRegisterReturnsUsableToken() {
	res := s.register("alice", "Alice@Example.com")

	s.Equal("alice", res.Username)
	s.Equal("alice@example.com", res.Email)
	s.Equal(domain.TokenTypeBearer, res.TokenType)

	subject, err := s.jwt.ValidateToken(res.AccessToken)
	s.Require().NoError(err)
	s.Equal("alice@example.com", subject)

	current, err := s.service.CurrentUser(s.ctx, res.AccessToken)
	s.Require().NoError(err)
	s.Equal(res.ID, current.ID.String())
	s.NotEqual("password123", current.PasswordHash)
}

func (s *UserServiceSuite) TestRegisterDuplicates() {
	s.register("alice", "alice@example.com")

	_, err := s.service.Register(s.ctx, domain.RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "password123"})
	s.ErrorIs(err, domain.ErrEmailAlreadyRegistered)
	s.ErrorIs(err, domain.ErrConflict)

	_, err = s.service.Register(s.ctx, domain.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "password123"})
	s.ErrorIs(err, domain.ErrUsernameTaken)
	s.ErrorIs(err, domain.ErrConflict)
}

func (s *UserServiceSuite) TestLoginByEmailOrUsername() {
	s.register("alice", "alice@example.com")

	for _, identifier := range []string{"alice", "alice@example.com", "  ALICE@example.com "} {
		res, err := s.service.Login(s.ctx, domain.LoginRequest{Identifier: identifier, Password: "password123"})
		s.Require().NoError(err, identifier)
		s.Equal(domain.TokenTypeBearer, res.TokenType)

		subject, err := s.jwt.ValidateToken(res.AccessToken)
		s.Require().NoError(err)
		s.Equal("alice@example.com", subject)
	}
}

func (s *UserServiceSuite) TestLoginFailuresAreIndistinguishable() {
	s.register("alice", "alice@example.com")

	_, wrongPassword := s.service.Login(s.ctx, domain.LoginRequest{Identifier: "alice", Password: "nope"})
	_, unknownUser := s.service.Login(s.ctx, domain.LoginRequest{Identifier: "bob", Password: "password123"})
	_, unknownEmail := s.service.Login(s.ctx, domain.LoginRequest{Identifier: "bob@example.com", Password: "password123"})

	s.ErrorIs(wrongPassword, domain.ErrInvalidCredentials)
	s.Equal(wrongPassword, unknownUser)
	s.Equal(wrongPassword, unknownEmail)
}

func (s *UserServiceSuite) TestCurrentUser() {
	_, err := s.service.CurrentUser(s.ctx, "garbage")
	s.ErrorIs(err, domain.ErrTokenInvalid)

	orphan, err := s.jwt.GenerateToken("ghost@example.com", time.Minute)
	s.Require().NoError(err)
	_, err = s.service.CurrentUser(s.ctx, orphan)
	s.ErrorIs(err, domain.ErrInvalidCredentials)
}

func (s *UserServiceSuite) TestMe() {
	res := s.register("alice", "alice@example.com")

	me, err := s.service.Me(s.ctx, res.ID)
	s.Require().NoError(err)
	s.Equal("alice", me.Username)

	_, err = s.service.Me(s.ctx, "not-a-uuid")
	s.ErrorIs(err, domain.ErrParseUUID)

	_, err = s.service.Me(s.ctx, "00000000-0000-0000-0000-000000000001")
	s.ErrorIs(err, domain.ErrUserNotFound)
}

func TestRegisterRejectsEmptyPassword(t *testing.T) {
	db := testutils.NewTestDB(t)
	jwtService, err := jwt.NewJWTService(jwt.Config{Secret: "x"})
	require.NoError(t, err)
	service := user.NewUserService(user.NewUserRepository(db), jwtService)

	_, err = service.Register(context.Background(), domain.RegisterRequest{Username: "alice", Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrPasswordEmpty)
}
