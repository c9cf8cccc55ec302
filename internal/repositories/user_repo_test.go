package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/RahulRajeev-0/employee-management-system/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    UserRepository
	userID  uuid.UUID
	context context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewUserRepo(mock)
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func stringPtr(s string) *string {
	return &s
}

func (suite *UserRepoTestSuite) TestCreate_Success() {
	user := &models.User{
		ID:           suite.userID,
		Email:        "jane@example.com",
		Username:     stringPtr("jane"),
		PasswordHash: "hashed",
		FirstName:    "Jane",
		LastName:     "Doe",
		IsActive:     true,
	}

	suite.mock.ExpectExec(regexp.QuoteMeta(`
		INSERT INTO users (id, email, username, password_hash, first_name, last_name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`)).WithArgs(user.ID, user.Email, user.Username, user.PasswordHash, user.FirstName, user.LastName, user.IsActive).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, user)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestGetByEmail_NotFound() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, email, username, password_hash, first_name, last_name, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`)).WithArgs("nobody@example.com").WillReturnError(pgx.ErrNoRows)

	user, err := suite.repo.GetByEmail(suite.context, "nobody@example.com")
	assert.Nil(suite.T(), user)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
}

func (suite *UserRepoTestSuite) TestGetByEmail_Found() {
	now := time.Now()

	suite.mock.ExpectQuery(regexp.QuoteMeta(`
		SELECT id, email, username, password_hash, first_name, last_name, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`)).WithArgs("jane@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "username", "password_hash", "first_name", "last_name", "is_active", "created_at", "updated_at"}).
			AddRow(suite.userID, "jane@example.com", stringPtr("jane"), "hashed", "Jane", "Doe", true, now, now))

	user, err := suite.repo.GetByEmail(suite.context, "jane@example.com")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID, user.ID)
	assert.Equal(suite.T(), "jane@example.com", user.Email)
}

func (suite *UserRepoTestSuite) TestEmailTaken_ExcludesOwnRow() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE email = $1 AND id <> $2`)).
		WithArgs("jane@example.com", suite.userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	taken, err := suite.repo.EmailTaken(suite.context, "jane@example.com", suite.userID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), taken)
}

func (suite *UserRepoTestSuite) TestUsernameTaken() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE username = $1 AND id <> $2`)).
		WithArgs("jane", suite.userID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	taken, err := suite.repo.UsernameTaken(suite.context, "jane", suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), taken)
}

func (suite *UserRepoTestSuite) TestUpdate_WritesAllAccountFields() {
	user := &models.User{
		ID:        suite.userID,
		Email:     "new@example.com",
		Username:  stringPtr("newname"),
		FirstName: "Jane",
		LastName:  "Doe",
	}

	suite.mock.ExpectExec(regexp.QuoteMeta(`
		UPDATE users
		SET email = $1, username = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE id = $5
	`)).WithArgs(user.Email, user.Username, user.FirstName, user.LastName, user.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, user)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestUpdatePassword() {
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs("newhash", suite.userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.UpdatePassword(suite.context, suite.userID, "newhash")
	assert.NoError(suite.T(), err)
}
