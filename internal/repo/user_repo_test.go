package repo

import (
	"testing"
	"time"

	"module/postforge/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEmailExists(t *testing.T) {
	r := NewUserRepo(newTestDB(t))

	exists, err := r.EmailExists("nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists, "missing row must be false, not an error")

	user := models.User{Id: uuid.NewString(), Email: "me@example.com", Password: "hash"}
	require.NoError(t, r.CreateUser(&user))

	exists, err = r.EmailExists("me@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetUserByEmailNotFound(t *testing.T) {
	r := NewUserRepo(newTestDB(t))

	_, err := r.GetUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSessionLifecycle(t *testing.T) {
	r := NewSessionRepo(newTestDB(t))

	session := models.Session{
		Id:        uuid.NewString(),
		UserId:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, r.CreateSession(&session))

	stored, err := r.GetSession(session.Id)
	require.NoError(t, err)
	assert.Equal(t, "u1", stored.UserId)

	require.NoError(t, r.DeleteSession(session.Id))
	_, err = r.GetSession(session.Id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestConsumeLoginCodeIsSingleUse(t *testing.T) {
	r := NewSessionRepo(newTestDB(t))

	code := models.LoginCode{
		Code:      uuid.NewString(),
		UserId:    "u1",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, r.CreateLoginCode(&code))

	consumed, err := r.ConsumeLoginCode("u1", code.Code)
	require.NoError(t, err)
	assert.True(t, consumed.Used)

	_, err = r.ConsumeLoginCode("u1", code.Code)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestConsumeLoginCodeExpired(t *testing.T) {
	r := NewSessionRepo(newTestDB(t))

	code := models.LoginCode{
		Code:      uuid.NewString(),
		UserId:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, r.CreateLoginCode(&code))

	_, err := r.ConsumeLoginCode("u1", code.Code)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestConsumeLoginCodeWrongUser(t *testing.T) {
	r := NewSessionRepo(newTestDB(t))

	code := models.LoginCode{
		Code:      uuid.NewString(),
		UserId:    "u1",
		ExpiresAt: time.Now().Add(time.Minute),
	}
	require.NoError(t, r.CreateLoginCode(&code))

	_, err := r.ConsumeLoginCode("u2", code.Code)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
