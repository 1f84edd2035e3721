package repo

import (
	"errors"
	"time"

	"module/postforge/internal/models"

	"gorm.io/gorm"
)

type UserRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func (r *UserRepo) GetUserById(userId string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("id = ?", userId).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists treats a missing row as a plain false, not an error. Any
// other database failure is propagated so callers can surface it as a
// server-side error instead of silently reporting the address as free.
func (r *UserRepo) EmailExists(email string) (bool, error) {
	_, err := r.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *UserRepo) CreateUser(user *models.User) error {
	return r.DB.Create(user).Error
}

type SessionRepo struct {
	DB *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{DB: db}
}

func (r *SessionRepo) CreateSession(session *models.Session) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepo) GetSession(sessionId string) (*models.Session, error) {
	var session models.Session
	if err := r.DB.Where("id = ?", sessionId).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepo) DeleteSession(sessionId string) error {
	return r.DB.Where("id = ?", sessionId).Delete(&models.Session{}).Error
}

func (r *SessionRepo) CreateLoginCode(code *models.LoginCode) error {
	return r.DB.Create(code).Error
}

// ConsumeLoginCode marks an unexpired, unused code as used and returns it.
// A wrong or already-used code comes back as gorm.ErrRecordNotFound.
func (r *SessionRepo) ConsumeLoginCode(userId, code string) (*models.LoginCode, error) {
	var loginCode models.LoginCode
	err := r.DB.Where("code = ? AND user_id = ? AND used = ? AND expires_at > ?",
		code, userId, false, time.Now()).First(&loginCode).Error
	if err != nil {
		return nil, err
	}
	loginCode.Used = true
	if err := r.DB.Save(&loginCode).Error; err != nil {
		return nil, err
	}
	return &loginCode, nil
}
