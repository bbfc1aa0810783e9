package mysql

import (
	"time"

	"seedy/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

// ExistsByUsernameOrEmail backs the combined duplicate check on register.
func (r *UserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

// UsernameTaken probes availability, optionally excluding one user id
// (used when editing one's own profile).
func (r *UserRepository) UsernameTaken(username string, ignoreUserID uint64) (bool, error) {
	q := r.DB.Model(&model.User{}).Where("username = ?", username)
	if ignoreUserID > 0 {
		q = q.Where("id <> ?", ignoreUserID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) EmailTaken(email string, ignoreUserID uint64) (bool, error) {
	q := r.DB.Model(&model.User{}).Where("email = ?", email)
	if ignoreUserID > 0 {
		q = q.Where("id <> ?", ignoreUserID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) UpdatePassword(userID uint64, hashed string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("password", hashed).Error
}

func (r *UserRepository) UpdateProfile(userID uint64, fields map[string]any) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Updates(fields).Error
}

func (r *UserRepository) SetResetToken(userID uint64, token string, expires time.Time) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Updates(map[string]any{
			"reset_password_token":   token,
			"reset_password_expires": expires,
		}).Error
}

// ConsumeResetToken rehashes the password of the user holding a live token
// and clears the token in the same statement. Returns false when the token
// is unknown or expired — the check and the clear cannot race apart.
func (r *UserRepository) ConsumeResetToken(token, hashed string, now time.Time) (bool, error) {
	res := r.DB.Model(&model.User{}).
		Where("reset_password_token = ? AND reset_password_expires > ?", token, now).
		Updates(map[string]any{
			"password":               hashed,
			"reset_password_token":   nil,
			"reset_password_expires": nil,
		})
	return res.RowsAffected > 0, res.Error
}
