package services

import (
	"errors"
	"strings"

	"github.com/furnitune/furnitune-api/models"
	"gorm.io/gorm"
)

// UserService handles account lookups and profile changes
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a user service on top of db
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ProfileUpdate is the editable part of a user profile.
// A nil ProfileImage keeps the current image; an empty one clears it.
type ProfileUpdate struct {
	Name         string
	Email        string
	Phone        string
	ProfileImage *string
}

// Login returns the user whose email and password both match exactly.
// Unknown email and wrong password fail the same way.
func (s *UserService) Login(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND password = ?", email, password).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, databaseError("log in", err)
	}
	return &user, nil
}

// Register creates an account. An already registered email leaves the users table unchanged.
func (s *UserService) Register(email, password, name, phone string) (*models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if email == "" || password == "" || name == "" {
		return nil, invalidInput("email, password and name are required")
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, databaseError("check email", err)
	}
	if count > 0 {
		return nil, ErrDuplicateEmail
	}

	user := models.User{
		Email:    email,
		Password: password,
		Name:     name,
		Phone:    nullable(phone),
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, databaseError("register user", err)
	}

	return s.GetUserByID(user.ID)
}

// GetUserByID returns a user or ErrNotFound
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, lookupError("user", "get user", err)
	}
	return &user, nil
}

// UpdateProfile overwrites the user's name, email and phone, and the profile image when given
func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*models.User, error) {
	update.Name = strings.TrimSpace(update.Name)
	update.Email = strings.TrimSpace(update.Email)
	if update.Name == "" || update.Email == "" {
		return nil, invalidInput("name and email are required")
	}

	if _, err := s.GetUserByID(userID); err != nil {
		return nil, err
	}

	var taken int64
	if err := s.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", update.Email, userID).
		Count(&taken).Error; err != nil {
		return nil, databaseError("check email", err)
	}
	if taken > 0 {
		return nil, ErrDuplicateEmail
	}

	changes := map[string]interface{}{
		"name":  update.Name,
		"email": update.Email,
		"phone": nullable(update.Phone),
	}
	if update.ProfileImage != nil {
		changes["profile_image"] = nullable(*update.ProfileImage)
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", userID).Updates(changes).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, databaseError("update profile", err)
	}

	return s.GetUserByID(userID)
}

// ChangePassword replaces the password after verifying the old one by exact match
func (s *UserService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if newPassword == "" {
		return invalidInput("new password is required")
	}

	result := s.db.Model(&models.User{}).
		Where("id = ? AND password = ?", userID, oldPassword).
		Update("password", newPassword)
	if result.Error != nil {
		return databaseError("change password", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvalidCredentials
	}
	return nil
}

// GetProfileStats counts the user's orders, reviews and cart lines
func (s *UserService) GetProfileStats(userID uint) (*models.ProfileStats, error) {
	var stats models.ProfileStats
	err := s.db.Raw(`SELECT
		(SELECT COUNT(*) FROM orders WHERE user_id = ?) AS orders,
		(SELECT COUNT(*) FROM reviews WHERE user_id = ?) AS reviews,
		(SELECT COUNT(*) FROM cart WHERE user_id = ?) AS cart_items`,
		userID, userID, userID).Scan(&stats).Error
	if err != nil {
		return nil, databaseError("get profile stats", err)
	}
	return &stats, nil
}

// nullable maps an empty string to NULL
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
