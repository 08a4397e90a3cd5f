package services

import (
	"log"

	"github.com/furnitune/furnitune-api/models"
	"gorm.io/gorm"
)

// NotificationService manages the per-user notification inbox
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a notification service on top of db
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify writes a notification and never fails: errors are logged and dropped.
// It is used for side effects of other operations.
func (s *NotificationService) Notify(userID uint, title, body, notificationType string) {
	if _, err := s.Create(userID, title, body, notificationType); err != nil {
		log.Printf("Failed to notify user %d (%s): %v", userID, title, err)
	}
}

// Create inserts a notification. An empty type defaults to "general".
func (s *NotificationService) Create(userID uint, title, body, notificationType string) (*models.Notification, error) {
	if notificationType == "" {
		notificationType = models.NotificationGeneral
	}

	notification := models.Notification{
		UserID: userID,
		Title:  title,
		Body:   body,
		Type:   notificationType,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, databaseError("create notification", err)
	}
	return &notification, nil
}

// GetUserNotifications returns the user's notifications, newest first
func (s *NotificationService) GetUserNotifications(userID uint) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, databaseError("get notifications", err)
	}
	return notifications, nil
}

// UnreadCount returns how many of the user's notifications are unread
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, databaseError("count notifications", err)
	}
	return count, nil
}

// MarkAsRead marks one of the user's notifications as read
func (s *NotificationService) MarkAsRead(userID, notificationID uint) error {
	result := s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return databaseError("mark notification read", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("notification")
	}
	return nil
}

// MarkAllAsRead marks every notification of the user as read
func (s *NotificationService) MarkAllAsRead(userID uint) error {
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
	if err != nil {
		return databaseError("mark notifications read", err)
	}
	return nil
}

// DeleteNotification removes one of the user's notifications
func (s *NotificationService) DeleteNotification(userID, notificationID uint) error {
	result := s.db.Where("id = ? AND user_id = ?", notificationID, userID).Delete(&models.Notification{})
	if result.Error != nil {
		return databaseError("delete notification", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("notification")
	}
	return nil
}
