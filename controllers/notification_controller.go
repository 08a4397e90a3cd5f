package controllers

import (
	"net/http"

	"github.com/furnitune/furnitune-api/config"
	"github.com/furnitune/furnitune-api/services"
	"github.com/gin-gonic/gin"
)

// ListNotifications handles GET /api/v1/notifications - newest first
func ListNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	notifications, err := services.NewNotificationService(config.GetDB()).GetUserNotifications(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, notifications)
}

// GetUnreadCount handles GET /api/v1/notifications/unread-count
func GetUnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := services.NewNotificationService(config.GetDB()).UnreadCount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{"unread": count})
}

// MarkNotificationRead handles PUT /api/v1/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	notificationID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewNotificationService(config.GetDB()).MarkAsRead(userID, notificationID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification marked as read",
	})
}

// MarkAllNotificationsRead handles PUT /api/v1/notifications/read-all
func MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := services.NewNotificationService(config.GetDB()).MarkAllAsRead(userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "All notifications marked as read",
	})
}

// DeleteNotification handles DELETE /api/v1/notifications/:id
func DeleteNotification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	notificationID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := services.NewNotificationService(config.GetDB()).DeleteNotification(userID, notificationID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notification deleted",
	})
}
