package notification

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("not the recipient of this notification")
)

// Service handles notification business logic
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ListByRecipientID retrieves a user's notifications
func (s *Service) ListByRecipientID(ctx context.Context, recipientID string, unreadOnly bool) ([]*Notification, error) {
	return s.repo.ListByRecipientID(ctx, recipientID, unreadOnly)
}

// MarkAsRead marks a notification as read. Only the recipient may do so.
func (s *Service) MarkAsRead(ctx context.Context, id, userID string) error {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if notification == nil {
		return ErrNotificationNotFound
	}
	if notification.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks all notifications as read for a user
func (s *Service) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// GetUnreadCount returns the count of unread notifications
func (s *Service) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

// Helper methods for creating specific notification types

// NotifyGroupInvite records a group invitation notification
func (s *Service) NotifyGroupInvite(ctx context.Context, recipientID, groupName, invitationID string) error {
	message := "You have been invited to join group: " + groupName
	entityType := entityTypeGroupInvite
	_, err := s.repo.Create(ctx, recipientID, message, &entityType, &invitationID)
	return err
}

// NotifyExpenseAdded records a new-expense notification
func (s *Service) NotifyExpenseAdded(ctx context.Context, recipientID, description string, amount float64, expenseID string) error {
	message := fmt.Sprintf("New expense in your group: %s (%.2f)", description, amount)
	entityType := entityTypeExpense
	_, err := s.repo.Create(ctx, recipientID, message, &entityType, &expenseID)
	return err
}
