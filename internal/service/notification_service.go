package service

import (
	"errors"

	"github.com/ramdanolii14/nyantube-sub000/internal/api/dto"
	infraKafka "github.com/ramdanolii14/nyantube-sub000/internal/infra/kafka"
	"github.com/ramdanolii14/nyantube-sub000/internal/model"
	"github.com/ramdanolii14/nyantube-sub000/internal/repository"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification does not exist")

type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// HandleEvent materialises one event from the stream into an inbox row. Runs
// in the worker process.
func (s *NotificationService) HandleEvent(event *infraKafka.NotificationEvent) error {
	n := &model.Notification{
		UserID:    event.RecipientID,
		ActorID:   event.ActorID,
		Type:      event.Type,
		VideoID:   event.VideoID,
		CommentID: event.CommentID,
		Message:   event.Message,
	}
	return s.notificationRepo.Create(n)
}

// List pages the account's inbox, newest first.
func (s *NotificationService) List(userID int64, page, pageSize int) (*dto.NotificationListData, error) {
	skip := (page - 1) * pageSize
	notifications, total, err := s.notificationRepo.ListByUser(userID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.NotificationInfo, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		items = append(items, dto.NotificationInfo{
			ID:        n.ID,
			ActorID:   n.ActorID,
			Type:      n.Type,
			VideoID:   n.VideoID,
			CommentID: n.CommentID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.NotificationListData{
		Notifications: items,
		Total:         total,
		Unread:        unread,
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    totalPages,
	}, nil
}

// MarkRead marks one notification read.
func (s *NotificationService) MarkRead(notificationID, userID int64) error {
	if err := s.notificationRepo.MarkRead(notificationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// MarkAllRead clears the account's unread pile.
func (s *NotificationService) MarkAllRead(userID int64) error {
	return s.notificationRepo.MarkAllRead(userID)
}
