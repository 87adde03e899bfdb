package repository

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/schedule/model"
)

// NotificationRepository schedule change notifications
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ListPending(ctx context.Context) ([]model.Notification, error)
	// ListByGroup notifications whose new or previous snapshot names the group, newest first
	ListByGroup(ctx context.Context, groupID uint) ([]model.Notification, error)
	MarkSent(ctx context.Context, ids []uint, at time.Time) error
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo creates a NotificationRepository
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) ListPending(ctx context.Context) ([]model.Notification, error) {
	var list []model.Notification
	err := r.db.WithContext(ctx).
		Where("is_sent = ?", false).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *notificationRepo) ListByGroup(ctx context.Context, groupID uint) ([]model.Notification, error) {
	db := r.db.WithContext(ctx)
	touches := db.Where(datatypes.JSONQuery("new_data").Equals(groupID, "group_id")).
		Or(datatypes.JSONQuery("previous_data").Equals(groupID, "group_id"))

	var list []model.Notification
	err := db.Where(touches).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

func (r *notificationRepo) MarkSent(ctx context.Context, ids []uint, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&model.Notification{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{"is_sent": true, "sent_at": at}).Error
}
