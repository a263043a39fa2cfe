package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/WattanaGaming/com.wattanagaming.gamejolt-api/pkg/gamejolt"
)

// TrophyEventDTO is one confirmed grant or revoke.
type TrophyEventDTO struct {
	ID        uint                     `gorm:"primaryKey"`
	Username  string                   `gorm:"column:username;not null;index"`
	TrophyID  int64                    `gorm:"column:trophy_id;not null;index"`
	Kind      gamejolt.TrophyEventKind `gorm:"column:kind;type:varchar(16);not null"`
	CreatedAt time.Time                `gorm:"column:created_at"`
}

func (TrophyEventDTO) TableName() string {
	return "trophy_events"
}

// RecordTrophyEvent appends notif to the history.
func (s *Storage) RecordTrophyEvent(ctx context.Context, notif gamejolt.TrophyNotification) error {
	if notif.Username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	dto := TrophyEventDTO{
		Username: notif.Username,
		TrophyID: notif.TrophyID,
		Kind:     notif.Kind,
	}
	if err := s.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("failed to record trophy event: %w", err)
	}
	return nil
}

// ListTrophyEvents returns events newest first unless options say otherwise.
// A nil username lists every player.
func (s *Storage) ListTrophyEvents(ctx context.Context, username *string, options *ListOptions) ([]TrophyEventDTO, error) {
	query := applyListOptions(s.db.WithContext(ctx), "created_at", SortTypeDescending, options)
	if username != nil {
		query = query.Where("username = ?", *username)
	}

	events := []TrophyEventDTO{}
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list trophy events: %w", err)
	}
	return events, nil
}

func (s *Storage) CountTrophyEvents(ctx context.Context, username *string) (int64, error) {
	query := s.db.WithContext(ctx).Model(&TrophyEventDTO{})
	if username != nil {
		query = query.Where("username = ?", *username)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count trophy events: %w", err)
	}
	return count, nil
}
