// Package activityrepo is the append-only audit sink. Entries share the
// transaction of the change they describe, so a rolled back change leaves no
// entry behind.
package activityrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"maintenance/internal/core/domain/model/activity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntryDTO struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Action   string          `gorm:"size:16;not null"`
	Entity   string          `gorm:"size:32;not null;index:idx_activity_entity"`
	EntityID string          `gorm:"size:64;index:idx_activity_entity"`
	Payload  json.RawMessage `gorm:"type:jsonb"`
	ActorID  int64           `gorm:"not null;index"`
	At       time.Time       `gorm:"not null;index"`
}

func (EntryDTO) TableName() string {
	return "activity_log"
}

type GormActivityLog struct {
	db *gorm.DB
}

func NewGormActivityLog(db *gorm.DB) *GormActivityLog {
	return &GormActivityLog{db: db}
}

func (l *GormActivityLog) Append(ctx context.Context, entry *activity.Entry) error {
	payload, err := json.Marshal(entry.Payload())
	if err != nil {
		return fmt.Errorf("encode %s %s payload: %w", entry.Action(), entry.Entity(), err)
	}

	dto := EntryDTO{
		ID:       entry.ID().Bytes(),
		Action:   string(entry.Action()),
		Entity:   string(entry.Entity()),
		EntityID: entry.EntityID(),
		Payload:  payload,
		ActorID:  entry.ActorID().Int64(),
		At:       entry.At(),
	}
	return l.db.WithContext(ctx).Create(&dto).Error
}
