// file: internals/features/school/time_slots/model/time_slot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: TimeSlotModel
   ========================= */

type TimeSlotModel struct {
	// PK
	TimeSlotID uuid.UUID `json:"time_slot_id" gorm:"column:time_slot_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// Nama unik di antara slot aktif
	TimeSlotName string `json:"time_slot_name" gorm:"column:time_slot_name;type:varchar(80);not null"`

	// Jam dinding, menit sejak 00:00 (turunan dari input "HH:MM")
	TimeSlotStartMin int `json:"time_slot_start_min" gorm:"column:time_slot_start_min;not null"`
	TimeSlotEndMin   int `json:"time_slot_end_min"   gorm:"column:time_slot_end_min;not null"`

	// Urutan tampil; default max(existing)+1
	TimeSlotSortOrder int `json:"time_slot_sort_order" gorm:"column:time_slot_sort_order;not null;default:0"`

	// Soft delete: slot yang pernah direferensikan tidak boleh hard delete
	TimeSlotIsActive bool `json:"time_slot_is_active" gorm:"column:time_slot_is_active;not null;default:true"`

	// Timestamps
	TimeSlotCreatedAt time.Time      `json:"time_slot_created_at" gorm:"column:time_slot_created_at;type:timestamptz;not null;autoCreateTime"`
	TimeSlotUpdatedAt time.Time      `json:"time_slot_updated_at" gorm:"column:time_slot_updated_at;type:timestamptz;not null;autoUpdateTime"`
	TimeSlotDeletedAt gorm.DeletedAt `json:"time_slot_deleted_at" gorm:"column:time_slot_deleted_at;index"`
}

func (TimeSlotModel) TableName() string { return "time_slots" }

func (ts *TimeSlotModel) BeforeCreate(tx *gorm.DB) error {
	if ts.TimeSlotID == uuid.Nil {
		ts.TimeSlotID = uuid.New()
	}
	return nil
}

// EnsureIndexes: constraint yang tidak bisa dinyatakan lewat tag GORM.
// Nama unik hanya di antara slot aktif, dan interval slot aktif dijaga
// exclusion constraint di DB — backstop kalau ada race check-then-write
// yang lolos dari service.
func EnsureIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,

		`CREATE UNIQUE INDEX IF NOT EXISTS uq_time_slot_active_name
		   ON time_slots (lower(time_slot_name))
		   WHERE time_slot_is_active AND time_slot_deleted_at IS NULL`,

		`ALTER TABLE time_slots DROP CONSTRAINT IF EXISTS excl_time_slot_active_interval`,
		`ALTER TABLE time_slots ADD CONSTRAINT excl_time_slot_active_interval
		   EXCLUDE USING gist (int4range(time_slot_start_min, time_slot_end_min) WITH &&)
		   WHERE (time_slot_is_active AND time_slot_deleted_at IS NULL)`,
	}
	for _, q := range stmts {
		if err := db.Exec(q).Error; err != nil {
			return err
		}
	}
	return nil
}

// DurationMinutes turunan, tidak disimpan.
func (ts *TimeSlotModel) DurationMinutes() int {
	if ts.TimeSlotEndMin < ts.TimeSlotStartMin {
		return (1440 - ts.TimeSlotStartMin) + ts.TimeSlotEndMin
	}
	return ts.TimeSlotEndMin - ts.TimeSlotStartMin
}
