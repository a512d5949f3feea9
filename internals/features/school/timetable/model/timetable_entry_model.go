// file: internals/features/school/timetable/model/timetable_entry_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	slotModel "kampusku_backend/internals/features/school/time_slots/model"
)

/* =========================
   Enum
   ========================= */

type EntryType string

const (
	EntryRegular   EntryType = "REGULAR"
	EntryMakeup    EntryType = "MAKEUP"
	EntryExtra     EntryType = "EXTRA"
	EntryExam      EntryType = "EXAM"
	EntryCancelled EntryType = "CANCELLED"
)

func ParseEntryType(s string) (EntryType, bool) {
	switch EntryType(s) {
	case EntryRegular, EntryMakeup, EntryExtra, EntryExam, EntryCancelled:
		return EntryType(s), true
	}
	return "", false
}

/* =========================
   Model: TimetableEntryModel

   Satu baris recurring (day_of_week terisi, date NULL) berlaku untuk
   setiap minggu yang cocok; baris exception (date terisi, day_of_week
   NULL) menimpa pola recurring untuk satu tanggal itu. XOR-nya dijaga
   di service + CHECK constraint.
   ========================= */

type TimetableEntryModel struct {
	// PK
	TimetableEntryID uuid.UUID `json:"timetable_entry_id" gorm:"column:timetable_entry_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	TimetableEntryBatchID   uuid.UUID  `json:"timetable_entry_batch_id"   gorm:"column:timetable_entry_batch_id;type:uuid;not null;index"`
	TimetableEntrySubjectID *uuid.UUID `json:"timetable_entry_subject_id" gorm:"column:timetable_entry_subject_id;type:uuid;index"`
	TimetableEntryFacultyID *uuid.UUID `json:"timetable_entry_faculty_id" gorm:"column:timetable_entry_faculty_id;type:uuid;index"`

	TimetableEntryTimeSlotID uuid.UUID                `json:"timetable_entry_time_slot_id" gorm:"column:timetable_entry_time_slot_id;type:uuid;not null;index"`
	TimeSlot                 *slotModel.TimeSlotModel `json:"time_slot,omitempty" gorm:"foreignKey:TimetableEntryTimeSlotID;references:TimeSlotID"`

	// Recurring XOR exception
	TimetableEntryDayOfWeek *int       `json:"timetable_entry_day_of_week" gorm:"column:timetable_entry_day_of_week"` // 1..7 (ISO, Senin=1)
	TimetableEntryDate      *time.Time `json:"timetable_entry_date"        gorm:"column:timetable_entry_date;type:date"`

	TimetableEntryType        EntryType `json:"timetable_entry_type"         gorm:"column:timetable_entry_type;type:varchar(16);not null;default:'REGULAR'"`
	TimetableEntryIsCancelled bool      `json:"timetable_entry_is_cancelled" gorm:"column:timetable_entry_is_cancelled;not null;default:false"`
	TimetableEntryIsActive    bool      `json:"timetable_entry_is_active"    gorm:"column:timetable_entry_is_active;not null;default:true"`

	TimetableEntryNotes *string `json:"timetable_entry_notes" gorm:"column:timetable_entry_notes;type:text"`

	// Timestamps
	TimetableEntryCreatedAt time.Time      `json:"timetable_entry_created_at" gorm:"column:timetable_entry_created_at;type:timestamptz;not null;autoCreateTime"`
	TimetableEntryUpdatedAt time.Time      `json:"timetable_entry_updated_at" gorm:"column:timetable_entry_updated_at;type:timestamptz;not null;autoUpdateTime"`
	TimetableEntryDeletedAt gorm.DeletedAt `json:"timetable_entry_deleted_at" gorm:"column:timetable_entry_deleted_at;index"`
}

func (TimetableEntryModel) TableName() string { return "timetable_entries" }

func (e *TimetableEntryModel) BeforeCreate(tx *gorm.DB) error {
	if e.TimetableEntryID == uuid.Nil {
		e.TimetableEntryID = uuid.New()
	}
	return nil
}

// IsRecurring: baris pola mingguan (bukan exception).
func (e *TimetableEntryModel) IsRecurring() bool {
	return e.TimetableEntryDayOfWeek != nil && e.TimetableEntryDate == nil
}

/* =========================
   Constraint & index DDL

   Check-then-write di aplikasi rawan race; unique index parsial pada
   kunci governance yang ter-resolve adalah sinyal konflik yang
   otoritatif. Unique violation dipetakan ke ConflictError.
   ========================= */

func EnsureIndexes(db *gorm.DB) error {
	stmts := []string{
		`ALTER TABLE timetable_entries DROP CONSTRAINT IF EXISTS chk_timetable_entry_day_xor_date`,
		`ALTER TABLE timetable_entries ADD CONSTRAINT chk_timetable_entry_day_xor_date
		   CHECK ((timetable_entry_day_of_week IS NULL) <> (timetable_entry_date IS NULL))`,

		// governance (batch, slot, hari/tanggal)
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_tte_batch_slot_dow
		   ON timetable_entries (timetable_entry_batch_id, timetable_entry_time_slot_id, timetable_entry_day_of_week)
		   WHERE timetable_entry_is_active AND timetable_entry_deleted_at IS NULL
		     AND timetable_entry_day_of_week IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_tte_batch_slot_date
		   ON timetable_entries (timetable_entry_batch_id, timetable_entry_time_slot_id, timetable_entry_date)
		   WHERE timetable_entry_is_active AND timetable_entry_deleted_at IS NULL
		     AND timetable_entry_date IS NOT NULL`,

		// governance (faculty, slot, hari/tanggal)
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_tte_faculty_slot_dow
		   ON timetable_entries (timetable_entry_faculty_id, timetable_entry_time_slot_id, timetable_entry_day_of_week)
		   WHERE timetable_entry_is_active AND timetable_entry_deleted_at IS NULL
		     AND timetable_entry_faculty_id IS NOT NULL AND timetable_entry_day_of_week IS NOT NULL`,
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_tte_faculty_slot_date
		   ON timetable_entries (timetable_entry_faculty_id, timetable_entry_time_slot_id, timetable_entry_date)
		   WHERE timetable_entry_is_active AND timetable_entry_deleted_at IS NULL
		     AND timetable_entry_faculty_id IS NOT NULL AND timetable_entry_date IS NOT NULL`,
	}
	for _, q := range stmts {
		if err := db.Exec(q).Error; err != nil {
			return err
		}
	}
	return nil
}
