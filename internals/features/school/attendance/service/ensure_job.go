// file: internals/features/school/attendance/service/ensure_job.go
package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	ttService "kampusku_backend/internals/features/school/timetable/service"
)

/* =========================
   Ensure job (cron)

   Pre-create sesi absensi utk jadwal hari ini supaya guru tidak
   menunggu lazy-create saat mark pertama. Idempotent: jatuh ke upsert
   (batch, subject, date) yang sama.
   ========================= */

type EnsureJob struct {
	DB      *gorm.DB
	Service *SessionService
}

func NewEnsureJob(db *gorm.DB) *EnsureJob {
	resolver := ttService.NewRecurrence(ttService.NewGormRepo(db), ttService.NewGormRefs(db))
	return &EnsureJob{
		DB: db,
		Service: NewSession(
			NewGormSessionRepo(db),
			NewGormRecordRepo(db),
			NewGormRoster(db),
			resolver,
		),
	}
}

func (j *EnsureJob) activeBatchIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := j.DB.WithContext(ctx).Table("batches").
		Where("batch_is_active = TRUE AND batch_deleted_at IS NULL").
		Pluck("batch_id", &ids).Error
	return ids, err
}

// EnsureForDate membuat sesi utk semua entry ter-resolve yang punya
// subject dan tidak cancelled.
func (j *EnsureJob) EnsureForDate(ctx context.Context, date time.Time) (created int, err error) {
	batches, err := j.activeBatchIDs(ctx)
	if err != nil {
		return 0, err
	}
	for _, batchID := range batches {
		entries, err := j.Service.Schedule.ResolveDay(ctx, batchID, date)
		if err != nil {
			return created, err
		}
		for i := range entries {
			e := entries[i]
			if e.TimetableEntrySubjectID == nil || e.TimetableEntryIsCancelled {
				continue
			}
			if _, err := j.Service.GetOrCreateSession(ctx, batchID, *e.TimetableEntrySubjectID, date); err != nil {
				log.Printf("[ENSURE] gagal sesi batch=%s subject=%s: %v", batchID, *e.TimetableEntrySubjectID, err)
				continue
			}
			created++
		}
	}
	return created, nil
}

// StartEnsureScheduler menjadwalkan ensure harian (00:05) lewat cron.
func StartEnsureScheduler(db *gorm.DB) *cron.Cron {
	job := NewEnsureJob(db)
	c := cron.New()
	_, err := c.AddFunc("5 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		n, err := job.EnsureForDate(ctx, time.Now())
		if err != nil {
			log.Printf("[ENSURE ERROR] %v", err)
			return
		}
		log.Printf("[ENSURE] %d sesi disiapkan untuk hari ini", n)
	})
	if err != nil {
		log.Printf("[ENSURE ERROR] gagal daftar cron: %v", err)
	}
	c.Start()
	return c
}
