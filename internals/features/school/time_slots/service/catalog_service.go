// file: internals/features/school/time_slots/service/catalog_service.go
package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	m "kampusku_backend/internals/features/school/time_slots/model"
	"kampusku_backend/internals/helpers/apierror"
)

/* =========================
   Repo (store via interface)
   ========================= */

type Repo interface {
	ListActive(ctx context.Context) ([]m.TimeSlotModel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*m.TimeSlotModel, error)
	// UsageCount: jumlah timetable entry (aktif maupun historis) yang
	// mereferensikan slot ini.
	UsageCount(ctx context.Context, id uuid.UUID) (int64, error)
	// ActiveUsageCount: hanya entry aktif (guard edit struktural).
	ActiveUsageCount(ctx context.Context, id uuid.UUID) (int64, error)
	Insert(ctx context.Context, slot *m.TimeSlotModel) error
	Save(ctx context.Context, slot *m.TimeSlotModel) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	// InTx: seluruh check-then-write catalog jalan di dalamnya (serializable).
	InTx(ctx context.Context, fn func(txRepo Repo) error) error
}

type CatalogService struct {
	Repo Repo
}

func NewCatalog(repo Repo) *CatalogService { return &CatalogService{Repo: repo} }

/* =========================
   Input & output shapes
   ========================= */

type CreateSlotInput struct {
	Name      string
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	SortOrder *int
}

type UpdateSlotInput struct {
	Name      *string
	StartTime *string
	EndTime   *string
	SortOrder *int
}

type SlotWithUsage struct {
	Slot       m.TimeSlotModel
	InUse      bool
	UsageCount int64
}

type AdjacentSlot struct {
	Slot     m.TimeSlotModel
	Position string // "before" | "after"
}

type Gap struct {
	StartMin int
	EndMin   int
}

type ConflictReport struct {
	Overlapping []m.TimeSlotModel
	Adjacent    []AdjacentSlot
	Gaps        []Gap
}

/* =========================
   Create
   ========================= */

func (s *CatalogService) Create(ctx context.Context, in CreateSlotInput) (*m.TimeSlotModel, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierror.Validation("nama slot wajib diisi")
	}

	startMin, endMin, err := parseRange(in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	// Check-then-write satu transaksi serializable; unique index nama +
	// exclusion constraint interval jadi backstop kalau ada race yang lolos.
	var slot *m.TimeSlotModel
	err = s.Repo.InTx(ctx, func(tx Repo) error {
		active, err := tx.ListActive(ctx)
		if err != nil {
			return err
		}

		for i := range active {
			if strings.EqualFold(active[i].TimeSlotName, name) {
				return apierror.Conflict(fmt.Sprintf("nama slot %q sudah dipakai slot aktif", name)).
					WithDetails(active[i])
			}
		}

		if overlapping := overlappingSlots(active, startMin, endMin, uuid.Nil); len(overlapping) > 0 {
			return apierror.Conflict("interval bentrok dengan slot aktif lain").
				WithDetails(overlapping)
		}

		sortOrder := 0
		if in.SortOrder != nil {
			sortOrder = *in.SortOrder
		} else {
			for i := range active {
				if active[i].TimeSlotSortOrder >= sortOrder {
					sortOrder = active[i].TimeSlotSortOrder + 1
				}
			}
		}

		slot = &m.TimeSlotModel{
			TimeSlotName:      name,
			TimeSlotStartMin:  startMin,
			TimeSlotEndMin:    endMin,
			TimeSlotSortOrder: sortOrder,
			TimeSlotIsActive:  true,
		}
		if err := tx.Insert(ctx, slot); err != nil {
			return apierror.FromPG(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

/* =========================
   Update
   ========================= */

func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, in UpdateSlotInput) (*m.TimeSlotModel, error) {
	var slot *m.TimeSlotModel
	err := s.Repo.InTx(ctx, func(tx Repo) error {
		var err error
		slot, err = tx.FindByID(ctx, id)
		if err != nil {
			return apierror.FromPG(err)
		}
		if slot == nil || !slot.TimeSlotIsActive {
			return apierror.NotFound("time slot tidak ditemukan / nonaktif")
		}

		// Edit jam pada slot yang sedang direferensikan entry aktif = ditolak.
		if in.StartTime != nil || in.EndTime != nil {
			used, err := tx.ActiveUsageCount(ctx, id)
			if err != nil {
				return err
			}
			if used > 0 {
				return apierror.InUse(
					fmt.Sprintf("slot dipakai %d entry aktif; jam tidak boleh diubah", used))
			}
		}

		startMin, endMin := slot.TimeSlotStartMin, slot.TimeSlotEndMin
		if in.StartTime != nil {
			if startMin, err = ParseClock(*in.StartTime); err != nil {
				return apierror.Validation(err.Error())
			}
		}
		if in.EndTime != nil {
			if endMin, err = ParseClock(*in.EndTime); err != nil {
				return apierror.Validation(err.Error())
			}
		}
		if DurationMinutes(startMin, endMin) <= 0 || endMin <= startMin {
			return apierror.Validation("durasi slot harus > 0 (end harus setelah start)")
		}

		name := slot.TimeSlotName
		if in.Name != nil {
			name = strings.TrimSpace(*in.Name)
			if name == "" {
				return apierror.Validation("nama slot wajib diisi")
			}
		}

		// Re-validasi nama & overlap, exclude diri sendiri.
		active, err := tx.ListActive(ctx)
		if err != nil {
			return err
		}
		for i := range active {
			if active[i].TimeSlotID == id {
				continue
			}
			if strings.EqualFold(active[i].TimeSlotName, name) {
				return apierror.Conflict(fmt.Sprintf("nama slot %q sudah dipakai slot aktif", name)).
					WithDetails(active[i])
			}
		}
		if overlapping := overlappingSlots(active, startMin, endMin, id); len(overlapping) > 0 {
			return apierror.Conflict("interval bentrok dengan slot aktif lain").
				WithDetails(overlapping)
		}

		slot.TimeSlotName = name
		slot.TimeSlotStartMin = startMin
		slot.TimeSlotEndMin = endMin
		if in.SortOrder != nil {
			slot.TimeSlotSortOrder = *in.SortOrder
		}
		if err := tx.Save(ctx, slot); err != nil {
			return apierror.FromPG(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slot, nil
}

/* =========================
   Delete (soft kalau pernah direferensikan)
   ========================= */

func (s *CatalogService) Delete(ctx context.Context, id uuid.UUID) (softDeleted bool, err error) {
	err = s.Repo.InTx(ctx, func(tx Repo) error {
		slot, err := tx.FindByID(ctx, id)
		if err != nil {
			return apierror.FromPG(err)
		}
		if slot == nil {
			return apierror.NotFound("time slot tidak ditemukan")
		}

		used, err := tx.UsageCount(ctx, id)
		if err != nil {
			return err
		}
		if used > 0 {
			if err := tx.SoftDelete(ctx, id); err != nil {
				return apierror.FromPG(err)
			}
			softDeleted = true
			return nil
		}
		if err := tx.HardDelete(ctx, id); err != nil {
			return apierror.FromPG(err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return softDeleted, nil
}

/* =========================
   Queries
   ========================= */

func (s *CatalogService) ListWithUsage(ctx context.Context) ([]SlotWithUsage, error) {
	active, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].TimeSlotSortOrder != active[j].TimeSlotSortOrder {
			return active[i].TimeSlotSortOrder < active[j].TimeSlotSortOrder
		}
		return active[i].TimeSlotStartMin < active[j].TimeSlotStartMin
	})

	out := make([]SlotWithUsage, 0, len(active))
	for i := range active {
		n, err := s.Repo.UsageCount(ctx, active[i].TimeSlotID)
		if err != nil {
			return nil, err
		}
		out = append(out, SlotWithUsage{Slot: active[i], InUse: n > 0, UsageCount: n})
	}
	return out, nil
}

// FindAdjacent: slot aktif yang nempel persis (end==start / start==end).
func (s *CatalogService) FindAdjacent(ctx context.Context, excludeID uuid.UUID, startMin, endMin int) ([]AdjacentSlot, error) {
	active, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	var out []AdjacentSlot
	for i := range active {
		if active[i].TimeSlotID == excludeID {
			continue
		}
		if IsAdjacent(active[i].TimeSlotEndMin, startMin) {
			out = append(out, AdjacentSlot{Slot: active[i], Position: "before"})
		}
		if IsAdjacent(endMin, active[i].TimeSlotStartMin) {
			out = append(out, AdjacentSlot{Slot: active[i], Position: "after"})
		}
	}
	return out, nil
}

// CheckConflicts: overlap + adjacency + daftar gap terurut di antara slot
// berurutan, termasuk interval kandidat.
func (s *CatalogService) CheckConflicts(ctx context.Context, startTime, endTime string, excludeID uuid.UUID) (*ConflictReport, error) {
	startMin, endMin, err := parseRange(startTime, endTime)
	if err != nil {
		return nil, err
	}

	active, err := s.Repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConflictReport{
		Overlapping: overlappingSlots(active, startMin, endMin, excludeID),
	}

	adj, err := s.FindAdjacent(ctx, excludeID, startMin, endMin)
	if err != nil {
		return nil, err
	}
	report.Adjacent = adj

	// Susun semua interval (existing minus exclude, plus kandidat) urut start.
	type span struct{ start, end int }
	spans := []span{{startMin, endMin}}
	for i := range active {
		if active[i].TimeSlotID == excludeID {
			continue
		}
		spans = append(spans, span{active[i].TimeSlotStartMin, active[i].TimeSlotEndMin})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	// Gap dihitung terhadap max end yang sudah terlewati, bukan end span
	// sebelumnya saja; span yang tercakup span lebih panjang tidak boleh
	// memunculkan gap palsu.
	prevEnd := spans[0].end
	for i := 1; i < len(spans); i++ {
		if spans[i].start > prevEnd {
			report.Gaps = append(report.Gaps, Gap{StartMin: prevEnd, EndMin: spans[i].start})
		}
		if spans[i].end > prevEnd {
			prevEnd = spans[i].end
		}
	}
	return report, nil
}

/* =========================
   Internal
   ========================= */

func parseRange(startTime, endTime string) (int, int, error) {
	startMin, err := ParseClock(startTime)
	if err != nil {
		return 0, 0, apierror.Validation(err.Error())
	}
	endMin, err := ParseClock(endTime)
	if err != nil {
		return 0, 0, apierror.Validation(err.Error())
	}
	if endMin <= startMin {
		return 0, 0, apierror.Validation("durasi slot harus > 0 (end harus setelah start)")
	}
	return startMin, endMin, nil
}

func overlappingSlots(active []m.TimeSlotModel, startMin, endMin int, excludeID uuid.UUID) []m.TimeSlotModel {
	var out []m.TimeSlotModel
	for i := range active {
		if active[i].TimeSlotID == excludeID {
			continue
		}
		if Overlaps(startMin, endMin, active[i].TimeSlotStartMin, active[i].TimeSlotEndMin) {
			out = append(out, active[i])
		}
	}
	return out
}
