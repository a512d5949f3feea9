// file: internals/features/school/time_slots/service/interval.go
package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

/* =========================
   Interval waktu (menit sejak 00:00)
   ========================= */

const minutesPerDay = 1440

var clockRe = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ParseClock: "HH:MM" → menit sejak tengah malam.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if !clockRe.MatchString(s) {
		return 0, fmt.Errorf("format jam invalid (want HH:MM): %q", s)
	}
	parts := strings.SplitN(s, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m, nil
}

// FormatClock: menit sejak tengah malam → "HH:MM".
func FormatClock(min int) string {
	min = ((min % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// DurationMinutes menghitung durasi start→end.
// Kalau end < start, dihitung melewati tengah malam: (1440-start)+end.
// Cabang wrap ini warisan perilaku lama; validasi slot menolak durasi
// non-positif lebih dulu, jadi cabang ini tidak pernah jadi dasar
// perilaku baru.
func DurationMinutes(startMin, endMin int) int {
	if endMin < startMin {
		return (minutesPerDay - startMin) + endMin
	}
	return endMin - startMin
}

// Overlaps: semantik half-open — endpoint yang bersentuhan TIDAK overlap.
func Overlaps(s1, e1, s2, e2 int) bool {
	return s1 < e2 && e1 > s2
}

// IsAdjacent: interval pertama berakhir tepat saat interval kedua mulai.
func IsAdjacent(e1, s2 int) bool {
	return e1 == s2
}
