package medication

import (
	"sort"
	"strconv"
	"time"
)

// dueWindowMinutes is the half-width of the "due now" window around a
// scheduled time.
const dueWindowMinutes = 30

// minutesOfDay converts an "HH:MM" string to minutes since midnight.
// Times are validated on write, so a malformed value cannot reach here;
// anything unparseable sorts to midnight.
func minutesOfDay(hhmm string) int {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0
	}
	h, err := strconv.Atoi(hhmm[:2])
	if err != nil {
		return 0
	}
	m, err := strconv.Atoi(hhmm[3:])
	if err != nil {
		return 0
	}
	return h*60 + m
}

func classify(scheduled, now int) ScheduleStatus {
	delta := scheduled - now
	switch {
	case delta < -dueWindowMinutes:
		return StatusOverdue
	case delta <= dueWindowMinutes:
		return StatusDueNow
	default:
		return StatusUpcoming
	}
}

// ProjectTodaySchedule derives the day's reminder timeline from a user's
// active medications and the usage logged so far today. Daily medications
// contribute one entry per configured time, classified against now. PRN
// medications contribute one entry for the first usage logged today, always
// reported as upcoming since it records a completed dose. The result is a
// pure function of its arguments: callers re-invoke as time advances to keep
// statuses fresh.
//
// records must already be filtered to one user's active medications and
// usageToday to the same user's current local calendar day.
func ProjectTodaySchedule(records []*Medication, usageToday []*UsageLog, now time.Time) []ScheduleEntry {
	nowMin := now.Hour()*60 + now.Minute()

	var entries []ScheduleEntry
	for _, m := range records {
		if m.IsDaily {
			for _, t := range m.Times {
				entries = append(entries, ScheduleEntry{
					ID:            m.ID.String() + ":" + t,
					MedicationID:  m.ID,
					Name:          m.Name,
					Dosage:        m.Dosage,
					Type:          m.Type,
					Instruction:   m.Instruction,
					ScheduledTime: t,
					Status:        classify(minutesOfDay(t), nowMin),
					IsDaily:       true,
				})
			}
			continue
		}
		for _, u := range usageToday {
			if u.MedicationID != m.ID {
				continue
			}
			entries = append(entries, ScheduleEntry{
				ID:            m.ID.String() + ":" + u.TakenAt.Format(time.RFC3339),
				MedicationID:  m.ID,
				Name:          m.Name + " (PRN)",
				Dosage:        m.Dosage,
				Type:          m.Type,
				Instruction:   m.Instruction,
				ScheduledTime: u.TakenAt.Format("15:04"),
				Status:        StatusUpcoming,
				IsDaily:       false,
			})
			break
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return minutesOfDay(entries[i].ScheduledTime) < minutesOfDay(entries[j].ScheduledTime)
	})
	return entries
}

// ComputeStats folds a user's medications, the current projection and
// today's usage into dashboard counters. records holds all of the user's
// medications, active and inactive.
func ComputeStats(records []*Medication, entries []ScheduleEntry, usageToday []*UsageLog) Stats {
	stats := Stats{
		TotalMedications: len(records),
		PrnUsedToday:     len(usageToday),
	}
	for _, m := range records {
		if !m.IsActive {
			continue
		}
		if m.IsDaily {
			stats.ActiveDailyMedications++
			stats.TotalReminders += len(m.Times)
		} else {
			stats.ActivePrnMedications++
		}
	}
	for _, e := range entries {
		switch e.Status {
		case StatusOverdue:
			stats.OverdueMedications++
		case StatusDueNow:
			stats.MedicationsDueNow++
		}
	}
	return stats
}
