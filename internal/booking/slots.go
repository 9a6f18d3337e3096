// Package booking owns the per-doctor slot state: an in-memory slot map used
// for availability views, and the conditional Mongo updates that reserve and
// release slots without racing concurrent requests.
package booking

import "errors"

var ErrSlotTaken = errors.New("slot not available")

// SlotMap maps a date string ("15/03/2025") to the list of times already
// booked on that date ("10:00", "10:30", ...). A time appears at most once
// per date.
type SlotMap map[string][]string

// Has reports whether the given time is already booked on the given date.
func (s SlotMap) Has(date, time string) bool {
	for _, t := range s[date] {
		if t == time {
			return true
		}
	}
	return false
}

// Reserve appends the time under the date key. It fails with ErrSlotTaken if
// the time is already present, leaving the map untouched.
func (s SlotMap) Reserve(date, time string) error {
	if s.Has(date, time) {
		return ErrSlotTaken
	}
	s[date] = append(s[date], time)
	return nil
}

// Release removes the time from the date's list. Releasing a time that is not
// booked is a no-op. An emptied date key is dropped.
func (s SlotMap) Release(date, time string) {
	times := s[date]
	for i, t := range times {
		if t == time {
			s[date] = append(times[:i:i], times[i+1:]...)
			break
		}
	}
	if len(s[date]) == 0 {
		delete(s, date)
	}
}

// Clone returns a deep copy, so callers can hand out slot views without
// exposing the stored slices.
func (s SlotMap) Clone() SlotMap {
	out := make(SlotMap, len(s))
	for date, times := range s {
		out[date] = append([]string(nil), times...)
	}
	return out
}
