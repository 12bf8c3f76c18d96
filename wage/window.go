package wage

import "time"

// =============================================================================
// PREMIUM WINDOW RESOLUTION
// =============================================================================
// The premium window is a fixed weekly recurrence: it opens Friday at
// startHour:00 and closes the following Sunday at endHour:00. Resolution is
// a pure function of the timestamp; the only subtlety is Sunday before the
// closing hour, which still belongs to the window that opened two days prior.

// ResolveWindowStart returns the opening of the premium window that governs t.
//
// For a timestamp on Sunday strictly before endHour, the relevant opening is
// the previous Friday (t sits in the tail of last week's window). Otherwise
// it is the most recent Friday at or before t, same day allowed - meaning a
// Friday-morning timestamp resolves to an opening later that same day.
func ResolveWindowStart(t time.Time, startHour, endHour int) time.Time {
	if t.Weekday() == time.Sunday && t.Hour() < endHour {
		return atHour(previousWeekday(t, time.Friday), startHour)
	}
	return atHour(previousOrSameWeekday(t, time.Friday), startHour)
}

// WindowClose returns the closing bound for a window opening. The opening is
// always a Friday, so the close lands on the following Sunday at endHour.
func WindowClose(open time.Time, endHour int) time.Time {
	return atHour(open.AddDate(0, 0, 2), endHour)
}

// previousOrSameWeekday steps t back to the most recent occurrence of wd,
// keeping t's date if it already falls on wd.
func previousOrSameWeekday(t time.Time, wd time.Weekday) time.Time {
	diff := (int(t.Weekday()) - int(wd) + 7) % 7
	return t.AddDate(0, 0, -diff)
}

// previousWeekday steps t back to the closest occurrence of wd strictly
// before t's date.
func previousWeekday(t time.Time, wd time.Weekday) time.Time {
	diff := (int(t.Weekday()) - int(wd) + 7) % 7
	if diff == 0 {
		diff = 7
	}
	return t.AddDate(0, 0, -diff)
}

// atHour truncates t to its date and sets the given whole hour.
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
