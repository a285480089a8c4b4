package engine

import "time"

// monthWindow returns the inclusive wall-clock window of the calendar month
// containing t, from the first instant of day one to the last instant of
// the final day. A transaction dated exactly on a boundary belongs to the
// month whose window contains it.
func monthWindow(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// monthStart returns the first instant of the month n months before the
// month containing t (n = 0 is the current month).
func monthStart(t time.Time, n int) time.Time {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start.AddDate(0, -n, 0)
}
