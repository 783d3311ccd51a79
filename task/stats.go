package task

import "time"

// recentWindow is how far back Stats looks for recently completed tasks.
const recentWindow = 7 * 24 * time.Hour

// Stats summarizes a list.
type Stats struct {
	Active          int
	Completed       int
	Incomplete      int
	Archived        int
	OnTime          int
	Late            int
	CompletedRecent int
}

// Stats counts tasks across both sequences. OnTime, Late and
// CompletedRecent include archived tasks.
func (l *List) Stats(now time.Time) Stats {
	stats := Stats{
		Active:   len(l.tasks),
		Archived: len(l.archive),
	}
	for _, t := range l.tasks {
		if t.IsCompleted() {
			stats.Completed++
		} else {
			stats.Incomplete++
		}
	}

	all := make([]Task, 0, len(l.tasks)+len(l.archive))
	all = append(all, l.tasks...)
	all = append(all, l.archive...)
	for _, t := range all {
		completedAt, ok := t.CompletedAt()
		if !ok {
			continue
		}
		if t.kind.HasDeadline() {
			if t.CompletedOnTime() {
				stats.OnTime++
			} else {
				stats.Late++
			}
		}
		if !completedAt.Before(now.Add(-recentWindow)) {
			stats.CompletedRecent++
		}
	}
	return stats
}
