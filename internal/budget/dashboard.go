package budget

import (
	"time"

	"github.com/daileit/wedding-planner/internal/domain"
)

// DeadlineWindow is how far ahead an item's due date counts as upcoming.
const DeadlineWindow = 7 * 24 * time.Hour

// Dashboard summarises all plans of one user.
type Dashboard struct {
	TotalPlans        int
	ActivePlans       int
	CompletedItems    int
	PendingItems      int
	UpcomingDeadlines int
}

// Summarize counts items across plans. Cancelled items are neither completed
// nor pending; upcoming deadlines skip terminal items and anything overdue.
func Summarize(plans []*domain.Plan, now time.Time) Dashboard {
	d := Dashboard{TotalPlans: len(plans)}
	horizon := now.Add(DeadlineWindow)

	for _, p := range plans {
		if p.Status == domain.PlanStatusActive {
			d.ActivePlans++
		}

		for _, it := range p.AllItems() {
			switch {
			case it.Status == domain.ItemStatusCompleted:
				d.CompletedItems++
			case !it.Status.Terminal():
				d.PendingItems++
			}

			if it.Status.Terminal() || it.DueDate == nil {
				continue
			}

			if !it.DueDate.Before(now) && !it.DueDate.After(horizon) {
				d.UpcomingDeadlines++
			}
		}
	}

	return d
}
