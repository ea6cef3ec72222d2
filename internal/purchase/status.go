package purchase

import "time"

// EffectiveStatus derives the status shown to users. It is evaluated on every
// read so OVERDUE follows directly from the clock and the due date.
func EffectiveStatus(p *Purchase, now time.Time) Status {
	if p.Outstanding().IsZero() && p.Status != StatusCancelled {
		return StatusCompleted
	}

	if p.Status == StatusActive && p.DueDate != nil {
		deadline := p.DueDate.AddDate(0, 0, p.Policy.GraceDays)
		if now.After(deadline) {
			return StatusOverdue
		}
	}

	return p.Status
}

// StoredCandidates lists the stored statuses a purchase may have for
// EffectiveStatus to return s. List queries fetch these and then filter
// with EffectiveStatus so every read path agrees on derived statuses.
func StoredCandidates(s Status) []Status {
	switch s {
	case StatusOverdue:
		return []Status{StatusActive}
	case StatusCompleted:
		return []Status{StatusActive, StatusPending, StatusCompleted, StatusDefaulted}
	}

	return []Status{s}
}
