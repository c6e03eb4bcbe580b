package lease

import "time"

// Stats is the fixed-shape lease dashboard summary.
type Stats struct {
	TotalLeases            int
	ByStatus               map[Status]int
	ActiveLeases           int
	DraftLeases            int
	PendingSignatureLeases int
	ExpiredLeases          int
	TerminatedLeases       int
	ExpiringWithin30       int
	ExpiringWithin90       int
	TerminatedThisMonth    int
}

// Summarize counts leases by effective status in a single pass.
func Summarize(leases []*Lease, now time.Time) Stats {
	s := Stats{ByStatus: make(map[Status]int, len(Statuses))}
	for _, st := range Statuses {
		s.ByStatus[st] = 0
	}

	year, month, _ := now.UTC().Date()

	for _, l := range leases {
		status := EffectiveStatus(l, now)

		s.TotalLeases++
		s.ByStatus[status]++

		switch status {
		case StatusActive:
			s.ActiveLeases++

			days := DaysUntilExpiration(l, now)
			if days >= 0 && days <= UrgentDays {
				s.ExpiringWithin30++
			}

			if days >= 0 && days <= WarningDays {
				s.ExpiringWithin90++
			}
		case StatusDraft:
			s.DraftLeases++
		case StatusPendingSignature:
			s.PendingSignatureLeases++
		case StatusExpired:
			s.ExpiredLeases++
		case StatusTerminated:
			s.TerminatedLeases++

			if l.TerminatedAt != nil {
				ty, tm, _ := l.TerminatedAt.UTC().Date()
				if ty == year && tm == month {
					s.TerminatedThisMonth++
				}
			}
		}
	}

	return s
}
