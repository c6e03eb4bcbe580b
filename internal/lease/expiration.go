package lease

import "time"

// Bucket groups leases by how soon they expire.
type Bucket string

const (
	BucketExpired Bucket = "expired"
	BucketUrgent  Bucket = "urgent"
	BucketWarning Bucket = "warning"
	BucketNormal  Bucket = "normal"
)

const (
	UrgentDays  = 30
	WarningDays = 90
)

// DaysUntilExpiration returns the number of calendar days (UTC) from now to the
// lease end date. It is negative once the end date has passed.
func DaysUntilExpiration(l *Lease, now time.Time) int {
	return int((dateOnly(l.EndDate).Unix() - dateOnly(now).Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

func BucketFor(days int) Bucket {
	switch {
	case days < 0:
		return BucketExpired
	case days <= UrgentDays:
		return BucketUrgent
	case days <= WarningDays:
		return BucketWarning
	default:
		return BucketNormal
	}
}

// EffectiveStatus is the status a reader should see: an ACTIVE lease whose end
// date has passed reads as EXPIRED without being rewritten in storage.
func EffectiveStatus(l *Lease, now time.Time) Status {
	if l.Status == StatusActive && DaysUntilExpiration(l, now) < 0 {
		return StatusExpired
	}

	return l.Status
}
