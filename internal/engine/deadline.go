package engine

import "time"

// Deadline is a one-shot timer measured in run time rather than wall time,
// so it freezes with the run while paused and cannot fire after a reset.
// The zero value is disarmed.
type Deadline struct {
	at    time.Duration
	armed bool
}

// Arm (re)starts the deadline to expire d after now. Re-arming replaces the
// previous expiry instead of extending it.
func (d *Deadline) Arm(now, dur time.Duration) {
	d.at = now + dur
	d.armed = true
}

// Cancel disarms the deadline. Cancelling a disarmed deadline is a no-op.
func (d *Deadline) Cancel() {
	d.armed = false
	d.at = 0
}

// Armed reports whether the deadline is pending.
func (d *Deadline) Armed() bool {
	return d.armed
}

// At returns the expiry run time, or zero when disarmed.
func (d *Deadline) At() time.Duration {
	return d.at
}

// Remaining returns the time left before expiry, or zero when disarmed.
func (d *Deadline) Remaining(now time.Duration) time.Duration {
	if !d.armed || now >= d.at {
		return 0
	}
	return d.at - now
}

// Fire disarms the deadline and returns true if it was armed and now >= expiry.
func (d *Deadline) Fire(now time.Duration) bool {
	if !d.armed || now < d.at {
		return false
	}
	d.Cancel()
	return true
}
