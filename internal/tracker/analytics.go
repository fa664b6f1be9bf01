package tracker

// Analytics are read-only derivations over a habit's event history. They
// rely on events being stored in window order, an invariant Reconcile
// maintains; events inserted through a bypass path void that assumption.

// LongestStreak returns the longest run of consecutive successful windows
// for one habit. Callers report 0 or 1 as "no streak": by this design's
// convention a streak requires at least two consecutive successes.
func (t *Tracker) LongestStreak(habitID int64) (int, error) {
	events, err := t.store.Events(habitID)
	if err != nil {
		return 0, err
	}

	count, highest := 0, 0
	for _, e := range events {
		if e.Completed {
			count++
		} else {
			count = 0
		}
		if count > highest {
			highest = count
		}
	}
	return highest, nil
}

// LongestStreakAll runs the single-habit streak computation over every
// stored habit and returns the id achieving the global maximum. Ties keep
// the first habit in id order. When no habit has any successful event the
// sentinel (0, 0) is returned.
func (t *Tracker) LongestStreakAll() (int64, int, error) {
	ids, err := t.store.AllHabitIDs()
	if err != nil {
		return 0, 0, err
	}

	var bestID int64
	best := 0
	for _, id := range ids {
		streak, err := t.LongestStreak(id)
		if err != nil {
			return 0, 0, err
		}
		if streak > best {
			best = streak
			bestID = id
		}
	}
	return bestID, best, nil
}

// TimeInvested sums the minutes of a habit's successful events. Failure
// events contribute nothing; their time is already forced to zero at write
// time. hasEvents distinguishes a habit without history from one whose
// total happens to be zero.
func (t *Tracker) TimeInvested(habitID int64) (total int, hasEvents bool, err error) {
	events, err := t.store.Events(habitID)
	if err != nil {
		return 0, false, err
	}
	if len(events) == 0 {
		return 0, false, nil
	}

	for _, e := range events {
		if e.Completed {
			total += e.Time
		}
	}
	return total, true, nil
}
