package presenter

// Loop drives periodic UI-thread work.
//
// It drains finished scans and invokes a scheduler callback. The zero value
// is usable (methods are nil-safe).
type Loop struct {
	Scan     *ScanPresenter
	Schedule func()
}

func NewLoop(scan *ScanPresenter, schedule func()) *Loop {
	return &Loop{Scan: scan, Schedule: schedule}
}

// Tick returns the number of scan results applied.
func (l *Loop) Tick() int {
	if l == nil {
		return 0
	}
	n := 0
	if l.Scan != nil {
		n = l.Scan.ProcessResults()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
	return n
}
