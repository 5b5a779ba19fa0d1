package agent

import "time"

type ManagerOpt func(*Manager)

// WithDefaultMaxActions sets the budget used when Launch gets zero.
func WithDefaultMaxActions(n int) ManagerOpt {
	return func(m *Manager) {
		if n > 0 {
			m.defaultMaxActions = n
		}
	}
}

// WithReaper enables cleanup of terminal sessions older than retention.
func WithReaper(r Reaper, retention time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.reaper = r
		m.retention = retention
	}
}

// WithRunCountHook is called with the live run count whenever it changes.
func WithRunCountHook(fn func(n int)) ManagerOpt {
	return func(m *Manager) {
		m.onRunCount = fn
	}
}
