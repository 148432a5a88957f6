package conn

import "sync"

var driverInit sync.Once

// EnsureDriversRegistered runs register exactly once for the lifetime of
// the process, however many goroutines call it concurrently: a guard for a
// driver initialization that must not run twice. None of the backend
// packages call it; their drivers register themselves on import.
func EnsureDriversRegistered(register func()) {
	driverInit.Do(register)
}
