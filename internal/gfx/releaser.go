package gfx

// Releaser is a stack of cleanup functions. Release runs them in reverse
// push order, so resources die in the reverse of their creation order.
type Releaser struct {
	entries []releaseEntry
}

type releaseEntry struct {
	name string
	fn   func()
}

// Push registers the release of a freshly created resource.
func (r *Releaser) Push(name string, fn func()) {
	r.entries = append(r.entries, releaseEntry{name: name, fn: fn})
}

// Len returns the number of pending releases.
func (r *Releaser) Len() int {
	return len(r.entries)
}

// Release unwinds the stack. Calling it again is a no-op.
func (r *Releaser) Release() {
	for i := len(r.entries) - 1; i >= 0; i-- {
		entry := r.entries[i]
		Logger().WithField("resource", entry.name).Debug("releasing")
		entry.fn()
	}
	r.entries = nil
}
