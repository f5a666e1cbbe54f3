package proxy

// Cycle hands out proxies from an ordered list in round-robin order.
// It is driven from the single-threaded dispatch loop before any
// concurrent work starts, so it needs no locking.
type Cycle struct {
	proxies []string
	next    int
}

// NewCycle creates a cycle over the given proxies. An empty or nil list
// yields a cycle that never assigns a proxy.
func NewCycle(proxies []string) *Cycle {
	return &Cycle{proxies: proxies}
}

// Next returns the next proxy in the cycle and true, wrapping after the
// last entry. It returns "", false forever when the cycle is empty.
func (c *Cycle) Next() (string, bool) {
	if len(c.proxies) == 0 {
		return "", false
	}
	p := c.proxies[c.next]
	c.next = (c.next + 1) % len(c.proxies)
	return p, true
}

// Assign materializes the next n assignments as a slice, so each unit of
// work owns its proxy before fan-out begins. Entries are "" when no proxy
// is available. Address i gets proxy i mod P for a list of P proxies.
func (c *Cycle) Assign(n int) []string {
	assigned := make([]string, n)
	for i := range assigned {
		assigned[i], _ = c.Next()
	}
	return assigned
}
