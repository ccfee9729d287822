package registry

import "sync"

// Picker selects one instance per pool, round-robin across calls.
type Picker struct {
	reg Registry

	mu   sync.Mutex
	next map[string]int
}

func NewPicker(reg Registry) *Picker {
	return &Picker{reg: reg, next: map[string]int{}}
}

// Pick returns the next instance of the pool, or "" when the pool is empty
// or unknown.
func (p *Picker) Pick(pool string) string {
	instances := p.reg.Lookup(pool)
	if len(instances) == 0 {
		return ""
	}

	p.mu.Lock()
	i := p.next[pool]
	p.next[pool] = i + 1
	p.mu.Unlock()

	return instances[i%len(instances)]
}
