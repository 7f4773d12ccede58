package probe

// Capability is an optional in-process data source (a library that may not
// be able to do anything useful on this host). Each is attempted exactly
// once at process start; collectors consult the resulting Set instead of
// re-checking ad hoc.
type Capability struct {
	Name     string
	Guidance string
	Probe    func() bool
}

// Set holds the startup availability of every configured capability. It is
// immutable after Resolve and safe to share across collectors.
type Set struct {
	have    map[string]bool
	missing []Capability
}

// Resolve attempts each capability probe once and records the outcome.
func Resolve(caps []Capability) *Set {
	s := &Set{have: make(map[string]bool, len(caps))}
	for _, c := range caps {
		ok := c.Probe()
		s.have[c.Name] = ok
		if !ok {
			s.missing = append(s.missing, c)
		}
	}
	return s
}

// FixedSet builds a Set with predetermined availability, for tests and for
// forcing degraded runs. Capabilities named in available are present; the
// rest of all are missing.
func FixedSet(all []Capability, available ...string) *Set {
	avail := make(map[string]bool, len(available))
	for _, name := range available {
		avail[name] = true
	}
	s := &Set{have: make(map[string]bool, len(all))}
	for _, c := range all {
		s.have[c.Name] = avail[c.Name]
		if !avail[c.Name] {
			s.missing = append(s.missing, c)
		}
	}
	return s
}

// Has reports whether the named capability resolved as available. Unknown
// names are unavailable.
func (s *Set) Has(name string) bool {
	return s.have[name]
}

// Missing returns the capabilities that failed their startup probe, in
// configuration order.
func (s *Set) Missing() []Capability {
	return s.missing
}
