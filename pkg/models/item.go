package models

// Item is a monitored object: a host or a service. Downtimes, comments and
// the mixed impact/source-problem lists reference both kinds through this
// interface.
type Item interface {
	ItemID() string
	ItemName() string
	Instance() string
}

// Downtime is a scheduled maintenance window attached to a host or service.
type Downtime struct {
	ID         string
	Ref        Item
	Author     string
	Comment    string
	StartTime  int64
	EndTime    int64
	Duration   int64
	Fixed      bool
	IsInEffect bool
}

// Comment is an operator note attached to a host or service. Comments
// rebuilt from broks are always marked persistent.
type Comment struct {
	ID         string
	Ref        Item
	Author     string
	Comment    string
	EntryTime  int64
	Persistent bool
}

// MemberRef is one unresolved group-membership entry from a bulk dump:
// an (id, name) pair. Older daemons send only the name.
type MemberRef struct {
	ID   string
	Name string
}

// MixedRefs holds an unresolved impact/source-problem/dependency reference
// set. Newer daemons send a flat list of identifiers; older ones send
// separate host-name and "host/description" service lists.
type MixedRefs struct {
	IDs      []string
	Hosts    []string
	Services []string
}

// Empty reports whether no reference of any shape is present.
func (m MixedRefs) Empty() bool {
	return len(m.IDs) == 0 && len(m.Hosts) == 0 && len(m.Services) == 0
}
