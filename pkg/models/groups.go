package models

// HostGroup is a named set of hosts. MemberRefs holds the raw membership
// from the dump; Members holds live hosts after linking.
type HostGroup struct {
	ID         string
	InstanceID string
	Name       string
	Alias      string
	Notes      string

	MemberRefs []MemberRef
	Members    []*Host

	// Names of nested groups. The dump never resolves these.
	GroupNames []string
}

// ServiceGroup is a named set of services; membership is keyed by service
// identifier in the dump.
type ServiceGroup struct {
	ID         string
	InstanceID string
	Name       string
	Alias      string
	Notes      string

	MemberRefs []MemberRef
	Members    []*Service

	GroupNames []string
}

// ContactGroup is a named set of contacts; membership is keyed by contact
// name in the dump.
type ContactGroup struct {
	ID         string
	InstanceID string
	Name       string
	Alias      string

	MemberRefs []MemberRef
	Members    []*Contact

	GroupNames []string
}
