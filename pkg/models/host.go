package models

// Host is one monitored host rebuilt from broks. Fields ending in Name or
// Names carry the raw references from the wire; the linker resolves them
// into the typed fields and clears them, so a linked host never exposes a
// raw name where an object reference belongs.
type Host struct {
	ID         string
	InstanceID string

	Name        string
	DisplayName string
	Alias       string
	Address     string
	RealmName   string
	Notes       string
	NotesURL    string
	ActionURL   string

	State                  string
	StateType              string
	LastState              string
	LastCheck              int64
	NextCheck              int64
	LastStateChange        int64
	Output                 string
	LongOutput             string
	PerfData               string
	Latency                float64
	ExecutionTime          float64
	Attempt                int
	MaxCheckAttempts       int
	Acknowledged           bool
	NotificationsEnabled   bool
	ActiveChecksEnabled    bool
	PassiveChecksEnabled   bool
	EventHandlerEnabled    bool
	FlapDetectionEnabled   bool
	IsFlapping             bool
	PercentStateChange     float64
	ScheduledDowntimeDepth int
	BusinessImpact         int

	Tags []string

	// Unresolved references, populated from brok data and consumed by the
	// linker.
	GroupNames             []string
	ContactNames           []string
	ContactGroupNames      []string
	CheckCommandName       string
	EventHandlerName       string
	NotificationPeriodName string
	CheckPeriodName        string
	MaintenancePeriodName  string
	ParentNames            []string
	ChildNames             []string
	RawImpacts             MixedRefs
	RawSourceProblems      MixedRefs
	RawParentDependencies  MixedRefs
	RawChildDependencies   MixedRefs

	// Resolved references.
	Groups             []*HostGroup
	Contacts           []*Contact
	CheckCommand       *CommandCall
	EventHandler       *CommandCall
	NotificationPeriod *Timeperiod
	CheckPeriod        *Timeperiod
	MaintenancePeriod  *Timeperiod
	Parents            []*Host
	Children           []*Host
	Impacts            []Item
	SourceProblems     []Item
	ParentDependencies []Item
	ChildDependencies  []Item

	Services  []*Service
	Downtimes []*Downtime
	Comments  []*Comment
}

func (h *Host) ItemID() string   { return h.ID }
func (h *Host) ItemName() string { return h.Name }
func (h *Host) Instance() string { return h.InstanceID }

// FindService returns the host's service with the given description, or nil.
func (h *Host) FindService(description string) *Service {
	for _, s := range h.Services {
		if s.Description == description {
			return s
		}
	}

	return nil
}

// RemoveService drops a service from the host's service list.
func (h *Host) RemoveService(svc *Service) {
	for i, s := range h.Services {
		if s == svc {
			h.Services = append(h.Services[:i], h.Services[i+1:]...)
			return
		}
	}
}
