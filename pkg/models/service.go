package models

// Service is one monitored service rebuilt from broks. Same raw-vs-resolved
// field convention as Host.
type Service struct {
	ID         string
	InstanceID string

	HostName    string
	Description string
	DisplayName string
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

	// Unresolved references.
	GroupIDs               []string
	ContactNames           []string
	ContactGroupNames      []string
	CheckCommandName       string
	EventHandlerName       string
	NotificationPeriodName string
	CheckPeriodName        string
	MaintenancePeriodName  string
	RawImpacts             MixedRefs
	RawSourceProblems      MixedRefs
	RawParentDependencies  MixedRefs
	RawChildDependencies   MixedRefs

	// Resolved references.
	Host               *Host
	Groups             []*ServiceGroup
	Contacts           []*Contact
	CheckCommand       *CommandCall
	EventHandler       *CommandCall
	NotificationPeriod *Timeperiod
	CheckPeriod        *Timeperiod
	MaintenancePeriod  *Timeperiod
	Impacts            []Item
	SourceProblems     []Item
	ParentDependencies []Item
	ChildDependencies  []Item

	Downtimes []*Downtime
	Comments  []*Comment
}

func (s *Service) ItemID() string { return s.ID }

// ItemName is the "host/description" form used by cross-references.
func (s *Service) ItemName() string { return s.HostName + "/" + s.Description }

func (s *Service) Instance() string { return s.InstanceID }
