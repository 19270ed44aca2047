package models

// DaemonRole identifies which tier of the monitoring framework a peer
// daemon belongs to.
type DaemonRole string

const (
	RoleScheduler   DaemonRole = "scheduler"
	RolePoller      DaemonRole = "poller"
	RoleReactionner DaemonRole = "reactionner"
	RoleBroker      DaemonRole = "broker"
	RoleReceiver    DaemonRole = "receiver"
)

// DaemonLink is the liveness record for one peer daemon, keyed by name and
// refreshed by heartbeat broks.
type DaemonLink struct {
	ID   string
	Name string
	Role DaemonRole

	Address string
	Port    int

	Alive         bool
	Reachable     bool
	Passive       bool
	Spare         bool
	LastCheck     int64
	CheckInterval int
}

// InstanceConfig is the per-source generation record established by a
// program_status brok. Its timestamp implements the duplicate-dump guard.
type InstanceConfig struct {
	ID         string
	InstanceID string
	Timestamp  int64

	ProgramStart         int64
	PID                  int
	DaemonMode           bool
	NotificationsEnabled bool
	ActiveChecksEnabled  bool
	PassiveChecksEnabled bool
	EventHandlersEnabled bool
	FlapDetectionEnabled bool
	Interval             int
}
