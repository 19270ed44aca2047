package models

// Contact is a notification recipient. Contacts are shared across scheduler
// instances and upserted by name.
type Contact struct {
	ID         string
	InstanceID string
	Name       string
	Alias      string
	Email      string
	Pager      string
	Address1   string

	HostNotificationsEnabled    bool
	ServiceNotificationsEnabled bool
	CanSubmitCommands           bool
	MinBusinessImpact           int

	// Unresolved notification-way references (identifiers), when the dump
	// sends references instead of inline objects.
	NotificationWayRefs []string
	NotificationWays    []*NotificationWay
}

// NotificationWay ties notification commands to notification periods.
// Shared across instances and upserted by name.
type NotificationWay struct {
	ID   string
	Name string

	HostNotificationsEnabled    bool
	ServiceNotificationsEnabled bool
	MinBusinessImpact           int

	HostNotificationCommandNames    []string
	ServiceNotificationCommandNames []string
	HostNotificationPeriodName      string
	ServiceNotificationPeriodName   string

	HostNotificationCommands    []*CommandCall
	ServiceNotificationCommands []*CommandCall
	HostNotificationPeriod      *Timeperiod
	ServiceNotificationPeriod   *Timeperiod
}
