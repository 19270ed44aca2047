package regen

import (
	"github.com/carverauto/brokview/pkg/models"
)

// Every entity kind has an explicit merge function over a fixed field
// list, so the set of copyable fields is a compile-time contract. A key
// absent from the data leaves the field untouched.

func applyHostData(h *models.Host, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		h.ID = id
	}

	if id, ok := getIdentifier(data, "instance_id"); ok {
		h.InstanceID = id
	}

	if v, ok := getString(data, "host_name"); ok {
		h.Name = v
	}

	if v, ok := getString(data, "display_name"); ok {
		h.DisplayName = v
	}

	if v, ok := getString(data, "alias"); ok {
		h.Alias = v
	}

	if v, ok := getString(data, "address"); ok {
		h.Address = v
	}

	if v, ok := getString(data, "realm_name"); ok {
		h.RealmName = v
	}

	if v, ok := getString(data, "notes"); ok {
		h.Notes = v
	}

	if v, ok := getString(data, "notes_url"); ok {
		h.NotesURL = v
	}

	if v, ok := getString(data, "action_url"); ok {
		h.ActionURL = v
	}

	applyHostCheckData(h, data)

	if v, ok := getStringList(data, "tags"); ok {
		h.Tags = v
	}

	// Raw relationship references, resolved later by the linker.
	if v, ok := getNameList(data, "hostgroups"); ok {
		h.GroupNames = v
	}

	if v, ok := getStringList(data, "contacts"); ok {
		h.ContactNames = v
	}

	if v, ok := getStringList(data, "contact_groups"); ok {
		h.ContactGroupNames = v
	}

	if v, ok := getString(data, "check_command"); ok {
		h.CheckCommandName = v
	}

	if v, ok := getString(data, "event_handler"); ok {
		h.EventHandlerName = v
	}

	if v, ok := getString(data, "notification_period"); ok {
		h.NotificationPeriodName = v
	}

	if v, ok := getString(data, "check_period"); ok {
		h.CheckPeriodName = v
	}

	if v, ok := getString(data, "maintenance_period"); ok {
		h.MaintenancePeriodName = v
	}

	if v, ok := getStringList(data, "parents"); ok {
		h.ParentNames = v
	}

	if v, ok := getStringList(data, "childs"); ok {
		h.ChildNames = v
	}

	if _, ok := data["impacts"]; ok {
		h.RawImpacts = getMixedRefs(data, "impacts")
	}

	if _, ok := data["source_problems"]; ok {
		h.RawSourceProblems = getMixedRefs(data, "source_problems")
	}

	if _, ok := data["parent_dependencies"]; ok {
		h.RawParentDependencies = getMixedRefs(data, "parent_dependencies")
	}

	if _, ok := data["child_dependencies"]; ok {
		h.RawChildDependencies = getMixedRefs(data, "child_dependencies")
	}

	if v, ok := data["downtimes"]; ok {
		h.Downtimes = decodeDowntimes(v, h)
	}

	if v, ok := data["comments"]; ok {
		h.Comments = decodeComments(v, h)
	}
}

// applyHostCheckData covers the scalar check-state fields shared by full
// status dumps and check-result broks.
func applyHostCheckData(h *models.Host, data map[string]interface{}) {
	if v, ok := getString(data, "state"); ok {
		h.State = v
	}

	if v, ok := getString(data, "state_type"); ok {
		h.StateType = v
	}

	if v, ok := getString(data, "last_state"); ok {
		h.LastState = v
	}

	if v, ok := getInt64(data, "last_chk"); ok {
		h.LastCheck = v
	}

	if v, ok := getInt64(data, "next_chk"); ok {
		h.NextCheck = v
	}

	if v, ok := getInt64(data, "last_state_change"); ok {
		h.LastStateChange = v
	}

	if v, ok := getString(data, "output"); ok {
		h.Output = v
	}

	if v, ok := getString(data, "long_output"); ok {
		h.LongOutput = v
	}

	if v, ok := getString(data, "perf_data"); ok {
		h.PerfData = v
	}

	if v, ok := getFloat(data, "latency"); ok {
		h.Latency = v
	}

	if v, ok := getFloat(data, "execution_time"); ok {
		h.ExecutionTime = v
	}

	if v, ok := getInt(data, "attempt"); ok {
		h.Attempt = v
	}

	if v, ok := getInt(data, "max_check_attempts"); ok {
		h.MaxCheckAttempts = v
	}

	if v, ok := getBool(data, "problem_has_been_acknowledged"); ok {
		h.Acknowledged = v
	}

	if v, ok := getBool(data, "notifications_enabled"); ok {
		h.NotificationsEnabled = v
	}

	if v, ok := getBool(data, "active_checks_enabled"); ok {
		h.ActiveChecksEnabled = v
	}

	if v, ok := getBool(data, "passive_checks_enabled"); ok {
		h.PassiveChecksEnabled = v
	}

	if v, ok := getBool(data, "event_handler_enabled"); ok {
		h.EventHandlerEnabled = v
	}

	if v, ok := getBool(data, "flap_detection_enabled"); ok {
		h.FlapDetectionEnabled = v
	}

	if v, ok := getBool(data, "is_flapping"); ok {
		h.IsFlapping = v
	}

	if v, ok := getFloat(data, "percent_state_change"); ok {
		h.PercentStateChange = v
	}

	if v, ok := getInt(data, "scheduled_downtime_depth"); ok {
		h.ScheduledDowntimeDepth = v
	}

	if v, ok := getInt(data, "business_impact"); ok {
		h.BusinessImpact = v
	}
}

func applyServiceData(s *models.Service, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		s.ID = id
	}

	if id, ok := getIdentifier(data, "instance_id"); ok {
		s.InstanceID = id
	}

	if v, ok := getString(data, "host_name"); ok {
		s.HostName = v
	}

	if v, ok := getString(data, "service_description"); ok {
		s.Description = v
	}

	if v, ok := getString(data, "display_name"); ok {
		s.DisplayName = v
	}

	if v, ok := getString(data, "notes"); ok {
		s.Notes = v
	}

	if v, ok := getString(data, "notes_url"); ok {
		s.NotesURL = v
	}

	if v, ok := getString(data, "action_url"); ok {
		s.ActionURL = v
	}

	applyServiceCheckData(s, data)

	if v, ok := getStringList(data, "tags"); ok {
		s.Tags = v
	}

	if v, ok := getStringList(data, "servicegroups"); ok {
		s.GroupIDs = v
	}

	if v, ok := getStringList(data, "contacts"); ok {
		s.ContactNames = v
	}

	if v, ok := getStringList(data, "contact_groups"); ok {
		s.ContactGroupNames = v
	}

	if v, ok := getString(data, "check_command"); ok {
		s.CheckCommandName = v
	}

	if v, ok := getString(data, "event_handler"); ok {
		s.EventHandlerName = v
	}

	if v, ok := getString(data, "notification_period"); ok {
		s.NotificationPeriodName = v
	}

	if v, ok := getString(data, "check_period"); ok {
		s.CheckPeriodName = v
	}

	if v, ok := getString(data, "maintenance_period"); ok {
		s.MaintenancePeriodName = v
	}

	if _, ok := data["impacts"]; ok {
		s.RawImpacts = getMixedRefs(data, "impacts")
	}

	if _, ok := data["source_problems"]; ok {
		s.RawSourceProblems = getMixedRefs(data, "source_problems")
	}

	if _, ok := data["parent_dependencies"]; ok {
		s.RawParentDependencies = getMixedRefs(data, "parent_dependencies")
	}

	if _, ok := data["child_dependencies"]; ok {
		s.RawChildDependencies = getMixedRefs(data, "child_dependencies")
	}

	if v, ok := data["downtimes"]; ok {
		s.Downtimes = decodeDowntimes(v, s)
	}

	if v, ok := data["comments"]; ok {
		s.Comments = decodeComments(v, s)
	}
}

func applyServiceCheckData(s *models.Service, data map[string]interface{}) {
	if v, ok := getString(data, "state"); ok {
		s.State = v
	}

	if v, ok := getString(data, "state_type"); ok {
		s.StateType = v
	}

	if v, ok := getString(data, "last_state"); ok {
		s.LastState = v
	}

	if v, ok := getInt64(data, "last_chk"); ok {
		s.LastCheck = v
	}

	if v, ok := getInt64(data, "next_chk"); ok {
		s.NextCheck = v
	}

	if v, ok := getInt64(data, "last_state_change"); ok {
		s.LastStateChange = v
	}

	if v, ok := getString(data, "output"); ok {
		s.Output = v
	}

	if v, ok := getString(data, "long_output"); ok {
		s.LongOutput = v
	}

	if v, ok := getString(data, "perf_data"); ok {
		s.PerfData = v
	}

	if v, ok := getFloat(data, "latency"); ok {
		s.Latency = v
	}

	if v, ok := getFloat(data, "execution_time"); ok {
		s.ExecutionTime = v
	}

	if v, ok := getInt(data, "attempt"); ok {
		s.Attempt = v
	}

	if v, ok := getInt(data, "max_check_attempts"); ok {
		s.MaxCheckAttempts = v
	}

	if v, ok := getBool(data, "problem_has_been_acknowledged"); ok {
		s.Acknowledged = v
	}

	if v, ok := getBool(data, "notifications_enabled"); ok {
		s.NotificationsEnabled = v
	}

	if v, ok := getBool(data, "active_checks_enabled"); ok {
		s.ActiveChecksEnabled = v
	}

	if v, ok := getBool(data, "passive_checks_enabled"); ok {
		s.PassiveChecksEnabled = v
	}

	if v, ok := getBool(data, "event_handler_enabled"); ok {
		s.EventHandlerEnabled = v
	}

	if v, ok := getBool(data, "flap_detection_enabled"); ok {
		s.FlapDetectionEnabled = v
	}

	if v, ok := getBool(data, "is_flapping"); ok {
		s.IsFlapping = v
	}

	if v, ok := getFloat(data, "percent_state_change"); ok {
		s.PercentStateChange = v
	}

	if v, ok := getInt(data, "scheduled_downtime_depth"); ok {
		s.ScheduledDowntimeDepth = v
	}

	if v, ok := getInt(data, "business_impact"); ok {
		s.BusinessImpact = v
	}
}

func applyContactData(c *models.Contact, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		c.ID = id
	}

	if id, ok := getIdentifier(data, "instance_id"); ok {
		c.InstanceID = id
	}

	if v, ok := getString(data, "contact_name"); ok {
		c.Name = v
	}

	if v, ok := getString(data, "alias"); ok {
		c.Alias = v
	}

	if v, ok := getString(data, "email"); ok {
		c.Email = v
	}

	if v, ok := getString(data, "pager"); ok {
		c.Pager = v
	}

	if v, ok := getString(data, "address1"); ok {
		c.Address1 = v
	}

	if v, ok := getBool(data, "host_notifications_enabled"); ok {
		c.HostNotificationsEnabled = v
	}

	if v, ok := getBool(data, "service_notifications_enabled"); ok {
		c.ServiceNotificationsEnabled = v
	}

	if v, ok := getBool(data, "can_submit_commands"); ok {
		c.CanSubmitCommands = v
	}

	if v, ok := getInt(data, "min_business_impact"); ok {
		c.MinBusinessImpact = v
	}
}

func applyNotificationWayData(nw *models.NotificationWay, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		nw.ID = id
	}

	if v, ok := getString(data, "notificationway_name"); ok {
		nw.Name = v
	}

	if v, ok := getBool(data, "host_notifications_enabled"); ok {
		nw.HostNotificationsEnabled = v
	}

	if v, ok := getBool(data, "service_notifications_enabled"); ok {
		nw.ServiceNotificationsEnabled = v
	}

	if v, ok := getInt(data, "min_business_impact"); ok {
		nw.MinBusinessImpact = v
	}

	if v, ok := getStringList(data, "host_notification_commands"); ok {
		nw.HostNotificationCommandNames = v
	}

	if v, ok := getStringList(data, "service_notification_commands"); ok {
		nw.ServiceNotificationCommandNames = v
	}

	if v, ok := getString(data, "host_notification_period"); ok {
		nw.HostNotificationPeriodName = v
	}

	if v, ok := getString(data, "service_notification_period"); ok {
		nw.ServiceNotificationPeriodName = v
	}
}

func applyTimeperiodData(tp *models.Timeperiod, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		tp.ID = id
	}

	if v, ok := getString(data, "timeperiod_name"); ok {
		tp.Name = v
	}

	if v, ok := getString(data, "alias"); ok {
		tp.Alias = v
	}

	if v, ok := data["dateranges"]; ok {
		tp.Dateranges = decodeDateranges(v)
	}

	if v, ok := getStringList(data, "exclude"); ok {
		tp.ExcludeNames = v
	}
}

func applyCommandData(c *models.Command, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		c.ID = id
	}

	if v, ok := getString(data, "command_name"); ok {
		c.Name = v
	}

	if v, ok := getString(data, "command_line"); ok {
		c.CommandLine = v
	}

	if v, ok := getInt(data, "timeout"); ok {
		c.Timeout = v
	}
}

func applyDaemonData(d *models.DaemonLink, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		d.ID = id
	}

	if v, ok := getString(data, string(d.Role)+"_name"); ok {
		d.Name = v
	}

	if v, ok := getString(data, "address"); ok {
		d.Address = v
	}

	if v, ok := getInt(data, "port"); ok {
		d.Port = v
	}

	if v, ok := getBool(data, "alive"); ok {
		d.Alive = v
	}

	if v, ok := getBool(data, "reachable"); ok {
		d.Reachable = v
	}

	if v, ok := getBool(data, "passive"); ok {
		d.Passive = v
	}

	if v, ok := getBool(data, "spare"); ok {
		d.Spare = v
	}

	if v, ok := getInt64(data, "last_check"); ok {
		d.LastCheck = v
	}

	if v, ok := getInt(data, "check_interval"); ok {
		d.CheckInterval = v
	}
}

func applyInstanceConfigData(c *models.InstanceConfig, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		c.ID = id
	}

	if id, ok := getIdentifier(data, "instance_id"); ok {
		c.InstanceID = id
	}

	if v, ok := getInt64(data, "program_start"); ok {
		c.ProgramStart = v
	}

	if v, ok := getInt(data, "pid"); ok {
		c.PID = v
	}

	if v, ok := getBool(data, "daemon_mode"); ok {
		c.DaemonMode = v
	}

	if v, ok := getBool(data, "notifications_enabled"); ok {
		c.NotificationsEnabled = v
	}

	if v, ok := getBool(data, "active_host_checks_enabled"); ok {
		c.ActiveChecksEnabled = v
	}

	if v, ok := getBool(data, "passive_host_checks_enabled"); ok {
		c.PassiveChecksEnabled = v
	}

	if v, ok := getBool(data, "event_handlers_enabled"); ok {
		c.EventHandlersEnabled = v
	}

	if v, ok := getBool(data, "flap_detection_enabled"); ok {
		c.FlapDetectionEnabled = v
	}

	if v, ok := getInt(data, "interval_length"); ok {
		c.Interval = v
	}
}

func applyHostGroupData(g *models.HostGroup, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		g.ID = id
	}

	if id, ok := getIdentifier(data, "instance_id"); ok {
		g.InstanceID = id
	}

	if v, ok := getString(data, "hostgroup_name"); ok {
		g.Name = v
	}

	if v, ok := getString(data, "alias"); ok {
		g.Alias = v
	}

	if v, ok := getString(data, "notes"); ok {
		g.Notes = v
	}

	g.MemberRefs = getMemberRefs(data, "members")
	g.GroupNames = getSubGroupNames(data, "hostgroup_members")
}

func applyServiceGroupData(g *models.ServiceGroup, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		g.ID = id
	}

	if id, ok := getIdentifier(data, "instance_id"); ok {
		g.InstanceID = id
	}

	if v, ok := getString(data, "servicegroup_name"); ok {
		g.Name = v
	}

	if v, ok := getString(data, "alias"); ok {
		g.Alias = v
	}

	if v, ok := getString(data, "notes"); ok {
		g.Notes = v
	}

	g.MemberRefs = getMemberRefs(data, "members")
	g.GroupNames = getSubGroupNames(data, "servicegroup_members")
}

func applyContactGroupData(g *models.ContactGroup, data map[string]interface{}) {
	if id, ok := getIdentifier(data, "uuid"); ok {
		g.ID = id
	}

	if id, ok := getIdentifier(data, "instance_id"); ok {
		g.InstanceID = id
	}

	if v, ok := getString(data, "contactgroup_name"); ok {
		g.Name = v
	}

	if v, ok := getString(data, "alias"); ok {
		g.Alias = v
	}

	g.MemberRefs = getMemberRefs(data, "members")
	g.GroupNames = getSubGroupNames(data, "contactgroup_members")
}
