package regen

import (
	"time"

	"github.com/carverauto/brokview/pkg/models"
)

// handleProgramStatus opens a new bulk-dump generation for an instance: it
// records the instance config, resets the staging area, and purges every
// host and service the previous generation of this instance owned. A
// program_status re-received inside the duplicate window is a
// retransmission from a restart storm, not a real restart, and is dropped.
func (r *Regenerator) handleProgramStatus(data map[string]interface{}) {
	instanceID, ok := getIdentifier(data, "instance_id")
	if !ok {
		r.log.Error().Msg("program_status brok without instance_id")
		return
	}

	r.log.Info().Str("instance_id", instanceID).Msg("Got a configuration")

	now := r.clock()

	if prev, ok := r.store.configs[instanceID]; ok {
		if now.Unix()-prev.Timestamp < int64(r.dupWindow/time.Second) {
			r.log.Warn().
				Str("instance_id", instanceID).
				Msg("Got near initial program status, ignoring")

			return
		}
	}

	cfg := &models.InstanceConfig{Timestamp: now.Unix()}
	applyInstanceConfigData(cfg, data)
	cfg.InstanceID = instanceID

	r.staged[instanceID] = newStaging()
	r.store.configs[instanceID] = cfg

	hostCount, serviceCount := r.store.purgeInstance(instanceID)
	if hostCount > 0 || serviceCount > 0 {
		r.log.Info().
			Str("instance_id", instanceID).
			Int("hosts", hostCount).
			Int("services", serviceCount).
			Msg("Purged stale objects of restarted instance")
	}
}

// stagingFor returns the staging area of an instance, or nil with an error
// log when the instance never sent a program_status.
func (r *Regenerator) stagingFor(instanceID, brokType string) *staging {
	st, ok := r.staged[instanceID]
	if !ok {
		r.log.Error().
			Str("instance_id", instanceID).
			Str("type", brokType).
			Msg("Brok for an instance with no staging area")

		return nil
	}

	return st
}

func (r *Regenerator) handleInitialHost(data map[string]interface{}) {
	instanceID, _ := getIdentifier(data, "instance_id")

	st := r.stagingFor(instanceID, models.BrokInitialHostStatus)
	if st == nil {
		return
	}

	host := &models.Host{}
	applyHostData(host, data)

	r.log.Debug().
		Str("host", host.Name).
		Str("instance_id", instanceID).
		Msg("Staging a host")

	st.hosts[host.ID] = host
}

func (r *Regenerator) handleInitialService(data map[string]interface{}) {
	instanceID, _ := getIdentifier(data, "instance_id")

	st := r.stagingFor(instanceID, models.BrokInitialServiceStatus)
	if st == nil {
		return
	}

	svc := &models.Service{}
	applyServiceData(svc, data)

	// Some framework versions serialize display_name as a list; fall back
	// to the description.
	if svc.DisplayName == "" {
		svc.DisplayName = svc.Description
	}

	r.log.Debug().
		Str("host", svc.HostName).
		Str("service", svc.Description).
		Str("instance_id", instanceID).
		Msg("Staging a service")

	st.services[svc.ID] = svc
}

func (r *Regenerator) handleInitialHostGroup(data map[string]interface{}) {
	instanceID, _ := getIdentifier(data, "instance_id")

	st := r.stagingFor(instanceID, models.BrokInitialHostgroupStatus)
	if st == nil {
		return
	}

	g := &models.HostGroup{}
	applyHostGroupData(g, data)
	st.hostGroups[g.ID] = g
}

func (r *Regenerator) handleInitialServiceGroup(data map[string]interface{}) {
	instanceID, _ := getIdentifier(data, "instance_id")

	st := r.stagingFor(instanceID, models.BrokInitialServicegroupStatus)
	if st == nil {
		return
	}

	g := &models.ServiceGroup{}
	applyServiceGroupData(g, data)
	st.serviceGroups[g.ID] = g
}

func (r *Regenerator) handleInitialContactGroup(data map[string]interface{}) {
	instanceID, _ := getIdentifier(data, "instance_id")

	st := r.stagingFor(instanceID, models.BrokInitialContactgroupStatus)
	if st == nil {
		return
	}

	g := &models.ContactGroup{}
	applyContactGroupData(g, data)
	st.contactGroups[g.ID] = g
}

// handleInitialContact upserts a contact. Contacts are global: the same
// contact arrives from every scheduler instance and is updated in place.
// Notification ways arrive either as references to already-known ways or as
// inline objects, depending on the framework generation.
func (r *Regenerator) handleInitialContact(data map[string]interface{}) {
	name, ok := getString(data, "contact_name")
	if !ok {
		r.log.Error().Msg("initial_contact_status brok without contact_name")
		return
	}

	c, exists := r.store.contacts.get(name)
	if !exists {
		c = &models.Contact{}
	}

	applyContactData(c, data)

	if !exists {
		r.store.contacts.add(c.Name, c.ID, c)
	}

	c.NotificationWays = r.resolveNotificationWays(c, data["notificationways"])
}

// resolveNotificationWays normalizes both wire forms into linked
// NotificationWay objects registered in the store.
func (r *Regenerator) resolveNotificationWays(c *models.Contact, raw interface{}) []*models.NotificationWay {
	list, ok := raw.([]interface{})
	if !ok || len(list) == 0 {
		return nil
	}

	ways := make([]*models.NotificationWay, 0, len(list))

	for _, entry := range list {
		switch value := entry.(type) {
		case string:
			// Reference form: an identifier of a way received earlier.
			nw, ok := r.store.notifWays.getByNameOrID(value)
			if !ok {
				r.log.Warn().
					Str("contact", c.Name).
					Str("notificationway", value).
					Msg("Contact references an unknown notification way")

				continue
			}

			r.linkNotificationWay(nw)
			ways = append(ways, nw)
		case map[string]interface{}:
			// Inline form: the way itself, upserted by name.
			wayName, _ := getString(value, "notificationway_name")
			if wayName == "" {
				continue
			}

			nw, exists := r.store.notifWays.get(wayName)
			if !exists {
				nw = &models.NotificationWay{}
			}

			applyNotificationWayData(nw, value)

			if !exists {
				r.store.notifWays.add(nw.Name, nw.ID, nw)
			}

			r.linkNotificationWay(nw)
			ways = append(ways, nw)
		}
	}

	return ways
}

// linkNotificationWay binds a way's commands and timeperiods against the
// store.
func (r *Regenerator) linkNotificationWay(nw *models.NotificationWay) {
	nw.HostNotificationCommands = r.linkCommandList(nw.HostNotificationCommandNames)
	nw.ServiceNotificationCommands = r.linkCommandList(nw.ServiceNotificationCommandNames)
	nw.HostNotificationCommandNames = nil
	nw.ServiceNotificationCommandNames = nil

	nw.HostNotificationPeriod = r.linkTimeperiod(nw.HostNotificationPeriodName)
	nw.ServiceNotificationPeriod = r.linkTimeperiod(nw.ServiceNotificationPeriodName)
	nw.HostNotificationPeriodName = ""
	nw.ServiceNotificationPeriodName = ""
}

// handleInitialTimeperiod upserts a timeperiod by name. The nested
// daterange/timerange shapes were already normalized at the decode
// boundary.
func (r *Regenerator) handleInitialTimeperiod(data map[string]interface{}) {
	name, ok := getString(data, "timeperiod_name")
	if !ok {
		r.log.Error().Msg("initial_timeperiod_status brok without timeperiod_name")
		return
	}

	tp, exists := r.store.timeperiods.get(name)
	if !exists {
		tp = &models.Timeperiod{}
	}

	applyTimeperiodData(tp, data)

	if !exists {
		r.store.timeperiods.add(tp.Name, tp.ID, tp)
		r.log.Debug().Str("timeperiod", tp.Name).Msg("Created a timeperiod")
	}
}

func (r *Regenerator) handleInitialCommand(data map[string]interface{}) {
	name, ok := getString(data, "command_name")
	if !ok {
		r.log.Error().Msg("initial_command_status brok without command_name")
		return
	}

	c, exists := r.store.commands.get(name)
	if !exists {
		c = &models.Command{}
	}

	applyCommandData(c, data)

	if !exists {
		r.store.commands.add(c.Name, c.ID, c)
	}
}

func (r *Regenerator) handleInitialNotificationWay(data map[string]interface{}) {
	name, ok := getString(data, "notificationway_name")
	if !ok {
		r.log.Error().Msg("initial_notificationway_status brok without notificationway_name")
		return
	}

	nw, exists := r.store.notifWays.get(name)
	if !exists {
		nw = &models.NotificationWay{}
	}

	applyNotificationWayData(nw, data)

	if !exists {
		r.store.notifWays.add(nw.Name, nw.ID, nw)
	}

	r.linkNotificationWay(nw)
}

// daemonInitialHandler registers a peer daemon link of the given role.
func (r *Regenerator) daemonInitialHandler(role models.DaemonRole) func(map[string]interface{}) {
	return func(data map[string]interface{}) {
		d := &models.DaemonLink{Role: role}
		applyDaemonData(d, data)

		if d.Name == "" {
			r.log.Error().
				Str("role", string(role)).
				Msg("Daemon status brok without a name")

			return
		}

		r.store.daemons[role][d.Name] = d
	}
}

// handleInitialBroksDone fires once a dump is complete; everything staged
// for the instance gets linked and merged.
func (r *Regenerator) handleInitialBroksDone(data map[string]interface{}) {
	instanceID, ok := getIdentifier(data, "instance_id")
	if !ok {
		r.log.Error().Msg("initial_broks_done brok without instance_id")
		return
	}

	r.linkInstance(instanceID)
}
