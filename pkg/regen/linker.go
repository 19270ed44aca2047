package regen

import (
	"time"

	"github.com/carverauto/brokview/pkg/models"
)

// linkInstance resolves every cross-reference of a completed bulk dump and
// merges the staged objects into the store. The step order matters: groups
// must exist before hosts bind to them, hosts before services, and the
// dependency graphs last, once the full object set is in place.
//
// Unresolved references are warned about and omitted; they never abort the
// pass. A missing staging area does abort it, with no partial merge.
func (r *Regenerator) linkInstance(instanceID string) {
	start := time.Now()

	r.log.Info().Str("instance_id", instanceID).Msg("Linking objects together")

	if _, ok := r.store.configs[instanceID]; !ok {
		r.log.Warn().
			Str("instance_id", instanceID).
			Msg("Instance is not fully given, bailing out")

		return
	}

	st, ok := r.staged[instanceID]
	if !ok {
		r.log.Error().
			Str("instance_id", instanceID).
			Msg("No staging area for instance, bailing out")

		return
	}

	// 1. Timeperiod exclude lists, across the whole store. A nil name
	// list means a previous pass already resolved this timeperiod and
	// this dump did not resend it; an empty non-nil list means the dump
	// explicitly cleared the excludes.
	for _, tp := range r.store.timeperiods.all() {
		if tp.ExcludeNames == nil {
			continue
		}

		tp.Exclude = tp.Exclude[:0]

		for _, exName := range tp.ExcludeNames {
			ex, ok := r.store.timeperiods.get(exName)
			if !ok {
				r.log.Warn().
					Str("timeperiod", tp.Name).
					Str("exclude", exName).
					Msg("Unknown excluded timeperiod")

				continue
			}

			tp.Exclude = append(tp.Exclude, ex)
		}

		tp.ExcludeNames = nil
	}

	// 2. Contact groups: members by name against the global contacts.
	for _, cg := range st.contactGroups {
		cg.Members = cg.Members[:0]

		for _, ref := range cg.MemberRefs {
			c, ok := r.store.contacts.get(ref.Name)
			if !ok {
				r.log.Warn().
					Str("contactgroup", cg.Name).
					Str("contact", ref.Name).
					Msg("Unknown contact in contact group")

				continue
			}

			cg.Members = append(cg.Members, c)
		}

		cg.MemberRefs = nil
		r.mergeContactGroup(cg)
	}

	// 3. Host groups: members by name against this instance's staged hosts.
	for _, hg := range st.hostGroups {
		hg.Members = hg.Members[:0]

		for _, ref := range hg.MemberRefs {
			h := st.hostByName(ref.Name)
			if h == nil {
				r.log.Warn().
					Str("hostgroup", hg.Name).
					Str("host", ref.Name).
					Msg("Unknown host in host group")

				continue
			}

			hg.Members = append(hg.Members, h)
		}

		hg.MemberRefs = nil
		r.mergeHostGroup(hg)
	}

	// 4. Hosts: groups, commands, timeperiods, contacts, tags; then insert,
	// replacing any same-named predecessor.
	for _, h := range st.hosts {
		h.Groups = h.Groups[:0]

		for _, ref := range h.GroupNames {
			g, ok := r.store.hostGroups.getByNameOrID(ref)
			if !ok {
				r.log.Warn().
					Str("host", h.Name).
					Str("hostgroup", ref).
					Msg("Unknown host group for host")

				continue
			}

			h.Groups = append(h.Groups, g)
		}

		h.GroupNames = nil

		h.CheckCommand = r.linkCommandCall(h.CheckCommandName)
		h.EventHandler = r.linkCommandCall(h.EventHandlerName)
		h.CheckCommandName = ""
		h.EventHandlerName = ""

		h.NotificationPeriod = r.linkTimeperiod(h.NotificationPeriodName)
		h.CheckPeriod = r.linkTimeperiod(h.CheckPeriodName)
		h.MaintenancePeriod = r.linkTimeperiod(h.MaintenancePeriodName)
		h.NotificationPeriodName = ""
		h.CheckPeriodName = ""
		h.MaintenancePeriodName = ""

		h.Contacts = r.linkContacts(h.ContactNames)
		h.ContactNames = nil

		r.store.countTags(h.Tags)

		if old, ok := r.store.hosts.get(h.Name); ok {
			r.store.removeHost(old)
		}

		r.store.addHost(h)
	}

	// 5. Service groups: members by identifier against staged services.
	for _, sg := range st.serviceGroups {
		sg.Members = sg.Members[:0]

		for _, ref := range sg.MemberRefs {
			svc, ok := st.services[ref.ID]
			if !ok {
				r.log.Warn().
					Str("servicegroup", sg.Name).
					Str("service", ref.Name).
					Msg("Unknown service in service group")

				continue
			}

			sg.Members = append(sg.Members, svc)
		}

		sg.MemberRefs = nil
		r.mergeServiceGroup(sg)
	}

	// 6. Services: groups, host attachment, commands, timeperiods,
	// contacts, tags; then insert.
	for _, svc := range st.services {
		svc.Groups = svc.Groups[:0]

		for _, id := range svc.GroupIDs {
			g, ok := r.store.serviceGroups.getByID(id)
			if !ok {
				continue
			}

			svc.Groups = append(svc.Groups, g)
		}

		svc.GroupIDs = nil

		if h, ok := r.store.hosts.get(svc.HostName); ok {
			if old := h.FindService(svc.Description); old != nil {
				h.RemoveService(old)
			}

			h.Services = append(h.Services, svc)
			svc.Host = h
		} else {
			r.log.Warn().
				Str("host", svc.HostName).
				Str("service", svc.Description).
				Msg("No host for service")
		}

		svc.CheckCommand = r.linkCommandCall(svc.CheckCommandName)
		svc.EventHandler = r.linkCommandCall(svc.EventHandlerName)
		svc.CheckCommandName = ""
		svc.EventHandlerName = ""

		svc.NotificationPeriod = r.linkTimeperiod(svc.NotificationPeriodName)
		svc.CheckPeriod = r.linkTimeperiod(svc.CheckPeriodName)
		svc.MaintenancePeriod = r.linkTimeperiod(svc.MaintenancePeriodName)
		svc.NotificationPeriodName = ""
		svc.CheckPeriodName = ""
		svc.MaintenancePeriodName = ""

		svc.Contacts = r.linkContacts(svc.ContactNames)
		svc.ContactNames = nil

		r.store.countServiceTags(svc.Tags)

		r.store.addService(svc)
	}

	// 7a. Realms come from the hosts of this dump.
	for _, h := range st.hosts {
		if h.RealmName != "" {
			r.store.realms[h.RealmName] = struct{}{}
		}
	}

	// 7b. Impact/source-problem/dependency graphs, now that the whole
	// object set of this dump is merged.
	for _, h := range st.hosts {
		h.Impacts = r.linkMixedRefs(h.RawImpacts)
		h.SourceProblems = r.linkMixedRefs(h.RawSourceProblems)
		h.ParentDependencies = r.linkMixedRefs(h.RawParentDependencies)
		h.ChildDependencies = r.linkMixedRefs(h.RawChildDependencies)
		h.RawImpacts = models.MixedRefs{}
		h.RawSourceProblems = models.MixedRefs{}
		h.RawParentDependencies = models.MixedRefs{}
		h.RawChildDependencies = models.MixedRefs{}

		h.Parents = r.linkHosts(h.ParentNames)
		h.Children = r.linkHosts(h.ChildNames)
		h.ParentNames = nil
		h.ChildNames = nil
	}

	for _, svc := range st.services {
		svc.Impacts = r.linkMixedRefs(svc.RawImpacts)
		svc.SourceProblems = r.linkMixedRefs(svc.RawSourceProblems)
		svc.ParentDependencies = r.linkMixedRefs(svc.RawParentDependencies)
		svc.ChildDependencies = r.linkMixedRefs(svc.RawChildDependencies)
		svc.RawImpacts = models.MixedRefs{}
		svc.RawSourceProblems = models.MixedRefs{}
		svc.RawParentDependencies = models.MixedRefs{}
		svc.RawChildDependencies = models.MixedRefs{}
	}

	// 8. The staging area is done for.
	delete(r.staged, instanceID)

	r.log.Info().
		Str("instance_id", instanceID).
		Int("hosts", r.store.hosts.len()).
		Int("services", r.store.services.len()).
		Int("contacts", r.store.contacts.len()).
		Int("timeperiods", r.store.timeperiods.len()).
		Int("commands", r.store.commands.len()).
		Dur("duration", time.Since(start)).
		Msg("Linking objects together, done")
}

// mergeContactGroup updates an existing group's membership in place,
// adopting the new generation's identifier, or inserts the group.
func (r *Regenerator) mergeContactGroup(cg *models.ContactGroup) {
	existing, ok := r.store.contactGroups.get(cg.Name)
	if !ok {
		r.store.contactGroups.add(cg.Name, cg.ID, cg)
		return
	}

	r.store.contactGroups.remove(existing.Name, existing.ID)
	existing.Members = cg.Members
	existing.GroupNames = cg.GroupNames
	// Identifiers change across scheduler restarts.
	existing.ID = cg.ID
	existing.InstanceID = cg.InstanceID
	r.store.contactGroups.add(existing.Name, existing.ID, existing)
}

func (r *Regenerator) mergeHostGroup(hg *models.HostGroup) {
	existing, ok := r.store.hostGroups.get(hg.Name)
	if !ok {
		r.store.hostGroups.add(hg.Name, hg.ID, hg)
		return
	}

	r.store.hostGroups.remove(existing.Name, existing.ID)
	existing.Members = hg.Members
	existing.GroupNames = hg.GroupNames
	existing.ID = hg.ID
	existing.InstanceID = hg.InstanceID
	r.store.hostGroups.add(existing.Name, existing.ID, existing)
}

func (r *Regenerator) mergeServiceGroup(sg *models.ServiceGroup) {
	existing, ok := r.store.serviceGroups.get(sg.Name)
	if !ok {
		r.store.serviceGroups.add(sg.Name, sg.ID, sg)
		return
	}

	r.store.serviceGroups.remove(existing.Name, existing.ID)
	existing.Members = sg.Members
	existing.GroupNames = sg.GroupNames
	existing.ID = sg.ID
	existing.InstanceID = sg.InstanceID
	r.store.serviceGroups.add(existing.Name, existing.ID, existing)
}

// linkCommandCall binds a raw command call string to its command. An empty
// raw call yields nil; an unknown command leaves Command nil.
func (r *Regenerator) linkCommandCall(raw string) *models.CommandCall {
	cc := models.ParseCommandCall(raw)
	if cc == nil {
		return nil
	}

	if cmd, ok := r.store.commands.get(cc.Name); ok {
		cc.Command = cmd
	} else {
		r.log.Warn().Str("command", cc.Name).Msg("Unknown command")
	}

	return cc
}

func (r *Regenerator) linkCommandList(raws []string) []*models.CommandCall {
	if len(raws) == 0 {
		return nil
	}

	out := make([]*models.CommandCall, 0, len(raws))

	for _, raw := range raws {
		if cc := r.linkCommandCall(raw); cc != nil {
			out = append(out, cc)
		}
	}

	return out
}

func (r *Regenerator) linkTimeperiod(name string) *models.Timeperiod {
	if name == "" {
		return nil
	}

	tp, _ := r.store.timeperiods.get(name)

	return tp
}

// linkContacts resolves contact references by name, falling back to
// identifier; unresolved entries are dropped.
func (r *Regenerator) linkContacts(refs []string) []*models.Contact {
	if len(refs) == 0 {
		return nil
	}

	out := make([]*models.Contact, 0, len(refs))

	for _, ref := range refs {
		c, ok := r.store.contacts.getByNameOrID(ref)
		if !ok {
			r.log.Warn().Str("contact", ref).Msg("Unknown contact reference")
			continue
		}

		out = append(out, c)
	}

	return out
}

// linkHosts resolves host references by name, falling back to identifier.
func (r *Regenerator) linkHosts(refs []string) []*models.Host {
	if len(refs) == 0 {
		return nil
	}

	out := make([]*models.Host, 0, len(refs))

	for _, ref := range refs {
		h, ok := r.store.hosts.getByNameOrID(ref)
		if !ok {
			r.log.Warn().Str("host", ref).Msg("Unknown host reference")
			continue
		}

		out = append(out, h)
	}

	return out
}

// linkMixedRefs resolves an impact/dependency set that may reference both
// hosts and services, by identifier or by name depending on the wire form.
func (r *Regenerator) linkMixedRefs(refs models.MixedRefs) []models.Item {
	if refs.Empty() {
		return nil
	}

	out := make([]models.Item, 0, len(refs.IDs)+len(refs.Hosts)+len(refs.Services))

	for _, id := range refs.IDs {
		if h, ok := r.store.hosts.getByID(id); ok {
			out = append(out, h)
			continue
		}

		if svc, ok := r.store.services.getByID(id); ok {
			out = append(out, svc)
		}
	}

	for _, name := range refs.Hosts {
		if h, ok := r.store.hosts.get(name); ok {
			out = append(out, h)
		}
	}

	for _, key := range refs.Services {
		if svc, ok := r.store.services.get(key); ok {
			out = append(out, svc)
		}
	}

	return out
}
