package regen

import (
	"maps"
	"slices"

	"github.com/carverauto/brokview/pkg/models"
)

// Read methods take the reader side of the gate themselves, so callers get
// a consistent view without touching the gate. The returned objects are
// shared live references; callers read them, the ingestion loop is the
// only writer.

func (r *Regenerator) Host(name string) *models.Host {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	h, _ := r.store.hosts.get(name)

	return h
}

func (r *Regenerator) HostByID(id string) *models.Host {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	h, _ := r.store.hosts.getByID(id)

	return h
}

func (r *Regenerator) Hosts() []*models.Host {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return r.store.hosts.all()
}

// Service looks a service up by its host name and description.
func (r *Regenerator) Service(hostName, description string) *models.Service {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	svc, _ := r.store.services.get(ServiceKey(hostName, description))

	return svc
}

func (r *Regenerator) ServiceByID(id string) *models.Service {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	svc, _ := r.store.services.getByID(id)

	return svc
}

func (r *Regenerator) Services() []*models.Service {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return r.store.services.all()
}

func (r *Regenerator) Contact(name string) *models.Contact {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	c, _ := r.store.contacts.get(name)

	return c
}

func (r *Regenerator) Contacts() []*models.Contact {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return r.store.contacts.all()
}

func (r *Regenerator) HostGroup(name string) *models.HostGroup {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	g, _ := r.store.hostGroups.get(name)

	return g
}

func (r *Regenerator) HostGroups() []*models.HostGroup {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return r.store.hostGroups.all()
}

func (r *Regenerator) ServiceGroup(name string) *models.ServiceGroup {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	g, _ := r.store.serviceGroups.get(name)

	return g
}

func (r *Regenerator) ServiceGroups() []*models.ServiceGroup {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return r.store.serviceGroups.all()
}

func (r *Regenerator) ContactGroup(name string) *models.ContactGroup {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	g, _ := r.store.contactGroups.get(name)

	return g
}

func (r *Regenerator) ContactGroups() []*models.ContactGroup {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return r.store.contactGroups.all()
}

func (r *Regenerator) Timeperiod(name string) *models.Timeperiod {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	tp, _ := r.store.timeperiods.get(name)

	return tp
}

func (r *Regenerator) Timeperiods() []*models.Timeperiod {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return r.store.timeperiods.all()
}

func (r *Regenerator) Command(name string) *models.Command {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	c, _ := r.store.commands.get(name)

	return c
}

func (r *Regenerator) Commands() []*models.Command {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return r.store.commands.all()
}

// Daemons returns the known satellite daemons of one role.
func (r *Regenerator) Daemons(role models.DaemonRole) []*models.DaemonLink {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	out := make([]*models.DaemonLink, 0, len(r.store.daemons[role]))
	for _, d := range r.store.daemons[role] {
		out = append(out, d)
	}

	return out
}

// Realms returns the sorted realm names seen across all instances.
func (r *Regenerator) Realms() []string {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	out := slices.Collect(maps.Keys(r.store.realms))
	slices.Sort(out)

	return out
}

// HostTags returns a copy of the host tag occurrence counts.
func (r *Regenerator) HostTags() map[string]int {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return maps.Clone(r.store.tags)
}

// ServiceTags returns a copy of the service tag occurrence counts.
func (r *Regenerator) ServiceTags() map[string]int {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return maps.Clone(r.store.serviceTags)
}

// InstanceConfig returns the configuration state of one scheduler
// instance, or nil if no dump was ever received for it.
func (r *Regenerator) InstanceConfig(instanceID string) *models.InstanceConfig {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	return r.store.configs[instanceID]
}

func (r *Regenerator) InstanceConfigs() []*models.InstanceConfig {
	r.gate.AcquireRead()
	defer r.gate.ReleaseRead()

	out := make([]*models.InstanceConfig, 0, len(r.store.configs))
	for _, c := range r.store.configs {
		out = append(out, c)
	}

	return out
}
