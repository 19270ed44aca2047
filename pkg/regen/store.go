package regen

import (
	"github.com/carverauto/brokview/pkg/models"
)

// collection indexes one entity kind by name and by identifier. Both dual
// wire identifiers (id/uuid) land on the same canonical key, so by-id and
// by-uuid lookups are the same lookup.
type collection[T any] struct {
	byName map[string]T
	byID   map[string]T
}

func newCollection[T any]() collection[T] {
	return collection[T]{
		byName: make(map[string]T),
		byID:   make(map[string]T),
	}
}

func (c *collection[T]) add(name, id string, item T) {
	if name != "" {
		c.byName[name] = item
	}

	if id != "" {
		c.byID[id] = item
	}
}

func (c *collection[T]) remove(name, id string) {
	delete(c.byName, name)
	delete(c.byID, id)
}

func (c *collection[T]) get(name string) (T, bool) {
	item, ok := c.byName[name]
	return item, ok
}

func (c *collection[T]) getByID(id string) (T, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// getByNameOrID covers references that may carry either form.
func (c *collection[T]) getByNameOrID(ref string) (T, bool) {
	if item, ok := c.byName[ref]; ok {
		return item, true
	}

	item, ok := c.byID[ref]

	return item, ok
}

func (c *collection[T]) len() int {
	return len(c.byName)
}

func (c *collection[T]) all() []T {
	out := make([]T, 0, len(c.byName))
	for _, item := range c.byName {
		out = append(out, item)
	}

	return out
}

// Store is the merged global object graph: every linked entity from every
// scheduler instance, indexed for the read-side queries. It carries no
// locking of its own; all access goes through the regenerator's gate.
type Store struct {
	configs map[string]*models.InstanceConfig

	hosts         collection[*models.Host]
	services      collection[*models.Service]
	contacts      collection[*models.Contact]
	commands      collection[*models.Command]
	timeperiods   collection[*models.Timeperiod]
	notifWays     collection[*models.NotificationWay]
	hostGroups    collection[*models.HostGroup]
	serviceGroups collection[*models.ServiceGroup]
	contactGroups collection[*models.ContactGroup]

	daemons map[models.DaemonRole]map[string]*models.DaemonLink

	realms      map[string]struct{}
	tags        map[string]int
	serviceTags map[string]int
}

func NewStore() *Store {
	daemons := make(map[models.DaemonRole]map[string]*models.DaemonLink)
	for _, role := range []models.DaemonRole{
		models.RoleScheduler, models.RolePoller, models.RoleReactionner,
		models.RoleBroker, models.RoleReceiver,
	} {
		daemons[role] = make(map[string]*models.DaemonLink)
	}

	return &Store{
		configs:       make(map[string]*models.InstanceConfig),
		hosts:         newCollection[*models.Host](),
		services:      newCollection[*models.Service](),
		contacts:      newCollection[*models.Contact](),
		commands:      newCollection[*models.Command](),
		timeperiods:   newCollection[*models.Timeperiod](),
		notifWays:     newCollection[*models.NotificationWay](),
		hostGroups:    newCollection[*models.HostGroup](),
		serviceGroups: newCollection[*models.ServiceGroup](),
		contactGroups: newCollection[*models.ContactGroup](),
		daemons:       daemons,
		realms:        make(map[string]struct{}),
		tags:          make(map[string]int),
		serviceTags:   make(map[string]int),
	}
}

// ServiceKey is the by-name index key of a service.
func ServiceKey(hostName, description string) string {
	return hostName + "/" + description
}

func (s *Store) addHost(h *models.Host)    { s.hosts.add(h.Name, h.ID, h) }
func (s *Store) removeHost(h *models.Host) { s.hosts.remove(h.Name, h.ID) }

func (s *Store) addService(svc *models.Service) {
	s.services.add(ServiceKey(svc.HostName, svc.Description), svc.ID, svc)
}

func (s *Store) removeService(svc *models.Service) {
	s.services.remove(ServiceKey(svc.HostName, svc.Description), svc.ID)
}

// purgeInstance removes every host and service owned by instanceID from the
// store and from every group's member list. Shared entities survive.
func (s *Store) purgeInstance(instanceID string) (hostCount, serviceCount int) {
	for _, h := range s.hosts.all() {
		if h.InstanceID == instanceID {
			s.removeHost(h)
			hostCount++
		}
	}

	for _, svc := range s.services.all() {
		if svc.InstanceID == instanceID {
			s.removeService(svc)
			serviceCount++
		}
	}

	if hostCount > 0 {
		for _, hg := range s.hostGroups.all() {
			kept := hg.Members[:0]

			for _, h := range hg.Members {
				if h.InstanceID != instanceID {
					kept = append(kept, h)
				}
			}

			hg.Members = kept
		}
	}

	if serviceCount > 0 {
		for _, sg := range s.serviceGroups.all() {
			kept := sg.Members[:0]

			for _, svc := range sg.Members {
				if svc.InstanceID != instanceID {
					kept = append(kept, svc)
				}
			}

			sg.Members = kept
		}
	}

	return hostCount, serviceCount
}

func (s *Store) countTags(tags []string) {
	for _, t := range tags {
		s.tags[t]++
	}
}

func (s *Store) countServiceTags(tags []string) {
	for _, t := range tags {
		s.serviceTags[t]++
	}
}
