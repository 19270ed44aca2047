package regen

import (
	"github.com/carverauto/brokview/pkg/models"
)

// staging holds the entities received during one instance's bulk dump,
// before relationships are resolved. It exists only between the instance's
// program_status brok and its initial_broks_done brok.
type staging struct {
	hosts         map[string]*models.Host
	services      map[string]*models.Service
	hostGroups    map[string]*models.HostGroup
	serviceGroups map[string]*models.ServiceGroup
	contactGroups map[string]*models.ContactGroup
}

func newStaging() *staging {
	return &staging{
		hosts:         make(map[string]*models.Host),
		services:      make(map[string]*models.Service),
		hostGroups:    make(map[string]*models.HostGroup),
		serviceGroups: make(map[string]*models.ServiceGroup),
		contactGroups: make(map[string]*models.ContactGroup),
	}
}

// hostByName scans the staged hosts; staging is keyed by identifier, the
// dump references hosts by name.
func (st *staging) hostByName(name string) *models.Host {
	for _, h := range st.hosts {
		if h.Name == name {
			return h
		}
	}

	return nil
}
