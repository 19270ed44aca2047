package regen

import (
	"context"
	"maps"

	"github.com/carverauto/brokview/pkg/models"
)

// Relationship fields are resolved by the linker and must not be clobbered
// by routine status updates, so update handlers work on a copy of the brok
// payload with those keys removed. The topology fields are kept only when
// the scheduler flags an actual topology change, in which case they are
// re-resolved in place.
//
// Identifier keys are stripped everywhere: the decode boundary synthesizes
// a fresh uuid into broks that carry none, and an entity's canonical
// identifier is fixed at dump time.
var identifierStrip = []string{"uuid", "id"}

var hostUpdateStrip = []string{
	"hostgroups", "contacts", "contact_groups",
	"check_command", "event_handler",
	"notification_period", "check_period", "maintenance_period",
}

var hostTopologyStrip = []string{
	"parents", "childs", "parent_dependencies", "child_dependencies",
}

var serviceUpdateStrip = []string{
	"servicegroups", "contacts", "contact_groups",
	"check_command", "event_handler",
	"notification_period", "check_period", "maintenance_period",
}

var serviceTopologyStrip = []string{
	"parent_dependencies", "child_dependencies",
}

func stripKeys(data map[string]interface{}, lists ...[]string) map[string]interface{} {
	out := maps.Clone(data)

	for _, list := range lists {
		for _, k := range list {
			delete(out, k)
		}
	}

	return out
}

// handleUpdateProgramStatus refreshes a known instance's configuration. An
// update for an instance we never got a dump for means we missed it (or
// came up after it): ask the broker tier for a full resync, rate limited
// per instance so a brok flood cannot trigger a resync storm.
func (r *Regenerator) handleUpdateProgramStatus(data map[string]interface{}) {
	instanceID, ok := getIdentifier(data, "instance_id")
	if !ok {
		r.log.Warn().Msg("Program status update without instance_id")
		return
	}

	cfg, ok := r.store.configs[instanceID]
	if !ok {
		r.requestResync(instanceID)
		return
	}

	applyInstanceConfigData(cfg, stripKeys(data, identifierStrip))
}

func (r *Regenerator) requestResync(instanceID string) {
	if r.resync == nil {
		return
	}

	now := r.clock()
	if last, ok := r.lastResync[instanceID]; ok && now.Sub(last) < r.resyncWindow {
		return
	}

	r.lastResync[instanceID] = now

	r.log.Info().
		Str("instance_id", instanceID).
		Msg("Asking the broker for a full instance dump")

	if err := r.resync.RequestFullData(context.Background(), instanceID); err != nil {
		r.log.Error().Err(err).
			Str("instance_id", instanceID).
			Msg("Failed to request full instance data")
	}
}

func (r *Regenerator) handleUpdateHostStatus(data map[string]interface{}) {
	name, ok := getString(data, "host_name")
	if !ok {
		return
	}

	h, ok := r.store.hosts.get(name)
	if !ok {
		r.log.Debug().Str("host", name).Msg("Status update for unknown host")
		return
	}

	topologyChange, _ := getBool(data, "topology_change")

	if topologyChange {
		data = stripKeys(data, identifierStrip, hostUpdateStrip)
	} else {
		data = stripKeys(data, identifierStrip, hostUpdateStrip, hostTopologyStrip)
	}

	applyHostData(h, data)

	if topologyChange {
		h.Parents = r.linkHosts(h.ParentNames)
		h.Children = r.linkHosts(h.ChildNames)
		h.ParentNames = nil
		h.ChildNames = nil

		h.ParentDependencies = r.linkMixedRefs(h.RawParentDependencies)
		h.ChildDependencies = r.linkMixedRefs(h.RawChildDependencies)
		h.RawParentDependencies = models.MixedRefs{}
		h.RawChildDependencies = models.MixedRefs{}
	}

	h.Impacts = r.linkMixedRefs(h.RawImpacts)
	h.SourceProblems = r.linkMixedRefs(h.RawSourceProblems)
	h.RawImpacts = models.MixedRefs{}
	h.RawSourceProblems = models.MixedRefs{}
}

func (r *Regenerator) handleUpdateServiceStatus(data map[string]interface{}) {
	hostName, ok := getString(data, "host_name")
	if !ok {
		return
	}

	desc, ok := getString(data, "service_description")
	if !ok {
		return
	}

	svc, ok := r.store.services.get(ServiceKey(hostName, desc))
	if !ok {
		r.log.Debug().
			Str("host", hostName).
			Str("service", desc).
			Msg("Status update for unknown service")

		return
	}

	topologyChange, _ := getBool(data, "topology_change")

	if topologyChange {
		data = stripKeys(data, identifierStrip, serviceUpdateStrip)
	} else {
		data = stripKeys(data, identifierStrip, serviceUpdateStrip, serviceTopologyStrip)
	}

	applyServiceData(svc, data)

	if topologyChange {
		svc.ParentDependencies = r.linkMixedRefs(svc.RawParentDependencies)
		svc.ChildDependencies = r.linkMixedRefs(svc.RawChildDependencies)
		svc.RawParentDependencies = models.MixedRefs{}
		svc.RawChildDependencies = models.MixedRefs{}
	}

	svc.Impacts = r.linkMixedRefs(svc.RawImpacts)
	svc.SourceProblems = r.linkMixedRefs(svc.RawSourceProblems)
	svc.RawImpacts = models.MixedRefs{}
	svc.RawSourceProblems = models.MixedRefs{}
}

// daemonUpdateHandler refreshes the health of a known satellite daemon.
// Updates for a daemon we never saw an initial status for are dropped; the
// next initial dump will carry it.
func (r *Regenerator) daemonUpdateHandler(role models.DaemonRole) func(map[string]interface{}) {
	nameKey := string(role) + "_name"

	return func(data map[string]interface{}) {
		name, ok := getString(data, nameKey)
		if !ok {
			return
		}

		d, ok := r.store.daemons[role][name]
		if !ok {
			r.log.Debug().
				Str("role", string(role)).
				Str("name", name).
				Msg("Status update for unknown daemon")

			return
		}

		applyDaemonData(d, stripKeys(data, identifierStrip))
	}
}

// handleHostCheckResult applies the scalar check-state fields of a check
// result or next-schedule brok. Relationship fields never appear in these
// broks, so no stripping is needed.
func (r *Regenerator) handleHostCheckResult(data map[string]interface{}) {
	name, ok := getString(data, "host_name")
	if !ok {
		return
	}

	h, ok := r.store.hosts.get(name)
	if !ok {
		return
	}

	applyHostCheckData(h, data)
}

func (r *Regenerator) handleServiceCheckResult(data map[string]interface{}) {
	hostName, ok := getString(data, "host_name")
	if !ok {
		return
	}

	desc, ok := getString(data, "service_description")
	if !ok {
		return
	}

	svc, ok := r.store.services.get(ServiceKey(hostName, desc))
	if !ok {
		return
	}

	applyServiceCheckData(svc, data)
}
