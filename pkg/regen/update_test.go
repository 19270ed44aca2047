package regen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/brokview/pkg/models"
)

// Status updates carry the relationship fields too, but those were resolved
// by the linker and must survive the update untouched.
func TestUpdateHostStatusKeepsLinkedReferences(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)
	feedDump(r, "i1")

	h := r.Host("i1-web")
	require.NotNil(t, h)

	groups := h.Groups
	contacts := h.Contacts
	checkCommand := h.CheckCommand

	r.ManageBrok(brok(models.BrokUpdateHostStatus, map[string]interface{}{
		"host_name":       "i1-web",
		"state":           "DOWN",
		"output":          "CRITICAL - host unreachable",
		"check_command":   "check_ssh",
		"hostgroups":      "other-group",
		"contacts":        []interface{}{"nobody"},
		"topology_change": false,
	}))

	require.Equal(t, "DOWN", h.State)
	require.Equal(t, "CRITICAL - host unreachable", h.Output)

	require.Equal(t, groups, h.Groups)
	require.Equal(t, contacts, h.Contacts)
	require.Same(t, checkCommand, h.CheckCommand)
	require.Empty(t, h.CheckCommandName)
}

// An update brok without an id gets a synthesized one at the decode
// boundary; that must never replace the identifier the entity got at dump
// time, or the by-id index desyncs.
func TestUpdateWithoutIdentifierKeepsCanonicalID(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)
	feedDump(r, "i1")

	h := r.Host("i1-web")
	require.NotNil(t, h)
	require.Equal(t, "i1-h-1", h.ID)

	r.ManageBrok(brok(models.BrokUpdateHostStatus, map[string]interface{}{
		"host_name": "i1-web",
		"state":     "DOWN",
	}))

	require.Equal(t, "DOWN", h.State)
	require.Equal(t, "i1-h-1", h.ID)
	require.Same(t, h, r.HostByID("i1-h-1"))

	svc := r.Service("i1-web", "HTTP")
	require.NotNil(t, svc)

	r.ManageBrok(brok(models.BrokUpdateServiceStatus, map[string]interface{}{
		"host_name":           "i1-web",
		"service_description": "HTTP",
		"state":               "CRITICAL",
	}))

	require.Equal(t, "CRITICAL", svc.State)
	require.Equal(t, "i1-s-1", svc.ID)
	require.Same(t, svc, r.ServiceByID("i1-s-1"))
}

func TestUpdateHostStatusTopologyChange(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)
	feedDump(r, "i1")

	r.ManageBrok(brok(models.BrokProgramStatus, map[string]interface{}{"instance_id": "i2"}))
	r.ManageBrok(brok(models.BrokInitialHostStatus, map[string]interface{}{
		"uuid":        "i2-h-1",
		"instance_id": "i2",
		"host_name":   "db",
	}))
	r.ManageBrok(brok(models.BrokInitialBroksDone, map[string]interface{}{"instance_id": "i2"}))

	h := r.Host("i1-web")
	require.NotNil(t, h)
	require.Empty(t, h.Parents)

	// Without the topology flag the parent list is ignored.
	r.ManageBrok(brok(models.BrokUpdateHostStatus, map[string]interface{}{
		"host_name":       "i1-web",
		"parents":         []interface{}{"db"},
		"topology_change": false,
	}))
	require.Empty(t, h.Parents)

	// With it, the parents are resolved against the store.
	r.ManageBrok(brok(models.BrokUpdateHostStatus, map[string]interface{}{
		"host_name":       "i1-web",
		"parents":         []interface{}{"db"},
		"topology_change": true,
	}))
	require.Len(t, h.Parents, 1)
	require.Same(t, r.Host("db"), h.Parents[0])
	require.Empty(t, h.ParentNames)
}

func TestUpdateServiceStatusKeepsLinkedReferences(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)
	feedDump(r, "i1")

	svc := r.Service("i1-web", "HTTP")
	require.NotNil(t, svc)

	host := svc.Host
	groups := svc.Groups

	r.ManageBrok(brok(models.BrokUpdateServiceStatus, map[string]interface{}{
		"host_name":           "i1-web",
		"service_description": "HTTP",
		"state":               "WARNING",
		"attempt":             2,
		"servicegroups":       []interface{}{"bogus"},
		"topology_change":     false,
	}))

	require.Equal(t, "WARNING", svc.State)
	require.Equal(t, 2, svc.Attempt)
	require.Same(t, host, svc.Host)
	require.Equal(t, groups, svc.Groups)
}

func TestUpdateForUnknownElementIsDropped(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)

	require.NotPanics(t, func() {
		r.ManageBrok(brok(models.BrokUpdateHostStatus, map[string]interface{}{
			"host_name": "ghost",
			"state":     "DOWN",
		}))
		r.ManageBrok(brok(models.BrokUpdateServiceStatus, map[string]interface{}{
			"host_name":           "ghost",
			"service_description": "HTTP",
		}))
	})

	require.Empty(t, r.Hosts())
}

func TestCheckResultUpdatesScalars(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)
	feedDump(r, "i1")

	r.ManageBrok(brok(models.BrokHostCheckResult, map[string]interface{}{
		"host_name": "i1-web",
		"state":     "DOWN",
		"output":    "PING CRITICAL",
		"last_chk":  float64(1_700_000_100),
	}))

	h := r.Host("i1-web")
	require.Equal(t, "DOWN", h.State)
	require.Equal(t, "PING CRITICAL", h.Output)
	require.Equal(t, int64(1_700_000_100), h.LastCheck)

	r.ManageBrok(brok(models.BrokServiceNextSchedule, map[string]interface{}{
		"host_name":           "i1-web",
		"service_description": "HTTP",
		"next_chk":            float64(1_700_000_200),
	}))

	svc := r.Service("i1-web", "HTTP")
	require.Equal(t, int64(1_700_000_200), svc.NextCheck)
}

func TestUpdateProgramStatusRefreshesKnownInstance(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)
	feedDump(r, "i1")

	r.ManageBrok(brok(models.BrokUpdateProgramStatus, map[string]interface{}{
		"instance_id":           "i1",
		"pid":                   9999,
		"notifications_enabled": true,
	}))

	cfg := r.InstanceConfig("i1")
	require.NotNil(t, cfg)
	require.Equal(t, 9999, cfg.PID)
	require.True(t, cfg.NotificationsEnabled)
}
