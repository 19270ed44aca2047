package regen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/brokview/pkg/models"
)

// Groups are global, identified by name: a later dump must update the
// existing group object in place so references held elsewhere stay valid,
// while adopting the new generation's identifier.
func TestGroupMergePreservesIdentity(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)
	clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	r.clock = clk.Now

	feedDump(r, "i1")

	hg := r.HostGroup("linux")
	require.NotNil(t, hg)
	require.Equal(t, "i1-hg-1", hg.ID)

	clk.Advance(2 * time.Minute)
	feedDump(r, "i2")

	// Same object, new identifier, new membership.
	require.Same(t, hg, r.HostGroup("linux"))
	require.Equal(t, "i2-hg-1", hg.ID)
	require.Len(t, hg.Members, 1)
	require.Equal(t, "i2-web", hg.Members[0].Name)

	// The by-id index follows the new identifier.
	g, ok := r.store.hostGroups.getByID("i2-hg-1")
	require.True(t, ok)
	require.Same(t, hg, g)

	_, ok = r.store.hostGroups.getByID("i1-hg-1")
	require.False(t, ok)
}

// Unresolvable references are omitted with a warning, never fatal, and the
// raw reference fields end up empty either way.
func TestLinkerOmitsUnresolvedReferences(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)

	r.ManageBrok(brok(models.BrokProgramStatus, map[string]interface{}{"instance_id": "i1"}))
	r.ManageBrok(brok(models.BrokInitialHostStatus, map[string]interface{}{
		"uuid":                "h-1",
		"instance_id":         "i1",
		"host_name":           "web",
		"check_command":       "no_such_command!1",
		"hostgroups":          []interface{}{"no-such-group"},
		"contacts":            []interface{}{"no-such-contact"},
		"notification_period": "no-such-period",
	}))
	r.ManageBrok(brok(models.BrokInitialBroksDone, map[string]interface{}{"instance_id": "i1"}))

	h := r.Host("web")
	require.NotNil(t, h)

	require.Empty(t, h.Groups)
	require.Empty(t, h.Contacts)
	require.Nil(t, h.NotificationPeriod)

	// The call survives without its command definition.
	require.NotNil(t, h.CheckCommand)
	require.Nil(t, h.CheckCommand.Command)

	require.Empty(t, h.GroupNames)
	require.Empty(t, h.ContactNames)
	require.Empty(t, h.CheckCommandName)
	require.Empty(t, h.NotificationPeriodName)
}

func TestLinkerWithoutProgramStatusBailsOut(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)

	// A staging area with no config entry must not be merged.
	r.staged["ghost"] = newStaging()
	r.staged["ghost"].hosts["h-1"] = &models.Host{ID: "h-1", Name: "orphan", InstanceID: "ghost"}

	r.linkInstance("ghost")

	require.Nil(t, r.Host("orphan"))
	require.Contains(t, r.staged, "ghost")
}

func TestTimeperiodExcludeLinking(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)

	r.ManageBrok(brok(models.BrokProgramStatus, map[string]interface{}{"instance_id": "i1"}))
	r.ManageBrok(brok(models.BrokInitialTimeperiodStatus, map[string]interface{}{
		"uuid":            "tp-1",
		"timeperiod_name": "workhours",
		"exclude":         []interface{}{"holidays", "no-such-period"},
	}))
	r.ManageBrok(brok(models.BrokInitialTimeperiodStatus, map[string]interface{}{
		"uuid":            "tp-2",
		"timeperiod_name": "holidays",
	}))
	r.ManageBrok(brok(models.BrokInitialBroksDone, map[string]interface{}{"instance_id": "i1"}))

	tp := r.Timeperiod("workhours")
	require.NotNil(t, tp)
	require.Len(t, tp.Exclude, 1)
	require.Same(t, r.Timeperiod("holidays"), tp.Exclude[0])
	require.Empty(t, tp.ExcludeNames)
}

// Timeperiods are global: a dump from another instance that does not
// resend a shared timeperiod must leave its resolved excludes alone.
func TestTimeperiodExcludesSurviveLaterDumps(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)

	r.ManageBrok(brok(models.BrokProgramStatus, map[string]interface{}{"instance_id": "i1"}))
	r.ManageBrok(brok(models.BrokInitialTimeperiodStatus, map[string]interface{}{
		"uuid":            "tp-1",
		"timeperiod_name": "workhours",
		"exclude":         []interface{}{"holidays"},
	}))
	r.ManageBrok(brok(models.BrokInitialTimeperiodStatus, map[string]interface{}{
		"uuid":            "tp-2",
		"timeperiod_name": "holidays",
	}))
	r.ManageBrok(brok(models.BrokInitialBroksDone, map[string]interface{}{"instance_id": "i1"}))

	tp := r.Timeperiod("workhours")
	require.NotNil(t, tp)
	require.Len(t, tp.Exclude, 1)

	// Another instance's dump without any timeperiods.
	r.ManageBrok(brok(models.BrokProgramStatus, map[string]interface{}{"instance_id": "i2"}))
	r.ManageBrok(brok(models.BrokInitialBroksDone, map[string]interface{}{"instance_id": "i2"}))

	require.Len(t, tp.Exclude, 1)
	require.Same(t, r.Timeperiod("holidays"), tp.Exclude[0])

	// A dump that resends the timeperiod with an explicitly empty
	// exclude list does clear it.
	r.ManageBrok(brok(models.BrokProgramStatus, map[string]interface{}{"instance_id": "i3"}))
	r.ManageBrok(brok(models.BrokInitialTimeperiodStatus, map[string]interface{}{
		"uuid":            "tp-1b",
		"timeperiod_name": "workhours",
		"exclude":         []interface{}{},
	}))
	r.ManageBrok(brok(models.BrokInitialBroksDone, map[string]interface{}{"instance_id": "i3"}))

	require.Empty(t, tp.Exclude)
}

func TestMixedRefResolution(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)

	r.ManageBrok(brok(models.BrokProgramStatus, map[string]interface{}{"instance_id": "i1"}))
	r.ManageBrok(brok(models.BrokInitialHostStatus, map[string]interface{}{
		"uuid":        "h-1",
		"instance_id": "i1",
		"host_name":   "web",
	}))
	r.ManageBrok(brok(models.BrokInitialHostStatus, map[string]interface{}{
		"uuid":        "h-2",
		"instance_id": "i1",
		"host_name":   "db",
		// Identifier-list form.
		"impacts": []interface{}{"h-1", "s-1"},
	}))
	r.ManageBrok(brok(models.BrokInitialServiceStatus, map[string]interface{}{
		"uuid":                "s-1",
		"instance_id":         "i1",
		"host_name":           "web",
		"service_description": "HTTP",
		// Name-mapping form.
		"source_problems": map[string]interface{}{
			"hosts":    []interface{}{"db"},
			"services": []interface{}{"web/HTTP"},
		},
	}))
	r.ManageBrok(brok(models.BrokInitialBroksDone, map[string]interface{}{"instance_id": "i1"}))

	db := r.Host("db")
	require.NotNil(t, db)
	require.Len(t, db.Impacts, 2)
	require.Equal(t, "web", db.Impacts[0].ItemName())
	require.Equal(t, "web/HTTP", db.Impacts[1].ItemName())

	svc := r.Service("web", "HTTP")
	require.NotNil(t, svc)
	require.Len(t, svc.SourceProblems, 2)
	require.Equal(t, "db", svc.SourceProblems[0].ItemName())
	require.Equal(t, "web/HTTP", svc.SourceProblems[1].ItemName())

	require.True(t, db.RawImpacts.Empty())
	require.True(t, svc.RawSourceProblems.Empty())
}
