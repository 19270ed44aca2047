// Package regen rebuilds a queryable in-memory object graph of hosts,
// services, groups, contacts, timeperiods and commands from the brok stream
// emitted by the scheduler/broker tier. Every scheduler instance sends a
// bulk initial dump followed by incremental updates; the regenerator stages
// each dump, links cross-references once the dump completes, and merges the
// result into one global store shared by all instances.
package regen

import (
	"context"
	"time"

	"github.com/carverauto/brokview/pkg/logger"
	"github.com/carverauto/brokview/pkg/models"
)

// ResyncRequester carries a NeedData request back to the broker tier when
// an update references an instance we never received a dump for.
type ResyncRequester interface {
	RequestFullData(ctx context.Context, instanceID string) error
}

// Regenerator owns the store, the per-instance staging areas and the gate.
// It is constructed once at process start; there is no ambient global
// state. All mutation goes through ManageBrok under the writer side of the
// gate; all queries go through the read methods under the reader side.
type Regenerator struct {
	store  *Store
	staged map[string]*staging
	gate   *Gate
	log    logger.Logger

	dupWindow    time.Duration
	resyncWindow time.Duration

	resync     ResyncRequester
	lastResync map[string]time.Time

	// schedulerMode is set when the regenerator runs inside a scheduler
	// process and adopts its objects directly; bulk-dump broks are then
	// filtered out.
	schedulerMode bool

	handlers map[string]func(data map[string]interface{})

	clock func() time.Time
}

func New(cfg *models.BrokviewConfig, log logger.Logger) *Regenerator {
	cfg.Defaults()

	r := &Regenerator{
		store:        NewStore(),
		staged:       make(map[string]*staging),
		gate:         NewGate(time.Duration(cfg.StuckWriterWarning), log),
		log:          log,
		dupWindow:    time.Duration(cfg.DuplicateDumpWindow),
		resyncWindow: time.Duration(cfg.ResyncRequestWindow),
		lastResync:   make(map[string]time.Time),
		clock:        time.Now,
	}

	r.handlers = map[string]func(map[string]interface{}){
		models.BrokProgramStatus:    r.handleProgramStatus,
		models.BrokInitialBroksDone: r.handleInitialBroksDone,

		models.BrokInitialHostStatus:            r.handleInitialHost,
		models.BrokInitialHostgroupStatus:       r.handleInitialHostGroup,
		models.BrokInitialServiceStatus:         r.handleInitialService,
		models.BrokInitialServicegroupStatus:    r.handleInitialServiceGroup,
		models.BrokInitialContactStatus:         r.handleInitialContact,
		models.BrokInitialContactgroupStatus:    r.handleInitialContactGroup,
		models.BrokInitialTimeperiodStatus:      r.handleInitialTimeperiod,
		models.BrokInitialCommandStatus:         r.handleInitialCommand,
		models.BrokInitialNotificationwayStatus: r.handleInitialNotificationWay,

		models.BrokInitialSchedulerStatus:   r.daemonInitialHandler(models.RoleScheduler),
		models.BrokInitialPollerStatus:      r.daemonInitialHandler(models.RolePoller),
		models.BrokInitialReactionnerStatus: r.daemonInitialHandler(models.RoleReactionner),
		models.BrokInitialBrokerStatus:      r.daemonInitialHandler(models.RoleBroker),
		models.BrokInitialReceiverStatus:    r.daemonInitialHandler(models.RoleReceiver),

		models.BrokUpdateProgramStatus: r.handleUpdateProgramStatus,
		models.BrokUpdateHostStatus:    r.handleUpdateHostStatus,
		models.BrokUpdateServiceStatus: r.handleUpdateServiceStatus,

		models.BrokUpdateSchedulerStatus:   r.daemonUpdateHandler(models.RoleScheduler),
		models.BrokUpdatePollerStatus:      r.daemonUpdateHandler(models.RolePoller),
		models.BrokUpdateReactionnerStatus: r.daemonUpdateHandler(models.RoleReactionner),
		models.BrokUpdateBrokerStatus:      r.daemonUpdateHandler(models.RoleBroker),
		models.BrokUpdateReceiverStatus:    r.daemonUpdateHandler(models.RoleReceiver),

		models.BrokHostCheckResult:     r.handleHostCheckResult,
		models.BrokServiceCheckResult:  r.handleServiceCheckResult,
		models.BrokHostNextSchedule:    r.handleHostCheckResult,
		models.BrokServiceNextSchedule: r.handleServiceCheckResult,
	}

	return r
}

// Gate exposes the reader/writer gate to the ingestion loop and the query
// layer.
func (r *Regenerator) Gate() *Gate {
	return r.gate
}

// LoadExternalQueue wires the outbound channel used for NeedData resync
// requests.
func (r *Regenerator) LoadExternalQueue(rq ResyncRequester) {
	r.resync = rq
}

// WantBrok reports whether a brok type is worth delivering. In scheduler
// mode the bulk-dump types are suppressed: the objects were adopted
// directly, incremental updates still flow.
func (r *Regenerator) WantBrok(brokType string) bool {
	if !r.schedulerMode {
		return true
	}

	for _, t := range models.InitialBrokTypes {
		if brokType == t {
			return false
		}
	}

	return true
}

// SchedulerSnapshot is the live object set adopted in scheduler-embedded
// mode, bypassing event-driven construction.
type SchedulerSnapshot struct {
	InstanceID string

	Hosts            []*models.Host
	Services         []*models.Service
	Contacts         []*models.Contact
	ContactGroups    []*models.ContactGroup
	HostGroups       []*models.HostGroup
	ServiceGroups    []*models.ServiceGroup
	Timeperiods      []*models.Timeperiod
	Commands         []*models.Command
	NotificationWays []*models.NotificationWay
}

// LoadFromScheduler adopts object references directly from a scheduler's
// live configuration. The objects are already linked, so no staging and no
// linker pass is involved.
func (r *Regenerator) LoadFromScheduler(snap *SchedulerSnapshot) {
	r.schedulerMode = true

	r.store.configs[snap.InstanceID] = &models.InstanceConfig{
		InstanceID: snap.InstanceID,
		Timestamp:  r.clock().Unix(),
	}

	for _, h := range snap.Hosts {
		r.store.addHost(h)

		if h.RealmName != "" {
			r.store.realms[h.RealmName] = struct{}{}
		}
	}

	for _, svc := range snap.Services {
		r.store.addService(svc)
	}

	for _, c := range snap.Contacts {
		r.store.contacts.add(c.Name, c.ID, c)
	}

	for _, g := range snap.ContactGroups {
		r.store.contactGroups.add(g.Name, g.ID, g)
	}

	for _, g := range snap.HostGroups {
		r.store.hostGroups.add(g.Name, g.ID, g)
	}

	for _, g := range snap.ServiceGroups {
		r.store.serviceGroups.add(g.Name, g.ID, g)
	}

	for _, tp := range snap.Timeperiods {
		r.store.timeperiods.add(tp.Name, tp.ID, tp)
	}

	for _, c := range snap.Commands {
		r.store.commands.add(c.Name, c.ID, c)
	}

	for _, nw := range snap.NotificationWays {
		r.store.notifWays.add(nw.Name, nw.ID, nw)
	}

	r.log.Info().
		Str("instance_id", snap.InstanceID).
		Int("hosts", len(snap.Hosts)).
		Int("services", len(snap.Services)).
		Msg("Adopted objects from embedded scheduler")
}
