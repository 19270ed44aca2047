package regen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/brokview/pkg/models"
)

func TestNormalizeIdentifiersMirrorsID(t *testing.T) {
	t.Parallel()

	b := &models.Brok{
		Type: models.BrokInitialHostStatus,
		ID:   "b-1",
		Data: map[string]interface{}{"id": float64(42)},
	}

	normalizeIdentifiers(b)

	require.Equal(t, "b-1", b.UUID)
	require.Equal(t, "42", b.Data["id"])
	require.Equal(t, "42", b.Data["uuid"])
}

func TestNormalizeIdentifiersMirrorsUUID(t *testing.T) {
	t.Parallel()

	b := &models.Brok{
		Type: models.BrokInitialHostStatus,
		UUID: "u-1",
		Data: map[string]interface{}{"uuid": "obj-7"},
	}

	normalizeIdentifiers(b)

	require.Equal(t, "u-1", b.ID)
	require.Equal(t, "obj-7", b.Data["id"])
	require.Equal(t, "obj-7", b.Data["uuid"])
}

func TestNormalizeIdentifiersSynthesizes(t *testing.T) {
	t.Parallel()

	b := &models.Brok{Type: models.BrokInitialHostStatus, Data: map[string]interface{}{}}

	normalizeIdentifiers(b)

	require.NotEmpty(t, b.Data["id"])
	require.Equal(t, b.Data["id"], b.Data["uuid"])
}

func TestManageBrokUnknownType(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)

	r.ManageBrok(brok("new_fancy_brok", map[string]interface{}{"x": 1}))
	r.ManageBrok(brok(models.BrokLog, map[string]interface{}{"log": "whatever"}))

	require.Empty(t, r.Hosts())
}

// A malformed payload must be contained by the dispatcher: the handler may
// give up on the brok but never take the ingestion loop down.
func TestManageBrokSurvivesMalformedData(t *testing.T) {
	t.Parallel()

	r := newTestRegenerator(t)

	require.NotPanics(t, func() {
		r.ManageBrok(brok(models.BrokProgramStatus, map[string]interface{}{
			"instance_id": []interface{}{"not", "a", "scalar"},
		}))
		r.ManageBrok(brok(models.BrokInitialHostStatus, nil))
		r.ManageBrok(brok(models.BrokUpdateHostStatus, map[string]interface{}{
			"host_name": map[string]interface{}{"bad": true},
		}))
	})
}
