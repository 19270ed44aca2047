package regen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/brokview/pkg/models"
)

// Identifiers arrive as JSON numbers from older daemons and as uuid strings
// from newer ones; both normalize to strings.
func TestGetIdentifier(t *testing.T) {
	t.Parallel()

	data := map[string]interface{}{
		"numeric": float64(42),
		"str":     "abc-def",
		"bad":     []interface{}{},
	}

	id, ok := getIdentifier(data, "numeric")
	require.True(t, ok)
	require.Equal(t, "42", id)

	id, ok = getIdentifier(data, "str")
	require.True(t, ok)
	require.Equal(t, "abc-def", id)

	_, ok = getIdentifier(data, "bad")
	require.False(t, ok)

	_, ok = getIdentifier(data, "missing")
	require.False(t, ok)
}

func TestGetNameListForms(t *testing.T) {
	t.Parallel()

	data := map[string]interface{}{
		"list":  []interface{}{"a", "b"},
		"comma": "a, b ,c",
		"empty": "",
	}

	v, ok := getNameList(data, "list")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, v)

	v, ok = getNameList(data, "comma")
	require.True(t, ok)
	require.Equal(t, []string{"a", "b", "c"}, v)

	_, ok = getNameList(data, "empty")
	require.False(t, ok)
}

func TestGetSubGroupNames(t *testing.T) {
	t.Parallel()

	data := map[string]interface{}{
		"none":   []interface{}{""},
		"empty":  []interface{}{},
		"some":   []interface{}{"linux", "windows"},
		"absent": nil,
	}

	require.Nil(t, getSubGroupNames(data, "none"))
	require.Nil(t, getSubGroupNames(data, "empty"))
	require.Equal(t, []string{"linux", "windows"}, getSubGroupNames(data, "some"))
	require.Nil(t, getSubGroupNames(data, "absent"))
}

func TestGetMemberRefsForms(t *testing.T) {
	t.Parallel()

	pairs := map[string]interface{}{
		"members": []interface{}{
			[]interface{}{float64(1), "web"},
			[]interface{}{"u-2", "db"},
		},
	}
	require.Equal(t, []models.MemberRef{
		{ID: "1", Name: "web"},
		{ID: "u-2", Name: "db"},
	}, getMemberRefs(pairs, "members"))

	names := map[string]interface{}{
		"members": []interface{}{"admin", "ops"},
	}
	require.Equal(t, []models.MemberRef{
		{ID: "admin", Name: "admin"},
		{ID: "ops", Name: "ops"},
	}, getMemberRefs(names, "members"))
}

func TestGetMixedRefsForms(t *testing.T) {
	t.Parallel()

	flat := map[string]interface{}{
		"impacts": []interface{}{float64(3), "u-4"},
	}
	require.Equal(t, models.MixedRefs{IDs: []string{"3", "u-4"}}, getMixedRefs(flat, "impacts"))

	mapped := map[string]interface{}{
		"impacts": map[string]interface{}{
			"hosts":    []interface{}{"db"},
			"services": []interface{}{"web/HTTP"},
		},
	}
	require.Equal(t, models.MixedRefs{
		Hosts:    []string{"db"},
		Services: []string{"web/HTTP"},
	}, getMixedRefs(mapped, "impacts"))

	require.True(t, getMixedRefs(map[string]interface{}{}, "impacts").Empty())
}

func TestDecodeTimerangeForms(t *testing.T) {
	t.Parallel()

	tr, err := decodeTimerange("09:00-17:30")
	require.NoError(t, err)
	require.Equal(t, models.Timerange{HourStart: 9, MinuteStart: 0, HourEnd: 17, MinuteEnd: 30}, tr)
	require.Equal(t, "09:00-17:30", tr.String())

	tr, err = decodeTimerange(map[string]interface{}{
		"hstart": float64(8),
		"mstart": float64(15),
		"hend":   float64(12),
		"mend":   float64(0),
	})
	require.NoError(t, err)
	require.Equal(t, models.Timerange{HourStart: 8, MinuteStart: 15, HourEnd: 12, MinuteEnd: 0}, tr)

	_, err = decodeTimerange("garbage")
	require.Error(t, err)
}

func TestDecodeDowntimesForms(t *testing.T) {
	t.Parallel()

	h := &models.Host{ID: "h-1", Name: "web"}

	// Mapping form, keyed by downtime identifier.
	mapped := map[string]interface{}{
		"d-1": map[string]interface{}{
			"uuid":         "d-1",
			"author":       "admin",
			"comment":      "planned",
			"start_time":   float64(100),
			"end_time":     float64(200),
			"fixed":        true,
			"is_in_effect": true,
		},
	}

	downtimes := decodeDowntimes(mapped, h)
	require.Len(t, downtimes, 1)
	require.Equal(t, "d-1", downtimes[0].ID)
	require.Equal(t, "admin", downtimes[0].Author)
	require.True(t, downtimes[0].Fixed)
	require.Same(t, h, downtimes[0].Ref.(*models.Host))

	// List form.
	listed := []interface{}{
		map[string]interface{}{"uuid": "d-2", "author": "ops"},
	}

	downtimes = decodeDowntimes(listed, h)
	require.Len(t, downtimes, 1)
	require.Equal(t, "d-2", downtimes[0].ID)
}

func TestDecodeCommentsPersistent(t *testing.T) {
	t.Parallel()

	h := &models.Host{ID: "h-1", Name: "web"}

	comments := decodeComments([]interface{}{
		map[string]interface{}{"uuid": "c-1", "author": "admin", "comment": "ack"},
	}, h)

	require.Len(t, comments, 1)
	require.Equal(t, "c-1", comments[0].ID)
	require.True(t, comments[0].Persistent)
	require.Same(t, h, comments[0].Ref.(*models.Host))
}
