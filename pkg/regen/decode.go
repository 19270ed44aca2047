package regen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carverauto/brokview/pkg/models"
)

// Brok data arrives as freshly unmarshaled JSON, so values are float64,
// string, bool, []interface{} and map[string]interface{}. Everything the
// handlers consume is coerced here; the linker and the update handlers never
// see a raw wire shape.

func getString(data map[string]interface{}, key string) (string, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}

// getIdentifier renders an id-ish value as a string. Shinken instance and
// object ids are integers on the wire, Alignak ones are uuid strings.
func getIdentifier(data map[string]interface{}, key string) (string, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", false
	}

	return identifierString(v)
}

func identifierString(v interface{}) (string, bool) {
	switch value := v.(type) {
	case string:
		return value, value != ""
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10), true
		}

		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	default:
		return "", false
	}
}

func getInt(data map[string]interface{}, key string) (int, bool) {
	v, ok := data[key]
	if !ok {
		return 0, false
	}

	switch value := v.(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	case int64:
		return int(value), true
	default:
		return 0, false
	}
}

func getInt64(data map[string]interface{}, key string) (int64, bool) {
	v, ok := data[key]
	if !ok {
		return 0, false
	}

	switch value := v.(type) {
	case float64:
		return int64(value), true
	case int:
		return int64(value), true
	case int64:
		return value, true
	default:
		return 0, false
	}
}

func getFloat(data map[string]interface{}, key string) (float64, bool) {
	v, ok := data[key]
	if !ok {
		return 0, false
	}

	switch value := v.(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	default:
		return 0, false
	}
}

func getBool(data map[string]interface{}, key string) (bool, bool) {
	v, ok := data[key]
	if !ok {
		return false, false
	}

	switch value := v.(type) {
	case bool:
		return value, true
	case float64:
		return value != 0, true
	default:
		return false, false
	}
}

// getStringList accepts a JSON array of strings or identifiers.
func getStringList(data map[string]interface{}, key string) ([]string, bool) {
	v, ok := data[key]
	if !ok || v == nil {
		return nil, false
	}

	list, ok := v.([]interface{})
	if !ok {
		return nil, false
	}

	out := make([]string, 0, len(list))

	for _, item := range list {
		if s, ok := identifierString(item); ok {
			out = append(out, s)
		}
	}

	return out, true
}

// getNameList accepts either a JSON array or a comma-separated string; the
// host group list still uses the flat-string form in older daemons.
func getNameList(data map[string]interface{}, key string) ([]string, bool) {
	if list, ok := getStringList(data, key); ok {
		return list, true
	}

	s, ok := getString(data, key)
	if !ok || s == "" {
		return nil, false
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out, true
}

// getSubGroupNames handles the sub-group member lists, where a list holding
// a single empty string means "none". getStringList already drops empty
// strings, so both that sentinel and a genuinely empty list collapse to nil.
func getSubGroupNames(data map[string]interface{}, key string) []string {
	names, _ := getStringList(data, key)
	if len(names) == 0 {
		return nil
	}

	return names
}

// getMemberRefs decodes group membership, which arrives either as
// [[id, name], ...] pairs or as a plain list of names.
func getMemberRefs(data map[string]interface{}, key string) []models.MemberRef {
	v, ok := data[key]
	if !ok || v == nil {
		return nil
	}

	list, ok := v.([]interface{})
	if !ok {
		return nil
	}

	refs := make([]models.MemberRef, 0, len(list))

	for _, item := range list {
		switch entry := item.(type) {
		case []interface{}:
			var ref models.MemberRef
			if len(entry) > 0 {
				ref.ID, _ = identifierString(entry[0])
			}

			if len(entry) > 1 {
				ref.Name, _ = identifierString(entry[1])
			}

			if ref.ID != "" || ref.Name != "" {
				refs = append(refs, ref)
			}
		default:
			if s, ok := identifierString(entry); ok && s != "" {
				refs = append(refs, models.MemberRef{ID: s, Name: s})
			}
		}
	}

	return refs
}

// getMixedRefs decodes an impact/source-problem/dependency set: a flat list
// of identifiers, or a {"hosts": [...], "services": [...]} mapping.
func getMixedRefs(data map[string]interface{}, key string) models.MixedRefs {
	v, ok := data[key]
	if !ok || v == nil {
		return models.MixedRefs{}
	}

	switch value := v.(type) {
	case []interface{}:
		ids := make([]string, 0, len(value))

		for _, item := range value {
			if s, ok := identifierString(item); ok && s != "" {
				ids = append(ids, s)
			}
		}

		return models.MixedRefs{IDs: ids}
	case map[string]interface{}:
		hosts, _ := getStringList(value, "hosts")
		services, _ := getStringList(value, "services")

		return models.MixedRefs{Hosts: hosts, Services: services}
	default:
		return models.MixedRefs{}
	}
}

// decodeTimerange accepts every shape the framework versions emit: a
// {"hstart", "mstart", "hend", "mend"} mapping, a serialized object of the
// same fields, or the canonical "HH:MM-HH:MM" string.
func decodeTimerange(v interface{}) (models.Timerange, error) {
	switch value := v.(type) {
	case string:
		return models.ParseTimerange(value)
	case map[string]interface{}:
		hs, ok1 := getInt(value, "hstart")
		ms, ok2 := getInt(value, "mstart")
		he, ok3 := getInt(value, "hend")
		me, ok4 := getInt(value, "mend")

		if !(ok1 && ok2 && ok3 && ok4) {
			return models.Timerange{}, fmt.Errorf("timerange mapping missing fields: %v", value)
		}

		return models.Timerange{HourStart: hs, MinuteStart: ms, HourEnd: he, MinuteEnd: me}, nil
	default:
		return models.Timerange{}, fmt.Errorf("unsupported timerange shape %T", v)
	}
}

// decodeDateranges normalizes the nested daterange/timerange structures of
// a timeperiod dump into the canonical in-memory form.
func decodeDateranges(v interface{}) []*models.Daterange {
	list, ok := v.([]interface{})
	if !ok {
		return nil
	}

	out := make([]*models.Daterange, 0, len(list))

	for _, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}

		dr := &models.Daterange{}
		dr.StartYear, _ = getInt(entry, "syear")
		dr.StartMonth, _ = getInt(entry, "smon")
		dr.StartMonthDay, _ = getInt(entry, "smday")
		dr.StartWeekDay, _ = getInt(entry, "swday")
		dr.StartWeekDayOffset, _ = getInt(entry, "swday_offset")
		dr.EndYear, _ = getInt(entry, "eyear")
		dr.EndMonth, _ = getInt(entry, "emon")
		dr.EndMonthDay, _ = getInt(entry, "emday")
		dr.EndWeekDay, _ = getInt(entry, "ewday")
		dr.EndWeekDayOffset, _ = getInt(entry, "ewday_offset")
		dr.SkipInterval, _ = getInt(entry, "skip_interval")
		dr.Other, _ = getString(entry, "other")

		if trs, ok := entry["timeranges"].([]interface{}); ok {
			for _, tr := range trs {
				decoded, err := decodeTimerange(tr)
				if err != nil {
					continue
				}

				dr.Timeranges = append(dr.Timeranges, decoded)
			}
		}

		out = append(out, dr)
	}

	return out
}

// decodeDowntimes rebuilds the downtime list of an item. The wire carries
// either an id-keyed mapping or a plain list; both collapse to a list with
// the owner back-reference restored.
func decodeDowntimes(v interface{}, owner models.Item) []*models.Downtime {
	out := make([]*models.Downtime, 0)

	for _, entry := range subRecords(v) {
		d := &models.Downtime{Ref: owner}
		d.ID = subRecordID(entry)
		d.Author, _ = getString(entry, "author")
		d.Comment, _ = getString(entry, "comment")
		d.StartTime, _ = getInt64(entry, "start_time")
		d.EndTime, _ = getInt64(entry, "end_time")
		d.Duration, _ = getInt64(entry, "duration")
		d.Fixed, _ = getBool(entry, "fixed")
		d.IsInEffect, _ = getBool(entry, "is_in_effect")
		out = append(out, d)
	}

	return out
}

// decodeComments does the same for comments; rebuilt comments are always
// persistent.
func decodeComments(v interface{}, owner models.Item) []*models.Comment {
	out := make([]*models.Comment, 0)

	for _, entry := range subRecords(v) {
		c := &models.Comment{Ref: owner, Persistent: true}
		c.ID = subRecordID(entry)
		c.Author, _ = getString(entry, "author")
		c.Comment, _ = getString(entry, "comment")
		c.EntryTime, _ = getInt64(entry, "entry_time")
		out = append(out, c)
	}

	return out
}

// subRecords flattens a nested sub-object collection that may arrive as a
// mapping (id -> record) or as a sequence of records.
func subRecords(v interface{}) []map[string]interface{} {
	switch value := v.(type) {
	case []interface{}:
		out := make([]map[string]interface{}, 0, len(value))

		for _, item := range value {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}

		return out
	case map[string]interface{}:
		out := make([]map[string]interface{}, 0, len(value))

		for _, item := range value {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, m)
			}
		}

		return out
	default:
		return nil
	}
}

// subRecordID prefers the uuid field of a sub-record, mirroring the dual
// identifier convention of the enclosing brok.
func subRecordID(entry map[string]interface{}) string {
	if id, ok := getIdentifier(entry, "uuid"); ok {
		return id
	}

	id, _ := getIdentifier(entry, "id")

	return id
}
