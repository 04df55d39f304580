package formbind

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formrows/pkg/rows"
)

const dataField = "__data"

// ControlName returns the field name of a control inside a row.
func ControlName(key, rowID, control string) string {
	return key + "[" + rowID + "][" + control + "]"
}

// ListName returns the field name shared by the items of a list group.
func ListName(key, rowID, group string) string {
	return ControlName(key, rowID, group) + "[]"
}

// DataName returns the field name carrying the stored row record.
func DataName(key, rowID string) string {
	return ControlName(key, rowID, dataField)
}

// RowsName returns the field name listing row ids in document order.
func RowsName(key string) string {
	return key + "[__rows]"
}

// ActionName returns the submit button name for kind.
func ActionName(key string, kind ActionKind) string {
	return key + "[__" + string(kind) + "]"
}

// TargetValue encodes a remove target as "rowID" or "rowID/group/index".
func TargetValue(t rows.Target) string {
	if t.Group == "" {
		return t.RowID
	}
	return t.RowID + "/" + t.Group + "/" + strconv.Itoa(t.Item)
}

// ParseTarget decodes a value produced by TargetValue.
func ParseTarget(value string) (rows.Target, bool) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	switch len(parts) {
	case 1:
		if parts[0] == "" {
			return rows.Target{}, false
		}
		return rows.Target{RowID: parts[0]}, true
	case 3:
		idx, err := strconv.Atoi(parts[2])
		if err != nil || parts[0] == "" || parts[1] == "" {
			return rows.Target{}, false
		}
		return rows.Target{RowID: parts[0], Group: parts[1], Item: idx}, true
	default:
		return rows.Target{}, false
	}
}

// PairValue encodes "rowID/name", used by add_item and change actions.
func PairValue(rowID, name string) string {
	return rowID + "/" + name
}

func parsePair(value string) (string, string, bool) {
	rowID, name, ok := strings.Cut(strings.TrimSpace(value), "/")
	if !ok || rowID == "" || name == "" {
		return "", "", false
	}
	return rowID, name, true
}
