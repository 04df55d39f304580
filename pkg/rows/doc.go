// Package rows implements the repeatable-row editor: a list of structured
// records held in one hidden form input, rendered as one row per record and
// re-serialised from the rows on submission.
//
// The editor keeps an in-memory model of the rendered subtree. A template Row
// (marked with Template) is cloned for every new row; each clone carries its
// controls, repeated list groups, and the stored record it was populated from
// so fields without a visible control survive extraction.
//
// Field-set specific behaviour is supplied through the FieldSet interface.
// Base implements the generic rules driven by Config and is meant to be
// embedded by concrete field sets that override individual hooks.
package rows
