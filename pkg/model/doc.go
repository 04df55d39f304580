// Package model defines the row template consumed by editors and renderers.
// A RowTemplate lists the controls every repeated row carries; each Field
// declares its control kind and which widget renders it. Localization and
// list handling are declared by the owning field set configuration.
//
// The curated UIHints map surfaces renderer-facing directives such as
// `placeholder`, `cssClass`, `inputType`, `widget`, `addLabel`, and
// `hideLabel`.
package model
