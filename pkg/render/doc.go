// Package render defines the contract shared by editor renderers together
// with the per-request options they receive: language, hidden fields, and
// server-side error payloads mapped onto editor rows.
package render
