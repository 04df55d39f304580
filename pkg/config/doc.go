// Package config loads editor configuration documents (JSON or YAML) that
// relabel fields, pick widgets and override element ids per editor key.
package config
