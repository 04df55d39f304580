// Package fieldsets provides the concrete row editors of the metadata form:
// conforms-to, alternate identifier, creator, temporal coverage, and
// theme/subtheme. Each field set embeds rows.Base and overrides only the
// hooks whose behaviour differs from the generic rules.
package fieldsets
