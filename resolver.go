package rowcast

// resolver.go maps logical field names to actual column names.
//
// Flat column names need not mirror nested field names one-to-one: a record
// field "name" inside an "address" sub-record may live in a column called
// "address.name", or a field "firstName" may be backed by a legacy column
// "NAME". The resolver exists so record shapes can be declared against
// logical names while the header keeps whatever the file ships with.

import "fmt"

// ColumnResolver resolves a (logical field name, optional scope) pair to a
// column name. Resolution order:
//
//  1. An explicit Aliases entry, if present.
//  2. Otherwise the NameMapping function (identity when nil).
//  3. If PrefixTemplate and a scope are both set, the scope is substituted
//     into the template and the result prefixed onto the resolved name.
//
// The zero value resolves every field to itself. A ColumnResolver is
// read-only for the duration of a parse.
type ColumnResolver struct {
	// Aliases maps logical field names directly to column names.
	Aliases map[string]string

	// NameMapping transforms a field name into a column name when no
	// alias matches. Nil means identity.
	NameMapping func(string) string

	// PrefixTemplate is a fmt template with one %s verb for the scope,
	// e.g. "%s." turns scope "address" and field "name" into
	// "address.name". Empty disables prefixing.
	PrefixTemplate string
}

// Resolve returns the column name to look up for a logical field name.
func (r *ColumnResolver) Resolve(field, scope string) string {
	if r == nil {
		return field
	}

	name, aliased := "", false
	if r.Aliases != nil {
		name, aliased = r.Aliases[field]
	}
	if !aliased {
		if r.NameMapping != nil {
			name = r.NameMapping(field)
		} else {
			name = field
		}
	}

	if r.PrefixTemplate != "" && scope != "" {
		return fmt.Sprintf(r.PrefixTemplate, scope) + name
	}
	return name
}
