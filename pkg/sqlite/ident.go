package sqlite

// ValidIdent reports whether name is safe to splice into SQL as a table or
// column name: every byte must be an ASCII letter, digit, or underscore.
//
// Identifiers cannot be bound as statement parameters, so this allow-list
// is the only injection defense for the positions where they appear. It is
// a per-byte check: the empty string passes vacuously and must be rejected
// by callers where an empty name is meaningless.
func ValidIdent(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}
