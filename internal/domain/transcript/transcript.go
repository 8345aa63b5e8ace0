// Package transcript builds observation text from dictated fragments.
package transcript

// Append concatenates a recognized fragment onto existing observation text,
// inserting a single space separator only when the existing text is
// non-empty. Empty fragments leave the text unchanged.
func Append(existing, fragment string) string {
	if fragment == "" {
		return existing
	}
	if existing == "" {
		return fragment
	}
	return existing + " " + fragment
}
