package helpers

// NilIfEmpty maps an empty string to a NULL column value.
func NilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the string a nullable column scanned into, or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
