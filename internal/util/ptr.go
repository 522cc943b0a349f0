package util

// Ptr returns a pointer to the given value.
// This is a generic helper for creating pointers to literals.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value p points to, or fallback when p is nil.
// Used for optional record fields that render as a default value.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
