package ptr

// Ptr returns a pointer to v. Convenient for optional struct fields.
func Ptr[T any](v T) *T {
	return &v
}
