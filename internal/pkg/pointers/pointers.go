package pointers

// Ptr returns a pointer to v. Handy for optional fields on patch requests.
func Ptr[T any](v T) *T { return &v }
