package vars

// FirstNonZero returns the first argument that is not the zero value, which
// lets flag, config and default values be listed in priority order.
func FirstNonZero[T comparable](values ...T) T {
	var zero T
	for _, value := range values {
		if value != zero {
			return value
		}
	}
	return zero
}
