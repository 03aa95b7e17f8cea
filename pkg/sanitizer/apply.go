package sanitizer

// Transform rewrites a single string.
type Transform func(string) string

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value
	for _, transform := range transforms {
		if transform != nil {
			result = transform(result)
		}
	}
	return result
}

// Compose returns a reusable chain of transforms. Nil entries are skipped.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}
