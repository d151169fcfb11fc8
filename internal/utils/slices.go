package utils

// Transform applies the given transform function fn: T -> R to each element t
// of slice ts and returns a slice containing the corresponding results.
func Transform[T, R any](ts []T, fn func(T) R) []R {
	result := make([]R, len(ts))
	for i, t := range ts {
		result[i] = fn(t)
	}
	return result
}

/*
RemoveDuplicates takes a slice and returns a new slice with only the
unique elements from the input slice. Ordering of the elements in the
returned slice corresponds to the earliest index of each unique value
in the input slice.
*/
func RemoveDuplicates[T comparable](items []T) []T {
	seenItems := make(map[T]struct{}) // empty structs take up no space
	var uniqueItems []T
	for _, item := range items {
		if _, seen := seenItems[item]; !seen {
			seenItems[item] = struct{}{}
			uniqueItems = append(uniqueItems, item)
		}
	}
	return uniqueItems
}
