package utils

import "golang.org/x/exp/constraints"

// MaxBy returns the first item with the strictly largest key.
func MaxBy[T any, K constraints.Ordered](items []T, key func(T) K) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestKey := key(best)
	for _, item := range items[1:] {
		if k := key(item); k > bestKey {
			best, bestKey = item, k
		}
	}
	return best, true
}

// MinBy returns the first item with the strictly smallest key.
func MinBy[T any, K constraints.Ordered](items []T, key func(T) K) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	bestKey := key(best)
	for _, item := range items[1:] {
		if k := key(item); k < bestKey {
			best, bestKey = item, k
		}
	}
	return best, true
}
