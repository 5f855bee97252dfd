package utils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Generates a sequence constructed by applying a function to all elements of a given input sequence
func Map[T any, U any](input []T, mapFunction func(T) U) []U {
	output := make([]U, len(input))

	for i := range input {
		output[i] = mapFunction(input[i])
	}

	return output
}

// Returns the keys of a map in ascending order
func SortedKeys[Key constraints.Ordered, Value any](input map[Key]Value) []Key {
	keys := maps.Keys(input)
	slices.Sort(keys)
	return keys
}

// Returns a copy of the input sequence without repeated elements, keeping the first occurrence of each
func Unique[T comparable](input []T) []T {
	seen := make(map[T]struct{}, len(input))
	output := make([]T, 0, len(input))

	for _, value := range input {
		if _, ok := seen[value]; ok {
			continue
		}

		seen[value] = struct{}{}
		output = append(output, value)
	}

	return output
}
