package algo

import "errors"

var (
	// ErrEmptyGraph is returned when nearest-node snapping is asked of a graph with no nodes.
	ErrEmptyGraph = errors.New("algo: graph has no nodes")

	// ErrUnknownNode is returned when a node id is not present in the graph.
	ErrUnknownNode = errors.New("algo: unknown node")

	// ErrNegativeWeight is returned when an edge with a negative or non-finite length is added.
	ErrNegativeWeight = errors.New("algo: edge length must be finite and non-negative")

	// ErrDuplicateLandmark is returned when a landmark catalog repeats a name.
	ErrDuplicateLandmark = errors.New("algo: duplicate landmark name")

	// ErrUnknownLandmark is returned when a catalog lookup misses.
	ErrUnknownLandmark = errors.New("algo: unknown landmark")
)
