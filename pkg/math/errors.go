package math

import "errors"

var (
	// ErrInvertedBounds is returned when a bounding box has max < min on an axis.
	ErrInvertedBounds = errors.New("bounding box max is below min")

	// ErrSingularMatrix is returned when a matrix cannot be inverted or
	// decomposed into translation, rotation and scale.
	ErrSingularMatrix = errors.New("matrix is singular or not affine")
)
