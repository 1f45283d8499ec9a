// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package warp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gogpu/compositor/raster"
)

// ErrDegenerate is returned when a source triangle or source grid has no
// area, so no affine transform can be derived from it.
var ErrDegenerate = errors.New("warp: degenerate geometry")

// TriangleAffine returns the affine transform mapping src[i] to dst[i] for
// all three corners.
func TriangleAffine(src, dst [3]raster.Point) (raster.Matrix, error) {
	if math.Abs(signedArea(src)) < 1e-12 {
		return raster.Identity(), ErrDegenerate
	}

	// x' = a*x + b*y + c, y' = d*x + e*y + f
	A := mat.NewDense(6, 6, nil)
	B := mat.NewVecDense(6, nil)
	for i := 0; i < 3; i++ {
		x, y := src[i].X, src[i].Y

		A.Set(i*2, 0, x)
		A.Set(i*2, 1, y)
		A.Set(i*2, 2, 1)
		B.SetVec(i*2, dst[i].X)

		A.Set(i*2+1, 3, x)
		A.Set(i*2+1, 4, y)
		A.Set(i*2+1, 5, 1)
		B.SetVec(i*2+1, dst[i].Y)
	}

	var params mat.VecDense
	if err := params.SolveVec(A, B); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return raster.Identity(), fmt.Errorf("warp: solve affine: %w", err)
		}
	}

	return raster.Matrix{
		A: params.AtVec(0), B: params.AtVec(1), C: params.AtVec(2),
		D: params.AtVec(3), E: params.AtVec(4), F: params.AtVec(5),
	}, nil
}

// Bloat pushes each vertex of tri away from the centroid by amount pixels.
// A vertex that coincides with the centroid is left in place.
func Bloat(tri [3]raster.Point, amount float64) [3]raster.Point {
	c := tri[0].Add(tri[1]).Add(tri[2]).Mul(1.0 / 3)
	var out [3]raster.Point
	for i, p := range tri {
		d := p.Sub(c)
		l := d.Length()
		if l == 0 {
			out[i] = p
			continue
		}
		out[i] = p.Add(d.Mul(amount / l))
	}
	return out
}
