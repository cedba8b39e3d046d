// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvfilter/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)                      // zero rows
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDense(5, 0)                       // zero columns
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDense(-1, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDenseFromFlat(0, 2, []float32{1, 2})
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestNewDenseZeroInit verifies every element of a fresh matrix is 0.
func TestNewDenseZeroInit(t *testing.T) {
	m := mustDense(t, 3, 4)
	m.Do(func(i, j int, v float32) bool {
		require.Zerof(t, v, "element (%d,%d)", i, j)
		return true
	})
}

// TestRowsCols verifies that Rows() and Cols() return correct dimension values.
func TestRowsCols(t *testing.T) {
	rows, cols := 3, 4
	m := mustDense(t, rows, cols)

	require.Equal(t, rows, m.Rows())
	require.Equal(t, cols, m.Cols())
	r, c := m.Shape()
	require.Equal(t, rows, r)
	require.Equal(t, cols, c)
}

// TestNewDenseFromFlatRowMajor checks element (i,j) = values[j + i*cols].
func TestNewDenseFromFlatRowMajor(t *testing.T) {
	m := mustFlat(t, 4, 4, imgArr)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			v, err := m.At(i, j)
			require.NoError(t, err)
			require.Equal(t, imgArr[j+i*4], v)
		}
	}

	// Surplus values are ignored.
	m2, err := matrix.NewDenseFromFlat(1, 2, []float32{7, 8, 9})
	require.NoError(t, err)
	require.Equal(t, []float32{7, 8}, m2.Flat())
}

// TestNewDenseFromFlatShort ensures a short source fails with IndexOutOfBounds.
func TestNewDenseFromFlatShort(t *testing.T) {
	_, err := matrix.NewDenseFromFlat(2, 2, []float32{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)

	_, err = matrix.NewDenseFromFlat(2, 2, nil)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

// TestNewDenseFromFlatCopies ensures the source slice is not aliased.
func TestNewDenseFromFlatCopies(t *testing.T) {
	src := []float32{1, 2, 3, 4}
	m := mustFlat(t, 2, 2, src)
	src[0] = 42

	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, float32(1), v)
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrIndexOutOfBounds on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m := mustDense(t, 2, 2)

	_, err := m.At(-1, 0)                               // negative row index
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // expect ErrIndexOutOfBounds

	_, err = m.At(0, 2)                                 // column index == cols
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // expect ErrIndexOutOfBounds

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange) // both names match

	err = m.Set(2, 0, 1.23)                             // row index out of range
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // expect ErrIndexOutOfBounds

	err = m.Set(0, -1, 4.56)                            // negative column index
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds) // expect ErrIndexOutOfBounds
}

// TestSetGet validates correct behavior of Set() followed by At() on valid indices.
func TestSetGet(t *testing.T) {
	m := mustDense(t, 2, 3)

	require.NoError(t, m.Set(1, 2, 7.89))

	val, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, float32(7.89), val)
}

// TestSetNaNPolicy checks the numeric policy switch.
func TestSetNaNPolicy(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	strict := mustDense(t, 1, 1)
	require.ErrorIs(t, strict.Set(0, 0, nan), matrix.ErrNaNInf)
	require.ErrorIs(t, strict.Set(0, 0, inf), matrix.ErrNaNInf)

	_, err := matrix.NewDenseFromFlat(1, 2, []float32{1, nan})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	loose, err := matrix.NewDense(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	require.NoError(t, loose.Set(0, 0, inf))

	// Clone keeps the policy.
	cl := strict.Clone()
	require.ErrorIs(t, cl.Set(0, 0, nan), matrix.ErrNaNInf)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m := mustDense(t, 2, 2)
	_ = m.Set(0, 0, 1.0)
	_ = m.Set(1, 1, 2.0)

	clone := m.Clone()
	_ = clone.Set(0, 0, 3.0) // modify the clone, but not the original

	origVal, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, float32(1.0), origVal)

	cloneVal, err := clone.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, float32(3.0), cloneVal)
}

// TestEqual covers identical, single-element-changed and shape-mismatched matrices.
func TestEqual(t *testing.T) {
	a := mustFlat(t, 4, 4, imgArr)
	b := mustFlat(t, 4, 4, imgArr)
	require.True(t, a.Equal(b))
	require.True(t, a.Equal(hide{b})) // fallback path

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			c := b.Clone()
			v, _ := c.At(i, j)
			require.NoError(t, c.Set(i, j, v+1))
			require.Falsef(t, a.Equal(c), "change at (%d,%d) must break equality", i, j)
		}
	}

	require.False(t, a.Equal(mustFlat(t, 2, 8, imgArr)))
	require.False(t, a.Equal(nil))
}

// TestEqualNoEpsilon documents the exact comparison.
func TestEqualNoEpsilon(t *testing.T) {
	a := mustFlat(t, 1, 1, []float32{1})
	b := mustFlat(t, 1, 1, []float32{math.Nextafter32(1, 2)})
	require.False(t, a.Equal(b))

	z := mustFlat(t, 1, 1, []float32{0})
	nz := mustFlat(t, 1, 1, []float32{float32(math.Copysign(0, -1))})
	require.True(t, z.Equal(nz))
}

// TestFlatCopy verifies Flat returns row-major data that does not alias the matrix.
func TestFlatCopy(t *testing.T) {
	m := mustFlat(t, 4, 4, imgArr)
	flat := m.Flat()
	require.Equal(t, imgArr, flat)

	flat[0] = -1
	v, _ := m.At(0, 0)
	require.Equal(t, float32(25), v)
}

// TestWindow covers the copy semantics and bounds of Window.
func TestWindow(t *testing.T) {
	m := mustFlat(t, 4, 4, imgArr)

	w, err := m.Window(1, 1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, []float32{100, 120, 7, 60, 30, 25}, w.Flat())

	require.NoError(t, w.Set(0, 0, 0))
	v, _ := m.At(1, 1)
	require.Equal(t, float32(100), v) // independent lifetime

	_, err = m.Window(3, 0, 2, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	_, err = m.Window(-1, 0, 2, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	_, err = m.Window(0, 0, 0, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestApplyAndDo exercises the visitor and the in-place map.
func TestApplyAndDo(t *testing.T) {
	m := mustFlat(t, 2, 2, []float32{1, 2, 3, 4})
	require.NoError(t, m.Apply(func(i, j int, v float32) float32 { return v * 2 }))
	require.Equal(t, []float32{2, 4, 6, 8}, m.Flat())

	var seen int
	m.Do(func(i, j int, v float32) bool {
		seen++
		return seen < 3
	})
	require.Equal(t, 3, seen)

	err := m.Apply(func(i, j int, v float32) float32 {
		if i == 1 {
			return float32(math.NaN())
		}
		return v
	})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	m := mustFlat(t, 2, 2, []float32{1, 2, 3, 4.5})

	expected := "[1, 2]\n[3, 4.5]\n"
	require.Equal(t, expected, m.String())
}
