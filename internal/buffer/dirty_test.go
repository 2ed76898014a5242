package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleDirtyLines() []DirtyLines {
	return []DirtyLines{
		{},
		Single(0),
		Single(3),
		Single(7),
		LineRange(2, 5),
		LineRange(10, 12),
		FromLineToEnd(1),
		FromLineToEnd(6),
	}
}

func TestDirtyUnionCommutative(t *testing.T) {
	vals := sampleDirtyLines()
	for _, a := range vals {
		for _, b := range vals {
			assert.Equal(t, Union(a, b), Union(b, a), "Union(%v,%v) != Union(%v,%v)", a, b, b, a)
		}
	}
}

func TestDirtyUnionAssociative(t *testing.T) {
	vals := sampleDirtyLines()
	for _, a := range vals {
		for _, b := range vals {
			for _, c := range vals {
				left := Union(Union(a, b), c)
				right := Union(a, Union(b, c))
				assert.Equal(t, left, right, "associativity failed for %v, %v, %v", a, b, c)
			}
		}
	}
}

func TestDirtyRangeAbsorbsContainedSingle(t *testing.T) {
	r := LineRange(2, 5)
	assert.Equal(t, r, Union(r, Single(3)))
}

func TestDirtyRangeExtendsForAdjacentSingle(t *testing.T) {
	r := LineRange(2, 5)
	assert.Equal(t, LineRange(1, 5), Union(r, Single(1)))
	assert.Equal(t, LineRange(2, 8), Union(r, Single(8)))
}

func TestDirtyFromLineToEndAbsorbsHigherSingle(t *testing.T) {
	f := FromLineToEnd(5)
	assert.Equal(t, f, Union(f, Single(9)))
	assert.Equal(t, FromLineToEnd(2), Union(f, Single(2)))
}

func TestDirtyFromLineToEndAbsorbsRange(t *testing.T) {
	f := FromLineToEnd(5)
	assert.Equal(t, FromLineToEnd(5), Union(f, LineRange(6, 10)))
	assert.Equal(t, FromLineToEnd(1), Union(f, LineRange(1, 3)))
}
