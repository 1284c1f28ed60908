// Package kb describes the physical key matrix and the index codecs
// used to address key sequences as flat array offsets.
package kb

// Matrix dimensions. Every key is one (row, column) cell.
const (
	Row  = 3
	Col  = 12
	Keys = Row * Col

	// Flat sizes of the key-sequence index spaces, by arity.
	Dim1 = Keys
	Dim2 = Keys * Keys
	Dim3 = Keys * Keys * Keys
	Dim4 = Keys * Keys * Keys * Keys

	// SkipMax is the largest tracked skip distance between two keys.
	SkipMax = 9
)

// Hand identifies which hand presses a key.
type Hand int

// Hands, left to right.
const (
	LeftHand Hand = iota
	RightHand
)

// Finger identifies one of the eight typing fingers.
type Finger int

// Fingers, left pinky through right pinky.
const (
	LeftPinky Finger = iota
	LeftRing
	LeftMiddle
	LeftIndex
	RightIndex
	RightMiddle
	RightRing
	RightPinky
)

var fingerByCol = [Col]Finger{
	LeftPinky, LeftRing, LeftMiddle, LeftIndex, LeftIndex,
	RightIndex, RightIndex, RightMiddle, RightRing, RightPinky,
	RightPinky, RightPinky,
}

// Key returns the flat position of the (row, col) cell.
func Key(row, col int) int {
	return row*Col + col
}

// Coord returns the (row, col) cell of a flat position.
func Coord(pos int) (row, col int) {
	return pos / Col, pos % Col
}

// FingerOf returns the finger assigned to a column.
func FingerOf(col int) Finger {
	return fingerByCol[col]
}

// HandOf returns the hand assigned to a column.
func HandOf(col int) Hand {
	if fingerByCol[col] <= LeftIndex {
		return LeftHand
	}
	return RightHand
}

// FlattenMono encodes a single key coordinate.
func FlattenMono(row, col int) int {
	return row*Col + col
}

// UnflattenMono decodes a single key coordinate.
func UnflattenMono(i int) (row, col int) {
	return i / Col, i % Col
}

// FlattenBi encodes an ordered pair of key coordinates,
// most significant key first.
func FlattenBi(row0, col0, row1, col1 int) int {
	return (row0*Col+col0)*Dim1 + (row1*Col + col1)
}

// UnflattenBi decodes an ordered pair of key coordinates.
func UnflattenBi(i int) (row0, col0, row1, col1 int) {
	row1 = (i % Dim1) / Col
	col1 = i % Col
	i /= Dim1

	row0 = i / Col
	col0 = i % Col
	return row0, col0, row1, col1
}

// FlattenTri encodes an ordered triple of key coordinates.
func FlattenTri(row0, col0, row1, col1, row2, col2 int) int {
	return (row0*Col+col0)*Dim2 +
		(row1*Col+col1)*Dim1 +
		(row2*Col + col2)
}

// UnflattenTri decodes an ordered triple of key coordinates.
func UnflattenTri(i int) (row0, col0, row1, col1, row2, col2 int) {
	row2 = (i % Dim1) / Col
	col2 = i % Col
	i /= Dim1

	row1 = (i % Dim1) / Col
	col1 = i % Col
	i /= Dim1

	row0 = i / Col
	col0 = i % Col
	return row0, col0, row1, col1, row2, col2
}

// FlattenQuad encodes an ordered quadruple of key coordinates.
func FlattenQuad(row0, col0, row1, col1, row2, col2, row3, col3 int) int {
	return (row0*Col+col0)*Dim3 +
		(row1*Col+col1)*Dim2 +
		(row2*Col+col2)*Dim1 +
		(row3*Col + col3)
}

// UnflattenQuad decodes an ordered quadruple of key coordinates.
func UnflattenQuad(i int) (row0, col0, row1, col1, row2, col2, row3, col3 int) {
	row3 = (i % Dim1) / Col
	col3 = i % Col
	i /= Dim1

	row2 = (i % Dim1) / Col
	col2 = i % Col
	i /= Dim1

	row1 = (i % Dim1) / Col
	col1 = i % Col
	i /= Dim1

	row0 = i / Col
	col0 = i % Col
	return row0, col0, row1, col1, row2, col2, row3, col3
}

// FlattenSkip encodes a key pair at a skip distance. The distance
// (1..SkipMax) is the most significant digit of the index.
func FlattenSkip(dist, row0, col0, row1, col1 int) int {
	return dist*Dim2 + FlattenBi(row0, col0, row1, col1)
}

// UnflattenSkip decodes a skip-distance key pair.
func UnflattenSkip(i int) (dist, row0, col0, row1, col1 int) {
	dist = i / Dim2
	row0, col0, row1, col1 = UnflattenBi(i % Dim2)
	return dist, row0, col0, row1, col1
}
