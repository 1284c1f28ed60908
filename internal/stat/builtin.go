package stat

import "github.com/verte-zerg/keylab/internal/kb"

// Builtin returns a registry populated with the standard
// geometry-driven statistic definitions. Weights are left at the
// sentinel; callers apply a weight table and then Trim/Clean/Freeze.
func Builtin() *Registry {
	r := New()
	addMonoStats(r)
	addBiStats(r)
	addTriStats(r)
	addQuadStats(r)
	addSkipStats(r)
	return r
}

// key describes one decoded coordinate for predicate checks.
type key struct {
	row    int
	col    int
	hand   kb.Hand
	finger kb.Finger
}

func keyAt(row, col int) key {
	return key{row: row, col: col, hand: kb.HandOf(col), finger: kb.FingerOf(col)}
}

func monoNgrams(pred func(k key) bool) []int32 {
	out := make([]int32, kb.Dim1)
	for i := 0; i < kb.Dim1; i++ {
		r, c := kb.UnflattenMono(i)
		out[i] = -1
		if pred(keyAt(r, c)) {
			out[i] = int32(i)
		}
	}
	return out
}

func biNgrams(pred func(a, b key) bool) []int32 {
	out := make([]int32, kb.Dim2)
	for i := 0; i < kb.Dim2; i++ {
		r0, c0, r1, c1 := kb.UnflattenBi(i)
		out[i] = -1
		if pred(keyAt(r0, c0), keyAt(r1, c1)) {
			out[i] = int32(i)
		}
	}
	return out
}

func triNgrams(pred func(a, b, c key) bool) []int32 {
	out := make([]int32, kb.Dim3)
	for i := 0; i < kb.Dim3; i++ {
		r0, c0, r1, c1, r2, c2 := kb.UnflattenTri(i)
		out[i] = -1
		if pred(keyAt(r0, c0), keyAt(r1, c1), keyAt(r2, c2)) {
			out[i] = int32(i)
		}
	}
	return out
}

func quadNgrams(pred func(a, b, c, d key) bool) []int32 {
	out := make([]int32, kb.Dim4)
	for i := 0; i < kb.Dim4; i++ {
		r0, c0, r1, c1, r2, c2, r3, c3 := kb.UnflattenQuad(i)
		out[i] = -1
		if pred(keyAt(r0, c0), keyAt(r1, c1), keyAt(r2, c2), keyAt(r3, c3)) {
			out[i] = int32(i)
		}
	}
	return out
}

func addMonoStats(r *Registry) {
	r.AddMono("left-hand", monoNgrams(func(k key) bool { return k.hand == kb.LeftHand }))
	r.AddMono("right-hand", monoNgrams(func(k key) bool { return k.hand == kb.RightHand }))

	fingers := []struct {
		name   string
		finger kb.Finger
	}{
		{"left-pinky", kb.LeftPinky},
		{"left-ring", kb.LeftRing},
		{"left-middle", kb.LeftMiddle},
		{"left-index", kb.LeftIndex},
		{"right-index", kb.RightIndex},
		{"right-middle", kb.RightMiddle},
		{"right-ring", kb.RightRing},
		{"right-pinky", kb.RightPinky},
	}
	for _, f := range fingers {
		finger := f.finger
		r.AddMono(f.name, monoNgrams(func(k key) bool { return k.finger == finger }))
	}

	rows := []struct {
		name string
		row  int
	}{
		{"top-row", 0},
		{"home-row", 1},
		{"bottom-row", 2},
	}
	for _, row := range rows {
		want := row.row
		r.AddMono(row.name, monoNgrams(func(k key) bool { return k.row == want }))
	}
}

func addBiStats(r *Registry) {
	r.AddBi("same-finger", biNgrams(func(a, b key) bool {
		return a.finger == b.finger && !sameKey(a, b)
	}))
	r.AddBi("repeat", biNgrams(sameKey))
	r.AddBi("alternate", biNgrams(func(a, b key) bool {
		return a.hand != b.hand
	}))
	r.AddBi("same-hand", biNgrams(func(a, b key) bool {
		return a.hand == b.hand && !sameKey(a, b)
	}))
	r.AddBi("roll-in", biNgrams(func(a, b key) bool {
		return a.hand == b.hand && inward(a, b)
	}))
	r.AddBi("roll-out", biNgrams(func(a, b key) bool {
		return a.hand == b.hand && inward(b, a)
	}))
	r.AddBi("lateral-stretch", biNgrams(func(a, b key) bool {
		return a.hand == b.hand && adjacentFingers(a, b) && colDist(a, b) >= 2
	}))
}

func addTriStats(r *Registry) {
	r.AddTri("alternate", triNgrams(func(a, b, c key) bool {
		return a.hand != b.hand && b.hand != c.hand
	}))
	r.AddTri("redirect", triNgrams(func(a, b, c key) bool {
		if a.hand != b.hand || b.hand != c.hand {
			return false
		}
		return (b.col-a.col)*(c.col-b.col) < 0
	}))
	r.AddTri("one-hand-in", triNgrams(func(a, b, c key) bool {
		return a.hand == b.hand && b.hand == c.hand && inward(a, b) && inward(b, c)
	}))
	r.AddTri("one-hand-out", triNgrams(func(a, b, c key) bool {
		return a.hand == b.hand && b.hand == c.hand && inward(b, a) && inward(c, b)
	}))
	r.AddTri("same-finger", triNgrams(func(a, b, c key) bool {
		return a.finger == b.finger && b.finger == c.finger &&
			!(sameKey(a, b) && sameKey(b, c))
	}))
}

func addQuadStats(r *Registry) {
	r.AddQuad("one-hand", quadNgrams(func(a, b, c, d key) bool {
		return a.hand == b.hand && b.hand == c.hand && c.hand == d.hand
	}))
	r.AddQuad("alternate", quadNgrams(func(a, b, c, d key) bool {
		return a.hand != b.hand && b.hand != c.hand && c.hand != d.hand
	}))
	r.AddQuad("same-finger", quadNgrams(func(a, b, c, d key) bool {
		return a.finger == b.finger && b.finger == c.finger && c.finger == d.finger
	}))
}

func addSkipStats(r *Registry) {
	r.AddSkip("same-finger", biNgrams(func(a, b key) bool {
		return a.finger == b.finger
	}))
	r.AddSkip("same-hand", biNgrams(func(a, b key) bool {
		return a.hand == b.hand && !sameKey(a, b)
	}))
	r.AddSkip("alternate", biNgrams(func(a, b key) bool {
		return a.hand != b.hand
	}))
}

func sameKey(a, b key) bool {
	return a.row == b.row && a.col == b.col
}

func colDist(a, b key) int {
	d := a.col - b.col
	if d < 0 {
		return -d
	}
	return d
}

func adjacentFingers(a, b key) bool {
	d := int(a.finger) - int(b.finger)
	return d == 1 || d == -1
}

// inward reports a two-key motion toward the center of the board on
// one hand: finger order rises on the left, falls on the right.
func inward(a, b key) bool {
	if a.finger == b.finger {
		return false
	}
	if a.hand == kb.LeftHand {
		return b.finger > a.finger
	}
	return b.finger < a.finger
}
