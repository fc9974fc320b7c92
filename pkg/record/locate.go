package record

// Locate finds the base offset of a field whose position varies across
// format revisions. Candidates are probed in priority order (most common
// revision first); the first candidate whose width-byte span lies inside
// the frame and whose bytes satisfy valid wins.
//
// Locate is a pure function over its arguments. When no candidate passes,
// ok is false and the caller substitutes its documented default.
func Locate(fr []byte, candidates []int, width int, valid func([]byte) bool) (offset int, ok bool) {
	for _, c := range candidates {
		if c < 0 || c+width > len(fr) {
			continue
		}
		if valid(fr[c : c+width]) {
			return c, true
		}
	}
	return 0, false
}

// LocateStep probes every aligned offset in [start, start+window) and
// returns the first whose span satisfies valid. Used to find integer
// sections whose distance from the identification section drifts between
// revisions.
func LocateStep(fr []byte, start, window, step, width int, valid func([]byte) bool) (offset int, ok bool) {
	if step <= 0 {
		return 0, false
	}
	for c := start; c < start+window; c += step {
		if c < 0 || c+width > len(fr) {
			continue
		}
		if valid(fr[c : c+width]) {
			return c, true
		}
	}
	return 0, false
}
