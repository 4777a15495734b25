package scan

// RawPos is a byte offset into a line's literal text, block delimiters and
// block contents included.
type RawPos int

// VisiblePos is an offset into the text left after every braced block,
// delimiters and contents, has been removed.
type VisiblePos int

// ToVisible returns the visible offset reached after consuming the first p
// raw bytes of raw. Offsets past the end are clamped to the text length.
//
// ToVisible is monotonically non-decreasing in p. Every raw offset inside a
// block maps to the visible offset at which the block starts.
func ToVisible(raw string, p RawPos) VisiblePos {
	return toVisible(Kinds(raw), p)
}

func toVisible(kinds []Kind, p RawPos) VisiblePos {
	limit := min(max(int(p), 0), len(kinds))

	var visible VisiblePos
	for _, k := range kinds[:limit] {
		if k == Text {
			visible++
		}
	}
	return visible
}

// ToRaw returns the smallest raw offset whose visible offset is v. Values
// past the visible length resolve to the end of the text.
func ToRaw(raw string, v VisiblePos) RawPos {
	if v <= 0 {
		return 0
	}

	var seen VisiblePos
	for i, k := range Kinds(raw) {
		if seen == v {
			return RawPos(i)
		}
		if k == Text {
			seen++
		}
	}
	return RawPos(len(raw))
}

// VisibleLen returns the number of visible bytes in raw.
func VisibleLen(raw string) VisiblePos {
	return ToVisible(raw, RawPos(len(raw)))
}

// BlockAt returns the index of the block that governs visible offset v.
//
// The index follows cursor affinity rather than span membership. A '{'
// after the first byte moves to the next block while distance remains, v
// == 0 included, so at the start of a line the cursor binds to the last of
// the blocks that open it. A '}' moves on only when distance remains and
// the next byte does not open another block. When v is used up on a plain
// byte that is directly followed by '{', the cursor is taken to be inside
// that next block.
//
// The returned index can point one past the last block when v lies beyond
// the end of text; callers clamp it.
func BlockAt(raw string, v VisiblePos) int {
	kinds := Kinds(raw)
	remaining := int(v)
	n := 0

	for i, k := range kinds {
		opensNext := i+1 < len(kinds) && kinds[i+1] == Open

		switch k {
		case Open:
			if i > 0 && remaining >= 0 {
				n++
			}
		case Close:
			if remaining > 0 && !opensNext {
				n++
			}
		case Text:
			remaining--
			if remaining == 0 {
				if opensNext {
					return n + 1
				}
				return n
			}
		case Inside:
		}
	}

	return n
}
