package util

import "strconv"

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type Number struct {
	Int        int64
	Float      float64
	IsInt      bool
	IsFloat    bool
	IsNegative bool
}

// ParseNumeric parses s as an integer (base inferred from the 0x/0o/0b
// prefix) or, failing that, a float.
func ParseNumeric(s string) (n Number, ok bool) {
	if i, err := strconv.ParseInt(s, 0, strconv.IntSize); err == nil {
		n.Int = i
		n.IsInt = true
		n.IsNegative = i < 0
		ok = true
		return
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		n.Float = f
		n.IsFloat = true
		n.IsNegative = f < 0
		ok = true
		return
	}

	return n, ok
}

func Min[T Numeric](x, y T) T {
	if x < y {
		return x
	}
	return y
}
