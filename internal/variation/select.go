package variation

import "unicode/utf16"

// Hash is the 32-bit polynomial string hash (h = h*31 + code unit) with
// signed two's-complement wrap-around. It iterates UTF-16 code units so keys
// hash identically to the browser-side implementation of the same site.
func Hash(key string) int32 {
	var h int32
	for _, cu := range utf16.Encode([]rune(key)) {
		h = h*31 + int32(cu)
	}
	return h
}

// SelectIndex maps key onto [0, n) as abs(Hash(key)) mod n.
// It panics when n <= 0.
func SelectIndex(n int, key string) int {
	if n <= 0 {
		panic("variation: SelectIndex requires at least one variant")
	}
	h := int64(Hash(key))
	if h < 0 {
		h = -h
	}
	return int(h % int64(n))
}

// Select deterministically picks one variant for key. The same key always
// yields the same variant. It panics on an empty variant list.
func Select[T any](variants []T, key string) T {
	if len(variants) == 0 {
		panic("variation: Select called with no variants")
	}
	return variants[SelectIndex(len(variants), key)]
}
