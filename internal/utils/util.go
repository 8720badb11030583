// Package utils holds small rune/byte offset helpers shared by the history and its views.
package utils

import "unicode/utf8"

// RuneIndexToByteOffset converts a rune index to a byte offset in a string.
// Returns -1 if runeIndex is out of bounds.
func RuneIndexToByteOffset(s string, runeIndex int) int {
	if runeIndex < 0 {
		return -1
	}
	if runeIndex == 0 {
		return 0
	}
	currentRune := 0
	for byteOffset := range s {
		if currentRune == runeIndex {
			return byteOffset
		}
		currentRune++
	}
	if currentRune == runeIndex {
		return len(s) // index at the very end
	}
	return -1
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index in a string.
// Offsets inside a multi-byte rune count only the runes that end before it.
func ByteOffsetToRuneIndex(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(s) {
		byteOffset = len(s)
	}
	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRuneInString(s[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}

// RuneSpan returns the substring covering runes [start, start+length), clamped to s.
func RuneSpan(s string, start, length int) string {
	runes := []rune(s)
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		start = len(runes)
	}
	end := start + length
	if length < 0 || end > len(runes) {
		end = len(runes)
	}
	return string(runes[start:end])
}
