package source

// IndexForward returns the index of the first ch at or after from, or -1.
func IndexForward(text []byte, from int, ch byte) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(text); i++ {
		if text[i] == ch {
			return i
		}
	}
	return -1
}

// IndexBackward returns the index of the last ch at or before from, or -1.
func IndexBackward(text []byte, from int, ch byte) int {
	if from >= len(text) {
		from = len(text) - 1
	}
	for i := from; i >= 0; i-- {
		if text[i] == ch {
			return i
		}
	}
	return -1
}
