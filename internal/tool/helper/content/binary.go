package content

// binarySampleSize is the number of leading bytes scanned for NUL bytes.
// Same window git uses.
const binarySampleSize = 8000

// IsBinaryContent reports whether content looks like binary data.
// UTF-16 and UTF-32 byte order marks are treated as text.
func IsBinaryContent(content []byte) bool {
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false
		}
	}
	if len(content) >= 4 {
		if content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF {
			return false
		}
	}

	sampleSize := min(len(content), binarySampleSize)
	for i := range sampleSize {
		if content[i] == 0 {
			return true
		}
	}
	return false
}
