package extract

import "regexp"

// knownEntity matches a recognized entity reference anchored at a '&'.
var knownEntity = regexp.MustCompile(`^&(?:amp|lt|gt|quot|apos);`)

// RepairEntities escapes every bare '&' that does not start a
// recognized entity reference. Archive documents are not guaranteed to
// be well-formed; issuer names like "AT&T INC" appear unescaped.
func RepairEntities(data []byte) []byte {
	var out []byte
	last := 0
	for i := 0; i < len(data); i++ {
		if data[i] != '&' || knownEntity.Match(data[i:]) {
			continue
		}
		if out == nil {
			out = make([]byte, 0, len(data)+64)
		}
		out = append(out, data[last:i]...)
		out = append(out, "&amp;"...)
		last = i + 1
	}
	if out == nil {
		return data
	}
	return append(out, data[last:]...)
}
