package document

import "encoding/base64"

// EncodeBase64 converts raw image bytes to the textual encoding embedded in
// extraction requests. An empty input yields an empty string, not an error.
func EncodeBase64(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}
