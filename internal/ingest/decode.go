package ingest

import "strings"

// Decode picks the decoder for the payload by content type. Anything that
// is not declared as XML goes down the JSON path.
func Decode(data []byte, contentType string) (map[string]interface{}, error) {
	if strings.Contains(strings.ToLower(contentType), "xml") {
		return DecodeXML(data)
	}
	return DecodeJSON(data)
}
