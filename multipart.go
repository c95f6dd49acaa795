package wafengine

import (
	"bytes"
	"io"
	"mime/multipart"
)

func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// parseMultipartPairs decodes a multipart/form-data body into (name,
// value) pairs. File parts contribute their filename as the value paired
// with their field name, mirroring how Naxsi's FILE_EXT rules inspect the
// uploaded name rather than its binary contents.
func parseMultipartPairs(body []byte, boundary string) []Pair {
	if boundary == "" {
		return []Pair{{Name: "", Value: string(body)}}
	}

	reader := multipart.NewReader(bytesReader(body), boundary)
	var pairs []Pair
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		if part.FileName() != "" {
			pairs = append(pairs, Pair{Name: part.FormName(), Value: part.FileName()})
			continue
		}

		data, err := io.ReadAll(part)
		part.Close()
		if err != nil {
			continue
		}
		pairs = append(pairs, Pair{Name: part.FormName(), Value: string(data)})
	}
	return pairs
}
