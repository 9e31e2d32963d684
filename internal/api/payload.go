package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
)

// File is a binary attachment inside a payload. Its presence switches
// the whole request to multipart form data.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func isFileValue(value any) bool {
	switch v := value.(type) {
	case File, *File, []File:
		return true
	case []any:
		for _, item := range v {
			if _, ok := item.(File); ok {
				return true
			}
			if _, ok := item.(*File); ok {
				return true
			}
		}
	}
	return false
}

// hasFiles reports whether any payload field is file-like, singly or
// inside an array.
func hasFiles(payload map[string]any) bool {
	for _, value := range payload {
		if isFileValue(value) {
			return true
		}
	}
	return false
}

// sortedKeys gives deterministic field order for encoding.
func sortedKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// encodeJSON renders the payload as a JSON body.
func encodeJSON(payload map[string]any) ([]byte, string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	return body, "application/json", nil
}

// encodeMultipart renders the payload as multipart form data: files
// appended under their field key, non-file arrays serialized as JSON
// strings, scalars stringified. Multipart is all-or-nothing for the
// payload; a lone file field still produces a multipart body.
func encodeMultipart(payload map[string]any) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range sortedKeys(payload) {
		value := payload[key]
		if value == nil {
			continue
		}
		var err error
		switch v := value.(type) {
		case File:
			err = writeFilePart(w, key, v)
		case *File:
			err = writeFilePart(w, key, *v)
		case []File:
			for _, f := range v {
				if err = writeFilePart(w, key, f); err != nil {
					break
				}
			}
		case []any:
			if isFileValue(v) {
				for _, item := range v {
					switch f := item.(type) {
					case File:
						err = writeFilePart(w, key, f)
					case *File:
						err = writeFilePart(w, key, *f)
					}
					if err != nil {
						break
					}
				}
			} else {
				var encoded []byte
				if encoded, err = json.Marshal(v); err == nil {
					err = w.WriteField(key, string(encoded))
				}
			}
		default:
			err = w.WriteField(key, fmt.Sprint(v))
		}
		if err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, field string, f File) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, field, f.Name))
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(f.Data)
	return err
}

// queryParams renders the payload as query parameters for GET and
// DELETE requests, which never carry a body. Files are meaningless
// there and are skipped; arrays and objects collapse to JSON strings.
func queryParams(payload map[string]any) url.Values {
	if len(payload) == 0 {
		return nil
	}
	params := url.Values{}
	for _, key := range sortedKeys(payload) {
		value := payload[key]
		if value == nil || isFileValue(value) {
			continue
		}
		switch v := value.(type) {
		case string:
			params.Set(key, v)
		case []any, map[string]any:
			if encoded, err := json.Marshal(v); err == nil {
				params.Set(key, string(encoded))
			}
		default:
			params.Set(key, fmt.Sprint(v))
		}
	}
	return params
}
