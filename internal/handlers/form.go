package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"filter-backend/internal/apperror"
	"filter-backend/internal/upload"
)

const maxMultipartMemory = 32 << 20

// formSource reads request fields regardless of whether the client sent a
// form or a JSON object.
type formSource interface {
	value(key string) (string, bool)
	values(key string) []string
}

type postForm struct {
	c *gin.Context
}

func (p postForm) value(key string) (string, bool) {
	values := p.c.PostFormArray(key)
	if len(values) == 0 {
		return "", false
	}
	// The last value wins when a field is repeated.
	return values[len(values)-1], true
}

func (p postForm) values(key string) []string {
	return p.c.PostFormArray(key)
}

type jsonForm map[string]any

func (j jsonForm) value(key string) (string, bool) {
	raw, ok := j[key]
	if !ok || raw == nil {
		return "", false
	}
	return stringify(raw), true
}

func (j jsonForm) values(key string) []string {
	raw, ok := j[key]
	if !ok || raw == nil {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return []string{stringify(raw)}
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, stringify(v))
	}
	return out
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		encoded, _ := json.Marshal(t)
		return string(encoded)
	}
}

func readForm(c *gin.Context) (formSource, error) {
	if strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		body := jsonForm{}
		if err := json.NewDecoder(c.Request.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, apperror.Validation("Invalid JSON payload")
		}
		return body, nil
	}
	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, apperror.Validation("Invalid multipart payload")
		}
	}
	return postForm{c: c}, nil
}

func formString(form formSource, key string) (string, bool) {
	value, ok := form.value(key)
	return strings.TrimSpace(value), ok
}

// formFloat treats an empty value as absent.
func formFloat(form formSource, key string) (float64, bool, error) {
	value, ok := formString(form, key)
	if !ok || value == "" {
		return 0, false, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, apperror.Validationf("%s must be a number", key)
	}
	return parsed, true, nil
}

func formInt(form formSource, key string) (int, bool, error) {
	value, ok := formString(form, key)
	if !ok || value == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, apperror.Validationf("%s must be an integer", key)
	}
	return parsed, true, nil
}

// formList accepts a JSON array string, a repeated field or a JSON array in
// a JSON body.
func formList(form formSource, key string) ([]string, bool, error) {
	values := form.values(key)
	if len(values) == 0 {
		if _, ok := form.value(key); ok {
			return []string{}, true, nil
		}
		return nil, false, nil
	}
	if len(values) == 1 {
		trimmed := strings.TrimSpace(values[0])
		if strings.HasPrefix(trimmed, "[") {
			var parsed []string
			if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
				return nil, false, apperror.Validationf("%s must be a JSON array of strings", key)
			}
			return parsed, true, nil
		}
		if trimmed == "" {
			return []string{}, true, nil
		}
	}
	return values, true, nil
}

// formFiles reads and validates the files sent under any of the given field
// names.
func formFiles(c *gin.Context, fields ...string) ([]upload.File, error) {
	if c.Request.MultipartForm == nil {
		return nil, nil
	}
	var headers []*multipart.FileHeader
	for _, field := range fields {
		headers = append(headers, c.Request.MultipartForm.File[field]...)
	}
	if len(headers) > upload.MaxFilesPerRequest {
		return nil, apperror.Validation(upload.ErrTooManyFiles.Error())
	}

	files := make([]upload.File, 0, len(headers))
	for _, header := range headers {
		file, err := upload.ReadFileHeader(header)
		if err != nil {
			if errors.Is(err, upload.ErrUnsupportedType) || errors.Is(err, upload.ErrTooLarge) {
				return nil, apperror.Validation(err.Error())
			}
			return nil, apperror.Upstream("Failed to read upload", err)
		}
		files = append(files, file)
	}
	return files, nil
}

func formFile(c *gin.Context, field string) (*upload.File, error) {
	files, err := formFiles(c, field)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	return &files[0], nil
}
