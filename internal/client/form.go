package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

type formFile struct {
	field string
	name  string
	data  []byte
}

type multipartForm struct {
	fields [][2]string
	files  []formFile
}

func (f *multipartForm) add(key, value string) {
	f.fields = append(f.fields, [2]string{key, value})
}

func (f *multipartForm) addFile(field, name string, data []byte) {
	f.files = append(f.files, formFile{field: field, name: name, data: data})
}

// addPath attaches a local file read from disk.
func (f *multipartForm) addPath(field, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	f.addFile(field, filepath.Base(path), data)
	return nil
}

func (f *multipartForm) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for _, kv := range f.fields {
		if err := writer.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.files {
		part, err := writer.CreateFormFile(file.field, file.name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.data); err != nil {
			return nil, "", err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return buf, writer.FormDataContentType(), nil
}
