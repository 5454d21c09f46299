package strictjson

import (
	"fmt"
	"io"
	"os"
)

// DecodeFile reads the file at path and decodes its contents like Decode.
// A file that cannot be opened or read fails with a *FileError, which
// matches both ErrFileRead and the OS error (e.g., fs.ErrNotExist).
func (c *Codec) DecodeFile(path string, opts ...CallOption) (any, error) {
	if _, err := c.callOptions(opts); err != nil {
		return nil, err
	}
	data, err := c.readFile(path)
	if err != nil {
		c.logger.Debug("strictjson: read failed", "path", path, "error", err)
		return nil, err
	}
	return c.Decode(data, opts...)
}

// ValidFile reports whether the file at path holds JSON that decodes with
// the codec defaults. Unreadable paths, including URLs, report false.
func (c *Codec) ValidFile(path string) bool {
	_, err := c.DecodeFile(path)
	return err == nil
}

func (c *Codec) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if c.maxFileSize > 0 {
		r = io.LimitReader(f, c.maxFileSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	if c.maxFileSize > 0 && int64(len(data)) > c.maxFileSize {
		return nil, &FileError{Path: path, Err: fmt.Errorf("file exceeds %d bytes", c.maxFileSize)}
	}
	return data, nil
}
