package storage

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/raywall/mockerize/pkg/mock"
)

func saveToFile(info *mock.ServerInfo, path string, overwrite bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &mock.IoError{Op: "write", Path: path, Err: err}
		}
	}

	if overwrite {
		return mock.Save(info, path)
	}

	data, err := mock.Encode(info, mock.FormatFromPath(path))
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return &mock.IoError{Op: "write", Path: path, Err: err}
	}

	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return &mock.IoError{Op: "write", Path: path, Err: errors.Join(err, os.Remove(path))}
	}
	return nil
}
