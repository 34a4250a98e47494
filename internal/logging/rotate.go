package logging

import "os"

// RotateIfOversize implements the single-generation size rotation of
// SPEC_FULL.md §4 supplement 1. If path exceeds maxBytes it is renamed
// to path+".1", clobbering any previous ".1" generation. cmd/launcher
// does not call it.
func RotateIfOversize(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() <= maxBytes {
		return nil
	}
	return os.Rename(path, path+".1")
}
