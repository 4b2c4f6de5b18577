package filedrop

import "unicode/utf16"

// ExtractPaths reads the dragged file paths from obj in enumeration order.
// A nil obj and a payload that is not a file list both yield no paths and no
// error. Any other failure is returned as is.
func ExtractPaths(obj DataObject) ([]string, error) {
	if obj == nil {
		return nil, nil
	}

	list, err := obj.FileList()
	if err != nil {
		if IsNotFileList(err) {
			logger.Debug("dragged item is not a file")
			return nil, nil
		}
		logger.Error("reading dragged file list failed", "error", err)
		return nil, err
	}
	defer list.Release()

	n := list.Count()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		size := list.NameLen(i)
		buf := make([]uint16, size+1)
		copied := list.Name(i, buf)
		if copied > size || copied < 0 {
			copied = size
		}
		paths = append(paths, string(utf16.Decode(buf[:copied])))
	}
	return paths, nil
}
