package pkg

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

var ErrInvalidPagination = errors.New("invalid pagination params")

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir && !stat.IsDir() {
		return false, fmt.Errorf("%s is not a directory", path)
	}
	if !isDir && stat.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

// ParsePagination parses the page and size path params. Pages start at 1 and
// size is capped at maxSize.
func ParsePagination(pageStr, sizeStr string, maxSize int) (page int, size int, err error) {
	page, err = strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("page [%s]: %w", pageStr, ErrInvalidPagination)
	}
	size, err = strconv.Atoi(sizeStr)
	if err != nil || size < 1 {
		return 0, 0, fmt.Errorf("size [%s]: %w", sizeStr, ErrInvalidPagination)
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	return page, size, nil
}
