/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: open.go
Description: File opener shared by corpus and ciphertext sources. Files ending in .xz are
decompressed transparently.
*/

package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
)

type xzFile struct {
	io.Reader
	file *os.File
}

func (x *xzFile) Close() error {
	return x.file.Close()
}

// Open opens path for reading, decompressing it when the name ends in .xz
func Open(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	if !strings.HasSuffix(path, ".xz") {
		return file, nil
	}

	xr, err := xz.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to open xz stream %s: %w", path, err)
	}
	return &xzFile{Reader: xr, file: file}, nil
}
