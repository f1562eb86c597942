// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ValidatePath validates a document path before ingestion.
//
// Checks, in order:
//   - path must be non-empty and absolute (ErrInvalidPath)
//   - no ".." segment may survive normalization (ErrPathTraversal)
//   - the file must exist (ErrNotFound) and be a regular file (ErrNotAFile)
//   - the extension must be one of pdf/txt/docx (ErrUnsupportedFormat)
//
// Returns the normalized path and the extension without its dot.
// Pure beyond the stat call; no side effects.
func ValidatePath(path string) (string, FileType, error) {
	if strings.TrimSpace(path) == "" {
		return "", "", ErrInvalidPath
	}

	normalized := filepath.Clean(path)
	if !filepath.IsAbs(normalized) {
		return "", "", fmt.Errorf("%w: path must be absolute", ErrInvalidPath)
	}
	for _, segment := range strings.Split(normalized, string(filepath.Separator)) {
		if segment == ".." {
			return "", "", ErrPathTraversal
		}
	}

	info, err := os.Stat(normalized)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", fmt.Errorf("%w at %s", ErrNotFound, normalized)
		}
		return "", "", err
	}
	if !info.Mode().IsRegular() {
		return "", "", ErrNotAFile
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(normalized), "."))
	if !IsSupportedFileType(ext) {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	return normalized, FileType(ext), nil
}

// MetaFromFile builds the document metadata attached to every chunk of an
// asset: file name, type, size and the source file's timestamp in UTC.
func MetaFromFile(normalized string, fileType FileType) (DocumentMeta, error) {
	info, err := os.Stat(normalized)
	if err != nil {
		return DocumentMeta{}, err
	}
	return DocumentMeta{
		FileName:  filepath.Base(normalized),
		FileType:  fileType,
		FileSize:  info.Size(),
		CreatedAt: info.ModTime().UTC(),
	}, nil
}

// ScanFolder walks a folder recursively and returns the absolute paths of
// all files with a supported extension. The folder must exist and be a
// directory.
func ScanFolder(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory", ErrInvalidPath)
	}

	var paths []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(p), "."))
		if !IsSupportedFileType(ext) {
			return nil
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}
