// Copyright © 2023 Alibaba Group Holding Ltd.
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

package os

import (
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/sealerio/toolkit/common"
)

type FileWriter interface {
	WriteFile(content []byte) error
}

// atomicWriter writes to a temporary file next to fileName and renames it
// into place, so readers never see a partial document.
type atomicWriter struct {
	fileName string
	perm     os.FileMode
}

func NewAtomicWriter(fileName string) FileWriter {
	return atomicWriter{
		fileName: fileName,
		perm:     common.FileMode0644,
	}
}

func (a atomicWriter) clean(file *os.File) {
	// the following operation won't fail regularly, if failed, log it
	if err := file.Close(); err != nil && !errorsIsClosed(err) {
		logrus.Warn(err)
	}
	if err := os.Remove(file.Name()); err != nil && !os.IsNotExist(err) {
		logrus.Warn(err)
	}
}

func (a atomicWriter) WriteFile(content []byte) (err error) {
	if err = mkdirFor(a.fileName); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(a.fileName), ".FTmp-")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			a.clean(tmp)
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), a.perm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), a.fileName)
}

type commonWriter struct {
	fileName string
}

func NewCommonWriter(fileName string) FileWriter {
	return commonWriter{
		fileName: fileName,
	}
}

func (c commonWriter) WriteFile(content []byte) error {
	if err := mkdirFor(c.fileName); err != nil {
		return err
	}
	return os.WriteFile(c.fileName, content, common.FileMode0644)
}

func mkdirFor(fileName string) error {
	dir := filepath.Dir(fileName)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, common.FileMode0755)
	}
	return nil
}

func errorsIsClosed(err error) bool {
	pe, ok := err.(*os.PathError)
	return ok && pe.Err == os.ErrClosed
}

// IsFileExist reports whether fileName exists.
func IsFileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil || !os.IsNotExist(err)
}
