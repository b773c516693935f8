package cmn

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"sort"
	"strings"
)

/*
walks sourcePath (file or directory, recursively) and calls cb
for every file whose name ends with one of suffixes.
No suffixes means every file.
Directory entries are visited in name order.
*/
func IterateOverSource(
	sourcePath string,
	suffixes []string,
	cb func(path string, fc []byte) error) error {

	var err error
	var fi os.FileInfo
	var di []os.FileInfo
	var fc []byte

	if fi, err = os.Stat(sourcePath); err != nil {
		return err
	}

	if fi.IsDir() {
		if di, err = ioutil.ReadDir(sourcePath); err != nil {
			return err
		}
		sort.Slice(di, func(i, j int) bool { return di[i].Name() < di[j].Name() })
		for _, fi = range di {
			p := path.Join(sourcePath, fi.Name())
			if !fi.IsDir() && !hasSuffix(p, suffixes) {
				continue
			}
			if err = IterateOverSource(p, suffixes, cb); err != nil {
				return err
			}
		}
		return nil
	}

	if fc, err = ioutil.ReadFile(sourcePath); err != nil {
		return err
	}
	if len(fc) == 0 {
		return fmt.Errorf("%s - empty file content", sourcePath)
	}
	return cb(sourcePath, fc)
}

func hasSuffix(p string, suffixes []string) bool {
	if len(suffixes) == 0 {
		return true
	}
	for _, s := range suffixes {
		if strings.HasSuffix(p, s) {
			return true
		}
	}
	return false
}
