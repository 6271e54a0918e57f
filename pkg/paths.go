package pkg

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hansbonini/ecmtools/pkg/common"
)

// ECMExtension is the suffix every ECM input name must carry.
const ECMExtension = ".ecm"

// compressedSuffixes are container extensions allowed after ".ecm".
var compressedSuffixes = []string{".gz", ".zst", ".xz", ".bz2"}

// stripCompressedSuffix removes one recognised container extension.
func stripCompressedSuffix(name string) string {
	ext := filepath.Ext(name)
	for _, suffix := range compressedSuffixes {
		if strings.EqualFold(ext, suffix) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// ValidateInputName checks that path names an ECM file: it must end in
// ".ecm" (any case), optionally followed by a compression suffix, and have
// a non-empty base name before the extension.
func ValidateInputName(path string) error {
	name := stripCompressedSuffix(path)
	base := filepath.Base(name)
	if len(base) <= len(ECMExtension) {
		return fmt.Errorf("filename '%s' is too short", path)
	}
	if !strings.EqualFold(filepath.Ext(base), ECMExtension) {
		return common.FormatErrorString(common.ErrInvalidInputName, path)
	}
	return nil
}

// DeriveOutputName returns the image name for an ECM input by dropping the
// compression suffix and the ".ecm" extension.
func DeriveOutputName(path string) (string, error) {
	if err := ValidateInputName(path); err != nil {
		return "", err
	}
	name := stripCompressedSuffix(path)
	return name[:len(name)-len(ECMExtension)], nil
}
