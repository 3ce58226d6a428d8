package commondlg

import (
	"os"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
	"github.com/pkg/errors"
)

// Canned filter groups assembled from the content-type signature tables.

func ImageFilter() FileFilter   { return groupFilter("Images", matchers.Image) }
func VideoFilter() FileFilter   { return groupFilter("Video", matchers.Video) }
func AudioFilter() FileFilter   { return groupFilter("Audio", matchers.Audio) }
func ArchiveFilter() FileFilter { return groupFilter("Archives", matchers.Archive) }

func groupFilter(name string, set matchers.Map) FileFilter {
	exts := make([]string, 0, len(set))
	for t := range set {
		exts = append(exts, t.Extension)
	}
	sort.Strings(exts)
	return FileFilter{Name: name, Extensions: exts}
}

// FilterForFile sniffs the content of an existing file and returns a
// filter for the media group it belongs to, so a follow-up dialog can
// offer more files of the same kind. The first 261 bytes are enough for
// every known signature.
func FilterForFile(path string) (FileFilter, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileFilter{}, errors.Wrap(err, "open sample file")
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return FileFilter{}, errors.Wrap(err, "read sample file")
	}
	head = head[:n]

	switch {
	case filetype.IsImage(head):
		return ImageFilter(), nil
	case filetype.IsVideo(head):
		return VideoFilter(), nil
	case filetype.IsAudio(head):
		return AudioFilter(), nil
	case filetype.IsArchive(head):
		return ArchiveFilter(), nil
	}

	kind, err := filetype.Match(head)
	if err != nil {
		return FileFilter{}, errors.Wrap(err, "detect sample file type")
	}
	if kind == filetype.Unknown {
		return FileFilter{}, errors.Errorf("unrecognized content in %s", path)
	}
	return FileFilter{
		Name:       strings.ToUpper(kind.Extension) + " files",
		Extensions: []string{kind.Extension},
	}, nil
}
