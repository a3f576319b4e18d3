package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fileSuffix = "_Resume.pdf"

// Filename derives the download name from the candidate's name:
// "Saleem Khair" becomes "Saleem_Khair_Resume.pdf".
func Filename(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || strings.ContainsRune(`/\:*?"<>|`, r)
	})
	if len(words) == 0 {
		return strings.TrimPrefix(fileSuffix, "_")
	}
	return strings.Join(words, "_") + fileSuffix
}

// TriggerDownload saves doc under dir and returns the file path. The file
// appears complete or not at all.
func TriggerDownload(doc *Document, dir string) (string, error) {
	if doc == nil || len(doc.Bytes) == 0 {
		return "", &Error{Kind: KindWriteFailed, Message: "empty document"}
	}
	name := doc.Filename
	if name == "" {
		name = Filename("")
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{Kind: KindWriteFailed, Message: "create output directory", Cause: err}
	}

	tmp, err := os.CreateTemp(dir, ".resume-*.tmp")
	if err != nil {
		return "", &Error{Kind: KindWriteFailed, Message: "create temp file", Cause: err}
	}
	tmpName := tmp.Name()
	fail := func(msg string, err error) (string, error) {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", &Error{Kind: KindWriteFailed, Message: msg, Cause: err}
	}

	if _, err := tmp.Write(doc.Bytes); err != nil {
		return fail("write document", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync document", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail("chmod document", err)
	}
	if err := tmp.Close(); err != nil {
		return fail("close document", err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", &Error{Kind: KindWriteFailed, Message: fmt.Sprintf("save %s", name), Cause: err}
	}
	return path, nil
}
