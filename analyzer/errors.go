package analyzer

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure aborts the run.
var (
	ErrNotFound    = errors.New("file not found")
	ErrRead        = errors.New("failed to read file")
	ErrParse       = errors.New("failed to parse source")
	ErrRootOverrun = errors.New("parent traversal past the root")
)

var errInvalidUTF8 = errors.New("source is not valid UTF-8")

// PathError is a failure tied to a source file or module path. Its message
// is given in English and Japanese.
type PathError struct {
	Kind error
	Path string
	Err  error
}

var japanese = map[error]string{
	ErrNotFound:    "ファイル %s が存在しません",
	ErrRead:        "ファイル %s の読み取りに失敗しました",
	ErrParse:       "ソースコード %s の構文解析に失敗しました",
	ErrRootOverrun: "%s より上の階層へ遡ろうとしました",
}

func (e *PathError) Error() string {
	en := fmt.Sprintf("%v: %s", e.Kind, e.Path)
	if e.Err != nil {
		en = fmt.Sprintf("%s: %v", en, e.Err)
	}
	return en + "\n" + fmt.Sprintf(japanese[e.Kind], e.Path)
}

func (e *PathError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
