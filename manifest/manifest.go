// Package manifest reads the package identity from a Cargo.toml file.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/semver"
)

// FileName is the manifest file name.
const FileName = "Cargo.toml"

// ErrMetadata is the kind of every error returned by Load.
var ErrMetadata = errors.New("package metadata unavailable")

// Error reports why the package identity could not be determined.
type Error struct {
	Path string
	Msg  string
	Ja   string
	Err  error
}

func (e *Error) Error() string {
	en := fmt.Sprintf("%s %s", e.Msg, e.Path)
	if e.Err != nil {
		en = fmt.Sprintf("%s: %v", en, e.Err)
	}
	return fmt.Sprintf("%s\n%s %s", en, e.Path, e.Ja)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMetadata}
	}
	return []error{ErrMetadata, e.Err}
}

// Package is the library package flattened modules may refer to by name.
type Package struct {
	// Name is the package name as declared in [package].
	Name string
	// CrateName is the identifier the library is referred to by in paths.
	CrateName string
	Version   string
	// SourceRoot is the directory holding LibFile.
	SourceRoot string
	LibFile    string
}

type cargoManifest struct {
	Package *struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"`
	} `toml:"package"`
	Lib *struct {
		Name string `toml:"name"`
		Path string `toml:"path"`
	} `toml:"lib"`
}

// Load reads the manifest at path.
func Load(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Msg: "failed to read the manifest", Ja: "の読み取りに失敗しました", Err: err}
	}
	return Parse(path, data)
}

// Parse decodes manifest data; path locates the package directory.
func Parse(path string, data []byte) (*Package, error) {
	var m cargoManifest
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, &Error{Path: path, Msg: "failed to parse the manifest", Ja: "の構文解析に失敗しました", Err: err}
	}
	if m.Package == nil || m.Package.Name == "" {
		return nil, &Error{Path: path, Msg: "no root package in the manifest", Ja: "にルートパッケージがありません"}
	}

	pkg := &Package{
		Name:      m.Package.Name,
		CrateName: strings.ReplaceAll(m.Package.Name, "-", "_"),
	}
	// A table here is `version.workspace = true`.
	if v, ok := m.Package.Version.(string); ok {
		if !semver.IsValid("v" + v) {
			return nil, &Error{
				Path: path,
				Msg:  "invalid package version in the manifest",
				Ja:   "のパッケージバージョンが不正です",
				Err:  fmt.Errorf("%q is not a semantic version", v),
			}
		}
		pkg.Version = v
	}

	libPath := filepath.Join("src", "lib.rs")
	if m.Lib != nil {
		if m.Lib.Name != "" {
			pkg.CrateName = m.Lib.Name
		}
		if m.Lib.Path != "" {
			libPath = filepath.FromSlash(m.Lib.Path)
		}
	}
	dir := filepath.Dir(path)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	pkg.LibFile = filepath.Join(dir, libPath)
	pkg.SourceRoot = filepath.Dir(pkg.LibFile)
	return pkg, nil
}
