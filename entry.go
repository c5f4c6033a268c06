package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"expunch/analyzer"
	"expunch/emitter"
	"expunch/fsys"
	"expunch/manifest"
)

const statCacheSize = 4096

type options struct {
	SourcePath   string
	ManifestPath string
	Visibility   string
	BaseDir      string
	Logger       *slog.Logger
}

type session struct {
	pkg      *manifest.Package
	fs       fsys.FS
	analyzer *analyzer.Analyzer
}

// analyze loads the package identity and analyzes the module graph of the
// source file.
func analyze(opts options) (*session, error) {
	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		dir, err := findCargoManifestDir(opts.BaseDir)
		if err != nil {
			return nil, err
		}
		manifestPath = filepath.Join(dir, manifest.FileName)
	}
	pkg, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, err
	}

	fs, err := fsys.NewCached(fsys.OS{}, statCacheSize)
	if err != nil {
		return nil, err
	}
	source, err := filepath.Abs(opts.SourcePath)
	if err != nil {
		return nil, err
	}

	a := analyzer.New(fs, analyzer.Package{
		Name:       pkg.CrateName,
		SourceRoot: pkg.SourceRoot,
		LibFile:    pkg.LibFile,
	}, analyzer.WithLogger(opts.Logger), analyzer.WithBaseDir(opts.BaseDir))
	if err := a.AnalyzeSourceFile(source); err != nil {
		return nil, err
	}
	return &session{pkg: pkg, fs: fs, analyzer: a}, nil
}

// expandFile writes the flattened source to w. Nothing is written unless
// the whole graph was analyzed and emitted.
func expandFile(opts options, w io.Writer) error {
	s, err := analyze(opts)
	if err != nil {
		return err
	}
	e := emitter.New(s.fs, s.pkg.CrateName,
		emitter.WithVisibility(opts.Visibility),
		emitter.WithCrateVisibility(s.analyzer.CrateVisibility()))

	var buf bytes.Buffer
	if err := e.Emit(&buf, s.analyzer.Tree()); err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}

// listSources returns the files that would be flattened.
func listSources(opts options) ([]analyzer.SourceFile, error) {
	s, err := analyze(opts)
	if err != nil {
		return nil, err
	}
	return s.analyzer.Files(), nil
}

func findCargoManifestDir(dir string) (string, error) {
	start := dir
	for {
		if _, err := os.Stat(filepath.Join(dir, manifest.FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", &manifest.Error{
				Path: start,
				Msg:  "Cargo.toml not found in any parent directory of",
				Ja:   "の親ディレクトリに Cargo.toml が見つかりません",
			}
		}
		dir = parent
	}
}
