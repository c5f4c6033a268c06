// Package emitter writes a module tree out as a single source file.
package emitter

import (
	"bufio"
	"errors"
	"io"
	"io/fs"

	"expunch/analyzer"
	"expunch/fsys"
)

// DefaultVisibility is the visibility of generated module wrappers.
const DefaultVisibility = "pub"

const maxLineSize = 16 << 20

// Emitter replays analyzed files with their replacement spans applied,
// nesting every child module in a `mod` wrapper.
type Emitter struct {
	fs          fsys.FS
	libName     string
	visibility  string
	crateVis    string
	crateVisSet bool
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithVisibility sets the wrapper visibility; "" makes wrappers private.
func WithVisibility(vis string) Option {
	return func(e *Emitter) { e.visibility = vis }
}

// WithCrateVisibility sets the visibility of the library crate's wrapper
// at the top level. It has no effect unless ok is set.
func WithCrateVisibility(vis string, ok bool) Option {
	return func(e *Emitter) { e.crateVis, e.crateVisSet = vis, ok }
}

// New returns an Emitter for a tree whose library crate is named libName.
func New(fs fsys.FS, libName string, opts ...Option) *Emitter {
	e := &Emitter{fs: fs, libName: libName, visibility: DefaultVisibility}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit writes the flattened source of tree to w. The tree must be
// finalized.
func (e *Emitter) Emit(w io.Writer, tree *analyzer.Tree) error {
	bw := bufio.NewWriter(w)
	if err := e.emitNode(bw, tree.Root(), true); err != nil {
		return err
	}
	return bw.Flush()
}

func (e *Emitter) emitNode(w *bufio.Writer, n *analyzer.Node, top bool) error {
	if n.File() != "" {
		if err := e.emitFile(w, n.File(), n.Spans()); err != nil {
			return err
		}
	}
	for _, c := range n.Children() {
		vis := e.visibility
		if top && c.Name() == e.libName && e.crateVisSet {
			vis = e.crateVis
		}
		w.WriteByte('\n')
		if vis != "" {
			w.WriteString(vis)
			w.WriteByte(' ')
		}
		w.WriteString("mod ")
		w.WriteString(c.Name())
		w.WriteString(" {\n")
		if err := e.emitNode(w, c, false); err != nil {
			return err
		}
		w.WriteString("}\n")
	}
	return nil
}

func (e *Emitter) emitFile(w *bufio.Writer, path string, spans []analyzer.ReplacementSpan) error {
	rc, err := e.fs.Open(path)
	if err != nil {
		kind := analyzer.ErrRead
		if errors.Is(err, fs.ErrNotExist) {
			kind = analyzer.ErrNotFound
		}
		return &analyzer.PathError{Kind: kind, Path: path, Err: err}
	}
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	r := replayer{w: w, spans: spans}
	for sc.Scan() {
		r.line(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return &analyzer.PathError{Kind: analyzer.ErrRead, Path: path, Err: err}
	}
	return nil
}

// replayer writes one file line by line, substituting spans. Spans must be
// sorted and must not overlap.
type replayer struct {
	w      *bufio.Writer
	spans  []analyzer.ReplacementSpan
	next   int
	lineNo int
	inSpan bool
}

func (r *replayer) line(text string) {
	r.lineNo++
	runes := []rune(text)
	clamp := func(col int) int { return min(max(col, 0), len(runes)) }

	col := 0
	for {
		if r.inSpan {
			span := r.spans[r.next]
			if span.End.Line != r.lineNo {
				// swallowed by a span continuing on a later line
				r.w.WriteByte('\n')
				return
			}
			col = max(col, clamp(span.End.Column))
			r.inSpan = false
			r.next++
			continue
		}
		if r.next < len(r.spans) && r.spans[r.next].Start.Line == r.lineNo {
			span := r.spans[r.next]
			start := max(col, clamp(span.Start.Column))
			r.w.WriteString(string(runes[col:start]))
			r.w.WriteString(span.Replacement)
			col = start
			r.inSpan = true
			continue
		}
		r.w.WriteString(string(runes[col:]))
		r.w.WriteByte('\n')
		return
	}
}
