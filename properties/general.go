// Package properties holds the General tab of a Properties dialog: what
// it shows about a file-system entry and how it commits a rename.
package properties

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/riadafridishibly/fsprops/scanner"
	"github.com/riadafridishibly/fsprops/vfs"
)

type GeneralOption func(*General)

func WithShortcut(isShortcut bool) GeneralOption {
	return func(g *General) {
		g.isShortcut = isShortcut
	}
}

// WithPID names the program that opens the entry.
func WithPID(pid string) GeneralOption {
	return func(g *General) {
		g.pid = pid
	}
}

func WithLookup(lookup Lookup) GeneralOption {
	return func(g *General) {
		g.lookup = lookup
	}
}

func WithExtensionTypes(types ExtensionTypes) GeneralOption {
	return func(g *General) {
		g.types = types
	}
}

func WithScannerOptions(opts ...scanner.Option) GeneralOption {
	return func(g *General) {
		g.scannerOpts = append(g.scannerOpts, opts...)
	}
}

// General is the view model of the General tab.
type General struct {
	entry      vfs.Entry
	isShortcut bool
	pid        string
	lookup     Lookup
	types      ExtensionTypes

	scannerOpts []scanner.Option
	// nil unless entry is a directory and not a shortcut
	agg *scanner.Aggregator
}

// Row is one label/value line of the tab.
type Row struct {
	Label string
	Value string
}

func NewGeneral(entry vfs.Entry, src scanner.Source, opts ...GeneralOption) *General {
	g := &General{
		entry:  entry,
		lookup: StaticLookup{},
		types:  DefaultExtensionTypes,
	}
	for _, opt := range opts {
		opt(g)
	}
	if entry.IsDir && !g.isShortcut && src != nil {
		g.agg = scanner.NewAggregator(entry.Path, src, g.scannerOpts...)
	}
	return g
}

func (g *General) Entry() vfs.Entry {
	return g.entry
}

func (g *General) IsShortcut() bool {
	return g.isShortcut
}

// Aggregator is nil when nothing is counted for this entry.
func (g *General) Aggregator() *scanner.Aggregator {
	return g.agg
}

// StartAggregation begins counting the folder's contents. It reports
// whether a run was started by this call.
func (g *General) StartAggregation(ctx context.Context) bool {
	if g.agg == nil {
		return false
	}
	return g.agg.Start(ctx)
}

// StopAggregation cancels an in-flight count. Its partial totals stay
// readable but are marked as incomplete.
func (g *General) StopAggregation() {
	if g.agg != nil {
		g.agg.Stop()
	}
}

// Name is the editable name: the basename, without its extension for
// shortcuts.
func (g *General) Name() string {
	return OriginalBasename(g.entry.Path, g.isShortcut)
}

// Extension is the entry's extension, lowercased.
func (g *General) Extension() string {
	return strings.ToLower(filepath.Ext(g.entry.Path))
}

func (g *General) TypeLabel() string {
	if g.entry.IsDir {
		return "Type:"
	}
	return "Type of file:"
}

func (g *General) Type() string {
	ext := g.Extension()
	switch {
	case g.entry.IsDir:
		return "File folder"
	case g.isShortcut:
		return fmt.Sprintf("Shortcut (%s)", ext)
	case ext == "":
		return "File"
	}
	return fmt.Sprintf("%s (%s)", g.types.TypeOf(ext), ext)
}

// OpensWith returns the label and value of the program row. It is only
// meaningful for files.
func (g *General) OpensWith() (label, value string) {
	if g.pid == "" {
		return "Description:", filepath.Base(g.entry.Path)
	}
	if app, ok := g.lookup.App(g.pid); ok && app.Title != "" {
		if app.Icon != "" {
			return "Opens with:", app.Icon + " " + app.Title
		}
		return "Opens with:", app.Title
	}
	return "Opens with:", g.pid
}

func (g *General) Location() string {
	return filepath.Dir(g.entry.Path)
}

// Size prefers the aggregated folder size once it is non-zero.
func (g *General) Size() int64 {
	if g.agg != nil {
		if total := g.agg.Snapshot().Size; total > 0 {
			return total
		}
	}
	return g.entry.Size
}

func (g *General) SizeText() string {
	return FormatSize(g.Size())
}

// Contains renders the folder's content counts; ok is false for files.
func (g *General) Contains() (text string, ok bool) {
	if !g.entry.IsDir {
		return "", false
	}
	var totals scanner.Totals
	state := scanner.StateIdle
	if g.agg != nil {
		totals = g.agg.Snapshot()
		state = g.agg.State()
	}
	text = fmt.Sprintf("%d Files, %d Folders", totals.Files, totals.Folders)
	switch state {
	case scanner.StateAggregating:
		text += " (counting…)"
	case scanner.StateFailed:
		text += " (incomplete)"
	}
	return text, true
}

func (g *General) Created() string {
	return FormatDateTime(g.entry.CreatedAt)
}

func (g *General) Modified() string {
	return FormatDateTime(g.entry.ModifiedAt)
}

func (g *General) Accessed() string {
	return FormatDateTime(g.entry.AccessedAt)
}

// Rows lists everything below the name field, in display order. Empty
// labels are spacers.
func (g *General) Rows() []Row {
	rows := []Row{
		{Label: g.TypeLabel(), Value: g.Type()},
	}
	if !g.entry.IsDir {
		label, value := g.OpensWith()
		rows = append(rows, Row{Label: label, Value: value}, Row{})
	}
	rows = append(rows,
		Row{Label: "Location:", Value: g.Location()},
		Row{Label: "Size:", Value: g.SizeText()},
	)
	if contains, ok := g.Contains(); ok {
		rows = append(rows, Row{Label: "Contains:", Value: contains})
	}
	rows = append(rows,
		Row{},
		Row{Label: "Created:", Value: g.Created()},
		Row{Label: "Modified:", Value: g.Modified()},
		Row{Label: "Accessed:", Value: g.Accessed()},
	)
	return rows
}

// OriginalBasename is the name shown for path in the name field.
func OriginalBasename(path string, isShortcut bool) string {
	base := filepath.Base(path)
	if isShortcut {
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}
