// Package services wires the ledger engine to its collaborators: the sheet
// store, the extraction model, the chart renderer and the import history.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"culvert/internal/chart"
	"culvert/internal/core"
	"culvert/internal/extract"
	"culvert/internal/ledger"
	"culvert/internal/notify"
	"culvert/internal/sheets"
	"culvert/internal/storage"
)

// TextExtractor is the opaque OCR worker: image bytes in, raw text out.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte, mimeType string) (string, error)
}

// ChartRenderer renders labeled series as image bytes.
type ChartRenderer interface {
	Line(ctx context.Context, title string, labels []string, datasets []chart.Dataset) ([]byte, error)
}

// Tracker owns the read-reconcile-write cycle against the ledger store and
// the chart-producing read paths. It holds no snapshot between calls; every
// operation re-reads the store.
type Tracker struct {
	store     sheets.LedgerStore
	extractor TextExtractor
	charts    ChartRenderer
	history   *storage.ImportRepository // optional
	notifier  *notify.Webhook           // optional
}

func NewTracker(store sheets.LedgerStore, extractor TextExtractor, charts ChartRenderer,
	history *storage.ImportRepository, notifier *notify.Webhook) *Tracker {
	return &Tracker{
		store:     store,
		extractor: extractor,
		charts:    charts,
		history:   history,
		notifier:  notifier,
	}
}

// RecordScores runs one upsert cycle: read the snapshot, reconcile the
// entries for the date label, write the result. Returns the number of cell
// writes applied.
func (t *Tracker) RecordScores(ctx context.Context, dateLabel string, entries []core.ScoreEntry) (int, error) {
	snapshot, err := t.store.ReadRange(ctx, sheets.SnapshotRange)
	if err != nil {
		return 0, fmt.Errorf("read ledger: %w", err)
	}
	writes := ledger.Upsert(snapshot, dateLabel, entries)
	if len(writes) == 0 {
		return 0, nil
	}
	if err := t.store.BatchWrite(ctx, writes); err != nil {
		return 0, fmt.Errorf("write ledger: %w", err)
	}
	slog.InfoContext(ctx, "Recorded scores",
		"date_label", dateLabel,
		"entries", len(entries),
		"writes", len(writes))
	return len(writes), nil
}

// IngestRaw decodes raw extraction output and records the surviving entries.
// Returns the number of entries written.
func (t *Tracker) IngestRaw(ctx context.Context, source, dateLabel, raw string) (int, error) {
	entries, err := extract.DecodeEntries(raw)
	if err != nil {
		t.recordHistory(ctx, source, dateLabel, 0, 0, 1, err)
		return 0, err
	}
	if _, err := t.RecordScores(ctx, dateLabel, entries); err != nil {
		t.recordHistory(ctx, source, dateLabel, len(entries), 0, 1, err)
		return 0, err
	}
	t.recordHistory(ctx, source, dateLabel, len(entries), len(entries), 0, nil)
	return len(entries), nil
}

// BatchResult accumulates per-element outcomes of a multi-image scan.
type BatchResult struct {
	Succeeded int
	Entries   int
	Failures  []string
}

// Summary renders the accumulated outcome, listing at most the first three
// failure descriptions.
func (r BatchResult) Summary() string {
	s := fmt.Sprintf("%d of %d images ingested (%d entries)",
		r.Succeeded, r.Succeeded+len(r.Failures), r.Entries)
	if len(r.Failures) == 0 {
		return s
	}
	shown := r.Failures
	if len(shown) > 3 {
		shown = shown[:3]
	}
	return s + "; failures: " + strings.Join(shown, "; ")
}

// ScanImages OCRs and ingests each image in order, one at a time; each image
// completes its own upsert before the next starts, so repeated names across
// images resolve last-write-wins. A failing element is recorded and skipped,
// never aborting the batch.
func (t *Tracker) ScanImages(ctx context.Context, dateLabel string, paths []string) BatchResult {
	var result BatchResult
	for _, path := range paths {
		n, err := t.scanOne(ctx, dateLabel, path)
		if err != nil {
			slog.WarnContext(ctx, "Image ingest failed", "path", path, "error", err)
			result.Failures = append(result.Failures, fmt.Sprintf("%s: %v", path, err))
			continue
		}
		result.Succeeded++
		result.Entries += n
	}
	t.notifySummary(ctx, "ocr", dateLabel, result)
	return result
}

func (t *Tracker) scanOne(ctx context.Context, dateLabel, path string) (int, error) {
	if t.extractor == nil {
		return 0, fmt.Errorf("no extraction model configured")
	}
	image, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read image: %w", err)
	}
	raw, err := t.extractor.ExtractText(ctx, image, mimeTypeOf(path))
	if err != nil {
		return 0, fmt.Errorf("extract text: %w", err)
	}
	return t.IngestRaw(ctx, "ocr", dateLabel, raw)
}

// MemberChart renders the score history of one member. The name must match
// an existing row exactly (after normalization); fuzzy matching is a write-
// path affordance only.
func (t *Tracker) MemberChart(ctx context.Context, name string) ([]byte, error) {
	series, err := t.memberSeries(ctx, name)
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(series.Points))
	values := make([]ledger.Value, len(series.Points))
	for i, p := range series.Points {
		labels[i] = p.Label
		values[i] = ledger.Value{Float: p.Value, Valid: true}
	}
	return t.charts.Line(ctx, series.Name, labels, []chart.Dataset{
		{Label: series.Name, Values: values},
	})
}

// CompareChart renders two members on the union of their dates, with gaps
// where one member has no score.
func (t *Tracker) CompareChart(ctx context.Context, nameA, nameB string) ([]byte, error) {
	a, err := t.memberSeries(ctx, nameA)
	if err != nil {
		return nil, err
	}
	b, err := t.memberSeries(ctx, nameB)
	if err != nil {
		return nil, err
	}
	aligned := ledger.Align(a, b)
	title := fmt.Sprintf("%s vs %s", a.Name, b.Name)
	return t.charts.Line(ctx, title, aligned.Labels, []chart.Dataset{
		{Label: a.Name, Values: aligned.A},
		{Label: b.Name, Values: aligned.B},
	})
}

// GuildChart renders the per-date total across all members.
func (t *Tracker) GuildChart(ctx context.Context) ([]byte, error) {
	snapshot, err := t.store.ReadRange(ctx, sheets.SnapshotRange)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	points := ledger.Aggregate(snapshot)
	labels := make([]string, len(points))
	values := make([]ledger.Value, len(points))
	for i, p := range points {
		labels[i] = p.Label
		values[i] = ledger.Value{Float: p.Value, Valid: true}
	}
	return t.charts.Line(ctx, "Guild total", labels, []chart.Dataset{
		{Label: "Guild total", Values: values},
	})
}

// History returns the most recent import records, newest first.
func (t *Tracker) History(ctx context.Context, limit int) ([]storage.ImportRecord, error) {
	if t.history == nil {
		return nil, nil
	}
	return t.history.Recent(ctx, limit)
}

func (t *Tracker) memberSeries(ctx context.Context, name string) (ledger.Series, error) {
	snapshot, err := t.store.ReadRange(ctx, sheets.SnapshotRange)
	if err != nil {
		return ledger.Series{}, fmt.Errorf("read ledger: %w", err)
	}
	series, ok := ledger.Extract(snapshot, name)
	if !ok {
		return ledger.Series{}, fmt.Errorf("member %q: %w", name, core.ErrNotFound)
	}
	return series, nil
}

func (t *Tracker) recordHistory(ctx context.Context, source, dateLabel string, entries, succeeded, failed int, cause error) {
	if t.history == nil {
		return
	}
	rec := storage.ImportRecord{
		Source:    source,
		DateLabel: dateLabel,
		Entries:   entries,
		Succeeded: succeeded,
		Failed:    failed,
	}
	if cause != nil {
		rec.FirstError = cause.Error()
	}
	if _, err := t.history.Record(ctx, rec); err != nil {
		slog.WarnContext(ctx, "Failed to record import history", "error", err)
	}
}

func (t *Tracker) notifySummary(ctx context.Context, source, dateLabel string, result BatchResult) {
	if t.notifier == nil {
		return
	}
	err := t.notifier.Send(ctx, notify.Summary{
		Source:    source,
		DateLabel: dateLabel,
		Entries:   result.Entries,
		Succeeded: result.Succeeded,
		Failed:    len(result.Failures),
		Errors:    result.Failures,
	})
	if err != nil {
		slog.WarnContext(ctx, "Failed to post ingest summary", "error", err)
	}
}

func mimeTypeOf(path string) string {
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".jpg"),
		strings.HasSuffix(strings.ToLower(path), ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(strings.ToLower(path), ".webp"):
		return "image/webp"
	default:
		return "image/png"
	}
}
