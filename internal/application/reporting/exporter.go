// Package reporting renders the dashboard region into a single-page PDF
// artifact named after the active candidate's batch number.
package reporting

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/turtacn/AlloyFrontier/internal/domain/solution"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/AlloyFrontier/internal/infrastructure/storage/history"
	"github.com/turtacn/AlloyFrontier/pkg/errors"
)

// ArtifactRecorder persists written report artifacts.
type ArtifactRecorder interface {
	RecordArtifact(runID string, batchNumber int, filename string, sizeBytes int64) (history.ArtifactRecord, error)
}

// Result reports one written artifact.
type Result struct {
	Filename    string
	Path        string
	BatchNumber int
	SizeBytes   int64
}

// Exporter turns a dashboard view into a PDF file on disk.  Failures before
// the final rename leave no partial artifact behind.
type Exporter struct {
	renderer RegionRenderer
	recorder ArtifactRecorder // nil disables artifact history
	metrics  *prometheus.Metrics
	logger   logging.Logger

	outputDir string
	prefix    string
	width     int
	height    int
}

// NewExporter wires an Exporter.  recorder may be nil.
func NewExporter(
	renderer RegionRenderer,
	recorder ArtifactRecorder,
	metrics *prometheus.Metrics,
	logger logging.Logger,
	outputDir, prefix string,
	width, height int,
) *Exporter {
	return &Exporter{
		renderer:  renderer,
		recorder:  recorder,
		metrics:   metrics,
		logger:    logger.Named("reporting"),
		outputDir: outputDir,
		prefix:    prefix,
		width:     width,
		height:    height,
	}
}

// Export renders the view and writes the PDF artifact.  The filename encodes
// the active candidate's batch number:
//
//	<prefix>_Batch_<n>.pdf
//
// A missing render region fails the export before any filesystem effect; the
// dashboard state is never modified either way.
func (e *Exporter) Export(view View, runID string) (Result, error) {
	started := time.Now()

	view.Width = e.width
	view.Height = e.height
	png, err := e.renderer.Render(view)
	if err != nil {
		outcome := prometheus.OutcomeError
		if errors.IsCode(err, errors.CodeRenderRegionMissing) {
			outcome = prometheus.OutcomeRegionMissing
		}
		e.metrics.RecordExport(outcome, time.Since(started))
		return Result{}, err
	}

	batch := solution.BatchNumber(view.Selection)
	filename := fmt.Sprintf("%s_Batch_%d.pdf", e.prefix, batch)

	pdfBytes, err := e.composePDF(png)
	if err != nil {
		e.metrics.RecordExport(prometheus.OutcomeError, time.Since(started))
		return Result{}, err
	}

	finalPath := filepath.Join(e.outputDir, filename)
	if err := e.writeAtomic(finalPath, pdfBytes); err != nil {
		e.metrics.RecordExport(prometheus.OutcomeError, time.Since(started))
		return Result{}, err
	}

	result := Result{
		Filename:    filename,
		Path:        finalPath,
		BatchNumber: batch,
		SizeBytes:   int64(len(pdfBytes)),
	}
	if e.recorder != nil {
		if _, recErr := e.recorder.RecordArtifact(runID, batch, filename, result.SizeBytes); recErr != nil {
			// The artifact is on disk; history is advisory.
			e.logger.Error("failed to record export artifact", logging.Err(recErr))
		}
	}

	e.metrics.RecordExport(prometheus.OutcomeSuccess, time.Since(started))
	e.logger.Info("report exported",
		logging.String("filename", filename),
		logging.Int("batch", batch),
		logging.Int("size_bytes", int(result.SizeBytes)))
	return result, nil
}

// composePDF wraps the rendered image in a single PDF page matching the
// image's aspect ratio.
func (e *Exporter) composePDF(png []byte) ([]byte, error) {
	// Page in points, scaled so the width is A4-landscape-ish while keeping
	// the region's aspect ratio.
	const pageWidthPt = 842.0
	pageHeightPt := pageWidthPt * float64(e.height) / float64(e.width)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageWidthPt, Ht: pageHeightPt},
	})
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("region", opts, bytes.NewReader(png))
	pdf.ImageOptions("region", 0, 0, pageWidthPt, pageHeightPt, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, errors.CodeRenderFailed, "failed to compose report PDF")
	}
	return buf.Bytes(), nil
}

// writeAtomic writes data to path via a temp file and rename so a crashed
// export never leaves a truncated artifact under the final name.
func (e *Exporter) writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, errors.CodeArtifactWriteFailed, "failed to create output directory")
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.pdf")
	if err != nil {
		return errors.Wrap(err, errors.CodeArtifactWriteFailed, "failed to create temp artifact")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, errors.CodeArtifactWriteFailed, "failed to write artifact")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.CodeArtifactWriteFailed, "failed to close artifact")
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, errors.CodeArtifactWriteFailed, "failed to move artifact into place")
	}
	return nil
}
