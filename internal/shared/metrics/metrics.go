package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	previewTotal         atomic.Uint64
	exportStartedTotal   atomic.Uint64
	exportCompletedTotal atomic.Uint64
	exportFailedTotal    atomic.Uint64
	exportPagesTotal     atomic.Uint64
	invoicePDFTotal      atomic.Uint64
	contactSentTotal     atomic.Uint64
	contactFailedTotal   atomic.Uint64

	exportDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000})
	previewPages   = newHistogram([]float64{1, 2, 3, 4, 5, 8, 12})
)

// ObservePreview records a pagination run and the number of pages it produced.
func ObservePreview(pages int) {
	previewTotal.Add(1)
	if pages < 0 {
		pages = 0
	}
	previewPages.Observe(float64(pages))
}

// IncExportStarted increments the started counter.
func IncExportStarted() {
	exportStartedTotal.Add(1)
}

// IncExportCompleted records a successful export of the given page count.
func IncExportCompleted(pages int) {
	exportCompletedTotal.Add(1)
	if pages > 0 {
		exportPagesTotal.Add(uint64(pages))
	}
}

// IncExportFailed increments the failed counter.
func IncExportFailed() {
	exportFailedTotal.Add(1)
}

// ObserveExportDurationMs records an export duration in milliseconds.
func ObserveExportDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	exportDuration.Observe(value)
}

// IncInvoicePDF counts rendered invoice PDFs.
func IncInvoicePDF() {
	invoicePDFTotal.Add(1)
}

// IncContact counts contact form deliveries.
func IncContact(sent bool) {
	if sent {
		contactSentTotal.Add(1)
		return
	}
	contactFailedTotal.Add(1)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_preview_total", "Total pagination runs", previewTotal.Load())
	writeHistogram(&buf, "resume_preview_pages", "Pages per pagination run", previewPages.Snapshot())
	writeCounter(&buf, "resume_export_started_total", "Total PDF exports started", exportStartedTotal.Load())
	writeCounter(&buf, "resume_export_completed_total", "Total PDF exports completed", exportCompletedTotal.Load())
	writeCounter(&buf, "resume_export_failed_total", "Total PDF exports failed", exportFailedTotal.Load())
	writeCounter(&buf, "resume_export_pages_total", "Total pages written to exported PDFs", exportPagesTotal.Load())
	writeHistogram(&buf, "resume_export_duration_ms", "Export duration in milliseconds", exportDuration.Snapshot())
	writeCounter(&buf, "invoice_pdf_total", "Total invoice PDFs rendered", invoicePDFTotal.Load())
	writeCounter(&buf, "contact_sent_total", "Contact messages forwarded", contactSentTotal.Load())
	writeCounter(&buf, "contact_failed_total", "Contact messages that failed to forward", contactFailedTotal.Load())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Since returns the elapsed milliseconds from start.
func Since(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
