// Package metrics exposes process-local counters in Prometheus text format.
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
	candidatesProvisionedTotal atomic.Uint64
	onboardingCompletedTotal   atomic.Uint64
	onboardingSkippedTotal     atomic.Uint64
	resumeUploadsTotal         atomic.Uint64
	resumeUploadFailuresTotal  atomic.Uint64

	uploadDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncCandidateProvisioned increments the provisioned-candidates counter.
func IncCandidateProvisioned() {
	candidatesProvisionedTotal.Add(1)
}

// IncOnboardingCompleted increments the completed-onboarding counter.
func IncOnboardingCompleted() {
	onboardingCompletedTotal.Add(1)
}

// IncOnboardingSkipped increments the skipped-onboarding counter.
func IncOnboardingSkipped() {
	onboardingSkippedTotal.Add(1)
}

// IncResumeUpload increments the resume-upload counter.
func IncResumeUpload() {
	resumeUploadsTotal.Add(1)
}

// IncResumeUploadFailure increments the failed resume-upload counter.
func IncResumeUploadFailure() {
	resumeUploadFailuresTotal.Add(1)
}

// ObserveUploadDurationMs records a resume upload duration in milliseconds.
func ObserveUploadDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	uploadDuration.Observe(value)
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
	writeCounter(&buf, "candidates_provisioned_total", "Total candidate records provisioned", candidatesProvisionedTotal.Load())
	writeCounter(&buf, "onboarding_completed_total", "Total onboarding flows completed", onboardingCompletedTotal.Load())
	writeCounter(&buf, "onboarding_skipped_total", "Total onboarding flows skipped", onboardingSkippedTotal.Load())
	writeCounter(&buf, "resume_uploads_total", "Total resume uploads accepted", resumeUploadsTotal.Load())
	writeCounter(&buf, "resume_upload_failures_total", "Total resume uploads rejected or failed", resumeUploadFailuresTotal.Load())
	writeHistogram(&buf, "resume_upload_duration_ms", "Resume upload duration in milliseconds", uploadDuration.Snapshot())
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
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
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

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
