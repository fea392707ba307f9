package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instrumentation for the pipeline.
type Metrics struct {
	RecordsIngested prometheus.Counter
	RecordsKept     prometheus.Counter
	RecordsDropped  *prometheus.CounterVec
	Classifications *prometheus.CounterVec
	StageSeconds    *prometheus.HistogramVec
}

// Drop reasons used with RecordsDropped.
const (
	DropBadTimestamp   = "bad_timestamp"
	DropNotSelected    = "not_selected"
	DropAuthorFiltered = "author_filtered"
)

// NewMetrics creates pipeline metrics registered against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RecordsIngested: factory.NewCounter(prometheus.CounterOpts{
			Name: "chatlens_pipeline_records_ingested_total",
			Help: "Raw records handed to the pipeline",
		}),
		RecordsKept: factory.NewCounter(prometheus.CounterOpts{
			Name: "chatlens_pipeline_records_kept_total",
			Help: "Records surviving the full pipeline",
		}),
		RecordsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatlens_pipeline_records_dropped_total",
				Help: "Records dropped per reason",
			},
			[]string{"reason"},
		),
		Classifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatlens_pipeline_classifications_total",
				Help: "Records flagged per classification",
			},
			[]string{"flag"},
		),
		StageSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatlens_pipeline_stage_seconds",
				Help:    "Wall time per pipeline stage",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage"},
		),
	}
}

// DefaultMetrics creates metrics on the default registerer.
func DefaultMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

// countClassifications reports per-flag totals for a finished record set.
func (m *Metrics) countClassifications(records []Record) {
	if m == nil {
		return
	}
	for _, r := range records {
		for flag, set := range map[string]bool{
			"link":     r.IsLink,
			"image":    r.IsImage,
			"video":    r.IsVideo,
			"gif":      r.IsGIF,
			"sticker":  r.IsSticker,
			"audio":    r.IsAudio,
			"media":    r.IsMedia,
			"deleted":  r.IsDeleted,
			"edited":   r.IsEdited,
			"emoji":    r.IsEmoji,
			"location": r.IsLocation,
			"starter":  r.IsConversationStarter,
		} {
			if set {
				m.Classifications.WithLabelValues(flag).Inc()
			}
		}
	}
}
