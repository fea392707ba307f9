package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	clerrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/language"
	"github.com/otherjamesbrown/chatlens/pkg/logging"
	"github.com/otherjamesbrown/chatlens/pkg/transcript"
)

const tracerName = "pipeline"

// DefaultStarterGap is the silence after which a message counts as a
// conversation starter.
const DefaultStarterGap = 7 * time.Hour

// Pipeline runs the full preprocessing chain for one language.
// The pass order is fixed: passes that clear message content (location,
// multimedia, deleted) run before passes that test content (emoji), and
// link detection precedes length so the null-on-link rule can apply.
type Pipeline struct {
	settings   language.Settings
	starterGap time.Duration
	logger     logging.Logger
	metrics    *Metrics
	tracer     trace.Tracer
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithStarterGap overrides the conversation-starter threshold.
func WithStarterGap(gap time.Duration) Option {
	return func(p *Pipeline) {
		p.starterGap = gap
	}
}

// New creates a pipeline for the named language.
// An unsupported language fails here, before any data is touched.
func New(lang string, opts ...Option) (*Pipeline, error) {
	settings, err := language.Get(lang)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		settings:   settings,
		starterGap: DefaultStarterGap,
		logger:     logging.NewNopLogger(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(logging.F("component", "pipeline"))
	return p, nil
}

// Run executes the pipeline over a raw record batch.
//
// selectedAuthors is the caller-supplied allow-list; an empty list is a
// configuration error and fails fast. Data-quality problems inside the
// batch (unparseable timestamps, malformed coordinates) drop the
// affected record or field only.
//
// The returned Result must be treated as immutable: every analysis
// function reads it without writing, so independent analyses may run
// concurrently over the same Result.
func (p *Pipeline) Run(ctx context.Context, raw []transcript.RawRecord, selectedAuthors []string) (*Result, error) {
	if len(selectedAuthors) == 0 {
		return nil, fmt.Errorf("author allow-list is empty: %w", clerrors.ErrNoAuthors)
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.Int("records_in", len(raw))))
	defer span.End()

	start := time.Now()
	if p.metrics != nil {
		p.metrics.RecordsIngested.Add(float64(len(raw)))
	}

	records, badTimestamps := p.stageNormalize(ctx, raw, selectedAuthors)
	records, locations := p.stageClassify(ctx, records)
	records = p.stageFilter(ctx, records)
	records = p.stageEnrich(ctx, records)

	if p.metrics != nil {
		p.metrics.RecordsKept.Add(float64(len(records)))
		p.metrics.countClassifications(records)
	}
	span.SetAttributes(attribute.Int("records_out", len(records)))

	p.logger.Info("pipeline finished",
		logging.F("records_in", len(raw)),
		logging.F("records_out", len(records)),
		logging.F("bad_timestamps", badTimestamps),
		logging.F("locations", len(locations)),
		logging.F("duration", time.Since(start)))

	return &Result{Records: records, Locations: locations}, nil
}

func (p *Pipeline) stageNormalize(ctx context.Context, raw []transcript.RawRecord, authors []string) ([]Record, int) {
	_, span := p.tracer.Start(ctx, "pipeline.normalize")
	defer span.End()
	defer p.observeStage("normalize", time.Now())

	records, dropped := normalize(raw, authors)
	if dropped > 0 {
		p.logger.Debug("dropped records with unparseable timestamps",
			logging.F("count", dropped))
		if p.metrics != nil {
			p.metrics.RecordsDropped.WithLabelValues(DropBadTimestamp).Add(float64(dropped))
		}
	}
	if notSelected := len(raw) - dropped - len(records); notSelected > 0 && p.metrics != nil {
		p.metrics.RecordsDropped.WithLabelValues(DropNotSelected).Add(float64(notSelected))
	}
	return records, dropped
}

func (p *Pipeline) stageClassify(ctx context.Context, records []Record) ([]Record, []Location) {
	_, span := p.tracer.Start(ctx, "pipeline.classify")
	defer span.End()
	defer p.observeStage("classify", time.Now())

	locations := classifyLocations(records, p.settings)
	classifyLinks(records)
	computeLengths(records)
	classifyMultimedia(records, p.settings)
	classifyDeleted(records, p.settings)
	classifyEdited(records, p.settings)
	classifyEmojis(records)
	return records, locations
}

func (p *Pipeline) stageFilter(ctx context.Context, records []Record) []Record {
	_, span := p.tracer.Start(ctx, "pipeline.filter_authors")
	defer span.End()
	defer p.observeStage("filter_authors", time.Now())

	kept := filterAuthors(records)
	if dropped := len(records) - len(kept); dropped > 0 {
		p.logger.Debug("filtered records with untrusted authors",
			logging.F("count", dropped))
		if p.metrics != nil {
			p.metrics.RecordsDropped.WithLabelValues(DropAuthorFiltered).Add(float64(dropped))
		}
	}
	return kept
}

// stageEnrich runs the order-dependent enrichment after filtering, so
// the conversation-starter flags hold for the final record sequence.
func (p *Pipeline) stageEnrich(ctx context.Context, records []Record) []Record {
	_, span := p.tracer.Start(ctx, "pipeline.enrich")
	defer span.End()
	defer p.observeStage("enrich", time.Now())

	markConversationStarters(records, p.starterGap)
	enrichCalendar(records)
	return records
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	if p.metrics != nil {
		p.metrics.StageSeconds.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
