package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/otherjamesbrown/chatlens/pkg/logging"
	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

// reportWordLimit caps the word table carried in a full report; the
// complete table is available through WordStats directly.
const reportWordLimit = 25

// Report bundles the output of every analytic function for one record
// set.
type Report struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`

	Summary     Summary          `json:"summary"`
	AuthorStats []AuthorStat     `json:"author_stats"`
	Activity    []ActivityRate   `json:"activity"`
	DayOfWeek   WeekdayProfile   `json:"day_of_week"`
	Response    ResponseStats    `json:"response"`
	Matrix      ResponseMatrix   `json:"matrix"`
	Streak      Streak           `json:"streak"`
	Words       []WordCount      `json:"words"`
	Emojis      []EmojiCount     `json:"emojis"`
	Monthly     MonthlyVolume    `json:"monthly"`
	Averages    []AuthorAverages `json:"averages"`
}

// Suite runs all analytic functions over one pipeline result.
type Suite struct {
	logger logging.Logger
}

// NewSuite creates a suite with the given logger (nil for silence).
func NewSuite(logger logging.Logger) *Suite {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Suite{logger: logger.With(logging.F("component", "analysis_suite"))}
}

// Run fans the analytic functions out over the immutable record set,
// one goroutine each. This is the only safe parallelism granularity:
// the classification chain upstream is strictly ordered, but the
// analyses share nothing and never write to their input.
func (s *Suite) Run(ctx context.Context, result *pipeline.Result) (*Report, error) {
	start := time.Now()
	records := result.Records

	summary, err := ChatSummary(records)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: start,
		Summary:     summary,
	}

	var wg sync.WaitGroup
	run := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fnStart := time.Now()
			fn()
			s.logger.Debug("analysis finished",
				logging.F("analysis", name),
				logging.F("duration", time.Since(fnStart)))
		}()
	}

	run("author_stats", func() { report.AuthorStats = TrendStats(records) })
	run("activity", func() { report.Activity = ActivityRates(records) })
	run("day_of_week", func() { report.DayOfWeek = ActivityByDayOfWeek(records) })
	run("response_times", func() { report.Response = ResponseTimes(records) })
	run("response_matrix", func() { report.Matrix = Responses(records) })
	run("streak", func() { report.Streak = LongestStreak(records) })
	run("words", func() {
		words := WordStats(records)
		if len(words) > reportWordLimit {
			words = words[:reportWordLimit]
		}
		report.Words = words
	})
	run("emojis", func() { report.Emojis = EmojiStats(records) })
	run("monthly", func() { report.Monthly = MonthlyMessageVolume(records) })
	run("averages", func() { report.Averages = Averages(records) })

	wg.Wait()

	report.Duration = time.Since(start)
	s.logger.Info("report generated",
		logging.F("run_id", report.RunID),
		logging.F("records", len(records)),
		logging.F("duration", report.Duration))

	return report, ctx.Err()
}
