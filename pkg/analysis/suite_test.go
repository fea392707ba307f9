package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clerrors "github.com/otherjamesbrown/chatlens/pkg/errors"
	"github.com/otherjamesbrown/chatlens/pkg/pipeline"
)

func TestSuiteRun(t *testing.T) {
	records := []pipeline.Record{
		msg(t, "2023-01-01 10:00", "Alice", "good morning everyone \U0001F600"),
		msg(t, "2023-01-01 10:10", "Bob", "morning back at you"),
		msg(t, "2023-01-01 10:20", "Alice", "anyone around for coffee"),
		msg(t, "2023-02-01 09:00", "Bob", "coffee again sometime"),
		msg(t, "2023-02-01 09:30", "Alice", "always"),
	}

	suite := NewSuite(nil)
	report, err := suite.Run(context.Background(), &pipeline.Result{Records: records})
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.GeneratedAt.IsZero())

	assert.Equal(t, 5, report.Summary.TotalMessages)
	assert.NotEmpty(t, report.AuthorStats)
	assert.NotEmpty(t, report.Activity)
	assert.Equal(t, []string{"Alice", "Bob"}, report.DayOfWeek.Authors)
	assert.NotEmpty(t, report.Response.Medians)
	assert.Equal(t, []string{"Alice", "Bob"}, report.Matrix.Authors)
	assert.NotZero(t, report.Streak.Length)
	assert.NotEmpty(t, report.Words)
	assert.NotEmpty(t, report.Emojis)
	assert.Equal(t, "2023-01", report.Monthly.PeakMonth)
	assert.Len(t, report.Averages, 2)
}

func TestSuiteRun_EmptyRecords(t *testing.T) {
	suite := NewSuite(nil)
	_, err := suite.Run(context.Background(), &pipeline.Result{})
	require.Error(t, err)
	assert.True(t, clerrors.IsEmptyTranscript(err))
}

func TestSuiteRun_WordTableCapped(t *testing.T) {
	var records []pipeline.Record
	words := []string{
		"alpha", "bravo", "charlie", "delta", "echoes", "foxtrot", "golfing",
		"hotel", "india", "juliet", "kilos", "limas", "mikes", "november",
		"oscar", "papas", "quebec", "romeo", "sierra", "tango", "uniform",
		"victor", "whiskey", "xrays", "yankee", "zulus", "omega", "sigma",
	}
	for i, w := range words {
		ts := "2023-01-01 10:00"
		if i%2 == 0 {
			ts = "2023-01-02 10:00"
		}
		records = append(records, msg(t, ts, "Alice", w))
	}

	suite := NewSuite(nil)
	report, err := suite.Run(context.Background(), &pipeline.Result{Records: records})
	require.NoError(t, err)
	assert.Len(t, report.Words, reportWordLimit)
}
