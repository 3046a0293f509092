package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/gitfarm/pkg/types"
)

func TestRunResultPartitions(t *testing.T) {
	var result types.RunResult
	result.Record(types.Outcome{Item: "a", Status: types.StatusSuccess})
	result.Record(types.Outcome{Item: "b", Status: types.StatusFailed})
	result.Record(types.Outcome{Item: "c", Status: types.StatusSkipped})
	result.Record(types.Outcome{Item: "d", Status: types.StatusSuccess})

	assert.Len(t, result.Succeeded(), 2)
	assert.Len(t, result.Skipped(), 1)
	assert.Len(t, result.Failed(), 1)
	assert.True(t, result.HasFailures())

	total := len(result.Succeeded()) + len(result.Skipped()) + len(result.Failed())
	assert.Equal(t, len(result.Outcomes), total)
}

func TestRunResultNoFailures(t *testing.T) {
	var result types.RunResult
	result.Record(types.Outcome{Item: "a", Status: types.StatusSuccess})
	result.Record(types.Outcome{Item: "b", Status: types.StatusSkipped})

	assert.False(t, result.HasFailures())
}
