package studio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStagePresentation(t *testing.T) {
	assert.Equal(t, "Enter an academic focus area.", StageTopicInput.Message())
	assert.Equal(t, "Drafting the program structure and TOC.", StageGeneratingCurriculum.Message())
	assert.Equal(t, "", Stage(9).Message())
	assert.Equal(t, "03", StagePullingInsights.String())

	assert.Equal(t, 25.0, StageTopicInput.Progress())
	assert.Equal(t, 100.0, StageGeneratingCurriculum.Progress())

	want := []CardStatus{CardComplete, CardComplete, CardActive, CardIdle}
	for i, status := range want {
		assert.Equal(t, status, StagePullingInsights.CardStatus(i), "card %d", i)
	}
}
