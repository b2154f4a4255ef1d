package studio

import "fmt"

type Stage int

const (
	StageTopicInput Stage = iota + 1
	StageGatheringLinks
	StagePullingInsights
	StageGeneratingCurriculum
)

type StageInfo struct {
	Stage       Stage
	Label       string
	Description string
}

var Stages = []StageInfo{
	{StageTopicInput, "Topic input", "Enter an academic focus area."},
	{StageGatheringLinks, "Gathering links", "Indexing scholarly and industry sources."},
	{StagePullingInsights, "Pulling insights", "Synthesizing key concepts and outcomes."},
	{StageGeneratingCurriculum, "Generating curriculum", "Drafting the program structure and TOC."},
}

type CardStatus string

const (
	CardComplete CardStatus = "complete"
	CardActive   CardStatus = "active"
	CardIdle     CardStatus = "idle"
)

// Index is the position of s in Stages, or -1.
func (s Stage) Index() int {
	for i, info := range Stages {
		if info.Stage == s {
			return i
		}
	}
	return -1
}

func (s Stage) String() string {
	return fmt.Sprintf("%02d", int(s))
}

// Message is the description of the current stage shown above the cards.
func (s Stage) Message() string {
	if i := s.Index(); i >= 0 {
		return Stages[i].Description
	}
	return ""
}

// CardStatus reports how the card at position i renders while s is current.
func (s Stage) CardStatus(i int) CardStatus {
	current := s.Index()
	switch {
	case current > i:
		return CardComplete
	case current == i:
		return CardActive
	default:
		return CardIdle
	}
}

// Progress is the share of the pipeline reached, in percent.
func (s Stage) Progress() float64 {
	return float64(s.Index()+1) / float64(len(Stages)) * 100
}
