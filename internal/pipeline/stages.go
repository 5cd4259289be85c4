package pipeline

import (
	"context"
	"fmt"
	"sort"
)

// StageName identifies one pipeline stage.
type StageName string

const (
	StageLoad     StageName = "load"
	StageEnrich   StageName = "enrich"
	StageIndex    StageName = "index"
	StageLink     StageName = "link"
	StageMetadata StageName = "metadata"
	StageValidate StageName = "validate"
	StageChunk    StageName = "chunk"
	StageSitemap  StageName = "sitemap"
	StageWrite    StageName = "write"
)

// stageDef wires a stage to its implementation. Requires are pulled into a
// plan transitively; After only orders stages that are already present.
type stageDef struct {
	requires []StageName
	after    []StageName
	run      func(*Pipeline, context.Context, *runState) error
}

// Validate works on the raw page list and runs before index, so a catalogue
// that breaks index invariants still gets a full report.
var registry = map[StageName]stageDef{
	StageLoad:     {run: (*Pipeline).load},
	StageEnrich:   {requires: []StageName{StageLoad}, run: (*Pipeline).enrich},
	StageIndex:    {requires: []StageName{StageEnrich}, after: []StageName{StageValidate}, run: (*Pipeline).index},
	StageLink:     {requires: []StageName{StageIndex}, run: (*Pipeline).link},
	StageMetadata: {requires: []StageName{StageLink}, run: (*Pipeline).metadata},
	StageValidate: {requires: []StageName{StageEnrich}, run: (*Pipeline).validate},
	StageChunk:    {requires: []StageName{StageIndex}, after: []StageName{StageValidate}, run: (*Pipeline).chunk},
	StageSitemap:  {requires: []StageName{StageIndex}, after: []StageName{StageValidate}, run: (*Pipeline).sitemap},
	StageWrite:    {requires: []StageName{StageIndex}, after: writeAfter, run: (*Pipeline).write},
}

// The write stage runs last among whatever else the plan contains.
var writeAfter = []StageName{StageLink, StageMetadata, StageValidate, StageChunk, StageSitemap}

// Stage sets requested by the CLI commands.
var (
	GenerateStages = []StageName{StageLink, StageMetadata, StageValidate, StageChunk, StageSitemap, StageWrite}
	ValidateStages = []StageName{StageValidate}
	SitemapStages  = []StageName{StageSitemap, StageWrite}
)

// ExecutionPlan represents the planned execution order of stages.
type ExecutionPlan struct {
	Order []StageName
	Graph map[StageName][]StageName // stage -> stages that must run after it
}

// BuildExecutionPlan resolves requested stages plus their requirements into a
// dependency-ordered list. Ties break alphabetically so the order is stable.
func BuildExecutionPlan(stages []StageName) (*ExecutionPlan, error) {
	graph := make(map[StageName][]StageName)
	if len(stages) == 0 {
		return &ExecutionPlan{Order: []StageName{}, Graph: graph}, nil
	}

	stageSet := make(map[StageName]bool)
	var add func(StageName) error
	add = func(s StageName) error {
		def, ok := registry[s]
		if !ok {
			return fmt.Errorf("stage %s not found in registry", s)
		}
		if stageSet[s] {
			return nil
		}
		stageSet[s] = true
		for _, dep := range def.requires {
			if err := add(dep); err != nil {
				return fmt.Errorf("resolving dependencies for %s: %w", s, err)
			}
		}
		return nil
	}
	for _, s := range stages {
		if err := add(s); err != nil {
			return nil, err
		}
	}

	inDegree := make(map[StageName]int, len(stageSet))
	for s := range stageSet {
		inDegree[s] = 0
	}
	for s := range stageSet {
		def := registry[s]
		for _, dep := range def.requires {
			graph[dep] = append(graph[dep], s)
			inDegree[s]++
		}
		for _, dep := range def.after {
			if stageSet[dep] {
				graph[dep] = append(graph[dep], s)
				inDegree[s]++
			}
		}
	}

	var queue []StageName
	for s, d := range inDegree {
		if d == 0 {
			queue = append(queue, s)
		}
	}

	var order []StageName
	for len(queue) > 0 {
		sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)
		for _, dependent := range graph[current] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(order) != len(stageSet) {
		return nil, fmt.Errorf("circular dependency detected among stages")
	}
	return &ExecutionPlan{Order: order, Graph: graph}, nil
}
