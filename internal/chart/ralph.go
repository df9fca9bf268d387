package chart

// RalphName is the catalog name of the built-in chart.
const RalphName = "ralph"

var ralphNodes = [...]Node{
	// Setup
	{ID: "1", Label: "1. Write PRD (prd.json)", Position: Position{X: 250, Y: 50}, Category: CategorySetup},
	{ID: "2", Label: "2. Run ralph.sh", Position: Position{X: 250, Y: 150}, Category: CategorySetup},
	{ID: "3", Label: "3. Start Iteration Loop", Position: Position{X: 250, Y: 250}, Category: CategorySetup},

	// Learning (4-layer system)
	{ID: "4", Label: "4. Read Layer 1: Codebase Patterns", Position: Position{X: 200, Y: 370}, Category: CategoryLearning},
	{ID: "5", Label: "5. Read Layer 2: Progress Entries", Position: Position{X: 200, Y: 470}, Category: CategoryLearning},
	{ID: "6", Label: "6. Read Layer 3: Git History", Position: Position{X: 200, Y: 570}, Category: CategoryLearning},
	{ID: "7", Label: "7. (Optional) Layer 4: Conversation Logs", Position: Position{X: 200, Y: 670}, Category: CategoryLearning},

	// Main loop
	{ID: "8", Label: "8. Pick Incomplete User Story", Position: Position{X: 650, Y: 370}, Category: CategoryLoop},
	{ID: "9", Label: "9. Implement Using Learned Patterns", Position: Position{X: 650, Y: 470}, Category: CategoryLoop},
	{ID: "10", Label: "10. Run Quality Checks", Position: Position{X: 650, Y: 570}, Category: CategoryLoop},
	{ID: "11", Label: "11. Commit If Passing", Position: Position{X: 650, Y: 670}, Category: CategoryLoop},
	{ID: "12", Label: "12. Update prd.json", Position: Position{X: 650, Y: 770}, Category: CategoryLoop},
	{ID: "13", Label: "13. Log to progress.txt", Position: Position{X: 650, Y: 870}, Category: CategoryLoop},

	// Post-iteration
	{ID: "14", Label: "14. Capture Session ID", Position: Position{X: 650, Y: 970}, Category: CategoryLearning},
	{ID: "15", Label: "15. Extract Insights (Background)", Position: Position{X: 650, Y: 1070}, Category: CategoryLearning},

	{ID: "16", Label: "More Stories?", Position: Position{X: 650, Y: 1180}, Category: CategoryDecision},
	{ID: "17", Label: "✅ All Complete!", Position: Position{X: 1050, Y: 1180}, Category: CategoryDone},
}

var ralphEdges = [...]Edge{
	{ID: "e1-2", Source: "1", Target: "2"},
	{ID: "e2-3", Source: "2", Target: "3"},
	{ID: "e3-4", Source: "3", Target: "4"},
	{ID: "e4-5", Source: "4", Target: "5"},
	{ID: "e5-6", Source: "5", Target: "6"},
	{ID: "e6-7", Source: "6", Target: "7"},
	{ID: "e7-8", Source: "7", Target: "8"},
	{ID: "e8-9", Source: "8", Target: "9"},
	{ID: "e9-10", Source: "9", Target: "10"},
	{ID: "e10-11", Source: "10", Target: "11"},
	{ID: "e11-12", Source: "11", Target: "12"},
	{ID: "e12-13", Source: "12", Target: "13"},
	{ID: "e13-14", Source: "13", Target: "14"},
	{ID: "e14-15", Source: "14", Target: "15"},
	{ID: "e15-16", Source: "15", Target: "16"},
	{ID: "e16-17", Source: "16", Target: "17", Label: "No"},
	{ID: "e16-4", Source: "16", Target: "4", Label: "Yes", LoopBack: true},
}

var ralphAnnotations = map[int]Annotation{
	1: {Title: "Create Your PRD", Content: []string{
		"Define user stories in JSON format",
		"Each story has: id, title, priority, acceptance criteria",
		"Example: scripts/ralph/examples/player-search.prd.json",
	}},
	2: {Title: "Launch Ralph", Content: []string{
		"Run: ./scripts/ralph/ralph.sh 10",
		"Ralph creates feature branch automatically",
		"Each iteration is a fresh Claude instance",
	}},
	3: {Title: "Iteration Loop Starts", Content: []string{
		"Each iteration = fresh Claude Code CLI session",
		"No memory from previous iterations",
		"Learning happens via 4-layer system",
	}},
	4: {Title: "Layer 1: Codebase Patterns", Content: []string{
		"Top section of progress.txt",
		"Consolidated wisdom from all iterations",
		"Architectural patterns, gotchas, conventions",
		"ALWAYS read this first!",
	}},
	5: {Title: "Layer 2: Progress Entries", Content: []string{
		"Structured log per iteration with session IDs",
		"What worked, what failed, mistakes made",
		"Links to git commits and conversation logs",
		"Read last 3-5 entries for recent context",
	}},
	6: {Title: "Layer 3: Git History", Content: []string{
		"git log --oneline -10",
		"git show [commit-hash]",
		"Actual code changes from previous iterations",
		"Ground truth for what was implemented",
	}},
	7: {Title: "Layer 4: Conversation Logs", Content: []string{
		"Full JSONL logs of Claude conversations",
		"Auto-captured session IDs",
		"Parse with: ./scripts/ralph/parse-conversation.sh",
		"Deep dive when debugging complex issues",
	}},
	8: {Title: "Pick Next Story", Content: []string{
		"Read prd.json",
		"Find highest priority story where passes: false",
		"Continue partial work if Status: Partial",
	}},
	9: {Title: "Implement Using Patterns", Content: []string{
		"Apply learned patterns from Layer 1",
		"Avoid mistakes documented in Layer 2",
		"Reference git commits from Layer 3",
		"Check conversation logs if needed (Layer 4)",
	}},
	10: {Title: "Quality Checks", Content: []string{
		"npm run check-types",
		"npm run check (linting)",
		"npx ultracite fix (formatting)",
		"Only commit if all checks pass",
	}},
	11: {Title: "Commit Code", Content: []string{
		"Git commit with descriptive message",
		"Include user story ID in message",
		"Commit hash saved in progress.txt",
		"Co-authored by Claude Sonnet 4.5",
	}},
	12: {Title: "Update PRD", Content: []string{
		"Set passes: true if story complete",
		"Keep passes: false if partial",
		"Ralph picks next incomplete story",
	}},
	13: {Title: "Document Learnings", Content: []string{
		"What was implemented",
		"Patterns discovered",
		"Gotchas encountered",
		"Mistakes made (for future iterations!)",
		"Session ID for reference",
	}},
	14: {Title: "Capture Session ID", Content: []string{
		"./scripts/ralph/capture-session-id.sh",
		"Finds current Claude conversation ID",
		"Example: 71aaf1aa-3b9c-4661-aee6-d60a7eea4ff6",
		"Logged to session-history.txt",
	}},
	15: {Title: "Auto-Extract Insights", Content: []string{
		"Runs in background (non-blocking)",
		"./scripts/ralph/extract-insights.sh",
		"Analyzes JSONL conversation logs",
		"Saves to insights/iteration-N-[session].md",
		"Extracts: errors, patterns, gotchas, files",
	}},
	16: {Title: "Check Completion", Content: []string{
		"Are there more incomplete stories?",
		"If yes: Start next iteration (fresh Claude instance)",
		"If no: Ralph exits with success",
	}},
	17: {Title: "Feature Complete!", Content: []string{
		"All user stories have passes: true",
		"Code committed and quality checks passed",
		"Session history saved",
		"Insights extracted",
		"Ready to create pull request!",
	}},
}

// Ralph returns the built-in walkthrough of the Ralph agent loop. Each call
// returns fresh slices so callers cannot mutate the package tables.
func Ralph() *Chart {
	nodes := make([]Node, len(ralphNodes))
	copy(nodes, ralphNodes[:])
	edges := make([]Edge, len(ralphEdges))
	copy(edges, ralphEdges[:])
	annotations := make(map[int]Annotation, len(ralphAnnotations))
	for step, a := range ralphAnnotations {
		content := make([]string, len(a.Content))
		copy(content, a.Content)
		annotations[step] = Annotation{Title: a.Title, Content: content}
	}
	return &Chart{
		Name:        RalphName,
		Title:       "How Ralph Works with Claude Code CLI",
		Description: "Interactive visualization of the autonomous agent loop with 4-layer learning system",
		Nodes:       nodes,
		Edges:       edges,
		Annotations: annotations,
	}
}
