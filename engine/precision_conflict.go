//go:build quest_single && quest_double

package engine

// The quest_single and quest_double tags select mutually exclusive
// precisions. Building with both set fails here on purpose.
var _ = quest_single_and_quest_double_are_mutually_exclusive
