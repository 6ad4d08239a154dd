package messages

import "github.com/calyptra/rexcraft/internal/models"

// OpsChangedMsg is sent when the ordered operation list is modified
type OpsChangedMsg struct {
	Lines           []string // Complete ordered list of recipe lines
	SourceComponent string   // Which component sent this
}

// PatternChangedMsg is sent when the rendered pattern has been recomputed
type PatternChangedMsg struct {
	Pattern models.Pattern // The freshly rendered and compiled pattern
}
