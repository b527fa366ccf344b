package tui

import "github.com/jonandersen/folio/internal/dashboard"

// ComparisonLoadedMsg carries a finished comparison.
type ComparisonLoadedMsg struct {
	Result *dashboard.Result
}

// ComparisonErrorMsg carries a failed comparison.
type ComparisonErrorMsg struct {
	Err error
}

// UIConfigSavedMsg is sent after the last inputs were persisted.
type UIConfigSavedMsg struct {
	Err error
}
