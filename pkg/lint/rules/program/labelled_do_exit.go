package program

import (
	"log/slog"

	"github.com/leapstack-labs/stylist/pkg/fortran"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/source"
)

func init() {
	lint.Register(LabelledDoExitSpec)
}

// LabelledDoExitSpec registers LabelledDoExit.
var LabelledDoExitSpec = lint.RuleSpec{
	Name:        "LabelledDoExit",
	Description: "EXIT statements name the DO construct they leave.",
	Kind:        lint.RuleKindFortran,
	New: func(_ map[string]any, logger *slog.Logger) (lint.Rule, error) {
		return lint.NewFortranRule(&LabelledDoExit{}, logger), nil
	},
}

const unlabelledExit = `Usage of "exit" without label indicating which "do" construct is being exited from.`

// LabelledDoExit reports EXIT statements without a construct name. The
// action of a logical IF is found like any other statement.
type LabelledDoExit struct{}

func (r *LabelledDoExit) Name() string { return LabelledDoExitSpec.Name }

func (r *LabelledDoExit) ExamineFortran(src *source.FortranSource) ([]lint.Issue, error) {
	var issues []lint.Issue

	exits, err := statements[*fortran.BranchStmt](src, fortran.KindExitStmt)
	if err != nil {
		return nil, err
	}
	for exit := range exits {
		if exit.Target() == "" {
			issues = append(issues, lint.NewIssue(unlabelledExit, exit.Line()))
		}
	}

	lint.SortIssues(issues)
	return issues, nil
}
