package text_test

import (
	"strings"
	"testing"

	"github.com/leapstack-labs/stylist/internal/testutil"
	"github.com/leapstack-labs/stylist/pkg/lint"
	"github.com/leapstack-labs/stylist/pkg/lint/rules/text"
	"github.com/leapstack-labs/stylist/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func examine(t *testing.T, rule lint.Rule, src source.Source) []string {
	t.Helper()
	issues, err := rule.Examine(src)
	require.NoError(t, err)
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.String())
	}
	return out
}

func fortranText(s string) source.Source {
	return source.NewFortranSource(source.NewStringReader(s))
}

func TestCharacterset(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name: "no problems",
			input: `
program immaculate

  use iso_fortran_env, only : output_unit

  implicit none

  ! There are no character set errors here

  write( output_unit, '("Cheese and ", A)' ) "Beef"

end program immaculate
`,
			want: []string{},
		},
		{
			name:  "tab in code",
			input: "\nprogram tab_mistake\n\n  implicit none\n\n  write(6, '(A)')\t'Hello'\n\nend program tab_mistake\n",
			want:  []string{`6: Found character '\t' not in Fortran character set`},
		},
		{
			name:  "tab in comment",
			input: "\nprogram exotic_comment\n\n  implicit none\n\n  ! Comments may have\texotics\n\nend program exotic_comment\n",
			want:  []string{},
		},
		{
			name:  "tabs in strings",
			input: "program exotic_strings\n  write(6, '(A)') 'First\tstring'\n  write(6,'(A)') \"Second\tstring\"\nend program exotic_strings\n",
			want:  []string{},
		},
		{
			name:  "tab in format",
			input: "program exotic_format\n  write(6,'(\"This\tthing: \", I0)') 4\nend program exotic_format\n",
			want:  []string{},
		},
		{
			name:  "doubled apostrophe",
			input: "x = 'it''s'\ty\n",
			want:  []string{`1: Found character '\t' not in Fortran character set`},
		},
		{
			name:  "newline inside string does not count lines",
			input: "x = 'a\nb'\n\t\n",
			want:  []string{`2: Found character '\t' not in Fortran character set`},
		},
		{
			name:  "exotic characters",
			input: "x = 1 £ \fé\n",
			want: []string{
				`1: Found character '£' not in Fortran character set`,
				`1: Found character '\x0c' not in Fortran character set`,
				`1: Found character 'é' not in Fortran character set`,
			},
		},
	}

	rule := text.NewCharacterset(testutil.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, examine(t, rule, fortranText(tt.input)))
		})
	}
}

func TestCharacterset_AnySource(t *testing.T) {
	rule := text.NewCharacterset(testutil.NewTestLogger(t))
	got := examine(t, rule, source.NewPlainText(source.NewStringReader("a\tb")))
	assert.Equal(t, []string{`1: Found character '\t' not in Fortran character set`}, got)
	assert.Equal(t, "FortranCharacterset", rule.Name())
}

func TestTrailingWhitespace(t *testing.T) {
	noTrailing := `
program no_trailing_whitespace

  use iso_fortran_env, only : output_unit

  implicit none

  write( output_unit, '("Hello ", A)' ) 'world'

end program no_trailing_whitespace
`
	someTrailing := "\nprogram some_trailing_whitespace\n\n" +
		"  use iso_fortran_env, only : output_unit\n\n" +
		"  implicit none \n\n" +
		"  write( output_unit, '(\"Hello \", A)' ) 'world'\n" +
		"  \n" +
		"end program some_trailing_whitespace\n"
	pfunit := strings.Join([]string{
		"module trailing_whitespace_in_unit_tests",
		"",
		"  use pFUnit_mod",
		"",
		"  implicit none ",
		"",
		"  @TestCase",
		"  type, extends(TestCase) :: ThisTest",
		"  contains",
		"    procedure :: test_thing",
		"  end type ThisTest",
		"",
		"contains",
		"",
		"  @test",
		"  subroutine test_thing( this )",
		"",
		"    implicit none",
		"",
		"    class(ThisTest), intent(inout) :: this",
		"    ",
		"  end subroutine test_thing",
		"",
		"end module trailing_whitespace_in_unit_tests",
	}, "\n")

	tests := []struct {
		name  string
		input string
		lines []int
	}{
		{name: "none", input: noTrailing},
		{name: "some", input: someTrailing, lines: []int{6, 9}},
		{name: "pFUnit", input: pfunit, lines: []int{5, 21}},
		{name: "carriage returns are line endings", input: "a\r\nb \r\nc\r", lines: []int{2}},
	}

	rule := text.NewTrailingWhitespace(testutil.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := []string{}
			for _, line := range tt.lines {
				want = append(want, lint.NewIssue("Found trailing white space", line).String())
			}
			assert.Equal(t, want, examine(t, rule, source.NewPlainText(source.NewStringReader(tt.input))))
		})
	}
}

const lineLengthSource = `module test_mod

  use module_with_long_name, only : entity_with_long_name

  implicit none

    subroutine procedure_with_long_name
      implicit none
      write(6,'(A)') "This line just fits into 79 characters if you ignore indenting"
      write(6,'(A)') "This line is longer than 79 characters even without the indentation. In fact it is over 120 with indent"
    end subroutine procedure_with_long_name

end module test_mod`

func TestLineLength(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]any
		want []string
	}{
		{
			name: "defaults",
			want: []string{"9: Line exceeds 79 characters", "10: Line exceeds 79 characters"},
		},
		{
			name: "ignoring leading whitespace",
			opts: map[string]any{"ignore_leading_whitespace": true},
			want: []string{"10: Line exceeds 79 characters after leading whitespace"},
		},
		{
			name: "short limit",
			opts: map[string]any{"length": 40},
			want: []string{
				"3: Line exceeds 40 characters",
				"9: Line exceeds 40 characters",
				"10: Line exceeds 40 characters",
				"11: Line exceeds 40 characters",
			},
		},
		{
			name: "short limit ignoring leading whitespace",
			opts: map[string]any{"length": 40, "ignore_leading_whitespace": true},
			want: []string{
				"3: Line exceeds 40 characters after leading whitespace",
				"9: Line exceeds 40 characters after leading whitespace",
				"10: Line exceeds 40 characters after leading whitespace",
			},
		},
		{
			name: "long limit",
			opts: map[string]any{"length": 120},
			want: []string{"10: Line exceeds 120 characters"},
		},
		{
			name: "long limit ignoring leading whitespace",
			opts: map[string]any{"length": "120", "ignore_leading_whitespace": "True"},
			want: []string{},
		},
	}

	logger := testutil.NewTestLogger(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := lint.NewRule("LimitLineLength", tt.opts, logger)
			require.NoError(t, err)
			assert.Equal(t, tt.want, examine(t, rule, fortranText(lineLengthSource)))
		})
	}
}

func TestLineLength_CountsCharacters(t *testing.T) {
	rule := text.NewLineLength(3, false, testutil.NewTestLogger(t))
	assert.Empty(t, examine(t, rule, source.NewPlainText(source.NewStringReader("ééé\n"))))
	assert.Equal(t, []string{"1: Line exceeds 3 characters"},
		examine(t, rule, source.NewPlainText(source.NewStringReader("abcd\n"))))
}

func TestLineLength_RejectsBadLength(t *testing.T) {
	_, err := lint.NewRule("LimitLineLength", map[string]any{"length": 0}, testutil.NewTestLogger(t))
	assert.Error(t, err)
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"FortranCharacterset", "TrailingWhitespace", "LimitLineLength"} {
		spec, ok := lint.LookupRule(name)
		require.True(t, ok, name)
		assert.Equal(t, lint.RuleKindText, spec.Kind)
		assert.NotEmpty(t, spec.Description)
	}
}

func TestRuleNames(t *testing.T) {
	logger := testutil.NewTestLogger(t)
	tests := []struct {
		spec lint.RuleSpec
		rule lint.Rule
	}{
		{spec: text.CharactersetSpec, rule: text.NewCharacterset(logger)},
		{spec: text.TrailingWhitespaceSpec, rule: text.NewTrailingWhitespace(logger)},
		{spec: text.LineLengthSpec, rule: text.NewLineLength(text.DefaultLineLength, false, logger)},
	}

	for _, tt := range tests {
		t.Run(tt.spec.Name, func(t *testing.T) {
			assert.Equal(t, tt.spec.Name, tt.rule.Name())

			built, err := lint.NewRule(tt.spec.Name, nil, logger)
			require.NoError(t, err)
			assert.Equal(t, tt.spec.Name, built.Name())
		})
	}
}
