package program_test

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type usage struct {
	module string
	only   []string
}

func (u usage) statement() string {
	if u.only == nil {
		return "use " + u.module
	}
	return fmt.Sprintf("use %s, only : %s", u.module, strings.Join(u.only, ", "))
}

func TestMissingOnly(t *testing.T) {
	usages := [][]usage{
		nil,
		{{module: "missing_mod"}},
		{{module: "present_mod", only: []string{"stuff"}}},
		{{module: "multi_mod", only: []string{"stuff", "thing"}}},
		{{module: "missing_mod"}, {module: "present_mod", only: []string{"stuff"}}},
		{{module: "missing_mod"}, {module: "missing_too_mod"}},
	}
	ignorances := [][]string{nil, {"missing_mod"}}

	for _, unitType := range []string{"module", "program"} {
		for ui, unitUsage := range usages {
			for pi, procUsage := range usages {
				for _, ignore := range ignorances {
					name := fmt.Sprintf("%s/unit%d/proc%d/ignore=%v", unitType, ui, pi, ignore)
					t.Run(name, func(t *testing.T) {
						var want []string
						lines := []string{unitType + " test"}
						addUses := func(uses []usage) {
							if len(uses) == 0 {
								lines = append(lines, "")
								return
							}
							for _, u := range uses {
								lines = append(lines, u.statement())
								if u.only == nil && !slices.Contains(ignore, u.module) {
									want = append(want, fmt.Sprintf(`%d: Usage of "%s" without "only" clause.`, len(lines), u.module))
								}
							}
						}
						addUses(unitUsage)
						lines = append(lines, "implicit none", "contains", "subroutine foo()")
						addUses(procUsage)
						lines = append(lines, "implicit none", "end subroutine foo", "end "+unitType+" test")

						opts := map[string]any{}
						if ignore != nil {
							opts["ignore"] = ignore
						}
						got := runRule(t, "MissingOnly", opts, strings.Join(lines, "\n")+"\n")
						if want == nil {
							want = []string{}
						}
						assert.Equal(t, want, got)
					})
				}
			}
		}
	}
}

func TestMissingOnly_IgnoreIsCaseInsensitive(t *testing.T) {
	text := "module test\nuse Some_Mod\nuse other_mod\nend module test\n"
	got := runRule(t, "MissingOnly", map[string]any{"ignore": "SOME_MOD"}, text)
	assert.Equal(t, []string{`3: Usage of "other_mod" without "only" clause.`}, got)
}

func TestIntrinsicModule(t *testing.T) {
	const template = `program test
  use iso_fortran_env, only : output_unit
  use, intrinsic :: iso_c_binding, only : c_int
  use, non_intrinsic :: ieee_features
  use %s
  implicit none
end program test
`
	tests := []struct {
		module string
		want   []string
	}{
		{module: "iso_c_binding", want: []string{`5: Usage of intrinsic module "iso_c_binding" without "intrinsic" clause.`}},
		{module: "iso_fortran_env", want: []string{`5: Usage of intrinsic module "iso_fortran_env" without "intrinsic" clause.`}},
		{module: "ieee_exceptions", want: []string{`5: Usage of intrinsic module "ieee_exceptions" without "intrinsic" clause.`}},
		{module: "ieee_arithmetic", want: []string{`5: Usage of intrinsic module "ieee_arithmetic" without "intrinsic" clause.`}},
		{module: "ieee_features", want: []string{`5: Usage of intrinsic module "ieee_features" without "intrinsic" clause.`}},
		{module: "ISO_C_Binding", want: []string{`5: Usage of intrinsic module "ISO_C_Binding" without "intrinsic" clause.`}},
		{module: "my_module", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.module, func(t *testing.T) {
			got := runRule(t, "IntrinsicModule", nil, fmt.Sprintf(template, tt.module))
			assert.Equal(t, append([]string{`2: Usage of intrinsic module "iso_fortran_env" without "intrinsic" clause.`}, tt.want...), got)
		})
	}
}
