//go:build governance

package lint_test

import (
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/stylist"

// allowedImports lists, per library package, the module packages it may
// import. Packages missing from the map may import anything in pkg/.
var allowedImports = map[string][]string{
	"pkg/token":   {},
	"pkg/tree":    {},
	"pkg/fortran": {"pkg/token", "pkg/tree"},
	"pkg/source":  {"pkg/fortran", "pkg/tree"},
	"pkg/lint":    {"pkg/source", "pkg/tree"},
}

// TestGovernance_Layering verifies library packages only depend on the
// layers below them and never on the command line.
func TestGovernance_Layering(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	base := modulePath + "/"
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			t.Errorf("%s: %v", p.PkgPath, p.Errors)
			continue
		}
		rel := strings.TrimPrefix(p.PkgPath, base)
		allowed, restricted := allowedImports[rel]

		for imp := range p.Imports {
			if !strings.HasPrefix(imp, base) {
				continue
			}
			dep := strings.TrimPrefix(imp, base)
			if strings.HasPrefix(dep, "internal/") && !strings.HasPrefix(dep, "internal/testutil") {
				t.Errorf("LAYERING VIOLATION: '%s' imports '%s'.\n"+
					"   Library packages must not depend on the command line.", rel, dep)
				continue
			}
			if restricted && !contains(allowed, dep) {
				t.Errorf("LAYERING VIOLATION: '%s' imports '%s' (allowed: %v).", rel, dep, allowed)
			}
		}
	}
}

// TestGovernance_RulePackagesIndependent verifies rule packages do not
// import one another. Only pkg/lint/rules gathers them.
func TestGovernance_RulePackagesIndependent(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/lint/rules/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	aggregator := modulePath + "/pkg/lint/rules"
	for _, p := range pkgs {
		if p.PkgPath == aggregator {
			continue
		}
		for imp := range p.Imports {
			if strings.HasPrefix(imp, aggregator+"/") || imp == aggregator {
				t.Errorf("COHESION VIOLATION: '%s' imports rule package '%s'.\n"+
					"   Fix: move shared code to pkg/lint or pkg/tree.",
					strings.TrimPrefix(p.PkgPath, modulePath+"/"),
					strings.TrimPrefix(imp, modulePath+"/"))
			}
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
