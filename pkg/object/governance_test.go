//go:build governance

package object_test

import (
	"go/types"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// modulePath is this module's import path, used to resolve package patterns.
const modulePath = "github.com/irkit-labs/irkit"

// =============================================================================
// LAYERING TEST - pkg/ is the reusable layer and never reaches into internal/
// =============================================================================

// TestGovernance_PkgLayering verifies that no package under pkg/ imports an
// internal/ package. The pkg tree is the embeddable surface; application
// concerns (CLI, config, frontends) depend on it, never the other way around.
func TestGovernance_PkgLayering(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	for _, p := range pkgs {
		if strings.HasSuffix(p.PkgPath, "_test") {
			continue
		}
		for importPath := range p.Imports {
			if strings.HasPrefix(importPath, modulePath+"/internal") {
				t.Errorf("LAYERING VIOLATION: '%s' imports '%s'.\n"+
					"   Fix: Move the shared code under pkg/ or invert the dependency.",
					strings.TrimPrefix(p.PkgPath, modulePath+"/"), importPath)
			}
		}
	}
}

// TestGovernance_ObjectIsLeaf verifies pkg/object sits at the bottom of the
// dependency stack: standard library imports only, nothing from this module
// and nothing third-party. Complements the syntactic check in arch_test.go
// with the type-checked import graph.
func TestGovernance_ObjectIsLeaf(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/object")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}
	if len(pkgs) == 0 {
		t.Fatal("Could not find pkg/object")
	}

	for _, p := range pkgs {
		for importPath := range p.Imports {
			// Stdlib packages have no dot in their path
			if strings.Contains(importPath, ".") {
				t.Errorf("LEAF VIOLATION: pkg/object imports '%s'.\n"+
					"   Fix: pkg/object must stay standard-library only.", importPath)
			}
		}
	}
}

// =============================================================================
// PURITY TEST - No type alias re-exports of the object model
// =============================================================================

// TestGovernance_NoObjectAliasReexports ensures no package re-exports
// pkg/object types as aliases. Consumers name object.Array, object.Map and
// friends directly, so the type hierarchy has a single home.
func TestGovernance_NoObjectAliasReexports(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	objectPkgPath := modulePath + "/pkg/object"

	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			continue
		}
		if pkg.PkgPath == objectPkgPath || strings.HasSuffix(pkg.PkgPath, "_test") {
			continue
		}
		if pkg.Types == nil {
			continue
		}

		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj := scope.Lookup(name)
			if !obj.Exported() {
				continue
			}

			typeName, ok := obj.(*types.TypeName)
			if !ok || !typeName.IsAlias() {
				continue
			}

			named, ok := typeName.Type().(*types.Named)
			if !ok || named.Obj().Pkg() == nil {
				continue
			}
			if named.Obj().Pkg().Path() == objectPkgPath {
				t.Errorf("PURITY VIOLATION: Package '%s' re-exports type alias '%s' for object.%s.\n"+
					"   Fix: Remove the alias. Consumers should use object.%s directly.",
					strings.TrimPrefix(pkg.PkgPath, modulePath+"/"), name,
					named.Obj().Name(), named.Obj().Name())
			}
		}
	}
}
