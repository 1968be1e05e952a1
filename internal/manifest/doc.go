// Package manifest turns manifest files into dependency units.
//
// Each file describes exactly one unit, and the file path is the unit's
// resource. Three formats are understood, chosen by file extension:
//
// YAML (.yaml, .yml):
//
//	name: app.main
//	provides: [app.main]
//	requires: [lib.core]
//
// A missing name defaults to the manifest path.
//
// HCL (.hcl), exactly one unit block:
//
//	unit "app.main" {
//	  provides = ["app.main"]
//	  requires = ["lib.core"]
//	}
//
// Closure Library sources (.js): goog.provide and goog.module calls are
// provides, goog.require calls are requires, and the unit is named after its
// path.
//
// Loader discovers manifests under files and directories and parses them
// concurrently; Watcher reports changes to them.
package manifest
