// Package config loads and validates the loadorder project configuration.
//
// Configuration lives in a single YAML file, loadorder.yaml by default. The
// file is overlaid on GetDefaultConfig, so every key is optional:
//
//	sources: [src/, lib/]      # manifest files or directories
//	commonModule: common       # hoist target for unrelated modules
//	baseList: [base.ns]        # namespaces whose providers always come first
//	exclude: ["vendor/*"]      # unit ID globs left out of namespace lookup
//	modules:
//	  - name: app
//	    dependsOn: [common]
//	    namespaces: [app.main]
//	output:
//	  format: table            # console, json, yaml, table or template
//	logLevel: info
//
// Relative sources are resolved against the directory of the file.
//
// # Errors
//
// Syntax errors and unknown keys are reported as ConfigurationError, with
// the line number when the YAML parser provides one. Semantic problems are
// collected into ValidationErrors so that all of them are reported at once.
package config
