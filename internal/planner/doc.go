// Package planner connects configuration, manifests and the dependency core.
//
// A Planner loads the configured sources into a Workspace. The workspace
// applies the configured base list and exclusions, then answers three
// questions:
//   - Resolve: in which order must the units behind some namespaces load
//   - Partition: which module does each unit belong to, and in which order
//     must the modules load
//   - Check: does every unit resolve, and does the partition succeed
//
// Every answer is a Plan (or a Report for Check) that the formatting package
// renders.
package planner
