// Package pickbuild propagates commits from a work branch to every maintained
// release branch of a package: for each branch it switches, pulls,
// cherry-picks the requested range, pushes and optionally submits a build.
//
// The branch table, tool names and work branch come from Config, which can
// be overridden by a YAML file so the table is maintained without rebuilding.
package pickbuild
