// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

//go:build mage

package main

import (
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// stage runs one CLI subcommand through go run, so targets work without a
// prior Build.
func stage(name string, args ...string) error {
	cmdArgs := append([]string{"run", cmdPkg, name}, args...)
	cmd := exec.Command("go", cmdArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Extract derives the unique first-author list from the paper tables.
func Extract() error {
	return stage("extract")
}

// Fetch looks up author profiles on OpenReview, resuming from the checkpoint.
func Fetch() error {
	return stage("fetch")
}

// Label classifies fetched profiles by English-speaker status.
func Label() error {
	return stage("label")
}

// Merge joins speaker labels back onto the per-year paper tables.
func Merge() error {
	return stage("merge")
}

// Tokenize writes the per-sentence parquet partitions.
func Tokenize() error {
	return stage("tokenize")
}

// Pipeline creates the working directories and runs every stage in order.
func Pipeline() error {
	mg.Deps(Init)
	return stage("pipeline")
}
