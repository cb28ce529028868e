package main

import (
	"strings"
	"testing"
)

func TestParseOptionsFlags(t *testing.T) {
	t.Setenv("RUNNER_SEED", "7")
	t.Setenv("RUNNER_DEBUG", "")
	t.Setenv("RUNNER_TELEMETRY_ADDR", "")

	opts, err := parseOptions([]string{"-headless", "-difficulty", "1.5", "-substeps", "3"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.seed != 7 || !opts.headless || opts.difficulty != 1.5 || opts.substeps != 3 {
		t.Errorf("unexpected options %+v", opts)
	}
	if opts.telemetry != "" || opts.debug {
		t.Errorf("telemetry and debug should be off, got %+v", opts)
	}

	opts, err = parseOptions([]string{"-seed", "42", "-telemetry", ":9100"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.seed != 42 || opts.telemetry != ":9100" {
		t.Errorf("flags should override env, got %+v", opts)
	}
}

func TestParseOptionsRejectsUnknownFlag(t *testing.T) {
	if _, err := parseOptions([]string{"-nope"}); err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}

func TestDifficultyUsageNamesSpawns(t *testing.T) {
	var opts options
	f := newFlagSet(&opts).Lookup("difficulty")
	if f == nil {
		t.Fatal("difficulty flag missing")
	}
	if !strings.Contains(f.Usage, "spawn") || strings.Contains(f.Usage, "checkpoint") {
		t.Errorf("usage %q should tie the multiplier to spawns", f.Usage)
	}
}
