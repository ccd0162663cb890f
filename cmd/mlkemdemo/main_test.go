package main

import "testing"

func TestRunSingleParamSet(t *testing.T) {
	if code := run([]string{"-paramset", "512"}); code != 0 {
		t.Fatalf("run(-paramset 512) = %d, want 0", code)
	}
}

func TestRunAllParamSets(t *testing.T) {
	if code := run([]string{"-paramset", "all", "-metrics"}); code != 0 {
		t.Fatalf("run(-paramset all -metrics) = %d, want 0", code)
	}
}

func TestRunUnknownParamSet(t *testing.T) {
	if code := run([]string{"-paramset", "2048"}); code != 1 {
		t.Fatalf("run(-paramset 2048) = %d, want 1", code)
	}
}

func TestRunVersionFlag(t *testing.T) {
	if code := run([]string{"-version"}); code != 0 {
		t.Fatalf("run(-version) = %d, want 0", code)
	}
}

func TestRunWithTextLogFormat(t *testing.T) {
	if code := run([]string{"-paramset", "512", "-logformat", "text"}); code != 0 {
		t.Fatalf("run(-logformat text) = %d, want 0", code)
	}
}

func TestRunWithColorLogFormat(t *testing.T) {
	if code := run([]string{"-paramset", "512", "-logformat", "color"}); code != 0 {
		t.Fatalf("run(-logformat color) = %d, want 0", code)
	}
}

func TestRunWithUnknownLogFormat(t *testing.T) {
	if code := run([]string{"-paramset", "512", "-logformat", "xml"}); code != 1 {
		t.Fatalf("run(-logformat xml) = %d, want 1", code)
	}
}

func TestRunWithMetricsServer(t *testing.T) {
	if code := run([]string{"-paramset", "512", "-serve", "127.0.0.1:0", "-metrics"}); code != 0 {
		t.Fatalf("run(-serve) = %d, want 0", code)
	}
}
