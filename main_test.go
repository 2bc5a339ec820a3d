package main

import "testing"

func TestParseArgs_ShellOnly(t *testing.T) {
	program, driveRoot, err := parseArgs(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program != "" {
		t.Fatalf("expected no program, got %q", program)
	}
	if driveRoot != "." {
		t.Fatalf("expected default drive root \".\", got %q", driveRoot)
	}
}

func TestParseArgs_ProgramPath(t *testing.T) {
	program, _, err := parseArgs([]string{"GAME.COM"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program != "GAME.COM" {
		t.Fatalf("expected GAME.COM, got %q", program)
	}
}

func TestParseArgs_DriveRootFlag(t *testing.T) {
	program, driveRoot, err := parseArgs([]string{"-c", "/tmp/drive", "GAME.COM"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if driveRoot != "/tmp/drive" {
		t.Fatalf("expected /tmp/drive, got %q", driveRoot)
	}
	if program != "GAME.COM" {
		t.Fatalf("expected GAME.COM, got %q", program)
	}
}

func TestParseArgs_DriveRootMissingArg(t *testing.T) {
	if _, _, err := parseArgs([]string{"-c"}); err == nil {
		t.Fatal("expected an error for -c with no directory")
	}
}

func TestParseArgs_TooManyPositional(t *testing.T) {
	if _, _, err := parseArgs([]string{"A.COM", "B.COM"}); err == nil {
		t.Fatal("expected an error for more than one program path")
	}
}
