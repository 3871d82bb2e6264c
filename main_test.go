package main

import (
	"testing"
)

// TestFlagDefaults verifies the main package's flags exist and carry the
// documented defaults.
func TestFlagDefaults(t *testing.T) {
	if devMode == nil {
		t.Fatal("dev flag not defined")
	}
	if *devMode != false {
		t.Errorf("expected dev default to be false, got %v", *devMode)
	}

	if listen == nil {
		t.Fatal("listen flag not defined")
	}
	if *listen != ":8090" {
		t.Errorf("expected listen default to be :8090, got %q", *listen)
	}

	if portPath == nil {
		t.Fatal("port flag not defined")
	}
	if *portPath != "" {
		t.Errorf("expected port default to be empty, got %q", *portPath)
	}

	if settingsPath == nil {
		t.Fatal("settings flag not defined")
	}
	if *settingsPath != "" {
		t.Errorf("expected settings default to be empty, got %q", *settingsPath)
	}

	if showVersion == nil {
		t.Fatal("version flag not defined")
	}
	if *showVersion != false {
		t.Errorf("expected version default to be false, got %v", *showVersion)
	}
}
