package project

import (
	"path/filepath"
	"testing"

	"github.com/arnavsurve/launchcfg/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_prefersWorkspace(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateProject(t, dir, "App.xcodeproj", nil)
	ws := testutil.CreateWorkspace(t, dir, "App.xcworkspace", testutil.WorkspaceXML("group:App.xcodeproj"))

	got, err := NewDetector().Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, ws, got)
}

func TestDetect_project(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateProject(t, dir, "Zed.xcodeproj", nil)
	first := testutil.CreateProject(t, dir, "Abc.xcodeproj", nil)

	got, err := NewDetector().Detect(dir)
	require.NoError(t, err)
	assert.Equal(t, first, got)
}

func TestDetect_nothing(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "Package.swift"), "// swift-tools-version:5.9\n")

	_, err := NewDetector().Detect(dir)
	assert.Error(t, err)
}
