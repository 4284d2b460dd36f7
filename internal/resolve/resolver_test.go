package resolve

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/arnavsurve/launchcfg/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const malformedScheme = `<?xml version="1.0" encoding="UTF-8"?><Scheme><LaunchAction buildConfiguration="Debug">`

func TestResolve_bareProject(t *testing.T) {
	dir := t.TempDir()
	proj := testutil.CreateProject(t, dir, "App.xcodeproj", map[string]string{
		"App": testutil.SchemeXML("Debug"),
	})

	got, err := NewResolver(Options{}).Resolve(context.Background(), proj, "App")
	require.NoError(t, err)
	assert.Equal(t, "Debug", got.Configuration)
	assert.Equal(t, proj, got.Project)
	assert.Equal(t, 1, got.Tried)
}

func TestResolve_configurationIsVerbatim(t *testing.T) {
	dir := t.TempDir()
	proj := testutil.CreateProject(t, dir, "App.xcodeproj", map[string]string{
		"App": testutil.SchemeXML("Staging"),
	})

	got, err := NewResolver(Options{}).Resolve(context.Background(), proj, "App")
	require.NoError(t, err)
	assert.Equal(t, "Staging", got.Configuration)
}

// workspaceFixture lays out App.xcworkspace referencing A then B.
func workspaceFixture(t *testing.T, a, b map[string]string) (ws, projA, projB string) {
	t.Helper()
	dir := t.TempDir()
	projA = testutil.CreateProject(t, dir, "A/A.xcodeproj", a)
	projB = testutil.CreateProject(t, dir, "B/B.xcodeproj", b)
	ws = testutil.CreateWorkspace(t, dir, "App.xcworkspace", testutil.WorkspaceXML(
		"group:A/A.xcodeproj",
		"group:B/B.xcodeproj",
	))
	return ws, projA, projB
}

func bothModes(t *testing.T, fn func(t *testing.T, opts Options)) {
	t.Run("sequential", func(t *testing.T) { fn(t, Options{}) })
	t.Run("parallel", func(t *testing.T) { fn(t, Options{Parallel: true}) })
}

func TestResolve_workspaceFallsBackToLaterProject(t *testing.T) {
	ws, _, projB := workspaceFixture(t, nil, map[string]string{
		"App": testutil.SchemeXML("Beta"),
	})

	bothModes(t, func(t *testing.T, opts Options) {
		got, err := NewResolver(opts).Resolve(context.Background(), ws, "App")
		require.NoError(t, err)
		assert.Equal(t, "Beta", got.Configuration)
		assert.Equal(t, projB, got.Project)
		assert.Equal(t, 2, got.Tried)
	})
}

func TestResolve_firstDeclaredProjectWins(t *testing.T) {
	ws, projA, _ := workspaceFixture(t,
		map[string]string{"App": testutil.SchemeXML("C1")},
		map[string]string{"App": testutil.SchemeXML("C2")},
	)

	bothModes(t, func(t *testing.T, opts Options) {
		got, err := NewResolver(opts).Resolve(context.Background(), ws, "App")
		require.NoError(t, err)
		assert.Equal(t, "C1", got.Configuration)
		assert.Equal(t, projA, got.Project)
	})
}

func TestResolve_declarationOrderBeatsNameOrder(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateProject(t, dir, "Alpha.xcodeproj", map[string]string{"App": testutil.SchemeXML("FromAlpha")})
	testutil.CreateProject(t, dir, "Zulu.xcodeproj", map[string]string{"App": testutil.SchemeXML("FromZulu")})
	ws := testutil.CreateWorkspace(t, dir, "App.xcworkspace", testutil.WorkspaceXML(
		"group:Zulu.xcodeproj",
		"group:Alpha.xcodeproj",
	))

	bothModes(t, func(t *testing.T, opts Options) {
		got, err := NewResolver(opts).Resolve(context.Background(), ws, "App")
		require.NoError(t, err)
		assert.Equal(t, "FromZulu", got.Configuration)
	})
}

func TestResolve_skipsLaunchActionWithoutConfiguration(t *testing.T) {
	ws, _, _ := workspaceFixture(t,
		map[string]string{"App": testutil.SchemeWithoutLaunchAction},
		map[string]string{"App": testutil.SchemeXML("Release")},
	)

	got, err := NewResolver(Options{}).Resolve(context.Background(), ws, "App")
	require.NoError(t, err)
	assert.Equal(t, "Release", got.Configuration)
}

func TestResolve_podsProjectIsNeverSearched(t *testing.T) {
	dir := t.TempDir()
	testutil.CreateProject(t, dir, "Pods/Pods.xcodeproj", map[string]string{"App": testutil.SchemeXML("FromPods")})
	testutil.CreateProject(t, dir, "App.xcodeproj", map[string]string{"App": testutil.SchemeXML("Debug")})
	ws := testutil.CreateWorkspace(t, dir, "App.xcworkspace", testutil.WorkspaceXML(
		"group:Pods/Pods.xcodeproj",
		"group:App.xcodeproj",
	))

	var probed []string
	opts := Options{OnProbe: func(p Probe) { probed = append(probed, p.Project) }}

	got, err := NewResolver(opts).Resolve(context.Background(), ws, "App")
	require.NoError(t, err)
	assert.Equal(t, "Debug", got.Configuration)
	assert.Equal(t, []string{filepath.Join(dir, "App.xcodeproj")}, probed)
}

func TestResolve_notFound(t *testing.T) {
	ws, _, _ := workspaceFixture(t,
		map[string]string{"Other": testutil.SchemeXML("Debug")},
		map[string]string{"App": testutil.SchemeXML("")},
	)

	bothModes(t, func(t *testing.T, opts Options) {
		_, err := NewResolver(opts).Resolve(context.Background(), ws, "App")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLaunchActionNotFound)

		var rerr *Error
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, "App", rerr.Scheme)
		assert.Equal(t, 2, rerr.Tried)
	})
}

func TestResolve_bareProjectWithoutScheme(t *testing.T) {
	dir := t.TempDir()
	proj := testutil.CreateProject(t, dir, "App.xcodeproj", nil)

	_, err := NewResolver(Options{}).Resolve(context.Background(), proj, "App")
	assert.ErrorIs(t, err, ErrLaunchActionNotFound)
}

func TestResolve_invalidInput(t *testing.T) {
	dir := t.TempDir()
	proj := testutil.CreateProject(t, dir, "App.xcodeproj", nil)

	tests := []struct {
		name   string
		path   string
		scheme string
	}{
		{"empty path", "", "App"},
		{"empty scheme", proj, ""},
		{"missing project", filepath.Join(dir, "Missing.xcodeproj"), "App"},
		{"missing workspace", filepath.Join(dir, "Missing.xcworkspace"), "App"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(Options{}).Resolve(context.Background(), tt.path, tt.scheme)
			assert.ErrorIs(t, err, ErrInvalidInputPath)
		})
	}
}

func TestResolve_unreadableWorkspace(t *testing.T) {
	dir := t.TempDir()
	ws := testutil.CreateWorkspace(t, dir, "App.xcworkspace", "<Workspace><FileRef")

	_, err := NewResolver(Options{}).Resolve(context.Background(), ws, "App")
	assert.ErrorIs(t, err, ErrWorkspaceRead)
}

func TestResolve_malformedSchemeIsFatal(t *testing.T) {
	ws, projA, _ := workspaceFixture(t,
		map[string]string{"App": malformedScheme},
		map[string]string{"App": testutil.SchemeXML("Release")},
	)

	bothModes(t, func(t *testing.T, opts Options) {
		_, err := NewResolver(opts).Resolve(context.Background(), ws, "App")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSchemeParse)

		var rerr *Error
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, filepath.Join(projA, "xcshareddata", "xcschemes", "App.xcscheme"), rerr.Path)
	})
}

func TestResolve_malformedSchemeAfterMatchIsNotRead(t *testing.T) {
	ws, _, _ := workspaceFixture(t,
		map[string]string{"App": testutil.SchemeXML("Debug")},
		map[string]string{"App": malformedScheme},
	)

	bothModes(t, func(t *testing.T, opts Options) {
		got, err := NewResolver(opts).Resolve(context.Background(), ws, "App")
		require.NoError(t, err)
		assert.Equal(t, "Debug", got.Configuration)
	})
}

func TestResolve_skipMalformed(t *testing.T) {
	ws, _, _ := workspaceFixture(t,
		map[string]string{"App": malformedScheme},
		map[string]string{"App": testutil.SchemeXML("Release")},
	)

	var statuses []ProbeStatus
	opts := Options{
		SkipMalformed: true,
		OnProbe:       func(p Probe) { statuses = append(statuses, p.Status) },
	}

	got, err := NewResolver(opts).Resolve(context.Background(), ws, "App")
	require.NoError(t, err)
	assert.Equal(t, "Release", got.Configuration)
	assert.Equal(t, []ProbeStatus{StatusMalformed, StatusFound}, statuses)
}

func TestResolve_stopsAtFirstMatch(t *testing.T) {
	ws, _, _ := workspaceFixture(t,
		map[string]string{"App": testutil.SchemeXML("Debug")},
		map[string]string{"App": testutil.SchemeXML("Release")},
	)

	var probed int
	opts := Options{OnProbe: func(Probe) { probed++ }}

	_, err := NewResolver(opts).Resolve(context.Background(), ws, "App")
	require.NoError(t, err)
	assert.Equal(t, 1, probed)
}

func TestResolve_idempotent(t *testing.T) {
	ws, _, _ := workspaceFixture(t, nil, map[string]string{"App": testutil.SchemeXML("QA")})
	r := NewResolver(Options{})

	first, err := r.Resolve(context.Background(), ws, "App")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), ws, "App")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_cancelled(t *testing.T) {
	ws, _, _ := workspaceFixture(t, nil, map[string]string{"App": testutil.SchemeXML("QA")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResolver(Options{}).Resolve(ctx, ws, "App")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolve_trailingContentIsMalformed(t *testing.T) {
	dir := t.TempDir()
	proj := testutil.CreateProject(t, dir, "App.xcodeproj", map[string]string{
		"App": `<Scheme><LaunchAction buildConfiguration="Debug"/></Scheme><<garbage`,
	})

	_, err := NewResolver(Options{}).Resolve(context.Background(), proj, "App")
	assert.ErrorIs(t, err, ErrSchemeParse)
}
