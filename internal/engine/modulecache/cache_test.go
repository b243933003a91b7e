package modulecache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/gridscript/internal/core/ports/mocks"
	"go.trai.ch/gridscript/internal/engine/modulecache"
	"go.uber.org/mock/gomock"
)

type cacheTestMocks struct {
	ctrl     *gomock.Controller
	resolver *mocks.MockPathResolver
	runtime  *mocks.MockScriptRuntime
	logger   *mocks.MockLogger
	tracer   *mocks.MockTracer
}

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// setupCacheTest creates a cache with freshness checking on and common mocks.
func setupCacheTest(t *testing.T, opts ...func(*modulecache.Options)) (*modulecache.Cache, cacheTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := cacheTestMocks{
		ctrl:     ctrl,
		resolver: mocks.NewMockPathResolver(ctrl),
		runtime:  mocks.NewMockScriptRuntime(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
	}

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.tracer.EXPECT().Start(gomock.Any(), "modulecache.get").DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) { return ctx, span },
	).AnyTimes()

	m.runtime.EXPECT().Lock().AnyTimes()
	m.runtime.EXPECT().Unlock().AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	m.resolver.EXPECT().Fingerprint(gomock.Any()).Return(uint64(0xfeed), nil).AnyTimes()

	o := modulecache.Options{Extensions: []string{"lua"}, Freshness: true}
	for _, opt := range opts {
		opt(&o)
	}
	return modulecache.New(m.resolver, m.runtime, m.logger, m.tracer, o), m
}

func canonical(path string) domain.CanonicalPath {
	dir, base, ext, _ := domain.SplitPath(path)
	return domain.CanonicalPath{Path: path, Dir: dir, Base: base, Ext: ext, Source: path}
}

func module(m cacheTestMocks, name string) *mocks.MockModule {
	mod := mocks.NewMockModule(m.ctrl)
	mod.EXPECT().Name().Return(name).AnyTimes()
	return mod
}

// expectImport sets up a successful first load of cp.
func expectImport(m cacheTestMocks, raw string, cp domain.CanonicalPath, mod ports.Module) {
	m.resolver.EXPECT().Resolve(raw).Return(cp, nil)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t0, nil)
	m.runtime.EXPECT().AddSearchDir(cp.SourceDir()).Return(nil)
	m.runtime.EXPECT().Import(cp).Return(mod, nil)
}

func TestCache_FirstImport(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	mod := module(m, "calc")
	expectImport(m, "calc.lua", cp, mod)

	got, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	assert.Same(t, mod, got)

	stats := c.Stats()
	require.Len(t, stats.Modules, 1)
	assert.Equal(t, cp.Path, stats.Modules[0].Path)
	assert.Equal(t, t0, stats.Modules[0].ModTime)
	assert.Equal(t, uint64(0xfeed), stats.Modules[0].Fingerprint)
	assert.True(t, stats.Modules[0].Clean)
	assert.Equal(t, []string{"calc.lua"}, stats.Modules[0].Aliases)
	assert.Equal(t, []string{"/srv/scripts"}, stats.Directories)
	assert.True(t, stats.Freshness)
}

func TestCache_UnchangedFileReturnsSameHandle(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	mod := module(m, "calc")
	expectImport(m, "calc.lua", cp, mod)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t0, nil)

	first, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	second, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestCache_NewerFileReloadsOnce(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	old := module(m, "calc")
	fresh := module(m, "calc")
	expectImport(m, "calc.lua", cp, old)

	t1 := t0.Add(time.Second)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t1, nil).Times(2)
	m.runtime.EXPECT().Reload(old).Return(fresh, nil)
	old.EXPECT().Release()

	_, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)

	got, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	assert.Same(t, fresh, got)

	got, err = c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	assert.Same(t, fresh, got)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Modules[0].Reloads)
	assert.Equal(t, t1, stats.Modules[0].ModTime)
}

func TestCache_OlderTimestampDoesNotReload(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	mod := module(m, "calc")
	expectImport(m, "calc.lua", cp, mod)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t0.Add(-time.Hour), nil)

	_, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	got, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	assert.Same(t, mod, got)
}

func TestCache_FreshnessOffSkipsFilesystem(t *testing.T) {
	c, m := setupCacheTest(t, func(o *modulecache.Options) { o.Freshness = false })
	cp := canonical("/srv/scripts/calc.lua")
	mod := module(m, "calc")
	expectImport(m, "calc.lua", cp, mod)

	assert.False(t, c.IsFreshnessChecking())

	for range 3 {
		got, err := c.GetModule(context.Background(), "calc.lua")
		require.NoError(t, err)
		assert.Same(t, mod, got)
	}

	// Turning checks back on consults the filesystem again.
	c.SetFreshnessChecking(true)
	assert.True(t, c.IsFreshnessChecking())
	m.resolver.EXPECT().ModTime(cp.Source).Return(t0, nil)
	_, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
}

func TestCache_FailedReloadServesPreviousModule(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	good := module(m, "calc")
	fixed := module(m, "calc")
	expectImport(m, "calc.lua", cp, good)

	t1 := t0.Add(time.Minute)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t1, nil).Times(3)
	gomock.InOrder(
		m.runtime.EXPECT().Reload(good).Return(nil, errors.New("syntax error")),
		m.runtime.EXPECT().Reload(good).Return(nil, errors.New("syntax error")),
		m.runtime.EXPECT().Reload(good).Return(fixed, nil),
	)
	m.logger.EXPECT().Warn("module reload failed", gomock.Any()).Times(2)
	good.EXPECT().Release()

	_, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)

	for range 2 {
		got, err := c.GetModule(context.Background(), "calc.lua")
		require.NoError(t, err)
		assert.Same(t, good, got)
		assert.False(t, c.Stats().Modules[0].Clean)
	}

	got, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	assert.Same(t, fixed, got)
	assert.True(t, c.Stats().Modules[0].Clean)
}

func TestCache_FailedImportCachesNothing(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	mod := module(m, "calc")

	m.resolver.EXPECT().Resolve("calc.lua").Return(cp, nil)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t0, nil).Times(2)
	m.runtime.EXPECT().AddSearchDir(cp.SourceDir()).Return(nil)
	gomock.InOrder(
		m.runtime.EXPECT().Import(cp).Return(nil, errors.New("compile error")),
		m.runtime.EXPECT().Import(cp).Return(mod, nil),
	)

	_, err := c.GetModule(context.Background(), "calc.lua")
	require.ErrorIs(t, err, domain.ErrCacheLoad)
	assert.Contains(t, err.Error(), "compile error")
	assert.Empty(t, c.Stats().Modules)

	got, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	assert.Same(t, mod, got)
}

func TestCache_RejectsBadExtensions(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{"unsupported", "/srv/scripts/calc.py", domain.ErrUnsupportedExtension},
		{"missing", "/srv/scripts/calc", domain.ErrMissingExtension},
		{"trailing period", "/srv/scripts/calc.", domain.ErrMissingExtension},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, m := setupCacheTest(t)
			m.resolver.EXPECT().Resolve(tt.path).Return(canonical(tt.path), nil)

			_, err := c.GetModule(context.Background(), tt.path)
			require.ErrorIs(t, err, domain.ErrCacheLoad)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCache_ExtensionCaseIsIgnored(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/CALC.LUA")
	expectImport(m, cp.Path, cp, module(m, "CALC"))

	_, err := c.GetModule(context.Background(), cp.Path)
	require.NoError(t, err)
}

func TestCache_ResolveErrorIsNotMemoized(t *testing.T) {
	c, m := setupCacheTest(t)
	resolveErr := domain.ErrPathResolution
	m.resolver.EXPECT().Resolve("gone.lua").Return(domain.CanonicalPath{}, resolveErr).Times(2)

	for range 2 {
		_, err := c.GetModule(context.Background(), "gone.lua")
		require.ErrorIs(t, err, domain.ErrPathResolution)
	}
}

func TestCache_AliasesShareOneRecord(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	mod := module(m, "calc")
	expectImport(m, "calc.lua", cp, mod)
	m.resolver.EXPECT().Resolve("./calc.lua").Return(cp, nil)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t0, nil).AnyTimes()

	a, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	b, err := c.GetModule(context.Background(), "./calc.lua")
	require.NoError(t, err)
	_, err = c.GetModule(context.Background(), "./calc.lua")
	require.NoError(t, err)

	assert.Same(t, a, b)
	stats := c.Stats()
	require.Len(t, stats.Modules, 1)
	assert.Equal(t, []string{"./calc.lua", "calc.lua"}, stats.Modules[0].Aliases)
}

func TestCache_SearchDirectoryAddedOncePerDirectory(t *testing.T) {
	c, m := setupCacheTest(t)
	a := canonical("/srv/scripts/a.lua")
	b := canonical("/srv/scripts/b.lua")

	expectImport(m, "a.lua", a, module(m, "a"))
	m.resolver.EXPECT().Resolve("b.lua").Return(b, nil)
	m.resolver.EXPECT().ModTime(b.Source).Return(t0, nil)
	m.runtime.EXPECT().Import(b).Return(module(m, "b"), nil)

	_, err := c.GetModule(context.Background(), "a.lua")
	require.NoError(t, err)
	_, err = c.GetModule(context.Background(), "b.lua")
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/scripts"}, c.Stats().Directories)
}

func TestCache_ShortBasenameTogglesCaseFolding(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/gro_e.lua")
	cp.BasenameIsShort = true
	cp.Source = "/srv/scripts/größe.lua"
	old := module(m, "gro_e")
	fresh := module(m, "gro_e")

	m.resolver.EXPECT().Resolve("größe.lua").Return(cp, nil)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t0, nil)
	m.runtime.EXPECT().AddSearchDir("/srv/scripts").Return(nil)
	gomock.InOrder(
		m.runtime.EXPECT().SetCaseInsensitiveImports(true).Return(false),
		m.runtime.EXPECT().Import(cp).Return(old, nil),
		m.runtime.EXPECT().SetCaseInsensitiveImports(false).Return(true),
		m.runtime.EXPECT().SetCaseInsensitiveImports(true).Return(false),
		m.runtime.EXPECT().Reload(old).Return(nil, errors.New("bad")),
		m.runtime.EXPECT().SetCaseInsensitiveImports(false).Return(true),
		m.runtime.EXPECT().SetCaseInsensitiveImports(true).Return(false),
		m.runtime.EXPECT().Reload(old).Return(fresh, nil),
		m.runtime.EXPECT().SetCaseInsensitiveImports(false).Return(true),
	)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t0.Add(time.Second), nil).Times(2)
	m.logger.EXPECT().Warn(gomock.Any(), gomock.Any())
	old.EXPECT().Release()

	for range 3 {
		_, err := c.GetModule(context.Background(), "größe.lua")
		require.NoError(t, err)
	}
}

func TestCache_StatFailureOnCachedModule(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	expectImport(m, "calc.lua", cp, module(m, "calc"))
	m.resolver.EXPECT().ModTime(cp.Source).Return(time.Time{}, domain.ErrPathResolution)

	_, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)
	_, err = c.GetModule(context.Background(), "calc.lua")
	require.ErrorIs(t, err, domain.ErrPathResolution)
}

func TestCache_CloseReleasesModules(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	mod := module(m, "calc")
	expectImport(m, "calc.lua", cp, mod)
	mod.EXPECT().Release()

	_, err := c.GetModule(context.Background(), "calc.lua")
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Empty(t, c.Stats().Modules)

	_, err = c.GetModule(context.Background(), "calc.lua")
	require.ErrorIs(t, err, domain.ErrCacheLoad)
}

func TestCache_ConcurrentCallersImportOnce(t *testing.T) {
	c, m := setupCacheTest(t)
	cp := canonical("/srv/scripts/calc.lua")
	mod := module(m, "calc")
	expectImport(m, "calc.lua", cp, mod)
	m.resolver.EXPECT().ModTime(cp.Source).Return(t0, nil).AnyTimes()

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			got, err := c.GetModule(context.Background(), "calc.lua")
			assert.NoError(t, err)
			assert.Same(t, mod, got)
		})
	}
	wg.Wait()
}
