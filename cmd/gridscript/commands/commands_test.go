package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gridscript/cmd/gridscript/commands"
	"go.trai.ch/gridscript/internal/app"
	"go.trai.ch/gridscript/internal/build"
	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"gopkg.in/yaml.v3"
)

type mockApp struct {
	configureFunc  func(opts app.Options) error
	invokeFunc     func(ctx context.Context, target app.Target, req ports.CallRequest) (domain.Grid, error)
	freshnessFunc  func(ctx context.Context, target app.Target, set *bool) (bool, error)
	libraryFunc    func(ctx context.Context, target app.Target, name string) (string, error)
	serveFunc      func(ctx context.Context, socketPath string) error
	statusFunc     func(ctx context.Context) (*ports.DaemonStatus, error)
	stopDaemonFunc func(ctx context.Context) (bool, error)
}

func (m *mockApp) Configure(opts app.Options) error {
	if m.configureFunc != nil {
		return m.configureFunc(opts)
	}
	return nil
}

func (m *mockApp) Invoke(ctx context.Context, target app.Target, req ports.CallRequest) (domain.Grid, error) {
	if m.invokeFunc != nil {
		return m.invokeFunc(ctx, target, req)
	}
	return domain.Scalar(domain.Empty()), nil
}

func (m *mockApp) SetFreshness(ctx context.Context, target app.Target, set *bool) (bool, error) {
	if m.freshnessFunc != nil {
		return m.freshnessFunc(ctx, target, set)
	}
	return true, nil
}

func (m *mockApp) Library(ctx context.Context, target app.Target, name string) (string, error) {
	if m.libraryFunc != nil {
		return m.libraryFunc(ctx, target, name)
	}
	return "", nil
}

func (m *mockApp) Serve(ctx context.Context, socketPath string) error {
	if m.serveFunc != nil {
		return m.serveFunc(ctx, socketPath)
	}
	return nil
}

func (m *mockApp) DaemonStatus(ctx context.Context) (*ports.DaemonStatus, error) {
	if m.statusFunc != nil {
		return m.statusFunc(ctx)
	}
	return &ports.DaemonStatus{}, nil
}

func (m *mockApp) StopDaemon(ctx context.Context) (bool, error) {
	if m.stopDaemonFunc != nil {
		return m.stopDaemonFunc(ctx)
	}
	return false, nil
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	cli.SetArgs(args)
	out := new(bytes.Buffer)
	cli.SetOutput(out, new(bytes.Buffer))
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestCommands_Call(t *testing.T) {
	t.Run("parses arguments and caller", func(t *testing.T) {
		var got ports.CallRequest
		var target app.Target
		mock := &mockApp{
			invokeFunc: func(_ context.Context, tgt app.Target, req ports.CallRequest) (domain.Grid, error) {
				got, target = req, tgt
				return domain.Scalar(domain.Number(42)), nil
			},
		}

		out, err := execute(t, mock, "call", "calc.lua", "add",
			"3", "[1, 2]", "[[1, 2], [3, 4]]", `"#N/A"`, "null", "héllo",
			"--sheet", "Data", "--row", "5", "--col", "3", "--daemon", "--yaml")
		require.NoError(t, err)

		assert.Equal(t, app.Daemon, target)
		assert.Equal(t, "calc.lua", got.File)
		assert.Equal(t, "add", got.Function)
		assert.Equal(t, domain.CellCaller("Data", 4, 2), got.Caller)

		want := []domain.Grid{
			domain.Scalar(domain.Number(3)),
			domain.MustGrid([]domain.Cell{domain.Number(1), domain.Number(2)}),
			domain.MustGrid(
				[]domain.Cell{domain.Number(1), domain.Number(2)},
				[]domain.Cell{domain.Number(3), domain.Number(4)},
			),
			domain.Scalar(domain.ErrorCell(domain.ErrCodeNA)),
			domain.Scalar(domain.Empty()),
			domain.Scalar(domain.Text("héllo")),
		}
		require.Len(t, got.Args, len(want))
		for i := range want {
			assert.True(t, want[i].Equal(got.Args[i]), "arg %d: got %v", i, got.Args[i])
		}
		assert.Equal(t, "- - 42\n", out)
	})

	t.Run("defaults to no caller in process", func(t *testing.T) {
		var got ports.CallRequest
		var target app.Target = -1
		mock := &mockApp{
			invokeFunc: func(_ context.Context, tgt app.Target, req ports.CallRequest) (domain.Grid, error) {
				got, target = req, tgt
				return domain.Scalar(domain.Text("ok")), nil
			},
		}

		out, err := execute(t, mock, "call", "calc.lua", "now")
		require.NoError(t, err)
		assert.Equal(t, app.InProcess, target)
		assert.Equal(t, domain.NoCaller(), got.Caller)
		assert.Empty(t, got.Args)
		assert.Contains(t, out, "ok")
	})

	t.Run("yaml output keeps cell kinds", func(t *testing.T) {
		mock := &mockApp{
			invokeFunc: func(context.Context, app.Target, ports.CallRequest) (domain.Grid, error) {
				return domain.MustGrid([]domain.Cell{
					domain.Bool(true), domain.Empty(), domain.ErrorCell(domain.ErrCodeDiv0), domain.Text("x"),
				}), nil
			},
		}
		out, err := execute(t, mock, "call", "calc.lua", "f", "--yaml")
		require.NoError(t, err)
		var rows [][]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &rows))
		assert.Equal(t, [][]any{{true, nil, "#DIV/0!", "x"}}, rows)
	})

	t.Run("wizard flag marks the caller", func(t *testing.T) {
		var got ports.CallRequest
		mock := &mockApp{
			invokeFunc: func(_ context.Context, _ app.Target, req ports.CallRequest) (domain.Grid, error) {
				got = req
				return domain.Scalar(domain.Bool(true)), nil
			},
		}
		_, err := execute(t, mock, "call", "calc.lua", "f", "--row", "1", "--col", "1", "--wizard")
		require.NoError(t, err)
		assert.True(t, got.Caller.Wizard)
		assert.Equal(t, "Sheet1", got.Caller.Sheet)
	})

	t.Run("rejects bad arguments", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
			want error
		}{
			{"ragged rows", []string{"[[1, 2], [3]]"}, domain.ErrRaggedGrid},
			{"empty row", []string{"[]"}, domain.ErrEmptyGrid},
			{"mapping", []string{"{a: 1}"}, domain.ErrInvalidArgument},
			{"mixed rows", []string{"[[1], 2]"}, domain.ErrInvalidArgument},
			{"row without column", []string{"--row", "2"}, domain.ErrInvalidArgument},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mock := &mockApp{
					invokeFunc: func(context.Context, app.Target, ports.CallRequest) (domain.Grid, error) {
						panic("should not be called")
					},
				}
				_, err := execute(t, mock, append([]string{"call", "calc.lua", "f"}, tt.args...)...)
				require.ErrorIs(t, err, tt.want)
				require.ErrorIs(t, err, domain.ErrInvalidArgument)
			})
		}
	})

	t.Run("returns call errors", func(t *testing.T) {
		mock := &mockApp{
			invokeFunc: func(context.Context, app.Target, ports.CallRequest) (domain.Grid, error) {
				return domain.Grid{}, domain.ErrFunctionNotFound
			},
		}
		_, err := execute(t, mock, "call", "calc.lua", "missing")
		require.ErrorIs(t, err, domain.ErrFunctionNotFound)
	})

	t.Run("needs file and function", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "call", "calc.lua")
		require.Error(t, err)
	})
}

func TestCommands_Freshness(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantSet *bool
		result  bool
		out     string
	}{
		{"query", []string{"freshness"}, nil, true, "on\n"},
		{"turn off", []string{"freshness", "off"}, new(bool), false, "off\n"},
		{"turn on", []string{"freshness", "ON"}, func() *bool { b := true; return &b }(), true, "on\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockApp{
				freshnessFunc: func(_ context.Context, _ app.Target, set *bool) (bool, error) {
					assert.Equal(t, tt.wantSet, set)
					return tt.result, nil
				},
			}
			out, err := execute(t, mock, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.out, out)
		})
	}

	t.Run("rejects other values", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "freshness", "maybe")
		require.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestCommands_Library(t *testing.T) {
	mock := &mockApp{
		libraryFunc: func(_ context.Context, target app.Target, name string) (string, error) {
			assert.Equal(t, app.InProcess, target)
			if name == "lua" {
				return "github.com/yuin/gopher-lua@v1.1.1 (Lua 5.1)", nil
			}
			return "", domain.ErrUnknownLibrary
		},
	}

	out, err := execute(t, mock, "library", "lua")
	require.NoError(t, err)
	assert.Equal(t, "github.com/yuin/gopher-lua@v1.1.1 (Lua 5.1)\n", out)

	_, err = execute(t, mock, "library", "perl")
	require.ErrorIs(t, err, domain.ErrUnknownLibrary)
}

func TestCommands_Serve(t *testing.T) {
	var socket string
	mock := &mockApp{
		serveFunc: func(_ context.Context, socketPath string) error {
			socket = socketPath
			return nil
		},
	}
	_, err := execute(t, mock, "serve", "--socket", "/tmp/g.sock")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/g.sock", socket)
}

func TestCommands_Daemon(t *testing.T) {
	t.Run("status when stopped", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "daemon", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "daemon is not running")
	})

	t.Run("status when running", func(t *testing.T) {
		mock := &mockApp{
			statusFunc: func(context.Context) (*ports.DaemonStatus, error) {
				return &ports.DaemonStatus{
					Running:       true,
					PID:           4242,
					Uptime:        90 * time.Second,
					IdleRemaining: time.Hour,
					Cache: domain.CacheStats{
						Freshness: true,
						Modules: []domain.ModuleStat{
							{Path: "/srv/calc.lua", Clean: true, Reloads: 2, Fingerprint: 0xabc},
							{Path: "/srv/broken.lua", Clean: false},
						},
					},
				}, nil
			},
		}
		out, err := execute(t, mock, "daemon", "status")
		require.NoError(t, err)
		assert.Contains(t, out, "daemon running (pid 4242)")
		assert.Contains(t, out, "uptime:         1m30s")
		assert.Contains(t, out, "freshness:      on")
		assert.Contains(t, out, "modules:        2")
		assert.Contains(t, out, "/srv/calc.lua (reloads: 2, fingerprint: 0000000000000abc)")
		assert.Contains(t, out, "! /srv/broken.lua")
	})

	t.Run("stop", func(t *testing.T) {
		mock := &mockApp{stopDaemonFunc: func(context.Context) (bool, error) { return true, nil }}
		out, err := execute(t, mock, "daemon", "stop")
		require.NoError(t, err)
		assert.Contains(t, out, "daemon stopped")
	})

	t.Run("stop error", func(t *testing.T) {
		mock := &mockApp{stopDaemonFunc: func(context.Context) (bool, error) { return true, errors.New("boom") }}
		_, err := execute(t, mock, "daemon", "stop")
		require.Error(t, err)
	})
}

func TestCommands_GlobalFlags(t *testing.T) {
	var got app.Options
	mock := &mockApp{
		configureFunc: func(opts app.Options) error {
			got = opts
			return nil
		},
	}
	_, err := execute(t, mock, "--config", "custom.yaml", "-v", "--json", "freshness")
	require.NoError(t, err)
	assert.Equal(t, app.Options{ConfigPath: "custom.yaml", Verbose: true, JSON: true}, got)
}

func TestCommands_ConfigErrorsStopTheCommand(t *testing.T) {
	mock := &mockApp{
		configureFunc: func(app.Options) error { return domain.ErrConfigParse },
		freshnessFunc: func(context.Context, app.Target, *bool) (bool, error) {
			panic("should not be called")
		},
	}
	_, err := execute(t, mock, "freshness")
	require.ErrorIs(t, err, domain.ErrConfigParse)
}

func TestCommands_Version(t *testing.T) {
	mock := &mockApp{
		configureFunc: func(app.Options) error { return domain.ErrConfigParse },
	}
	out, err := execute(t, mock, "version")
	require.NoError(t, err)
	assert.Equal(t, "gridscript version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)
}

func TestCommands_VersionFlag(t *testing.T) {
	out, err := execute(t, &mockApp{}, "--version")
	require.NoError(t, err)
	assert.Equal(t, "gridscript version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", out)

	var verbose bool
	mock := &mockApp{
		configureFunc: func(opts app.Options) error {
			verbose = opts.Verbose
			return nil
		},
		freshnessFunc: func(context.Context, app.Target, *bool) (bool, error) { return true, nil },
	}
	out, err = execute(t, mock, "-v", "freshness")
	require.NoError(t, err)
	assert.True(t, verbose)
	assert.NotContains(t, out, "gridscript version")
}
