package daemon

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ engineServer = (*Server)(nil)

// Server serves an engine over gRPC on a Unix domain socket.
type Server struct {
	engine     ports.Engine
	lifecycle  *Lifecycle
	logger     ports.Logger
	socketPath string
	grpcServer *grpc.Server
}

// NewServer creates a daemon server for engine listening on socketPath.
func NewServer(engine ports.Engine, lifecycle *Lifecycle, logger ports.Logger, socketPath string) *Server {
	s := &Server{
		engine:     engine,
		lifecycle:  lifecycle,
		logger:     logger,
		socketPath: socketPath,
	}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(s.track))
	s.grpcServer.RegisterService(&serviceDesc, s)
	return s
}

// Serve listens on the socket and serves until ctx ends or the lifecycle shuts down.
func (s *Server) Serve(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.socketPath), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create daemon directory")
	}

	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return zerr.Wrap(err, "failed to remove stale socket")
	}

	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "unix", s.socketPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen on UDS"), "socket", s.socketPath)
	}

	if err := os.Chmod(s.socketPath, domain.SocketPerm); err != nil {
		_ = lis.Close()
		return zerr.Wrap(err, "failed to set socket permissions")
	}

	pidPath := domain.PIDPathFor(s.socketPath)
	if err := os.WriteFile(pidPath, []byte(strconv.Itoa(os.Getpid())), domain.PrivateFilePerm); err != nil {
		_ = lis.Close()
		return zerr.Wrap(err, "failed to write PID file")
	}
	defer func() {
		_ = os.Remove(s.socketPath)
		_ = os.Remove(pidPath)
	}()

	s.logger.Info("daemon listening", "socket", s.socketPath, "pid", os.Getpid())
	return s.ServeListener(ctx, lis)
}

// ServeListener serves on an existing listener. It returns nil after a requested
// or idle shutdown and ctx.Err() when ctx ends first.
func (s *Server) ServeListener(ctx context.Context, lis net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return zerr.Wrap(err, "daemon server failed")
		}
		return nil
	})

	g.Go(func() error {
		defer s.grpcServer.GracefulStop()
		select {
		case <-gctx.Done():
			return ctx.Err()
		case <-s.lifecycle.ShutdownChan():
			s.logger.Info("daemon shutting down")
			return nil
		}
	})

	return g.Wait()
}

// track brackets every RPC with lifecycle activity and maps errors to statuses.
func (s *Server) track(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	s.lifecycle.Begin()
	defer s.lifecycle.End()

	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug("rpc",
		"method", info.FullMethod,
		"duration", time.Since(start).String(),
		"code", status.Code(err).String(),
	)
	return resp, err
}

// Call implements the Call RPC.
func (s *Server) Call(ctx context.Context, in *structpb.Struct) (*structpb.ListValue, error) {
	req, err := decodeCallRequest(in)
	if err != nil {
		return nil, toStatus(err)
	}
	g, err := s.engine.Call(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeGrid(g), nil
}

// Freshness implements the Freshness RPC. A null request queries the flag and a
// boolean request sets it.
func (s *Server) Freshness(_ context.Context, in *structpb.Value) (*wrapperspb.BoolValue, error) {
	var set *bool
	switch k := in.GetKind().(type) {
	case nil, *structpb.Value_NullValue:
	case *structpb.Value_BoolValue:
		set = &k.BoolValue
	default:
		return nil, toStatus(zerr.Wrap(domain.ErrInvalidArgument, "freshness takes a boolean"))
	}

	enabled, err := s.engine.Freshness(set)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Bool(enabled), nil
}

// LoadedLibrary implements the LoadedLibrary RPC.
func (s *Server) LoadedLibrary(_ context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	loc, err := s.engine.LoadedLibrary(in.GetValue())
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(loc), nil
}

// Status implements the Status RPC.
func (s *Server) Status(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	stats, err := s.engine.Stats()
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeStatus(&ports.DaemonStatus{
		Running:       true,
		PID:           os.Getpid(),
		Uptime:        s.lifecycle.Uptime(),
		LastActivity:  s.lifecycle.LastActivity(),
		IdleRemaining: s.lifecycle.IdleRemaining(),
		Cache:         stats,
	}), nil
}

// Shutdown implements the Shutdown RPC.
func (s *Server) Shutdown(_ context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	s.lifecycle.Shutdown()
	return &emptypb.Empty{}, nil
}
