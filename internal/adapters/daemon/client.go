// Package daemon implements the background daemon adapter for gridscript.
// It provides a gRPC server and client for inter-process communication over
// Unix domain sockets.
package daemon

import (
	"context"

	"go.trai.ch/gridscript/internal/core/domain"
	"go.trai.ch/gridscript/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ ports.DaemonClient = (*Client)(nil)

// Client implements ports.DaemonClient.
type Client struct {
	conn *grpc.ClientConn
}

// Dial connects to the daemon listening on socketPath.
// grpc.NewClient returns immediately; the connection is made on the first RPC.
func Dial(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient("unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "daemon client creation failed"), "socket", socketPath)
	}
	return NewClient(conn), nil
}

// NewClient wraps an existing connection.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Call implements ports.DaemonClient.
func (c *Client) Call(ctx context.Context, req ports.CallRequest) (domain.Grid, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, fullMethod(MethodCall), encodeCallRequest(req), out); err != nil {
		return domain.Grid{}, fromStatus(err)
	}
	g, err := decodeGrid(out)
	if err != nil {
		return domain.Grid{}, zerr.Wrap(err, "daemon returned a malformed grid")
	}
	return g, nil
}

// Freshness implements ports.DaemonClient.
func (c *Client) Freshness(ctx context.Context, set *bool) (bool, error) {
	in := structpb.NewNullValue()
	if set != nil {
		in = structpb.NewBoolValue(*set)
	}
	out := new(wrapperspb.BoolValue)
	if err := c.conn.Invoke(ctx, fullMethod(MethodFreshness), in, out); err != nil {
		return false, fromStatus(err)
	}
	return out.GetValue(), nil
}

// LoadedLibrary implements ports.DaemonClient.
func (c *Client) LoadedLibrary(ctx context.Context, name string) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.conn.Invoke(ctx, fullMethod(MethodLoadedLibrary), wrapperspb.String(name), out); err != nil {
		return "", fromStatus(err)
	}
	return out.GetValue(), nil
}

// Status implements ports.DaemonClient.
func (c *Client) Status(ctx context.Context) (*ports.DaemonStatus, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, fullMethod(MethodStatus), &emptypb.Empty{}, out); err != nil {
		return nil, fromStatus(err)
	}
	return decodeStatus(out), nil
}

// Shutdown implements ports.DaemonClient.
func (c *Client) Shutdown(ctx context.Context) error {
	if err := c.conn.Invoke(ctx, fullMethod(MethodShutdown), &emptypb.Empty{}, new(emptypb.Empty)); err != nil {
		return fromStatus(err)
	}
	return nil
}

// Close implements ports.DaemonClient.
func (c *Client) Close() error {
	return c.conn.Close()
}
