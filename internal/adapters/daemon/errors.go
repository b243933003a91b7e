package daemon

import (
	"context"
	"errors"

	"go.trai.ch/gridscript/internal/core/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// remoteKinds maps domain sentinels onto status codes. The first match wins.
var remoteKinds = []struct {
	sentinel error
	code     codes.Code
}{
	{domain.ErrCacheLoad, codes.FailedPrecondition},
	{domain.ErrPathResolution, codes.NotFound},
	{domain.ErrFunctionNotFound, codes.NotFound},
	{domain.ErrNotCallable, codes.InvalidArgument},
	{domain.ErrArity, codes.InvalidArgument},
	{domain.ErrArgumentConversion, codes.InvalidArgument},
	{domain.ErrTooManyArguments, codes.InvalidArgument},
	{domain.ErrUnknownLibrary, codes.InvalidArgument},
	{domain.ErrUnsupportedExtension, codes.InvalidArgument},
	{domain.ErrMissingExtension, codes.InvalidArgument},
	{domain.ErrMissingBasename, codes.InvalidArgument},
	{domain.ErrInvalidArgument, codes.InvalidArgument},
	{domain.ErrCall, codes.Aborted},
	{domain.ErrResultConversion, codes.Aborted},
	{domain.ErrModuleReleased, codes.Unavailable},
}

// toStatus converts a domain error into a gRPC status error. The matching
// sentinel travels as a detail so the client can restore it.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}

	for _, k := range remoteKinds {
		if !errors.Is(err, k.sentinel) {
			continue
		}
		st := status.New(k.code, err.Error())
		if withDetail, detailErr := st.WithDetails(wrapperspb.String(k.sentinel.Error())); detailErr == nil {
			st = withDetail
		}
		return st.Err()
	}
	return status.Error(codes.Internal, err.Error())
}

// remoteError is a daemon-side failure rebuilt on the client. errors.Is sees
// through it to the domain sentinel it was raised with.
type remoteError struct {
	sentinel error
	msg      string
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Unwrap() error { return e.sentinel }

// fromStatus reverses toStatus. Transport failures report the daemon as not running.
func fromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	for _, d := range st.Details() {
		detail, isString := d.(*wrapperspb.StringValue)
		if !isString {
			continue
		}
		for _, k := range remoteKinds {
			if k.sentinel.Error() == detail.GetValue() {
				return &remoteError{sentinel: k.sentinel, msg: st.Message()}
			}
		}
	}

	switch st.Code() {
	case codes.Unavailable:
		return errors.Join(domain.ErrDaemonNotRunning, err)
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	default:
		return errors.New(st.Message())
	}
}
