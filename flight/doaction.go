package flight

import (
	"context"
	"errors"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/udf-lab/externs-go/external"
	"github.com/udf-lab/externs-go/internal/msgpack"
	"github.com/udf-lab/externs-go/internal/recovery"
	"github.com/udf-lab/externs-go/registry"
	"github.com/udf-lab/externs-go/types"
)

// Action types supported by DoAction.
const (
	ActionListNamespaces = "list_namespaces"
	ActionDescribeExtern = "describe_external"
	ActionResolveExtern  = "resolve_external"
	ActionDeclareExtern  = "declare_external"
)

// DoAction executes server actions for registry discovery and resolution.
// This RPC supports:
//   - Registry snapshot download (list_namespaces)
//   - Declaration discovery (describe_external)
//   - Overload resolution for a call site (resolve_external)
//   - Runtime declaration (declare_external)
func (s *Server) DoAction(action *flight.Action, stream flight.FlightService_DoActionServer) error {
	ctx := stream.Context()

	s.logger.Debug("DoAction called",
		"type", action.GetType(),
		"body_size", len(action.GetBody()),
	)

	switch action.GetType() {
	case ActionListNamespaces:
		return s.handleListNamespaces(ctx, stream)

	case ActionDescribeExtern:
		return s.handleDescribeExternal(ctx, action, stream)

	case ActionResolveExtern:
		return s.handleResolveExternal(ctx, action, stream)

	case ActionDeclareExtern:
		return s.handleDeclareExternal(ctx, action, stream)

	default:
		return status.Errorf(codes.Unimplemented, "unknown action type: %s", action.GetType())
	}
}

// ListActions advertises the supported action types.
func (s *Server) ListActions(_ *flight.Empty, stream flight.FlightService_ListActionsServer) error {
	actions := []*flight.ActionType{
		{Type: ActionListNamespaces, Description: "Download a compressed snapshot of all declarations"},
		{Type: ActionDescribeExtern, Description: "Describe one external function's overload set"},
		{Type: ActionResolveExtern, Description: "Resolve an overload for call-site argument types"},
		{Type: ActionDeclareExtern, Description: "Declare an external function at runtime"},
	}
	for _, a := range actions {
		if err := stream.Send(a); err != nil {
			return status.Errorf(codes.Internal, "failed to send action type: %v", err)
		}
	}
	return nil
}

// handleListNamespaces returns a zstd-compressed MessagePack snapshot of
// every namespace and declaration in the registry.
func (s *Server) handleListNamespaces(ctx context.Context, stream flight.FlightService_DoActionServer) error {
	snap, err := recovery.ToValue(s.logger, "BuildSnapshot", func() (*Snapshot, error) {
		return BuildSnapshot(ctx, s.registry)
	})
	if err != nil {
		s.logger.Error("Failed to build registry snapshot", "error", err)
		return statusFromError(err, "failed to build snapshot")
	}

	body, err := EncodeSnapshot(snap)
	if err != nil {
		s.logger.Error("Failed to encode registry snapshot", "error", err)
		return status.Errorf(codes.Internal, "failed to encode snapshot: %v", err)
	}

	if err := stream.Send(&flight.Result{Body: body}); err != nil {
		return status.Errorf(codes.Internal, "failed to send result: %v", err)
	}

	s.logger.Debug("Registry snapshot sent",
		"namespace_count", len(snap.Namespaces),
		"body_bytes", len(body),
	)
	return nil
}

// overloadInfo is the wire form of one overload in describe responses.
type overloadInfo struct {
	Signature  string   `msgpack:"signature"`
	ReturnType string   `msgpack:"return_type"`
	ParamTypes []string `msgpack:"param_types"`
	// ArrowSchema is the IPC-serialized Arrow schema of the parameters,
	// or nil when a parameter has no Arrow representation (pointer types).
	ArrowSchema []byte `msgpack:"arrow_schema"`
}

// handleDescribeExternal returns the overload set of one declaration.
//
// Request format (MessagePack):
//
//	{
//	  "namespace": "libdevice",
//	  "function": "__nv_pow"
//	}
func (s *Server) handleDescribeExternal(ctx context.Context, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var params struct {
		Namespace string `msgpack:"namespace"`
		Function  string `msgpack:"function"`
	}

	if err := msgpack.Decode(action.GetBody(), &params); err != nil {
		s.logger.Error("Failed to decode describe_external parameters", "error", err)
		return status.Errorf(codes.InvalidArgument, "invalid parameters: %v", err)
	}

	binding, err := s.lookupExternal(ctx, params.Namespace, params.Function)
	if err != nil {
		return err
	}

	overloads := binding.Overloads()
	infos := make([]overloadInfo, 0, len(overloads))
	for _, sig := range overloads {
		info := overloadInfo{
			Signature:  sig.String(),
			ReturnType: sig.Return.String(),
			ParamTypes: make([]string, len(sig.Params)),
		}
		for i, p := range sig.Params {
			info.ParamTypes[i] = p.String()
		}
		info.ArrowSchema = s.paramsArrowSchema(sig.Params)
		infos = append(infos, info)
	}

	body, err := msgpack.Encode(map[string]interface{}{
		"namespace": params.Namespace,
		"function":  binding.Name(),
		"overloads": infos,
	})
	if err != nil {
		return status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	if err := stream.Send(&flight.Result{Body: body}); err != nil {
		return status.Errorf(codes.Internal, "failed to send result: %v", err)
	}

	s.logger.Debug("External described",
		"namespace", params.Namespace,
		"function", binding.Name(),
		"overload_count", len(infos),
	)
	return nil
}

// paramsArrowSchema serializes the parameter types as an Arrow schema.
// Returns nil when any parameter has no Arrow representation; engines fall
// back to the textual type spellings in that case.
func (s *Server) paramsArrowSchema(params []types.Type) []byte {
	fields := make([]arrow.Field, len(params))
	for i, p := range params {
		dt, err := p.Arrow()
		if err != nil {
			return nil
		}
		fields[i] = arrow.Field{Name: fmt.Sprintf("arg%d", i), Type: dt}
	}
	return flight.SerializeSchema(arrow.NewSchema(fields, nil), s.allocator)
}

// handleResolveExternal resolves one overload for call-site argument types.
//
// Request format (MessagePack):
//
//	{
//	  "namespace": "main",
//	  "function": "abs",
//	  "argument_types": ["i64"]
//	}
//
// Response format: {"symbol": "abs", "return_type": "i64"}
func (s *Server) handleResolveExternal(ctx context.Context, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var params struct {
		Namespace string   `msgpack:"namespace"`
		Function  string   `msgpack:"function"`
		Args      []string `msgpack:"argument_types"`
	}

	if err := msgpack.Decode(action.GetBody(), &params); err != nil {
		s.logger.Error("Failed to decode resolve_external parameters", "error", err)
		return status.Errorf(codes.InvalidArgument, "invalid parameters: %v", err)
	}

	binding, err := s.lookupExternal(ctx, params.Namespace, params.Function)
	if err != nil {
		return err
	}

	args, err := types.ParseList(params.Args)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "invalid argument types: %v", err)
	}

	ref, err := binding.Resolve(args)
	if err != nil {
		var resErr *external.OverloadResolutionError
		if errors.As(err, &resErr) {
			return status.Errorf(codes.InvalidArgument, "%v", resErr)
		}
		return status.Errorf(codes.Internal, "resolution failed: %v", err)
	}

	body, err := msgpack.Encode(map[string]interface{}{
		"symbol":      ref.Symbol,
		"return_type": ref.Return.String(),
	})
	if err != nil {
		return status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	if err := stream.Send(&flight.Result{Body: body}); err != nil {
		return status.Errorf(codes.Internal, "failed to send result: %v", err)
	}

	s.logger.Debug("External resolved",
		"namespace", params.Namespace,
		"symbol", ref.Symbol,
		"argument_types", types.FormatList(args),
		"return_type", ref.Return.String(),
	)
	return nil
}

// handleDeclareExternal declares a new external function at runtime.
// The target namespace must implement registry.DynamicNamespace.
//
// Request format (MessagePack):
//
//	{
//	  "namespace": "main",
//	  "name": "abs",
//	  "signatures": ["i32(i32)", "i64(i64)"]
//	}
//
// Response format: {"registration_id": "<uuid>", "function": "abs"}
func (s *Server) handleDeclareExternal(ctx context.Context, action *flight.Action, stream flight.FlightService_DoActionServer) error {
	var params struct {
		Namespace  string   `msgpack:"namespace"`
		Name       string   `msgpack:"name"`
		Signatures []string `msgpack:"signatures"`
	}

	if err := msgpack.Decode(action.GetBody(), &params); err != nil {
		s.logger.Error("Failed to decode declare_external parameters", "error", err)
		return status.Errorf(codes.InvalidArgument, "invalid parameters: %v", err)
	}

	ns, err := s.lookupNamespace(ctx, params.Namespace)
	if err != nil {
		return err
	}

	dynamic, ok := ns.(registry.DynamicNamespace)
	if !ok {
		return status.Errorf(codes.Unimplemented, "namespace %s does not accept runtime declarations", params.Namespace)
	}

	binding, err := external.Declare(params.Name, params.Signatures...)
	if err != nil {
		// Parse and declaration failures are both caller mistakes.
		return status.Errorf(codes.InvalidArgument, "%v", err)
	}

	err = recovery.ToError(s.logger, "Declare", func() error {
		return dynamic.Declare(ctx, binding)
	})
	if err != nil {
		if _, isStatus := status.FromError(err); isStatus {
			return err
		}
		if errors.Is(err, registry.ErrAlreadyDeclared) {
			return status.Errorf(codes.AlreadyExists, "%v", err)
		}
		// Anything else is a failure of the namespace implementation, not a
		// caller mistake.
		return status.Errorf(codes.Internal, "declaration failed: %v", err)
	}

	registrationID := uuid.NewString()

	body, err := msgpack.Encode(map[string]interface{}{
		"registration_id": registrationID,
		"function":        binding.Name(),
	})
	if err != nil {
		return status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}

	if err := stream.Send(&flight.Result{Body: body}); err != nil {
		return status.Errorf(codes.Internal, "failed to send result: %v", err)
	}

	s.logger.Info("External declared",
		"namespace", params.Namespace,
		"function", binding.Name(),
		"overload_count", len(binding.Overloads()),
		"registration_id", registrationID,
	)
	return nil
}

// lookupNamespace fetches a namespace, mapping absence to NotFound.
func (s *Server) lookupNamespace(ctx context.Context, name string) (registry.Namespace, error) {
	ns, err := recovery.ToValue(s.logger, "Namespace", func() (registry.Namespace, error) {
		return s.registry.Namespace(ctx, name)
	})
	if err != nil {
		return nil, statusFromError(err, "failed to get namespace")
	}
	if ns == nil {
		return nil, status.Errorf(codes.NotFound, "namespace not found: %s", name)
	}
	return ns, nil
}

// lookupExternal fetches a declaration, mapping absence to NotFound.
func (s *Server) lookupExternal(ctx context.Context, namespace, function string) (*external.Binding, error) {
	ns, err := s.lookupNamespace(ctx, namespace)
	if err != nil {
		return nil, err
	}

	binding, err := recovery.ToValue(s.logger, "External", func() (*external.Binding, error) {
		return ns.External(ctx, function)
	})
	if err != nil {
		return nil, statusFromError(err, "failed to get external")
	}
	if binding == nil {
		return nil, status.Errorf(codes.NotFound, "external function not found: %s.%s", namespace, function)
	}
	return binding, nil
}

// statusFromError passes through gRPC status errors (e.g., from recovery)
// and wraps everything else as Internal.
func statusFromError(err error, msg string) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Errorf(codes.Internal, "%s: %v", msg, err)
}
