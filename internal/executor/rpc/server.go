package rpc

import (
	"context"

	polyrunv1 "polyrun/api/gen/polyrun/v1"
	"polyrun/internal/executor/service"
	pkgerrors "polyrun/pkg/errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ExecutorRPCServer implements the gRPC executor service.
type ExecutorRPCServer struct {
	polyrunv1.UnimplementedExecutorServiceServer
	service *service.ExecutorService
}

// NewExecutorRPCServer creates a new gRPC server.
func NewExecutorRPCServer(svc *service.ExecutorService) *ExecutorRPCServer {
	return &ExecutorRPCServer{service: svc}
}

// RegisterExecutorService registers the gRPC server.
func RegisterExecutorService(grpcServer *grpc.Server, svc *service.ExecutorService) {
	polyrunv1.RegisterExecutorServiceServer(grpcServer, NewExecutorRPCServer(svc))
}

func (s *ExecutorRPCServer) Ping(ctx context.Context, _ *polyrunv1.PingRequest) (*polyrunv1.PingResponse, error) {
	return &polyrunv1.PingResponse{Message: s.service.Ping(ctx).Message}, nil
}

func (s *ExecutorRPCServer) SupportedLanguages(ctx context.Context, _ *polyrunv1.SupportedLanguagesRequest) (*polyrunv1.SupportedLanguagesResponse, error) {
	return &polyrunv1.SupportedLanguagesResponse{Languages: s.service.SupportedLanguages(ctx).Languages}, nil
}

func (s *ExecutorRPCServer) VersionInformation(ctx context.Context, req *polyrunv1.LanguageRequest) (*polyrunv1.VersionInfo, error) {
	if req.GetLanguage() == "" {
		return nil, status.Error(codes.InvalidArgument, "language is required")
	}
	info, err := s.service.VersionInformation(ctx, req.GetLanguage())
	if err != nil {
		return nil, mapError(err)
	}
	return versionToProto(info), nil
}

func (s *ExecutorRPCServer) Blacklist(ctx context.Context, req *polyrunv1.LanguageRequest) (*polyrunv1.BlacklistResponse, error) {
	if req.GetLanguage() == "" {
		return nil, status.Error(codes.InvalidArgument, "language is required")
	}
	resp, err := s.service.Blacklist(ctx, req.GetLanguage())
	if err != nil {
		return nil, mapError(err)
	}
	return &polyrunv1.BlacklistResponse{Language: resp.Language, Tokens: resp.Tokens}, nil
}

func (s *ExecutorRPCServer) Fragment(ctx context.Context, req *polyrunv1.FragmentRequest) (*polyrunv1.FragmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := s.service.Fragment(ctx, service.FragmentRequest{
		Language:  req.GetLanguage(),
		Functions: functionsFromProto(req.GetFunctions()),
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &polyrunv1.FragmentResponse{Fragment: resp.Fragment}, nil
}

func (s *ExecutorRPCServer) Execute(ctx context.Context, req *polyrunv1.ExecuteRequest) (*polyrunv1.ExecuteResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	resp, err := s.service.Execute(ctx, executeFromProto(req))
	if err != nil {
		return nil, mapError(err)
	}
	return &polyrunv1.ExecuteResponse{Results: resultsToProto(resp.Results)}, nil
}

func mapError(err error) error {
	e := pkgerrors.GetError(err)
	switch code := e.Code; {
	case code == pkgerrors.UnknownLanguage, code == pkgerrors.NotFound:
		return status.Error(codes.NotFound, e.Error())
	case code == pkgerrors.InvalidParams,
		code >= pkgerrors.ValidationFailed && code < pkgerrors.ValidationFailed+100,
		code >= pkgerrors.MalformedType && code <= pkgerrors.BlacklistViolation:
		return status.Error(codes.InvalidArgument, e.Error())
	case code == pkgerrors.TooManyRequests:
		return status.Error(codes.ResourceExhausted, e.Error())
	case code == pkgerrors.Timeout:
		return status.Error(codes.DeadlineExceeded, e.Error())
	case code == pkgerrors.ServiceUnavailable, code == pkgerrors.BackendInitFailed:
		return status.Error(codes.Unavailable, e.Error())
	default:
		return status.Error(codes.Internal, e.Error())
	}
}
