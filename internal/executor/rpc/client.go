package rpc

import (
	"context"

	polyrunv1 "polyrun/api/gen/polyrun/v1"
	"polyrun/internal/executor/model"
	"polyrun/internal/executor/service"
)

// Client exposes the executor gRPC service in terms of the service types.
type Client struct {
	grpc polyrunv1.ExecutorServiceClient
}

// NewClient creates a new client.
func NewClient(grpc polyrunv1.ExecutorServiceClient) *Client {
	return &Client{grpc: grpc}
}

func (c *Client) Ping(ctx context.Context) (*service.PingResponse, error) {
	resp, err := c.grpc.Ping(ctx, &polyrunv1.PingRequest{})
	if err != nil {
		return nil, err
	}
	return &service.PingResponse{Message: resp.GetMessage()}, nil
}

func (c *Client) SupportedLanguages(ctx context.Context) (*service.LanguagesResponse, error) {
	resp, err := c.grpc.SupportedLanguages(ctx, &polyrunv1.SupportedLanguagesRequest{})
	if err != nil {
		return nil, err
	}
	return &service.LanguagesResponse{Languages: resp.GetLanguages()}, nil
}

func (c *Client) VersionInformation(ctx context.Context, language string) (*model.VersionInfo, error) {
	resp, err := c.grpc.VersionInformation(ctx, &polyrunv1.LanguageRequest{Language: language})
	if err != nil {
		return nil, err
	}
	info := versionFromProto(resp)
	return &info, nil
}

func (c *Client) Blacklist(ctx context.Context, language string) (*service.BlacklistResponse, error) {
	resp, err := c.grpc.Blacklist(ctx, &polyrunv1.LanguageRequest{Language: language})
	if err != nil {
		return nil, err
	}
	return &service.BlacklistResponse{Language: resp.GetLanguage(), Tokens: resp.GetTokens()}, nil
}

func (c *Client) Fragment(ctx context.Context, req *service.FragmentRequest) (*service.FragmentResponse, error) {
	resp, err := c.grpc.Fragment(ctx, &polyrunv1.FragmentRequest{
		Language:  req.Language,
		Functions: functionsToProto(req.Functions),
	})
	if err != nil {
		return nil, err
	}
	return &service.FragmentResponse{Fragment: resp.GetFragment()}, nil
}

func (c *Client) Execute(ctx context.Context, req *service.ExecuteRequest) (*service.ExecuteResponse, error) {
	resp, err := c.grpc.Execute(ctx, executeToProto(req))
	if err != nil {
		return nil, err
	}
	return &service.ExecuteResponse{Results: resultsFromProto(resp.GetResults())}, nil
}
