package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls PerformanceService methods with plain maps, attaching the API token to every call
type Client struct {
	cc    grpc.ClientConnInterface
	token string
}

// NewClient creates a new Client on an established connection
func NewClient(cc grpc.ClientConnInterface, token string) *Client {
	return &Client{cc: cc, token: token}
}

// Call invokes method (e.g. "GetPerformance") and returns the response fields.
// Values follow google.protobuf.Struct rules: numbers are float64, lists are []interface{}
func (c *Client) Call(ctx context.Context, method string, req map[string]interface{}) (map[string]interface{}, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	ctx = metadata.AppendToOutgoingContext(ctx, authorizationHeader, c.token)

	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out); err != nil {
		return nil, err
	}

	return out.AsMap(), nil
}
