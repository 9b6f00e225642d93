// Package motion talks to the Python NAO motion bridge over gRPC. The
// bridge wraps the per-move NaoMoves scripts and the audio player; the
// planner core never touches it, only cmd/planner does after planning.
//
// Requests and replies are google.protobuf.Struct values invoked by full
// method name, so the Python side needs no generated stubs.
package motion

// #region imports
import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
)

// #endregion

// #region methods

const (
	methodExecuteMove = "/naomotion.NaoMotion/ExecuteMove"
	methodPlayAudio   = "/naomotion.NaoMotion/PlayAudio"
	methodHealth      = "/naomotion.NaoMotion/Health"
)

// #endregion methods

// #region types
// MoveResult holds the bridge's report for one executed move.
type MoveResult struct {
	OK        bool
	ElapsedMS float64
	Detail    string
}

// #endregion types

// #region client-struct
// Client wraps the gRPC connection to the motion bridge.
type Client struct {
	conn *grpc.ClientConn
	inv  invoker
}

// invoker is the slice of grpc.ClientConn the client depends on.
// Tests inject a fake.
type invoker interface {
	Invoke(ctx context.Context, method string, args, reply any, opts ...grpc.CallOption) error
}

// #endregion client-struct

// #region constructor
// NewClient connects to the motion bridge gRPC server.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, inv: conn}, nil
}

// NewClientWithInvoker creates a Client with an injected transport.
// Used for testing without a real gRPC connection.
func NewClientWithInvoker(inv invoker) *Client {
	return &Client{inv: inv}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region execute-move
// ExecuteMove runs one named move on the robot and waits for completion.
func (c *Client) ExecuteMove(ctx context.Context, name string) (MoveResult, error) {
	req, err := structpb.NewStruct(map[string]any{"move": name})
	if err != nil {
		return MoveResult{}, fmt.Errorf("build request: %w", err)
	}
	reply := &structpb.Struct{}
	if err := c.inv.Invoke(ctx, methodExecuteMove, req, reply); err != nil {
		return MoveResult{}, fmt.Errorf("execute move rpc: %w", err)
	}

	fields := reply.GetFields()
	res := MoveResult{
		OK:        fields["ok"].GetBoolValue(),
		ElapsedMS: fields["elapsed_ms"].GetNumberValue(),
		Detail:    fields["detail"].GetStringValue(),
	}
	if !res.OK {
		return res, fmt.Errorf("move %q failed on the bridge: %s", name, res.Detail)
	}
	return res, nil
}

// #endregion execute-move

// #region play-audio
// PlayAudio starts playback of the named audio file on the bridge host.
// Playback is fire-and-forget; the bridge returns as soon as it starts.
func (c *Client) PlayAudio(ctx context.Context, file string) error {
	req, err := structpb.NewStruct(map[string]any{"file": file})
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reply := &structpb.Struct{}
	if err := c.inv.Invoke(ctx, methodPlayAudio, req, reply); err != nil {
		return fmt.Errorf("play audio rpc: %w", err)
	}
	if !reply.GetFields()["ok"].GetBoolValue() {
		return fmt.Errorf("audio %q failed on the bridge: %s", file, reply.GetFields()["detail"].GetStringValue())
	}
	return nil
}

// #endregion play-audio

// #region health
// Health pings the bridge.
func (c *Client) Health(ctx context.Context) error {
	req, err := structpb.NewStruct(map[string]any{})
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reply := &structpb.Struct{}
	if err := c.inv.Invoke(ctx, methodHealth, req, reply); err != nil {
		return fmt.Errorf("health rpc: %w", err)
	}
	return nil
}

// #endregion health
