package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// rpcMethod is the read-only call used to verify the node is responsive.
const rpcMethod = "chain_getFinalizedHead"

// WSChecker probes a Substrate-class node over WebSocket: one dial, one
// JSON-RPC request, one close. Connections are never reused across cycles.
// The connect phase is bounded by the dialer's HandshakeTimeout, which
// covers TCP connect, TLS, and the WebSocket upgrade.
type WSChecker struct {
	Dialer         *websocket.Dialer
	RequestTimeout time.Duration
}

func NewWSChecker(connectTimeout, requestTimeout time.Duration) *WSChecker {
	return &WSChecker{
		Dialer: &websocket.Dialer{
			HandshakeTimeout: connectTimeout,
		},
		RequestTimeout: requestTimeout,
	}
}

func (c *WSChecker) Check(ctx context.Context, target string) CheckResult {
	start := time.Now()

	conn, resp, err := c.Dialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return CheckResult{
			Phase:     PhaseConnect,
			Message:   err.Error(),
			LatencyMS: msSince(start),
		}
	}
	defer conn.Close()

	head, err := c.fetchFinalizedHead(conn)
	if err != nil {
		return CheckResult{
			Phase:     PhaseRequest,
			Message:   err.Error(),
			LatencyMS: msSince(start),
		}
	}

	return CheckResult{
		Success:       true,
		FinalizedHead: head,
		LatencyMS:     msSince(start),
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fetchFinalizedHead issues the RPC request and waits for the matching
// response. Both the write and the read are bounded by RequestTimeout.
func (c *WSChecker) fetchFinalizedHead(conn *websocket.Conn) (string, error) {
	deadline := time.Now().Add(c.RequestTimeout)

	req := rpcRequest{JSONRPC: "2.0", ID: 1, Method: rpcMethod, Params: []any{}}
	if err := conn.SetWriteDeadline(deadline); err != nil {
		return "", err
	}
	if err := conn.WriteJSON(req); err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}

	if err := conn.SetReadDeadline(deadline); err != nil {
		return "", err
	}
	for {
		var resp rpcResponse
		if err := conn.ReadJSON(&resp); err != nil {
			return "", fmt.Errorf("read response: %w", err)
		}
		if resp.ID != req.ID {
			// Unsolicited frame (e.g. a subscription notification); keep
			// waiting for our response until the deadline hits.
			continue
		}
		if resp.Error != nil {
			return "", fmt.Errorf("rpc error %d: %s", resp.Error.Code, resp.Error.Message)
		}
		var head string
		if err := json.Unmarshal(resp.Result, &head); err != nil {
			return "", fmt.Errorf("decode result: %w", err)
		}
		return head, nil
	}
}

func msSince(t time.Time) float64 {
	return time.Since(t).Seconds() * 1000
}
