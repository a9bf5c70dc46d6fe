package rpc

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"github.com/MonacoProtocol/crank/ledger"
	"github.com/MonacoProtocol/crank/logging"
	"github.com/MonacoProtocol/crank/types"
)

const namedLogger = "ledger.rpc"

// ErrTxNotConfirmed signals that the node did not confirm a transaction
// before the confirmation deadline.
var ErrTxNotConfirmed = errors.New("transaction not confirmed")

// Client is a JSON-RPC 2.0 client onto a ledger node, implementing the
// full ledger interface boundary. It is safe for concurrent use by
// multiple goroutines.
type Client struct {
	ledger.Config
	log *logging.Logger

	address string
	client  *http.Client
}

var _ ledger.Client = (*Client)(nil)

// NewClient returns a new client for the node address in the config.
func NewClient(log *logging.Logger, config ledger.Config) (*Client, error) {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	parsed, err := url.Parse(config.NodeAddress)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid node address %q", config.NodeAddress)
	}
	if parsed.Scheme == "" {
		parsed.Scheme = "http"
	}

	return &Client{
		Config:  config,
		log:     log,
		address: parsed.String(),
		client: &http.Client{
			Timeout: config.RequestTimeout.Get(),
		},
	}, nil
}

// ReloadConf update the internal configuration of the client
func (c *Client) ReloadConf(cfg ledger.Config) {
	c.log.Info("reloading configuration")
	if c.log.GetLevel() != cfg.Level.Get() {
		c.log.Info("updating log level",
			logging.String("old", c.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		c.log.SetLevel(cfg.Level.Get())
	}
	c.Config = cfg
}

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if e.Data != "" {
		return fmt.Sprintf("rpc error %d: %s (%s)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// call issues one JSON-RPC request and decodes its result into result,
// which may be nil when the caller only cares about success.
func (c *Client) call(ctx context.Context, method string, params, result interface{}) error {
	id := uuid.NewV4().String()
	payload, err := json.Marshal(request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s request", method)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address, bytes.NewReader(payload))
	if err != nil {
		return errors.Wrapf(err, "failed to build %s request", method)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s call failed", method)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s response", method)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("%s returned HTTP %d", method, resp.StatusCode)
	}

	var decoded response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return errors.Wrapf(err, "failed to decode %s response", method)
	}
	if decoded.Error != nil {
		return errors.Wrapf(decoded.Error, "%s rejected", method)
	}
	if decoded.ID != id {
		return errors.Errorf("%s response id mismatch", method)
	}
	if result != nil {
		if err := json.Unmarshal(decoded.Result, result); err != nil {
			return errors.Wrapf(err, "failed to decode %s result", method)
		}
	}
	return nil
}

type listOrdersParams struct {
	Status string  `json:"status"`
	Market *string `json:"market,omitempty"`
}

// ListOrders returns all orders with the given status, optionally
// restricted to one market.
func (c *Client) ListOrders(ctx context.Context, status types.OrderStatus, market *types.Address) ([]types.OrderRecord, error) {
	params := listOrdersParams{Status: status.String()}
	if market != nil {
		s := market.String()
		params.Market = &s
	}
	var out []types.OrderRecord
	if err := c.call(ctx, "getOrders", params, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type addressParams struct {
	Address string `json:"address"`
}

// Order fetches a single order account.
func (c *Client) Order(ctx context.Context, addr types.Address) (*types.Order, error) {
	var out types.Order
	if err := c.call(ctx, "getOrder", addressParams{Address: addr.String()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type listMarketsParams struct {
	Status string `json:"status"`
}

func (c *Client) ListMarkets(ctx context.Context, status types.MarketStatus) ([]types.MarketRecord, error) {
	var out []types.MarketRecord
	if err := c.call(ctx, "getMarkets", listMarketsParams{Status: status.String()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Market(ctx context.Context, addr types.Address) (*types.Market, error) {
	var out types.Market
	if err := c.call(ctx, "getMarket", addressParams{Address: addr.String()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MatchingPool(ctx context.Context, addr types.Address) (*types.MatchingPool, error) {
	var out types.MatchingPool
	if err := c.call(ctx, "getMatchingPool", addressParams{Address: addr.String()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type blockRefResult struct {
	BlockRef types.BlockRef `json:"blockRef"`
}

func (c *Client) LatestBlockRef(ctx context.Context) (types.BlockRef, error) {
	var out blockRefResult
	if err := c.call(ctx, "getLatestBlockRef", nil, &out); err != nil {
		return "", err
	}
	return out.BlockRef, nil
}

type sendTransactionParams struct {
	Transaction string `json:"transaction"`
}

type sendTransactionResult struct {
	TxID types.TxID `json:"txId"`
}

func (c *Client) SubmitTransaction(ctx context.Context, raw []byte) (types.TxID, error) {
	params := sendTransactionParams{
		Transaction: base64.StdEncoding.EncodeToString(raw),
	}
	var out sendTransactionResult
	if err := c.call(ctx, "sendTransaction", params, &out); err != nil {
		return "", err
	}
	return out.TxID, nil
}

type confirmTransactionParams struct {
	TxID types.TxID `json:"txId"`
}

type confirmTransactionResult struct {
	Confirmed bool `json:"confirmed"`
}

func (c *Client) ConfirmTransaction(ctx context.Context, id types.TxID) error {
	var out confirmTransactionResult
	if err := c.call(ctx, "confirmTransaction", confirmTransactionParams{TxID: id}, &out); err != nil {
		return err
	}
	if !out.Confirmed {
		return errors.Wrapf(ErrTxNotConfirmed, "%s", id)
	}
	return nil
}
