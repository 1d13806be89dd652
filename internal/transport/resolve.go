package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
	"github.com/goodnatureofminers/dweb-live-cache/pkg/workerpool"
)

// HandleAddress resolves an address to its confirmed or unconfirmed name.
// Endpoint: GET /address/{address}?refresh=1
func (c *Controller) HandleAddress(w http.ResponseWriter, r *http.Request) {
	res, err := c.resolver.ResolveAddress(r.Context(), mux.Vars(r)["address"], forceRefresh(r))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeResult(w, res)
}

// HandleName resolves a name to its address.
// Endpoint: GET /name/{name}?refresh=1
func (c *Controller) HandleName(w http.ResponseWriter, r *http.Request) {
	address, err := c.resolver.ResolveName(r.Context(), mux.Vars(r)["name"], forceRefresh(r))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeResult(w, address)
}

type addressItem struct {
	Address   string         `json:"address"`
	Success   bool           `json:"success"`
	Name      *model.Binding `json:"name,omitempty"`
	Confirmed *bool          `json:"confirmed,omitempty"`
}

type nameItem struct {
	Name    string         `json:"name"`
	Success bool           `json:"success"`
	Address *model.Binding `json:"address,omitempty"`
}

// HandleAddressBatch resolves a JSON array of addresses. A failed item is
// reported as {"address":...,"success":false} without failing the request.
// Endpoint: POST /address/batch?refresh=1
func (c *Controller) HandleAddressBatch(w http.ResponseWriter, r *http.Request) {
	addresses, err := decodeBatch(w, r, "Request body must be array of ETH addresses!")
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	refresh := forceRefresh(r)

	items, err := workerpool.Map(r.Context(), c.batchConcurrency, addresses, func(ctx context.Context, address string) addressItem {
		res, err := c.resolver.ResolveAddress(ctx, address, refresh)
		if err != nil {
			c.logger.Warn("batch address failed", zap.String("address", address), zap.Error(err))
			return addressItem{Address: address}
		}
		item := addressItem{Address: address, Success: true, Name: &res.Name}
		if res.Name.IsPresent() {
			item.Confirmed = &res.Confirmed
		}
		return item
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeResult(w, items)
}

// HandleNameBatch resolves a JSON array of names.
// Endpoint: POST /name/batch?refresh=1
func (c *Controller) HandleNameBatch(w http.ResponseWriter, r *http.Request) {
	names, err := decodeBatch(w, r, "Request body must be array of domains!")
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	refresh := forceRefresh(r)

	items, err := workerpool.Map(r.Context(), c.batchConcurrency, names, func(ctx context.Context, name string) nameItem {
		address, err := c.resolver.ResolveName(ctx, name, refresh)
		if err != nil {
			c.logger.Warn("batch name failed", zap.String("name", name), zap.Error(err))
			return nameItem{Name: name}
		}
		return nameItem{Name: name, Success: true, Address: &address}
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeResult(w, items)
}

func decodeBatch(w http.ResponseWriter, r *http.Request, message string) ([]string, error) {
	var items []string
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&items); err != nil || items == nil {
		return nil, NewUserError(message)
	}
	if len(items) > maxBatchSize {
		return nil, NewUserError(fmt.Sprintf("Batch must not exceed %d items", maxBatchSize))
	}
	return items, nil
}
