package transport

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
	"github.com/goodnatureofminers/dweb-live-cache/internal/namehash"
)

type historyItem struct {
	Kind             model.EventKind `json:"kind"`
	BlockNumber      uint64          `json:"blockNumber"`
	TransactionIndex uint32          `json:"transactionIndex"`
	LogIndex         uint32          `json:"logIndex"`
	Value            model.Binding   `json:"value"`
}

// HandleNameHistory lists archived AddrChanged events of a name.
// Endpoint: GET /name/{name}/history
func (c *Controller) HandleNameHistory(w http.ResponseWriter, r *http.Request) {
	node, err := namehash.Hash(mux.Vars(r)["name"])
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeHistory(w, r, node)
}

// HandleAddressHistory lists archived NameChanged events of an address.
// Endpoint: GET /address/{address}/history
func (c *Controller) HandleAddressHistory(w http.ResponseWriter, r *http.Request) {
	addr, err := namehash.CanonicalAddress(mux.Vars(r)["address"])
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	node, err := namehash.ReverseNode(addr)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	c.writeHistory(w, r, node)
}

func (c *Controller) writeHistory(w http.ResponseWriter, r *http.Request, node string) {
	events, err := c.history.NodeHistory(r.Context(), node)
	if err != nil {
		c.writeError(w, r, fmt.Errorf("history of %s: %w", node, err))
		return
	}
	items := make([]historyItem, 0, len(events))
	for _, e := range events {
		items = append(items, historyItem{
			Kind:             e.Kind,
			BlockNumber:      e.Order.BlockNumber,
			TransactionIndex: e.Order.TransactionIndex,
			LogIndex:         e.Order.LogIndex,
			Value:            e.Binding(),
		})
	}
	c.writeResult(w, items)
}
