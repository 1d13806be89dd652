// Package resolver answers forward and reverse lookups from the record store,
// optionally refreshing records from the ledger first.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/dweb-live-cache/internal/model"
	"github.com/goodnatureofminers/dweb-live-cache/internal/namehash"
)

// Service resolves names and addresses against the record store.
type Service struct {
	store   RecordStore
	reader  LiveReader
	metrics Metrics
	logger  *zap.Logger
}

// New returns a Service. store, reader and metrics are required.
func New(store RecordStore, reader LiveReader, metrics Metrics, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, errors.New("record store is required")
	}
	if reader == nil {
		return nil, errors.New("live reader is required")
	}
	if metrics == nil {
		return nil, errors.New("resolver metrics is required")
	}
	return &Service{
		store:   store,
		reader:  reader,
		metrics: metrics,
		logger:  logger.Named("resolver"),
	}, nil
}

// ResolveName returns the checksummed address bound to name. With
// forceRefresh the binding is read from the ledger and cached without an
// order key before being returned.
func (s *Service) ResolveName(ctx context.Context, name string, forceRefresh bool) (address model.Binding, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveResolve("name", forceRefresh, err, started)
	}()
	return s.resolveName(ctx, name, forceRefresh)
}

// ResolveAddress returns the name claimed by address and whether the name
// resolves back to the same address.
func (s *Service) ResolveAddress(ctx context.Context, address string, forceRefresh bool) (res model.AddressResolution, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveResolve("address", forceRefresh, err, started)
	}()

	addr, err := namehash.CanonicalAddress(address)
	if err != nil {
		return model.AddressResolution{}, err
	}
	node, err := namehash.ReverseNode(addr)
	if err != nil {
		return model.AddressResolution{}, err
	}

	var name model.Binding
	if forceRefresh {
		if name, err = s.reader.ReadReverse(ctx, addr); err != nil {
			return model.AddressResolution{}, fmt.Errorf("read reverse record of %s: %w", addr.Hex(), err)
		}
		if err = s.store.SetReverse(ctx, node, model.ReverseRecord{Name: name}); err != nil {
			return model.AddressResolution{}, fmt.Errorf("cache reverse record of %s: %w", addr.Hex(), err)
		}
	} else {
		record, found, getErr := s.store.GetReverse(ctx, node)
		if getErr != nil {
			err = fmt.Errorf("get reverse record of %s: %w", addr.Hex(), getErr)
			return model.AddressResolution{}, err
		}
		if found {
			name = record.Name
		}
	}

	if !name.IsPresent() {
		return model.AddressResolution{Name: name}, nil
	}

	resolved, err := s.resolveName(ctx, name.Value, forceRefresh)
	if errors.Is(err, model.ErrInvalidName) {
		// An unusable claimed name can never be confirmed.
		s.logger.Debug("reverse record holds an invalid name",
			zap.String("address", addr.Hex()), zap.String("name", name.Value), zap.Error(err))
		return model.AddressResolution{Name: name}, nil
	}
	if err != nil {
		return model.AddressResolution{}, err
	}

	return model.AddressResolution{
		Name:      name,
		Confirmed: resolved.IsPresent() && resolved.Value == addr.Hex(),
	}, nil
}

func (s *Service) resolveName(ctx context.Context, name string, forceRefresh bool) (model.Binding, error) {
	node, err := namehash.Hash(name)
	if err != nil {
		return model.Binding{}, err
	}

	var address model.Binding
	if forceRefresh {
		if address, err = s.reader.ReadForward(ctx, name); err != nil {
			return model.Binding{}, fmt.Errorf("read forward record of %q: %w", name, err)
		}
		if err = s.store.SetForward(ctx, node, model.ForwardRecord{Address: address}); err != nil {
			return model.Binding{}, fmt.Errorf("cache forward record of %q: %w", name, err)
		}
	} else {
		record, found, err := s.store.GetForward(ctx, node)
		if err != nil {
			return model.Binding{}, fmt.Errorf("get forward record of %q: %w", name, err)
		}
		if found {
			address = record.Address
		}
	}

	if !address.IsPresent() {
		return address, nil
	}
	canonical, err := namehash.CanonicalAddress(address.Value)
	if err != nil {
		return model.Binding{}, fmt.Errorf("stored address of %q: %v", name, err)
	}
	return model.Present(canonical.Hex()), nil
}
