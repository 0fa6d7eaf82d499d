package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/zeusync/geomath/internal/config"
	"github.com/zeusync/geomath/internal/core/observability/log"
	"github.com/zeusync/geomath/pkg/concurrent"
)

// Service evaluates conversion requests against the operation registry. It
// holds no mutable state and is safe for concurrent use.
type Service struct {
	ops      map[string]Operation
	names    []string
	maxBatch int
	workers  int
	logger   log.Log
}

// NewService creates a service exposing every vecmath converter.
func NewService(cfg config.ServiceConfig, logger log.Log) *Service {
	ops := defaultOperations()
	return &Service{
		ops:      ops,
		names:    operationNames(ops),
		maxBatch: cfg.MaxBatch,
		workers:  cfg.Workers,
		logger:   logger.With(log.String("component", "service")),
	}
}

// Operations returns the registered operation names in sorted order.
func (s *Service) Operations() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Convert evaluates one request. Failures are reported in Response.Error.
func (s *Service) Convert(req Request) Response {
	resp, _ := s.convert(req)
	return resp
}

// ConvertFrame decodes a Request from a raw message frame and evaluates it. An
// undecodable frame yields a Response carrying ErrInvalidArguments.
func (s *Service) ConvertFrame(data []byte) Response {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Response{Error: fmt.Errorf("%w: %v", ErrInvalidArguments, err).Error()}
	}
	return s.Convert(req)
}

func (s *Service) convert(req Request) (Response, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	resp := Response{ID: req.ID, Op: req.Op}

	result, err := s.evaluate(req)
	if err != nil {
		s.logger.Debug("Conversion failed",
			log.String("request_id", req.ID),
			log.String("op", req.Op),
			log.Error(err))
		resp.Error = err.Error()
		return resp, err
	}
	resp.Result = result
	return resp, nil
}

func (s *Service) evaluate(req Request) (json.RawMessage, error) {
	op, ok := s.ops[req.Op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Op)
	}
	value, err := op(req.Args)
	if err != nil {
		return nil, err
	}
	// Narrowing to float32 can overflow to Inf, which JSON cannot carry.
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnrepresentable, err)
	}
	return encoded, nil
}

// Batch evaluates reqs on at most workers goroutines and returns the responses
// in request order. Per-request failures are reported in each Response; the
// returned error covers only batch-level problems and cancellation.
func (s *Service) Batch(ctx context.Context, reqs []Request) ([]Response, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(reqs) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(reqs), s.maxBatch)
	}

	responses, err := concurrent.ParallelMap(ctx, reqs, s.workers, func(_ context.Context, req Request) (Response, error) {
		return s.Convert(req), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Batch evaluated", log.Int("size", len(reqs)))
	return responses, nil
}
