// Package application wires the probe pipeline:
// compile config -> fetch -> content-type guard -> parse -> evaluate -> format.
package application

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/yifangd/check-json/internal/domain"
	"github.com/yifangd/check-json/internal/domain/probe"
	"github.com/yifangd/check-json/internal/domain/report"
)

// ProbeService runs a single synchronous check against one URL.
type ProbeService struct {
	fetcher domain.Fetcher
	parser  domain.DocumentParser
	log     *zap.SugaredLogger
}

// NewProbeService creates a ProbeService. A nil logger disables logging.
func NewProbeService(fetcher domain.Fetcher, parser domain.DocumentParser, log *zap.SugaredLogger) *ProbeService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ProbeService{fetcher: fetcher, parser: parser, log: log}
}

// Run executes the probe and always returns a report; failures at any stage
// become the report's status and message rather than an error, so the caller
// only has to print the line and exit with the mapped code.
func (s *ProbeService) Run(ctx context.Context, cfg domain.ProbeConfig) *domain.CheckReport {
	cfg.ApplyDefaults()

	compiled, err := cfg.Compile()
	if err != nil {
		s.log.Debugw("configuration rejected", "error", err)
		return errorReport(err)
	}
	s.log.Debugw("configuration compiled",
		"url", cfg.URL, "attributes", len(compiled.Specs), "timeout", cfg.Timeout)

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	resp, err := s.fetcher.Fetch(fetchCtx, domain.FetchRequest{
		URL:                cfg.URL,
		Body:               cfg.Metadata,
		ContentType:        cfg.ContentType,
		InsecureSkipVerify: cfg.IgnoreSSL,
	})
	if err != nil {
		s.log.Debugw("fetch failed", "url", cfg.URL, "error", err)
		return errorReport(err)
	}
	s.log.Debugw("fetched", "status", resp.StatusLine, "bytes", len(resp.Body),
		"content_type", resp.ContentType)

	if !strings.Contains(resp.ContentType, cfg.ContentType) {
		return errorReport(domain.NewContentTypeError(resp.ContentType, cfg.ContentType))
	}

	root, err := s.parser.Parse(resp.Body)
	if err != nil {
		s.log.Debugw("parse failed", "error", err)
		return errorReport(err)
	}

	results := probe.EvaluateAll(root, compiled.Specs)
	status := probe.Aggregate(results)
	message, perfdata := report.Format(root, results, compiled.Perf, compiled.Output)

	s.log.Debugw("evaluated", "status", status.String(), "results", len(results))

	return &domain.CheckReport{
		Status:   status,
		Message:  message,
		Perfdata: perfdata,
		Results:  results,
	}
}

// errorReport maps a pipeline failure to a report via the error taxonomy:
// fetch failures are CRITICAL, everything else UNKNOWN.
func errorReport(err error) *domain.CheckReport {
	status := domain.StatusUnknown
	if ce, ok := err.(*domain.CheckError); ok {
		status = ce.Status()
	}
	return &domain.CheckReport{Status: status, Message: err.Error()}
}
