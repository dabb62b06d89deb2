// Package snmpscan implements the parallel SNMP discovery engine: range
// expansion, per-host session negotiation (v1/v2c and v3 USM), the
// two-phase MIB identification protocol, and bounded-concurrency
// dispatch across a worker pool.
package snmpscan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/catalog"
	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/config"
	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/iprange"
)

var libInitOnce sync.Once

// Scanner is the public, one-shot entry point a CLI or other caller
// uses to run a scan. It is safe to reuse across
// sequential scans but a Scanner must not be used for two scans at
// once; the Scan Context it builds is not thread-safe across
// concurrent invocations.
type Scanner struct {
	logger  *zap.Logger
	cfg     config.ScanConfig
	catalog []catalog.Entry
	limiter *rate.Limiter

	// dial opens a session for peer. Defaults to a real gosnmp
	// connection; tests substitute a fake transport here so the whole
	// dispatch pipeline can run without a network.
	dial func(peer string, creds Credentials, timeout time.Duration, logger *zap.Logger) (snmpTransport, error)
}

// NewScanner builds a Scanner. catalogEntries is normally
// catalog.Default(); a caller may substitute its own table for testing
// or to add vendor entries without touching this package.
func NewScanner(logger *zap.Logger, cfg config.ScanConfig, catalogEntries []catalog.Entry) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.GetsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.GetsPerSecond), 1)
	}

	return &Scanner{
		logger:  logger,
		cfg:     cfg,
		catalog: catalogEntries,
		limiter: limiter,
		dial:    dialGoSNMP,
	}
}

// dialGoSNMP builds a session and opens it, wrapping the
// result behind the snmpTransport interface.
func dialGoSNMP(peer string, creds Credentials, timeout time.Duration, logger *zap.Logger) (snmpTransport, error) {
	g, err := buildSession(peer, creds, timeout, logger)
	if err != nil {
		return nil, err
	}
	if err := g.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionOpenFailed, err)
	}
	return gosnmpTransport{GoSNMP: g}, nil
}

// Scan iterates ranges, fans probes out across a bounded worker pool,
// and returns every device descriptor the responding hosts produced.
// timeout bounds each individual SNMP GET; a non-positive value falls
// back to the Scanner's configured default.
func (s *Scanner) Scan(ranges []iprange.Range, timeout time.Duration, creds Credentials) ([]DeviceDescriptor, error) {
	runID := uuid.New().String()
	logger := s.logger.With(zap.String("scan_run_id", runID))

	libInitOnce.Do(func() {
		// Idempotent, process-wide SNMP library init:
		// gosnmp needs no global setup, but every session we build uses
		// numeric OID form throughout (gosnmp.SnmpPDU.Name is always
		// dotted-numeric), satisfying "debug traces use numeric form"
		// without further configuration.
		logger.Debug("snmp transport initialized")
	})

	if timeout <= 0 {
		timeout = s.cfg.ScanTimeout
	}

	it, err := iprange.NewIterator(ranges)
	if err != nil {
		return nil, fmt.Errorf("snmpscan: %w", err)
	}

	logger.Info("scan starting", zap.Int("global_concurrency", s.cfg.GlobalConcurrency), zap.Int("snmp_concurrency", s.cfg.SNMPConcurrency))

	// A fresh pair of tickets per call, sized from this call's config.
	// A "global" cap across all scan types only needs to hold within one
	// call, since the init flag above already assumes scans are
	// serialized at the public-API level; a per-call pool gives the same
	// effective bound without a hidden process-wide singleton surviving
	// between unrelated Scan calls.
	tickets := newTicketPool(s.cfg.GlobalConcurrency, s.cfg.SNMPConcurrency)
	sink := newResultSink()

	d := &dispatcher{
		iter:    it,
		tickets: tickets,
		sink:    sink,
		creds:   creds,
		timeout: timeout,
		catalog: s.catalog,
		limiter: s.limiter,
		logger:  logger,
		dial:    s.dial,
	}
	d.run()

	results := sink.drain()
	logger.Info("scan complete", zap.Int("devices_found", len(results)))
	return results, nil
}

// dispatcher is the Worker Pool / Range Driver: it owns
// the iterator, the ticket pool, and the WaitGroup that tracks in-flight
// workers for one Scan call.
type dispatcher struct {
	iter    *iprange.Iterator
	tickets *ticketPool
	sink    *resultSink
	creds   Credentials
	timeout time.Duration
	catalog []catalog.Entry
	limiter *rate.Limiter
	logger  *zap.Logger
	dial    func(peer string, creds Credentials, timeout time.Duration, logger *zap.Logger) (snmpTransport, error)

	wg sync.WaitGroup
}

func (d *dispatcher) run() {
	first := true
	for {
		peer, ok := d.iter.Next()
		if !ok {
			break
		}

		d.tickets.acquire(first)
		first = false

		d.wg.Add(1)
		go d.worker(peer, d.creds.clone())
	}

	d.wg.Wait()
}

// worker is one unit of work: build a session, run the probe engine,
// close the session, release tickets. Per-host failures are local and
// never abort the scan.
func (d *dispatcher) worker(peer string, creds Credentials) {
	defer d.wg.Done()
	defer d.tickets.release()

	if d.limiter != nil {
		if err := d.limiter.Wait(context.Background()); err != nil {
			d.logger.Debug("rate limiter wait failed", zap.String("peer", peer), zap.Error(err))
		}
	}

	transport, err := d.dial(peer, creds, d.timeout, d.logger)
	if err != nil {
		d.logger.Debug("session open failed", zap.String("peer", peer), zap.Error(err))
		return
	}
	defer transport.Close()

	p := &prober{
		session: transport,
		catalog: d.catalog,
		creds:   creds,
		peer:    peer,
		sink:    d.sink,
		logger:  d.logger,
	}
	p.run()
}
