package snmpscan

import (
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/gosnmp/gosnmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/catalog"
	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/config"
	"github.com/kosta-hiveradar/HR-IoT-UPS-NUT/internal/iprange"
)

// newTestScanner builds a Scanner wired to responders, a map from peer
// address to that host's canned GET responses. A peer absent from
// responders never answers (every GET returns NoSuchObject). Like
// dialGoSNMP, the fake dial runs buildSession first, so a credential
// validation failure aborts the host before any GET.
func newTestScanner(t *testing.T, cfg config.ScanConfig, cat []catalog.Entry, responders map[string]map[string]string) *Scanner {
	t.Helper()
	logger := zaptest.NewLogger(t)
	s := NewScanner(logger, cfg, cat)
	s.dial = func(peer string, creds Credentials, timeout time.Duration, logger *zap.Logger) (snmpTransport, error) {
		if _, err := buildSession(peer, creds, timeout, logger); err != nil {
			return nil, err
		}
		answers, ok := responders[peer]
		if !ok {
			return &fakeTransport{}, nil
		}
		ft := &fakeTransport{responses: map[string]gosnmp.SnmpPDU{}}
		for oid, val := range answers {
			ft.responses[oid] = stringPDU(oid, val)
		}
		return ft, nil
	}
	return s
}

func TestScanS1V2cSingleHostSysOIDMatch(t *testing.T) {
	cat := []catalog.Entry{{MIB: "ietf", SysOID: ".1.3.6.1.4.1.1.1"}}
	s := newTestScanner(t, config.DefaultScanConfig(), cat, map[string]map[string]string{
		"10.0.0.1": {sysObjectID: ".1.3.6.1.4.1.1.1"},
	})

	results, err := s.Scan([]iprange.Range{{Start: "10.0.0.1", End: "10.0.0.1"}}, time.Second, Credentials{Community: "public"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	d := results[0]
	if d.Peer != "10.0.0.1" || d.MIB != "ietf" || d.Desc != "" {
		t.Fatalf("got %+v", d)
	}
	community, ok := d.Options.Get("community")
	if !ok || community != "public" {
		t.Fatalf("community option = %q, %v", community, ok)
	}
}

func TestScanS2V2cPhase2Fallback(t *testing.T) {
	cat := []catalog.Entry{{MIB: "ietf", ProbeOID: ".1.3.6.1.2.1.1.5.0"}}
	s := newTestScanner(t, config.DefaultScanConfig(), cat, map[string]map[string]string{
		"10.0.0.1": {".1.3.6.1.2.1.1.5.0": "ACME UPS"},
	})

	results, err := s.Scan([]iprange.Range{{Start: "10.0.0.1", End: "10.0.0.1"}}, time.Second, Credentials{Community: "public"})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 1 || results[0].Desc != "ACME UPS" {
		t.Fatalf("got %+v", results)
	}
}

func TestScanS3V3AuthPriv(t *testing.T) {
	cat := []catalog.Entry{{MIB: "ietf", SysOID: ".1.3.6.1.4.1.1.1"}}
	s := newTestScanner(t, config.DefaultScanConfig(), cat, map[string]map[string]string{
		"10.0.0.1": {sysObjectID: ".1.3.6.1.4.1.1.1"},
	})

	creds := Credentials{
		SecLevel: "authPriv", SecName: "u",
		AuthProtocol: "SHA", PrivProtocol: "AES",
		AuthPassword: "password1", PrivPassword: "password2",
	}
	results, err := s.Scan([]iprange.Range{{Start: "10.0.0.1", End: "10.0.0.1"}}, time.Second, creds)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	opts := results[0].Options
	if v, _ := opts.Get("community"); v != "" {
		t.Fatalf("unexpected community option on a v3 descriptor: %q", v)
	}
	for _, key := range []string{"snmp_version", "secLevel", "secName", "authPassword", "privPassword", "authProtocol", "privProtocol"} {
		if _, ok := opts.Get(key); !ok {
			t.Fatalf("missing expected v3 option %q", key)
		}
	}
}

func TestScanS4V3MissingPassword(t *testing.T) {
	cat := []catalog.Entry{{MIB: "ietf", SysOID: ".1.3.6.1.4.1.1.1"}}
	s := newTestScanner(t, config.DefaultScanConfig(), cat, map[string]map[string]string{
		"10.0.0.1": {sysObjectID: ".1.3.6.1.4.1.1.1"},
	})

	creds := Credentials{SecLevel: "authNoPriv", SecName: "u"}
	results, err := s.Scan([]iprange.Range{{Start: "10.0.0.1", End: "10.0.0.1"}}, time.Second, creds)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("got %+v, want empty result list", results)
	}
}

func TestScanS5RangeWithConcurrencyCap(t *testing.T) {
	cat := []catalog.Entry{{MIB: "ietf", SysOID: ".1.3.6.1.4.1.1.1"}}
	responders := map[string]map[string]string{}
	for i := 1; i <= 64; i += 2 {
		peer := fmt.Sprintf("10.0.0.%d", i)
		responders[peer] = map[string]string{sysObjectID: ".1.3.6.1.4.1.1.1"}
	}

	cfg := config.DefaultScanConfig()
	cfg.GlobalConcurrency = 8
	cfg.SNMPConcurrency = 8
	s := newTestScanner(t, cfg, cat, responders)

	results, err := s.Scan([]iprange.Range{{Start: "10.0.0.1", End: "10.0.0.64"}}, 50*time.Millisecond, Credentials{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(results) != 32 {
		t.Fatalf("len(results) = %d, want 32", len(results))
	}
}

func TestScanS6MultiMIBTie(t *testing.T) {
	cat := []catalog.Entry{
		{MIB: "A", SysOID: ".1.3.6.1.4.1.9.9.9"},
		{MIB: "B", SysOID: ".1.3.6.1.4.1.9.9.9"},
	}
	s := newTestScanner(t, config.DefaultScanConfig(), cat, map[string]map[string]string{
		"10.0.0.1": {sysObjectID: ".1.3.6.1.4.1.9.9.9"},
	})

	results, err := s.Scan([]iprange.Range{{Start: "10.0.0.1", End: "10.0.0.1"}}, time.Second, Credentials{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].MIB < results[j].MIB })
	if len(results) != 2 || results[0].MIB != "A" || results[1].MIB != "B" {
		t.Fatalf("got %+v", results)
	}
}
