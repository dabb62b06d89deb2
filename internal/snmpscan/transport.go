package snmpscan

import "github.com/gosnmp/gosnmp"

// snmpTransport is the minimal surface the probe engine needs from an
// SNMP session. It exists so tests can substitute a fake transport for
// *gosnmp.GoSNMP without a real network, the same role gosnmp.Handler
// plays in the library's own test suite.
type snmpTransport interface {
	Connect() error
	Get(oids []string) (*gosnmp.SnmpPacket, error)
	Close() error
}

// gosnmpTransport adapts *gosnmp.GoSNMP to snmpTransport; gosnmp closes
// the underlying connection via its Conn field rather than a Close
// method of its own.
type gosnmpTransport struct {
	*gosnmp.GoSNMP
}

func (t gosnmpTransport) Close() error {
	if t.GoSNMP.Conn == nil {
		return nil
	}
	return t.GoSNMP.Conn.Close()
}
