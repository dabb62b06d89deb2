// Package catalog implements the MIB catalog collaborator: a static,
// read-only table of (mib, sysoid, probe_oid) triples consulted by the
// probe engine. The core only reads it; this package owns the data.
package catalog

// Entry describes one candidate MIB. At least one of SysOID/ProbeOID is
// non-empty. SysOID, when present, is matched byte-for-byte against a
// device's sysObjectID during phase 1. ProbeOID, when present, is GET'd
// either to confirm a phase-1 sysOID match or during the phase-2
// brute-force fallback.
type Entry struct {
	MIB      string
	SysOID   string
	ProbeOID string
}

// Default returns the built-in table of UPS vendor MIBs recognized by
// the snmp-ups driver family. It is a representative subset, not an
// exhaustive vendor catalog.
func Default() []Entry {
	return []Entry{
		{MIB: "apcc", SysOID: ".1.3.6.1.4.1.318.1.3.2", ProbeOID: ".1.3.6.1.4.1.318.1.1.1.1.1.1.0"},
		{MIB: "mge", SysOID: ".1.3.6.1.4.1.705.1", ProbeOID: ".1.3.6.1.4.1.705.1.1.1.0"},
		{MIB: "eaton", SysOID: ".1.3.6.1.4.1.534.1", ProbeOID: ".1.3.6.1.4.1.534.1.1.2.0"},
		{MIB: "cyberpower", SysOID: ".1.3.6.1.4.1.3808.1.1", ProbeOID: ".1.3.6.1.4.1.3808.1.1.1.1.1.1.0"},
		{MIB: "tripplite", SysOID: ".1.3.6.1.4.1.850.1", ProbeOID: ".1.3.6.1.4.1.850.1.1.1.1.0"},
		{MIB: "liebert", SysOID: ".1.3.6.1.4.1.476.1.42", ProbeOID: ".1.3.6.1.4.1.476.1.42.3.4.1.1.0"},
		{MIB: "delta_ups", SysOID: ".1.3.6.1.4.1.2254.2", ProbeOID: ".1.3.6.1.4.1.2254.2.4.1.0"},
		{MIB: "socomec", SysOID: ".1.3.6.1.4.1.4555.1.1.1", ProbeOID: ".1.3.6.1.4.1.4555.1.1.1.1.1.1.0"},
		// IETF UPS-MIB fallback: no reliable sysOID prefix, so this entry
		// only ever participates via phase-2 brute probing.
		{MIB: "ietf", SysOID: "", ProbeOID: ".1.3.6.1.2.1.33.1.1.2.0"},
	}
}
