package snmpscan

// Credentials is the credential bundle input to a scan: either a v1/v2c
// community string, or a full SNMPv3 USM security profile. Exactly one
// path drives a given probe: Community set (or SecLevel unset) means
// v1/v2c; SecLevel set means v3.
type Credentials struct {
	// Community, when non-empty, selects SNMPv1 with this community
	// string. An empty Community with an empty SecLevel also selects
	// SNMPv1, using the literal default community "public".
	Community string

	// SecLevel selects SNMPv3 when non-empty: "noAuthNoPriv",
	// "authNoPriv", or "authPriv".
	SecLevel string
	SecName  string

	// AuthProtocol is one of "MD5", "SHA1"/"SHA", "SHA256", "SHA384",
	// "SHA512"; defaults to MD5 when empty.
	AuthProtocol string
	AuthPassword string

	// PrivProtocol is one of "DES", "AES128"/"AES", "AES192", "AES256";
	// defaults to DES when empty.
	PrivProtocol string
	PrivPassword string
}

// clone returns a copy of the bundle. The scan engine calls this once
// per dispatched worker so that no worker shares a Credentials value
// with another or with the caller's original; the peer address is
// passed to the worker separately.
func (c Credentials) clone() Credentials {
	return c
}

const (
	secLevelNoAuthNoPriv = "noAuthNoPriv"
	secLevelAuthNoPriv   = "authNoPriv"
	secLevelAuthPriv     = "authPriv"
)

func (c Credentials) isV3() bool {
	return c.Community == "" && c.SecLevel != ""
}
