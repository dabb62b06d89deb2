package snmpscan

// DeviceDescriptor is the output record for one responding host: enough
// to emit a "snmp-ups" driver configuration stanza.
type DeviceDescriptor struct {
	Transport string
	Driver    string
	Peer      string
	MIB       string
	Desc      string

	// Options carries the full set of driver configuration keys this
	// descriptor would emit, in insertion order: "mibs" and either
	// "community" or the v3 security fields, plus "desc" when present.
	Options OrderedOptions
}

// OrderedOptions is a small ordered string-to-string map: Go maps don't
// preserve iteration order, and driver config emission needs to be
// deterministic, so an ordered key→value map is used here instead.
type OrderedOptions struct {
	keys   []string
	values map[string]string
}

// NewOrderedOptions returns an empty ordered option map.
func NewOrderedOptions() OrderedOptions {
	return OrderedOptions{values: make(map[string]string)}
}

// Set appends key=value, or updates value in place if key was already set.
func (o *OrderedOptions) Set(key, value string) {
	if o.values == nil {
		o.values = make(map[string]string)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value for key and whether it was present.
func (o OrderedOptions) Get(key string) (string, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the option keys in insertion order.
func (o OrderedOptions) Keys() []string {
	return o.keys
}

func newDeviceDescriptor(peer, mib, desc string, creds Credentials) DeviceDescriptor {
	opts := NewOrderedOptions()
	opts.Set("mibs", mib)

	if creds.isV3() {
		opts.Set("snmp_version", "v3")
		if creds.SecLevel != "" {
			opts.Set("secLevel", creds.SecLevel)
		}
		if creds.SecName != "" {
			opts.Set("secName", creds.SecName)
		}
		if creds.AuthPassword != "" {
			opts.Set("authPassword", creds.AuthPassword)
		}
		if creds.PrivPassword != "" {
			opts.Set("privPassword", creds.PrivPassword)
		}
		if creds.AuthProtocol != "" {
			opts.Set("authProtocol", creds.AuthProtocol)
		}
		if creds.PrivProtocol != "" {
			opts.Set("privProtocol", creds.PrivProtocol)
		}
	} else {
		community := creds.Community
		if community == "" {
			community = defaultCommunity
		}
		opts.Set("community", community)
	}

	if desc != "" {
		opts.Set("desc", desc)
	}

	return DeviceDescriptor{
		Transport: "snmp",
		Driver:    "snmp-ups",
		Peer:      peer,
		MIB:       mib,
		Desc:      desc,
		Options:   opts,
	}
}
