package snmpscan

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"
	"go.uber.org/zap"
)

// defaultCommunity is used when the caller supplies neither a community
// string nor an SNMPv3 security level.
const defaultCommunity = "public"

// buildSession constructs a *gosnmp.GoSNMP ready to Connect() against
// peer. It never mutates creds and never shares the
// returned value across callers.
func buildSession(peer string, creds Credentials, timeout time.Duration, logger *zap.Logger) (*gosnmp.GoSNMP, error) {
	g := &gosnmp.GoSNMP{
		Target:  peer,
		Port:    161,
		Timeout: timeout,
		Retries: 0,
	}

	if !creds.isV3() {
		g.Version = gosnmp.Version1
		g.Community = creds.Community
		if g.Community == "" {
			g.Community = defaultCommunity
		}
		return g, nil
	}

	g.Version = gosnmp.Version3
	g.SecurityModel = gosnmp.UserSecurityModel

	var msgFlags gosnmp.SnmpV3MsgFlags
	switch creds.SecLevel {
	case secLevelNoAuthNoPriv:
		msgFlags = gosnmp.NoAuthNoPriv
	case secLevelAuthNoPriv:
		msgFlags = gosnmp.AuthNoPriv
	case secLevelAuthPriv:
		msgFlags = gosnmp.AuthPriv
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadSecLevel, creds.SecLevel)
	}
	g.MsgFlags = msgFlags

	if creds.SecName == "" {
		return nil, ErrMissingSecName
	}

	if msgFlags == gosnmp.AuthNoPriv && creds.AuthPassword == "" {
		return nil, fmt.Errorf("%w: authPassword required for authNoPriv", ErrMissingSecret)
	}
	if msgFlags == gosnmp.AuthPriv && (creds.AuthPassword == "" || creds.PrivPassword == "") {
		return nil, fmt.Errorf("%w: authPassword and privPassword required for authPriv", ErrMissingSecret)
	}

	usm := &gosnmp.UsmSecurityParameters{
		UserName: creds.SecName,
	}

	if msgFlags != gosnmp.NoAuthNoPriv {
		authProto, err := resolveAuthProtocol(creds.AuthProtocol)
		if err != nil {
			return nil, err
		}
		usm.AuthenticationProtocol = authProto
		usm.AuthenticationPassphrase = creds.AuthPassword

		if msgFlags == gosnmp.AuthPriv {
			privProto, err := resolvePrivProtocol(creds.PrivProtocol)
			if err != nil {
				return nil, err
			}
			usm.PrivacyProtocol = privProto
			usm.PrivacyPassphrase = creds.PrivPassword
		}
	}

	g.SecurityParameters = usm

	if err := usm.InitSecurityKeys(); err != nil {
		logger.Warn("USM key derivation failed",
			zap.String("peer", peer),
			zap.String("secName", creds.SecName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrKeyDerivationFailed, err)
	}

	return g, nil
}

// resolveAuthProtocol maps a credential string to a gosnmp auth protocol
// constant, defaulting to MD5 when empty.
func resolveAuthProtocol(proto string) (gosnmp.SnmpV3AuthProtocol, error) {
	switch strings.ToUpper(proto) {
	case "":
		return gosnmp.MD5, nil
	case "MD5":
		return gosnmp.MD5, nil
	case "SHA", "SHA1":
		return gosnmp.SHA, nil
	case "SHA256":
		return gosnmp.SHA256, nil
	case "SHA384":
		return gosnmp.SHA384, nil
	case "SHA512":
		return gosnmp.SHA512, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadAuthProto, proto)
	}
}

// resolvePrivProtocol maps a credential string to a gosnmp privacy
// protocol constant, defaulting to DES when empty.
func resolvePrivProtocol(proto string) (gosnmp.SnmpV3PrivProtocol, error) {
	switch strings.ToUpper(proto) {
	case "":
		return gosnmp.DES, nil
	case "DES":
		return gosnmp.DES, nil
	case "AES", "AES128":
		return gosnmp.AES, nil
	case "AES192":
		return gosnmp.AES192, nil
	case "AES256":
		return gosnmp.AES256, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadPrivProto, proto)
	}
}
