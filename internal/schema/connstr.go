package schema

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/ziadkadry99/pgagent/internal/config"
)

// ParseConnString normalizes a connection string into a postgres URL.
// Full URLs must use the postgres or postgresql scheme. Anything else is
// read as host[:port][/database], with the missing parts taken from
// defaults. The configured credentials are attached only when the host is
// the configured one, so they never reach a host the caller picked.
func ParseConnString(s string, defaults config.PostgresConfig) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrInvalidConnString
	}

	if strings.Contains(s, "://") {
		u, err := url.Parse(s)
		if err != nil {
			return "", ErrInvalidConnString
		}
		switch u.Scheme {
		case "postgres", "postgresql":
			return s, nil
		default:
			return "", ErrUnsupportedDatabase
		}
	}

	hostPort, database := s, defaults.Database
	if i := strings.Index(s, "/"); i >= 0 {
		hostPort, database = s[:i], s[i+1:]
		if strings.Contains(database, "/") || database == "" {
			return "", ErrInvalidConnString
		}
	}

	host, port := hostPort, strconv.Itoa(defaults.Port)
	if i := strings.LastIndex(hostPort, ":"); i >= 0 {
		host, port = hostPort[:i], hostPort[i+1:]
		if _, err := strconv.Atoi(port); err != nil {
			return "", ErrInvalidConnString
		}
	}
	if host == "" {
		host = defaults.Host
	}

	u := url.URL{
		Scheme: "postgresql",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + database,
	}
	if defaults.User != "" && strings.EqualFold(host, defaults.Host) {
		if defaults.Password != "" {
			u.User = url.UserPassword(defaults.User, defaults.Password)
		} else {
			u.User = url.User(defaults.User)
		}
	}
	return u.String(), nil
}
