package raygun

import (
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// anyHost is the reserved host name under which a bare (host independent)
// API key is stored.
const anyHost = "__ANY_HOST"

// KeyMap maps host names to Raygun API keys. It is immutable once parsed.
type KeyMap struct {
	keys map[string]string
}

// ParseKeys parses an API key configuration string. A string without spaces
// is a single key used for every host. Otherwise the string is a space
// separated list of "host:key" tokens, split at the first ':'. Every token
// without a ':' is named in the returned error.
func ParseKeys(config string) (KeyMap, error) {
	if !strings.Contains(config, " ") {
		return KeyMap{keys: map[string]string{anyHost: config}}, nil
	}
	keys := map[string]string{}
	var malformed []string
	for _, token := range strings.Split(config, " ") {
		pivot := strings.IndexByte(token, ':')
		if pivot == -1 {
			malformed = append(malformed, strconv.Quote(token))
			continue
		}
		keys[token[:pivot]] = token[pivot+1:]
	}
	if len(malformed) > 0 {
		return KeyMap{}, errors.NotValidf("invalid format: %s", strings.Join(malformed, ", "))
	}
	return KeyMap{keys: keys}, nil
}

// Lookup returns the API key for host. A host independent key always wins,
// even over an entry for the host itself. The boolean is false when no key
// applies, in which case nothing should be reported.
func (m KeyMap) Lookup(host string) (string, bool) {
	if key, ok := m.keys[anyHost]; ok {
		return key, true
	}
	key, ok := m.keys[host]
	return key, ok
}
