package builder

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	EnvConfig = "SVDGEN_CONFIG"
	EnvTarget = "SVDGEN_TARGET"
)

type Env map[string]string

func Environment() Env {
	return map[string]string{
		EnvConfig: getenv(EnvConfig, ""),
		EnvTarget: getenv(EnvTarget, ""),
	}
}

func (e Env) Print(w io.Writer) error {
	for _, kv := range e.List() {
		if _, err := fmt.Fprintf(w, "set %s\n", kv); err != nil {
			return err
		}
	}
	return nil
}

func (e Env) Value(key string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return ""
}

// List returns KEY=VALUE pairs sorted by key.
func (e Env) List() []string {
	keys := maps.Keys(e)
	slices.Sort(keys)

	result := make([]string, len(keys))
	for i, key := range keys {
		result[i] = fmt.Sprintf("%s=%s", key, e[key])
	}
	return result
}

func getenv(key, _default string) (value string) {
	value = os.Getenv(key)
	if len(value) == 0 {
		value = _default
	}
	return value
}
