package server

import (
	"fmt"
	"strings"

	"github.com/dawctl/dawctl/internal/automation"
)

// Argument extraction helpers. JSON transports decode all numbers as
// float64, so the int accessors accept both.

func stringArg(args map[string]interface{}, key, defaultVal string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intArg(args map[string]interface{}, key string, defaultVal int) int {
	if v, ok := args[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return defaultVal
}

func floatArg(args map[string]interface{}, key string, defaultVal float64) float64 {
	if v, ok := args[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
	}
	return defaultVal
}

func boolArg(args map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := args[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

func requireString(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", automation.Validation("missing required parameter %q", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", automation.Validation("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func requireInt(args map[string]interface{}, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, automation.Validation("missing required parameter %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, automation.Validation("parameter %q must be a number", key)
}

func requireFloat(args map[string]interface{}, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, automation.Validation("missing required parameter %q", key)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, automation.Validation("parameter %q must be a number", key)
}

// requireCoord extracts a required non-negative coordinate.
func requireCoord(args map[string]interface{}, key string) (int, error) {
	n, err := requireInt(args, key)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, automation.Validation("parameter %q must be >= 0, got %d", key, n)
	}
	return n, nil
}

// parseKeyCombo splits "ctrl+shift+s" into its keys.
func parseKeyCombo(combo string) ([]string, error) {
	parts := strings.Split(combo, "+")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, automation.Validation("invalid key combo %q", combo)
		}
		keys = append(keys, strings.ToLower(p))
	}
	if len(keys) == 0 {
		return nil, automation.Validation("invalid key combo %q", combo)
	}
	return keys, nil
}
