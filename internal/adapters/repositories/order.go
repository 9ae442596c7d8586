package repositories

import (
	"fmt"
	"strconv"
	"strings"
)

// Routes are stored as comma separated input indices, e.g. "0,3,1,2".
func encodeOrder(order []int) string {
	parts := make([]string, len(order))
	for i, v := range order {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func decodeOrder(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []int{}, nil
	}

	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("decode route: item %d: %w", i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}
