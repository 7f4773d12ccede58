package collect

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// fmtBytes renders a byte quantity in IEC units ("16 GiB").
func fmtBytes(n uint64) string {
	return humanize.IBytes(n)
}

// orNA substitutes "N/A" for an empty or whitespace-only value.
func orNA(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "N/A"
	}
	return s
}

// decodeJSONList decodes PowerShell ConvertTo-Json output, which emits a
// bare object for a single result and an array for several.
func decodeJSONList[T any](data string) ([]T, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, fmt.Errorf("empty JSON input")
	}
	if strings.HasPrefix(data, "[") {
		var list []T
		if err := json.Unmarshal([]byte(data), &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	var single T
	if err := json.Unmarshal([]byte(data), &single); err != nil {
		return nil, err
	}
	return []T{single}, nil
}
