package orders

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/odyssey-erp/odyssey-shop/internal/shared"
)

// normalizeItems turns the items field into the stored text. A JSON string is
// stored unquoted; any other value is stored as compacted JSON. Null, empty
// strings, empty lists and empty objects are rejected.
func normalizeItems(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", fmt.Errorf("%w: items required", shared.ErrValidation)
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return "", fmt.Errorf("%w: items: %v", shared.ErrValidation, err)
		}
		if text == "" {
			return "", fmt.Errorf("%w: items required", shared.ErrValidation)
		}
		return text, nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return "", fmt.Errorf("%w: items: %v", shared.ErrValidation, err)
	}
	switch text := buf.String(); text {
	case "[]", "{}", "false", "0":
		return "", fmt.Errorf("%w: items required", shared.ErrValidation)
	default:
		return text, nil
	}
}
