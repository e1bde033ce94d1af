package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type renderResponse struct {
	Rendered *string `json:"rendered"`
}

// DecodeRenderResponse reads the markup out of a server-render endpoint
// body of the form {"rendered": "..."}.
func DecodeRenderResponse(r io.Reader) (string, error) {
	var resp renderResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return "", fmt.Errorf("failed to decode render response: %w", err)
	}
	if resp.Rendered == nil {
		return "", errors.New("render response has no rendered field")
	}
	return *resp.Rendered, nil
}
