package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRenderResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{
			name: "rendered markup",
			body: `{"rendered":"<div class=\"wp-block-a\"><InnerBlocks/></div>"}`,
			want: `<div class="wp-block-a"><InnerBlocks/></div>`,
		},
		{
			name: "empty markup",
			body: `{"rendered":""}`,
			want: "",
		},
		{
			name:    "missing field",
			body:    `{"html":"<p></p>"}`,
			wantErr: "no rendered field",
		},
		{
			name:    "malformed json",
			body:    `{"rendered":`,
			wantErr: "failed to decode render response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRenderResponse(strings.NewReader(tt.body))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
