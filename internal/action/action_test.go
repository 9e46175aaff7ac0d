package action_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narwhalmedia/requestbot/internal/action"
	"github.com/narwhalmedia/requestbot/internal/overseerr"
)

func TestToken(t *testing.T) {
	assert.Equal(t, "req|movie|438631", action.Request{MediaType: overseerr.MediaTypeMovie, MediaID: 438631}.Token())
	assert.Equal(t, "rec|tv|1399", action.Recommend{MediaType: overseerr.MediaTypeTV, MediaID: 1399}.Token())
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    action.Action
		wantErr error
	}{
		{
			name:  "request",
			token: "req|movie|123",
			want:  action.Request{MediaType: overseerr.MediaTypeMovie, MediaID: 123},
		},
		{
			name:  "recommend",
			token: "rec|tv|42",
			want:  action.Recommend{MediaType: overseerr.MediaTypeTV, MediaID: 42},
		},
		{
			name:    "request with bad id keeps its kind",
			token:   "req|movie|notanumber",
			want:    action.Request{MediaType: overseerr.MediaTypeMovie},
			wantErr: action.ErrInvalidID,
		},
		{
			name:    "recommend with bad id keeps its kind",
			token:   "rec|tv|",
			want:    action.Recommend{MediaType: overseerr.MediaTypeTV},
			wantErr: action.ErrInvalidID,
		},
		{
			name:    "unknown kind",
			token:   "del|movie|1",
			wantErr: action.ErrUnknownAction,
		},
		{
			name:    "too few parts",
			token:   "req|movie",
			wantErr: action.ErrUnknownAction,
		},
		{
			name:    "empty",
			token:   "",
			wantErr: action.ErrUnknownAction,
		},
		{
			name:    "oversized",
			token:   "req|movie|" + strings.Repeat("1", 80),
			wantErr: action.ErrUnknownAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := action.Parse(tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	in := action.Recommend{MediaType: overseerr.MediaTypeMovie, MediaID: 550}
	out, err := action.Parse(in.Token())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
