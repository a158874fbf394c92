package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{input: "Uploaded", want: StatusUploaded},
		{input: "InProgress", want: StatusInProgress},
		{input: "Completed", want: StatusCompleted},
		{input: "uploaded", wantErr: true},
		{input: "", wantErr: true},
		{input: "Done", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseStatus(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStatus_CanAdvance(t *testing.T) {
	tests := []struct {
		name   string
		from   Status
		to     Status
		want   bool
	}{
		{name: "uploaded to inprogress", from: StatusUploaded, to: StatusInProgress, want: true},
		{name: "inprogress to completed", from: StatusInProgress, to: StatusCompleted, want: true},
		{name: "same status is idempotent", from: StatusCompleted, to: StatusCompleted, want: true},
		{name: "no skipping", from: StatusUploaded, to: StatusCompleted, want: false},
		{name: "no reverting", from: StatusCompleted, to: StatusInProgress, want: false},
		{name: "no reverting to initial", from: StatusInProgress, to: StatusUploaded, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.from.CanAdvance(tc.to))
		})
	}
}

func TestStatus_Gates(t *testing.T) {
	assert.True(t, StatusUploaded.AllowsDelete())
	assert.False(t, StatusInProgress.AllowsDelete())
	assert.False(t, StatusCompleted.AllowsDelete())

	assert.False(t, StatusUploaded.AllowsDownload())
	assert.False(t, StatusInProgress.AllowsDownload())
	assert.True(t, StatusCompleted.AllowsDownload())

	assert.True(t, StatusCompleted.AllowsDelivery())
	assert.False(t, StatusUploaded.AllowsDelivery())
}
