package prompt

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/cec/internal/errors"
	"github.com/thoreinstein/cec/internal/platform"
)

func TestSelectPlatform(t *testing.T) {
	t.Parallel()

	descs := platform.Default().List()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"empty picks first", "\n", "smartlead", nil},
		{"number", "3\n", "apollo", nil},
		{"key", "lemlist\n", "lemlist", nil},
		{"no trailing newline", "2", "instantly", nil},
		{"out of range", "9\n", "", ErrInvalidSelection},
		{"zero", "0\n", "", ErrInvalidSelection},
		{"garbage", "abc\n", "", ErrInvalidSelection},
		{"eof", "", "", ErrSelectionCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			s := NewSelectorWithIO(strings.NewReader(tt.input), &out)

			got, err := s.SelectPlatform(descs)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Key)
			assert.Contains(t, out.String(), "[5] lemlist")
		})
	}
}

func TestSelectPlatform_Empty(t *testing.T) {
	t.Parallel()

	s := NewSelectorWithIO(strings.NewReader("1\n"), &bytes.Buffer{})
	_, err := s.SelectPlatform(nil)
	assert.True(t, errors.Is(err, ErrNoPlatforms))
}

func TestSelectPlatform_SharedReader(t *testing.T) {
	t.Parallel()

	br := bufio.NewReader(strings.NewReader("2\nls\n"))
	s := NewSelectorWithIO(br, &bytes.Buffer{})

	_, err := s.SelectPlatform(platform.Default().List())
	require.NoError(t, err)

	rest, _ := br.ReadString('\n')
	assert.Equal(t, "ls\n", rest, "input after the answer must stay readable")
}

func TestLineConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    bool
		wantErr error
	}{
		{"y\n", true, nil},
		{"YES\n", true, nil},
		{"n\n", false, nil},
		{"\n", false, nil},
		{"", false, ErrSelectionCancelled},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		confirm := LineConfirm(bufio.NewReader(strings.NewReader(tt.input)), &out)

		got, err := confirm("Delete campaign 7?")
		if tt.wantErr != nil {
			assert.True(t, errors.Is(err, tt.wantErr), "input %q: got %v", tt.input, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Equal(t, "Delete campaign 7? [y/N]: ", out.String())
	}
}
