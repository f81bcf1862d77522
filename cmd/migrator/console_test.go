package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitConsoleAsk(t *testing.T) {
	out := &bytes.Buffer{}
	con := newConsole(strings.NewReader("  https://example.com/accepted?code=abc  \n"), out)

	answer, err := con.ask("> ")
	require.NoError(t, err, "shouldn't return error")
	assert.Equal(t, "https://example.com/accepted?code=abc", answer, "should trim answer")
	assert.Equal(t, "> ", out.String(), "should print question")

	_, err = con.ask("> ")
	assert.ErrorIs(t, err, errQuit, "should quit on closed input")
}

func TestUnitConsoleAskCount(t *testing.T) {
	tests := map[string]struct {
		input   string
		quit    bool
		want    int
		wantErr error
	}{
		"number":               {input: "3\n", want: 3},
		"number above max":     {input: "30\n", want: 10},
		"all":                  {input: "ALL\n", want: 10},
		"retry invalid answer": {input: "zero\n-1\n2\n", want: 2},
		"quit":                 {input: "q\n", quit: true, wantErr: errQuit},
		"quit not allowed":     {input: "q\n4\n", want: 4},
		"closed input":         {input: "", wantErr: errQuit},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			con := newConsole(strings.NewReader(tt.input), &bytes.Buffer{})

			got, err := con.askCount("How many? ", 10, tt.quit)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr, "should return correct error")
				return
			}
			require.NoError(t, err, "shouldn't return error")
			assert.Equal(t, tt.want, got, "should return count")
		})
	}
}
