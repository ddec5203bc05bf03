package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got, err := confirm(bufio.NewReader(strings.NewReader(tc.input)), &out, "Promote?")
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
		assert.Contains(t, out.String(), "Promote? [y/N]")
	}
}

func TestValidPassword(t *testing.T) {
	_, err := validPassword("short")
	assert.Error(t, err)

	pw, err := validPassword("longenough")
	require.NoError(t, err)
	assert.Equal(t, "longenough", pw)
}
