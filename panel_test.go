package main

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadPanelSearch(t *testing.T) {
	c, err := readPanel(strings.NewReader("yes\nno\n2\nsmart tv\n"), io.Discard)
	require.NoError(t, err)
	require.Equal(t, panelChoice{option: "2", query: "smart tv", express: true, localOnly: false}, c)
}

func TestReadPanelFlashSales(t *testing.T) {
	c, err := readPanel(strings.NewReader("NO\nYes\n3\n"), io.Discard)
	require.NoError(t, err)
	require.Equal(t, "3", c.option)
	require.False(t, c.express)
	require.True(t, c.localOnly)
}

func TestReadPanelInvalid(t *testing.T) {
	_, err := readPanel(strings.NewReader("no\nno\n4\n"), io.Discard)
	require.ErrorIs(t, err, errInvalidChoice)

	_, err = readPanel(strings.NewReader("no\nno\n2\n\n"), io.Discard)
	require.Error(t, err)
}

func TestRunPanelRejectsBadChoiceBeforeScraping(t *testing.T) {
	var out strings.Builder
	err := runPanel(context.Background(), strings.NewReader("no\nno\n9\n"), &out)
	require.ErrorIs(t, err, errInvalidChoice)
	require.Contains(t, out.String(), "Enter your choice")
}
