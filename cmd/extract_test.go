package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/osmpoi/internal/config"
)

func TestExtractCmd_RequiresInputArg(t *testing.T) {
	t.Chdir(t.TempDir())
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"extract"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg = &config.Config{Store: config.StoreConfig{Driver: "bogus"}}

	_, err := openStore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}

func TestOpenStore_SQLiteDefault(t *testing.T) {
	cfg = &config.Config{Store: config.StoreConfig{
		Path: filepath.Join(t.TempDir(), "out.db"),
	}}

	st, err := openStore(context.Background())
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestRunExtraction_MissingInput(t *testing.T) {
	cfg = &config.Config{Extract: config.ExtractConfig{Procs: 1}}

	_, _, err := runExtraction(context.Background(), filepath.Join(t.TempDir(), "missing.osm.pbf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.osm.pbf")
}
