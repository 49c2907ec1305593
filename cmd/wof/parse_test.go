package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/work-order-flow/internal/categorize"
	"github.com/Veraticus/work-order-flow/internal/correct"
	"github.com/Veraticus/work-order-flow/internal/testutil"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	var out bytes.Buffer
	err := parseFields(&out, testutil.SampleFieldResponse, "scans/12345.pdf", time.Date(2024, 5, 16, 12, 0, 0, 0, time.UTC), nil)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "12345")
	assert.Contains(t, got, "BROOKFIELD HOMES")
	assert.Contains(t, got, "325 DL")
	assert.Contains(t, got, "TRI-AXLE")
}

func TestParseFields_Corrected(t *testing.T) {
	response := strings.NewReplacer(
		"06. Company: AE3 Excavating", "06. Company: AES EXCAVATING CORP",
		"04. Month: MAY", "04. Month: Sept",
	).Replace(testutil.SampleFieldResponse)

	var out bytes.Buffer
	err := parseFields(&out, response, "scans/12345.pdf", time.Now(), correct.Default())
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "AE3 Excavating (AES EXCAVATING CORP)")
	assert.Contains(t, got, "SEPTEMBER")
}

func TestParseFields_NoFields(t *testing.T) {
	err := parseFields(&bytes.Buffer{}, "the scan was unreadable", "stdin", time.Now(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no numbered fields")
}

func TestParseCategories(t *testing.T) {
	profile, err := categorize.BuiltinRegistry().Lookup("ae3")
	require.NoError(t, err)

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, parseCategories(&out, testutil.SampleAE3Response, profile, true))
		assert.Equal(t, "Service: Loading Fill To Lots\nBlocks/Lots/Units: Lot 67, Lot 68\n\n"+
			"Service: Miscellaneous(Digging A Trench)\nBlocks/Lots/Units: Not specified\n", out.String())
	})

	t.Run("rendered", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, parseCategories(&out, testutil.SampleAE3Response, profile, false))
		assert.Contains(t, out.String(), "Loading Fill To Lots")
		assert.Contains(t, out.String(), "SUBSTITUTED")
		assert.Contains(t, out.String(), "CATCH_ALL")
	})
}

func TestParseCategoriesCmd_Stdin(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := parseCategoriesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(testutil.SampleAeonResponse))
	cmd.SetArgs([]string{"--profile", "aeon", "--text"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Service: Settlement Repairs1")
}

func TestParseCategoriesCmd_UnknownProfile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := parseCategoriesCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs([]string{"--profile", "nope"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, categorize.ErrUnknownProfile)
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response.txt")
	require.NoError(t, os.WriteFile(path, []byte("01. WO NO.: 7"), 0o600))

	cmd := parseFieldsCmd()
	cmd.SetIn(strings.NewReader("from stdin"))

	text, name, err := readInput(cmd, []string{path})
	require.NoError(t, err)
	assert.Equal(t, "01. WO NO.: 7", text)
	assert.Equal(t, path, name)

	text, name, err = readInput(cmd, []string{"-"})
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)
	assert.Equal(t, "stdin", name)

	_, _, err = readInput(cmd, []string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}
