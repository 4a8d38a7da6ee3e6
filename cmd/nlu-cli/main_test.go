package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supportbot/nlu-go/internal/model"
	"github.com/supportbot/nlu-go/internal/nlu"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeLines(t *testing.T, out string) []map[string]interface{} {
	t.Helper()
	var lines []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		var v map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &v), "line %q", line)
		lines = append(lines, v)
	}
	return lines
}

func TestParseArgs(t *testing.T) {
	out, err := run(t, "", "parse", "لطفا قیمت سیب چنده", "قیمت دلار")
	require.NoError(t, err)

	lines := decodeLines(t, out)
	require.Len(t, lines, 2)

	var first model.ParseResponse
	require.NoError(t, json.Unmarshal([]byte(strings.Split(out, "\n")[0]), &first))
	assert.True(t, first.OK)
	assert.Equal(t, nlu.Result{Intent: nlu.IntentPrice, ItemName: "سیب"}, first.ParsedJSON)

	assert.Equal(t, map[string]interface{}{
		"intent": "get_market_price",
		"asset":  "دلار",
	}, lines[1]["parsed_json"])
	// 波斯文不做 HTML 转义
	assert.Contains(t, out, "سیب")
}

func TestParseStdin(t *testing.T) {
	out, err := run(t, "موجودی سیب\r\n\nسلام\n", "parse")
	require.NoError(t, err)

	lines := decodeLines(t, out)
	require.Len(t, lines, 3)
	assert.Equal(t, "get_inventory", lines[0]["parsed_json"].(map[string]interface{})["intent"])
	assert.Equal(t, "No message provided", lines[1]["error"])
	assert.Equal(t, "chat", lines[2]["parsed_json"].(map[string]interface{})["intent"])
}

func TestParseCustomKeywords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("price:\n  - بها\n"), 0o644))

	out, err := run(t, "", "--keywords", path, "parse", "بها موز")
	require.NoError(t, err)

	lines := decodeLines(t, out)
	assert.Equal(t, map[string]interface{}{
		"intent":    "get_price",
		"item_name": "موز",
	}, lines[0]["parsed_json"])
}

func TestParseMissingKeywordsFile(t *testing.T) {
	_, err := run(t, "", "--keywords", filepath.Join(t.TempDir(), "nope.yaml"), "parse", "سلام")
	assert.Error(t, err)
}

func TestTables(t *testing.T) {
	out, err := run(t, "", "tables")
	require.NoError(t, err)

	var tables nlu.Tables
	require.NoError(t, yaml.Unmarshal([]byte(out), &tables))
	assert.Equal(t, nlu.DefaultTables().Fallback, tables.Fallback)
	assert.Equal(t, nlu.DefaultTables().Chat, tables.Chat)
	assert.NotEmpty(t, tables.Market)
}
