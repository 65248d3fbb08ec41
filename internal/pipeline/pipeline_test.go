package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketScribe/internal/collector"
	"MarketScribe/internal/config"
)

func testConfig(t *testing.T, tickers []string, format string) *config.Config {
	t.Helper()
	out := filepath.Join(t.TempDir(), "report."+format)
	content := fmt.Sprintf(`
tickers: [%s]
start_date: "2024-01-02"
end_date: "2024-06-28"
report_format: %s
output_path: %s
`, strings.Join(tickers, ", "), format, out)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	return cfg
}

func TestRun_SectionsKeepDeclaredOrder(t *testing.T) {
	cfg := testConfig(t, []string{"AAA", "BBB"}, "txt")
	pipe := New(cfg, &collector.MockFetcher{})

	rep, err := pipe.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, rep.Sections, 2)
	assert.Equal(t, "AAA", rep.Sections[0].Series.Symbol)
	assert.Equal(t, "BBB", rep.Sections[1].Series.Symbol)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Ticker: AAA")
}

func TestRun_UnknownTickerIsSkipped(t *testing.T) {
	cfg := testConfig(t, []string{"AAA", "ZZZ", "BBB"}, "txt")
	fetcher := &collector.MockFetcher{
		Errs: map[string]error{"ZZZ": fmt.Errorf("ZZZ: %w", collector.ErrSymbolNotFound)},
	}
	pipe := New(cfg, fetcher)

	rep, err := pipe.Run(context.Background())

	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, []string{"ZZZ"}, runErr.Failed)

	require.Len(t, rep.Sections, 2)
	assert.Equal(t, "AAA", rep.Sections[0].Series.Symbol)
	assert.Equal(t, "BBB", rep.Sections[1].Series.Symbol)

	// the partial report is still written
	_, statErr := os.Stat(cfg.OutputPath)
	assert.NoError(t, statErr)
}

func TestRun_AllTickersFailed(t *testing.T) {
	cfg := testConfig(t, []string{"AAA", "BBB"}, "txt")
	fetcher := &collector.MockFetcher{
		Errs: map[string]error{
			"AAA": collector.ErrEmptyData,
			"BBB": collector.ErrSymbolNotFound,
		},
	}
	pipe := New(cfg, fetcher)

	_, err := pipe.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoSections)

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "no report file when every ticker failed")
}

func TestRun_PDFOutput(t *testing.T) {
	cfg := testConfig(t, []string{"AAA"}, "pdf")
	pipe := New(cfg, &collector.MockFetcher{})

	_, err := pipe.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRun_DeterministicStatistics(t *testing.T) {
	cfg := testConfig(t, []string{"AAA", "BBB"}, "txt")
	pipe := New(cfg, &collector.MockFetcher{})

	first, err := pipe.Run(context.Background())
	require.NoError(t, err)
	second, err := pipe.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, second.Sections, len(first.Sections))
	for i := range first.Sections {
		assert.Equal(t, *first.Sections[i].Stats, *second.Sections[i].Stats)
	}
}

func TestRun_FetchesEveryConfiguredTicker(t *testing.T) {
	cfg := testConfig(t, []string{"AAA", "BBB", "CCC"}, "txt")
	fetcher := &collector.MockFetcher{}
	pipe := New(cfg, fetcher)

	_, err := pipe.Run(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AAA", "BBB", "CCC"}, fetcher.Calls())
}
