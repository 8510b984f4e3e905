package importer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingImporter struct {
	mu    sync.Mutex
	calls [][]app.ImportEntry
}

func (r *recordingImporter) Import(_ context.Context, entries []app.ImportEntry) (app.ImportResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, entries)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return app.ImportResult{Created: names}, nil
}

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	_, err := ParseSchedule("*/15 * * * *")
	assert.NoError(t, err)
	_, err = ParseSchedule("@every 30m")
	assert.NoError(t, err)
	_, err = ParseSchedule("every tuesday")
	assert.Error(t, err)
	_, err = ParseSchedule("0 */15 * * * *")
	assert.Error(t, err, "seconds field is not accepted")
}

func TestScheduler(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	source := filepath.Join(t.TempDir(), "zones.yaml")
	require.NoError(t, os.WriteFile(source, []byte("zones:\n  - Bastion\n  - Fort\n"), 0o600))

	t.Run("rejects invalid configuration", func(t *testing.T) {
		t.Parallel()
		_, err := NewScheduler("bogus", source, &recordingImporter{}, logger)
		assert.Error(t, err)
		_, err = NewScheduler("@hourly", "", &recordingImporter{}, logger)
		assert.Error(t, err)
	})

	t.Run("RunOnce imports the source as BOT", func(t *testing.T) {
		t.Parallel()
		imp := &recordingImporter{}
		s, err := NewScheduler("0 * * * *", source, imp, logger)
		require.NoError(t, err)

		result, err := s.RunOnce(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, result.CreatedCount())
		require.Len(t, imp.calls, 1)
		assert.Equal(t, []app.ImportEntry{
			{Name: "Bastion", Actor: app.DefaultImportActor},
			{Name: "Fort", Actor: app.DefaultImportActor},
		}, imp.calls[0])
	})

	t.Run("start and stop", func(t *testing.T) {
		t.Parallel()
		imp := &recordingImporter{}
		s, err := NewScheduler("0 * * * *", source, imp, logger)
		require.NoError(t, err)

		s.Start(context.Background())
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		s.Stop(ctx)
	})
}
