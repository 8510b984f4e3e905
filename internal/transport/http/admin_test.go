package http

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Tocard/DiscordDofusBotLGB/internal/app"
	"github.com/Tocard/DiscordDofusBotLGB/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleImportZones(t *testing.T) {
	t.Parallel()

	t.Run("imports entries", func(t *testing.T) {
		t.Parallel()
		imp := &stubImporter{result: app.ImportResult{Created: []string{"Bastion"}, Skipped: []string{"Fort"}}}
		rec := do(newTestRouter(nil, imp, nil), http.MethodPost, "/admin/zones/import", "Tocard",
			`{"zones":[{"name":"Bastion"},{"name":"Fort","actor":"Kiwi"}]}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.JSONEq(t, `{"created":["Bastion"],"skipped":["Fort"]}`, rec.Body.String())
		assert.Equal(t, []app.ImportEntry{{Name: "Bastion"}, {Name: "Fort", Actor: "Kiwi"}}, imp.entries)
	})

	t.Run("empty result renders empty lists", func(t *testing.T) {
		t.Parallel()
		rec := do(newTestRouter(nil, &stubImporter{}, nil), http.MethodPost, "/admin/zones/import", "Tocard", `{"zones":[]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"created":[],"skipped":[]}`, rec.Body.String())
	})

	t.Run("requires admin", func(t *testing.T) {
		t.Parallel()
		imp := &stubImporter{}
		rec := do(newTestRouter(nil, imp, nil), http.MethodPost, "/admin/zones/import", "Kiwi", `{"zones":[{"name":"Bastion"}]}`)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Nil(t, imp.entries)
	})

	t.Run("storage failure aborts", func(t *testing.T) {
		t.Parallel()
		imp := &stubImporter{err: errors.Join(domain.ErrStorage, errors.New("tx aborted"))}
		rec := do(newTestRouter(nil, imp, nil), http.MethodPost, "/admin/zones/import", "Tocard", `{"zones":[{"name":"Bastion"}]}`)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, codeStorageFailure, decodeError(t, rec.Body.Bytes()).Code)
	})
}
