package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestReorderMenuItemsRejectsWholeBatchOnUnknownID(t *testing.T) {
	db, mock := newMockDB(t)
	cafeID := uuid.New()
	r := newMenuRouter(db, cafeID)

	categoryID := uuid.New()
	knownID := uuid.New()
	ghostID := uuid.New()

	// One id outside the cafe's category rejects the batch; no partial
	// reordering survives the rollback.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "menu_items" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "menu_items" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	body := fmt.Sprintf(`{"categoryId":%q,"items":[{"id":%q,"order":1},{"id":%q,"order":2}]}`,
		categoryID, knownID, ghostID)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/admin/menu/items/reorder", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Menu item not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}
