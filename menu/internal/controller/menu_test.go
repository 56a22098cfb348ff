package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nebula/menu/pkg/catalog"
	"github.com/Alturino/nebula/menu/pkg/response"
)

type menuBody struct {
	StatusCode int `json:"statusCode"`
	Data       struct {
		MenuItems  []response.MenuItem `json:"menu_items"`
		MenuItem   response.MenuItem   `json:"menu_item"`
		Categories []string            `json:"categories"`
		HappyHour  response.HappyHour  `json:"happy_hour"`
	} `json:"data"`
}

func TestMenuRoutes(t *testing.T) {
	menu := catalog.New([]response.MenuItem{
		{ID: "1", Name: "Mediterranean Bowl", Category: "bowls", Price: decimal.RequireFromString("16.99")},
		{ID: "2", Name: "Truffle Pasta", Category: "pasta", Price: decimal.RequireFromString("24.99")},
		{ID: "3", Name: "Grilled Salmon", Category: "seafood", Price: decimal.RequireFromString("28.99")},
	})
	ctrl := MenuController{
		catalog: menu,
		now:     func() time.Time { return time.Date(2026, 3, 1, 17, 30, 0, 0, time.UTC) },
	}
	router := mux.NewRouter()
	router.HandleFunc("/menu", ctrl.GetMenuItems)
	router.HandleFunc("/menu/categories", ctrl.GetCategories)
	router.HandleFunc("/menu/happy-hour", ctrl.GetHappyHour)
	router.HandleFunc("/menu/{menuItemId}", ctrl.FindMenuItemById)

	get := func(path string) (int, menuBody) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		body := menuBody{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		return w.Code, body
	}

	code, body := get("/menu")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body.Data.MenuItems, 3)

	_, body = get("/menu?category=Pasta")
	require.Len(t, body.Data.MenuItems, 1)
	assert.Equal(t, "2", body.Data.MenuItems[0].ID)

	_, body = get("/menu/categories")
	assert.Equal(t, []string{"all", "bowls", "pasta", "seafood"}, body.Data.Categories)

	_, body = get("/menu/3")
	assert.Equal(t, "Grilled Salmon", body.Data.MenuItem.Name)

	code, _ = get("/menu/99")
	assert.Equal(t, http.StatusNotFound, code)

	_, body = get("/menu/happy-hour")
	assert.True(t, body.Data.HappyHour.IsActive)
	assert.Equal(t, "1h 30m remaining", body.Data.HappyHour.TimeRemaining)
}
