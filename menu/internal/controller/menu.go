package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
	inHttp "github.com/Alturino/nebula/internal/http"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/menu/pkg/catalog"
)

type MenuController struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

func AttachMenuController(mux *mux.Router, catalog *catalog.Catalog) {
	controller := MenuController{catalog: catalog, now: time.Now}

	router := mux.PathPrefix("/menu").Subrouter()
	router.HandleFunc("", controller.GetMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/categories", controller.GetCategories).Methods(http.MethodGet)
	router.HandleFunc("/happy-hour", controller.GetHappyHour).Methods(http.MethodGet)
	router.HandleFunc("/{menuItemId}", controller.FindMenuItemById).Methods(http.MethodGet)
}

func (ctrl MenuController) GetMenuItems(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "MenuController GetMenuItems")
	defer span.End()

	category := r.URL.Query().Get("category")
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "MenuController GetMenuItems").
		Str(constants.KEY_CATEGORY, category).
		Str(constants.KEY_PROCESS, "get menu items").
		Logger()

	logger.Trace().Msg("get menu items")
	items := ctrl.catalog.ByCategory(category)
	logger.Trace().Int("count", len(items)).Msg("got menu items")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "menu items found",
		"data": map[string]interface{}{
			"menu_items": items,
		},
	})
}

func (ctrl MenuController) GetCategories(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "MenuController GetCategories")
	defer span.End()

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "categories found",
		"data": map[string]interface{}{
			"categories": append([]string{catalog.AllCategories}, ctrl.catalog.Categories()...),
		},
	})
}

func (ctrl MenuController) GetHappyHour(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "MenuController GetHappyHour")
	defer span.End()

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "happy hour found",
		"data": map[string]interface{}{
			"happy_hour": catalog.HappyHourAt(ctrl.now()),
		},
	})
}

func (ctrl MenuController) FindMenuItemById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "MenuController FindMenuItemById")
	defer span.End()

	id := mux.Vars(r)["menuItemId"]
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "MenuController FindMenuItemById").
		Str(constants.KEY_MENU_ITEM_ID, id).
		Str(constants.KEY_PROCESS, "finding menu item").
		Logger()

	logger.Trace().Msg("finding menu item")
	item, err := ctrl.catalog.Find(id)
	if err != nil {
		err = fmt.Errorf("failed finding menu item with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteErrorResponse(c, w, err)
		return
	}
	logger.Trace().Msg("found menu item")

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "menu item found",
		"data": map[string]interface{}{
			"menu_item": item,
		},
	})
}
