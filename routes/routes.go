package routes

import (
	"net/http"

	"wayfare/auth"
	"wayfare/export"
	"wayfare/geocode"
	"wayfare/itinerary"
	"wayfare/middleware"
	"wayfare/ratelim"
	"wayfare/routesock"
	"wayfare/routing"
	"wayfare/tripcover"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/coverpic/*filepath", http.Dir("static/coverpic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
}

func AddItineraryRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/itineraries", middleware.Authenticate(itinerary.GetItineraries))
	router.POST("/api/itineraries", rl.Limit(middleware.Authenticate(itinerary.CreateItinerary)))
	router.GET("/api/itineraries/:id", middleware.Authenticate(itinerary.GetItinerary))
	router.PUT("/api/itineraries/:id", middleware.Authenticate(itinerary.UpdateItinerary))
	router.DELETE("/api/itineraries/:id", middleware.Authenticate(itinerary.DeleteItinerary))

	router.GET("/api/itineraries/:id/days", middleware.Authenticate(itinerary.GetDays))
	router.GET("/api/itineraries/:id/effective", middleware.Authenticate(itinerary.GetEffective))

	router.POST("/api/itineraries/:id/days/:date/stops", middleware.Authenticate(itinerary.AddStopHandler))
	router.DELETE("/api/itineraries/:id/days/:date/stops/:index", middleware.Authenticate(itinerary.RemoveStopHandler))
	router.PATCH("/api/itineraries/:id/days/:date/stops/:index", middleware.Authenticate(itinerary.UpdateStopHandler))
	router.POST("/api/itineraries/:id/days/:date/stops/:index/move", middleware.Authenticate(itinerary.MoveStopHandler))

	router.PUT("/api/itineraries/:id/hotel", middleware.Authenticate(itinerary.SetHotelHandler))
	router.DELETE("/api/itineraries/:id/hotel", middleware.Authenticate(itinerary.ClearHotelHandler))
	router.PUT("/api/itineraries/:id/anchors", middleware.Authenticate(itinerary.SetAnchorsHandler))
	router.PUT("/api/itineraries/:id/mode", middleware.Authenticate(itinerary.SetModeHandler))
	router.PUT("/api/itineraries/:id/window", middleware.Authenticate(itinerary.SetWindowHandler))
	router.PUT("/api/itineraries/:id/active-date", middleware.Authenticate(itinerary.SetActiveDateHandler))
}

func AddGeocodeRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/geocode", rl.Limit(geocode.SearchHandler))
}

func AddRoutingRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, client *routing.Client, rc *routing.Recomputer) {
	router.GET("/api/itineraries/:id/routes", rl.Limit(middleware.Authenticate(routing.RoutesHandler(client, rc))))
	router.GET("/api/directions/transit", rl.Limit(routing.TransitDirectionsHandler(client)))
}

func AddExportRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/itineraries/:id/export/ics", middleware.Authenticate(export.ICSHandler))
	router.GET("/api/itineraries/:id/export/json", middleware.Authenticate(export.JSONHandler))
	router.GET("/api/itineraries/:id/export/pdf", middleware.Authenticate(export.PDFHandler))
	router.GET("/api/itineraries/:id/share", middleware.Authenticate(export.ShareHandler))
	router.GET("/api/itineraries/:id/share/qr", middleware.Authenticate(export.ShareQRHandler))
	router.POST("/api/import/share", rl.Limit(middleware.Authenticate(export.ImportShareHandler)))
	router.POST("/api/itineraries/:id/import/json", rl.Limit(middleware.Authenticate(export.ImportJSONHandler)))
}

func AddCoverRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/itineraries/:id/cover", rl.Limit(middleware.Authenticate(tripcover.UploadCover)))
}

func AddWebSocketRoutes(router *httprouter.Router, hub *routesock.Hub) {
	router.GET("/ws/itineraries/:id", routesock.Handler(hub))
}
