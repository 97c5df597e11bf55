package scenes

import (
	"log"      // For logging messages
	"net/http" // For HTTP method constants

	"github.com/gorilla/mux"
)

// logRequests logs every scene request before it is handled.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[Scene] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// RegisterSceneRoutes registers all scene-related HTTP and WebSocket routes on r.
// gorilla/mux answers 405 Method Not Allowed for known paths with the wrong method.
func RegisterSceneRoutes(r *mux.Router, handler *SceneHandler) {
	api := r.PathPrefix("/api/v1/scenes").Subrouter()
	api.Use(logRequests)

	api.HandleFunc("", handler.CreateScene).Methods(http.MethodPost)
	api.HandleFunc("", handler.ListScenes).Methods(http.MethodGet)
	api.HandleFunc("/{id}", handler.GetScene).Methods(http.MethodGet)
	api.HandleFunc("/{id}", handler.DeleteScene).Methods(http.MethodDelete)

	// Host scene graph
	api.HandleFunc("/{id}/objects", handler.AddObject).Methods(http.MethodPost)
	api.HandleFunc("/{id}/objects/{name}", handler.RemoveObject).Methods(http.MethodDelete)
	api.HandleFunc("/{id}/objects/{name}/rename", handler.RenameObject).Methods(http.MethodPost)
	api.HandleFunc("/{id}/selection", handler.SetSelection).Methods(http.MethodPut)
	api.HandleFunc("/{id}/frame", handler.SetSceneFrame).Methods(http.MethodPut)
	api.HandleFunc("/{id}/render-pre", handler.RenderPre).Methods(http.MethodPost)

	// The three ways to change the active camera
	api.HandleFunc("/{id}/camera/select", handler.SelectCamera).Methods(http.MethodPost)
	api.HandleFunc("/{id}/camera/native", handler.SetNativeCamera).Methods(http.MethodPost)
	api.HandleFunc("/{id}/camera/enum", handler.SetCameraEnum).Methods(http.MethodPost)

	// Frame link of the active camera
	api.HandleFunc("/{id}/camera/frame", handler.SetCameraFrame).Methods(http.MethodPut)
	api.HandleFunc("/{id}/camera/frame/capture", handler.CaptureFrame).Methods(http.MethodPost)
	api.HandleFunc("/{id}/camera/frame/jump", handler.JumpToFrame).Methods(http.MethodPost)

	// Light assignments of the active camera
	api.HandleFunc("/{id}/lights/toggle", handler.ToggleLight).Methods(http.MethodPost)
	api.HandleFunc("/{id}/lights/assign-selected", handler.AssignSelected).Methods(http.MethodPost)
	api.HandleFunc("/{id}/lights/clear", handler.ClearLights).Methods(http.MethodPost)

	r.HandleFunc("/ws/scenes/{id}", func(w http.ResponseWriter, req *http.Request) {
		log.Printf("[Scene] WebSocket %s", req.URL.String())
		handler.ServeWS(w, req)
	}).Methods(http.MethodGet)
}
