package router

import (
	"net/http"
	"strings"

	"catalog-editor/app/controller"
)

type Controllers struct {
	Lookup     *controller.LookupController
	Editor     *controller.EditorController
	Submission *controller.SubmissionController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Lookups for the product and place dropdowns
	mux.HandleFunc("/admin/catalog/lookups", controllers.Lookup.GetLookups)

	// Volume extraction preview
	mux.HandleFunc("/admin/catalog/volume", controllers.Lookup.ExtractVolume)

	// Submission journal
	mux.HandleFunc("/admin/catalog/submissions", controllers.Submission.ListSubmissions)

	// Open a create session
	mux.HandleFunc("/admin/catalog/drafts", controllers.Editor.OpenCreate)

	// Open an edit session (must be registered next to the generic /:id route)
	mux.HandleFunc("/admin/catalog/drafts/edit", controllers.Editor.OpenEdit)

	// Draft session routes
	mux.HandleFunc("/admin/catalog/drafts/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/catalog/drafts/"), "/")
		parts := strings.Split(path, "/")

		switch {
		// GET/DELETE /admin/catalog/drafts/:id
		case len(parts) == 1:
			if r.Method == http.MethodGet {
				controllers.Editor.GetDraft(w, r)
				return
			}
			if r.Method == http.MethodDelete {
				controllers.Editor.CancelDraft(w, r)
				return
			}

		// /admin/catalog/drafts/:id/{products,fields,groups,image,submit}
		case len(parts) == 2:
			switch {
			case parts[1] == "products" && r.Method == http.MethodPut:
				controllers.Editor.SetProducts(w, r)
				return
			case parts[1] == "fields" && r.Method == http.MethodPut:
				controllers.Editor.UpdateFields(w, r)
				return
			case parts[1] == "groups" && r.Method == http.MethodPost:
				controllers.Editor.AddGroup(w, r)
				return
			case parts[1] == "image":
				controllers.Editor.UploadImage(w, r)
				return
			case parts[1] == "submit":
				controllers.Editor.Submit(w, r)
				return
			case parts[1] != "products" && parts[1] != "fields" && parts[1] != "groups":
				http.Error(w, "Not found", http.StatusNotFound)
				return
			}

		// PUT /admin/catalog/drafts/:id/groups/:i
		case len(parts) == 3 && parts[1] == "groups":
			if r.Method == http.MethodPut {
				controllers.Editor.SetVolume(w, r)
				return
			}

		// POST /admin/catalog/drafts/:id/groups/:i/entries
		case len(parts) == 4 && parts[1] == "groups" && parts[3] == "entries":
			if r.Method == http.MethodPost {
				controllers.Editor.AddEntry(w, r)
				return
			}

		// PUT/DELETE /admin/catalog/drafts/:id/groups/:i/entries/:j
		case len(parts) == 5 && parts[1] == "groups" && parts[3] == "entries":
			if r.Method == http.MethodPut {
				controllers.Editor.UpdateEntry(w, r)
				return
			}
			if r.Method == http.MethodDelete {
				controllers.Editor.RemoveEntry(w, r)
				return
			}

		default:
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		// Method not allowed
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
}
