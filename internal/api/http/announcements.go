package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/eduhub/internal/announcement"
	syncx "github.com/mind-engage/eduhub/internal/sync"
)

// GET /announcements?limit=N  (newest first)
func ListAnnouncementsHandler(store announcement.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.List(r.Context(), queryInt(r, "limit", 0, 100))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GET /admin/announcements/{announcementID}
func GetAnnouncementHandler(store announcement.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := store.Get(r.Context(), chi.URLParam(r, "announcementID"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// POST /admin/announcements
func CreateAnnouncementHandler(store announcement.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a announcement.Announcement
		if !decodeJSON(w, r, &a) {
			return
		}
		a.ID = ""
		a.Normalize()
		if err := a.Validate(); err != nil {
			writeError(w, r, err)
			return
		}
		created, err := store.Create(r.Context(), a)
		if err != nil {
			writeError(w, r, err)
			return
		}
		record(r, events, syncx.AnnouncementCreated, created.ID, map[string]string{"title": created.Title})
		writeJSON(w, http.StatusCreated, created)
	}
}

// PUT /admin/announcements/{announcementID}
func UpdateAnnouncementHandler(store announcement.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var a announcement.Announcement
		if !decodeJSON(w, r, &a) {
			return
		}
		a.ID = chi.URLParam(r, "announcementID")
		a.Normalize()
		if err := a.Validate(); err != nil {
			writeError(w, r, err)
			return
		}
		updated, err := store.Update(r.Context(), a)
		if err != nil {
			writeError(w, r, err)
			return
		}
		record(r, events, syncx.AnnouncementUpdated, updated.ID, map[string]string{"title": updated.Title})
		writeJSON(w, http.StatusOK, updated)
	}
}

// DELETE /admin/announcements/{announcementID}
func DeleteAnnouncementHandler(store announcement.Store, events *syncx.EventRepo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "announcementID")
		if err := store.Delete(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		record(r, events, syncx.AnnouncementDeleted, id, nil)
		w.WriteHeader(http.StatusNoContent)
	}
}
