package httpapi

import (
	"net/http"

	"github.com/abianche/uoo-cooldown-manager/internal/models"
	"github.com/abianche/uoo-cooldown-manager/internal/store"
)

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func AddEntryHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, applied := st.AddEntry()
		writeMutation(w, snap, applied)
	}
}

func UpdateEntryHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := urlIndex(w, r, "index")
		if !ok {
			return
		}
		var entry models.Entry
		if !decodeJSON(w, r, &entry) {
			return
		}
		snap, applied := st.UpdateEntry(index, entry)
		writeMutation(w, snap, applied)
	}
}

func DeleteEntryHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := urlIndex(w, r, "index")
		if !ok {
			return
		}
		snap, applied := st.DeleteEntry(index)
		writeMutation(w, snap, applied)
	}
}

func ReorderEntriesHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		snap, applied := st.ReorderEntries(req.From, req.To)
		writeMutation(w, snap, applied)
	}
}

func AddTriggerHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := urlIndex(w, r, "index")
		if !ok {
			return
		}
		snap, applied := st.AddTrigger(index)
		writeMutation(w, snap, applied)
	}
}

func UpdateTriggerHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := urlIndex(w, r, "index")
		if !ok {
			return
		}
		trigger, ok := urlIndex(w, r, "trigger")
		if !ok {
			return
		}
		var t models.Trigger
		if !decodeJSON(w, r, &t) {
			return
		}
		snap, applied := st.UpdateTrigger(index, trigger, t)
		writeMutation(w, snap, applied)
	}
}

func DeleteTriggerHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := urlIndex(w, r, "index")
		if !ok {
			return
		}
		trigger, ok := urlIndex(w, r, "trigger")
		if !ok {
			return
		}
		snap, applied := st.DeleteTrigger(index, trigger)
		writeMutation(w, snap, applied)
	}
}

func UpdateSettingsHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.SettingsPatch
		if !decodeJSON(w, r, &patch) {
			return
		}
		snap, applied := st.UpdateGeneralSettings(patch)
		writeMutation(w, snap, applied)
	}
}
