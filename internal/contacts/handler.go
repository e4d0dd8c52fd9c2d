package contacts

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"softphonix/pkg/logger"
)

type Handler struct {
	Store *Store
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Store.List())
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var c Contact
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if c.LastName == "" || c.Phone == "" {
		http.Error(w, "lastName and phone are required", http.StatusBadRequest)
		return
	}

	added, err := h.Store.Add(c)
	if err != nil {
		logger.Errorf("❌ contact add: %v", err)
		http.Error(w, "failed to save contact", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "contact": added})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, ok, err := h.Store.Remove(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "failed to delete contact", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "contact not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "contact": removed})
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Clear(); err != nil {
		http.Error(w, "failed to clear contacts", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "all contacts removed"})
}

// Import accepts either a bare JSON array of contacts or an object with an
// "employees" array, the two shapes the original address book exports used.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var batch []Contact
	if err := json.Unmarshal(raw, &batch); err != nil {
		var wrapped struct {
			Employees []Contact `json:"employees"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.Employees == nil {
			http.Error(w, "unsupported file format", http.StatusBadRequest)
			return
		}
		batch = wrapped.Employees
	}

	imported, err := h.Store.Import(batch)
	if err != nil {
		logger.Errorf("❌ contact import: %v", err)
		http.Error(w, "failed to import contacts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":  true,
		"imported": imported,
		"total":    len(h.Store.List()),
	})
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	contacts := h.Store.List()

	if r.URL.Query().Get("format") == "vcard" {
		var b strings.Builder
		for i, c := range contacts {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "BEGIN:VCARD\nVERSION:3.0\nFN:%s\nN:%s;%s;;;\nTEL:%s\nORG:%s\nTITLE:%s\nEMAIL:%s\nEND:VCARD",
				c.FullName, c.LastName, c.FirstName, c.Phone, c.Organization, c.Title, c.Email)
		}
		w.Header().Set("Content-Type", "text/vcard")
		w.Header().Set("Content-Disposition", "attachment; filename=contacts.vcf")
		w.Write([]byte(b.String()))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename=contacts.json")
	json.NewEncoder(w).Encode(contacts)
}
