package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"softphonix/internal/config"
	"softphonix/internal/logstore"
	"softphonix/internal/relay"
	"softphonix/internal/twilio"
	"softphonix/pkg/logger"
)

const maxMediaSize = 5 << 20 // 5MB, vendor MMS limit

var allowedMediaTypes = map[string]bool{
	"image/jpeg": true, "image/png": true, "image/gif": true, "image/webp": true,
	"video/mp4": true, "video/avi": true, "video/mov": true, "video/wmv": true,
	"audio/mp3": true, "audio/wav": true, "audio/ogg": true, "audio/m4a": true,
	"application/pdf": true, "text/plain": true, "application/msword": true,
}

type MessagesHandler struct {
	Relay    *relay.Relay
	Twilio   twilio.Client
	Cfg      *config.Config
	MediaDir string
}

type SendSMSRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

// SendSMS godoc
//
// @Summary      Send an SMS
// @Tags         Messages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        message body SendSMSRequest true "Message"
// @Success      200 {object} map[string]any
// @Router       /api/send-sms [post]
func (h *MessagesHandler) SendSMS(w http.ResponseWriter, r *http.Request) {
	var req SendSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.To == "" || req.Body == "" {
		http.Error(w, "to and body are required", http.StatusBadRequest)
		return
	}

	if h.Twilio == nil {
		http.Error(w, "telephony service not configured", http.StatusServiceUnavailable)
		return
	}

	from := req.From
	if from == "" {
		from = h.Cfg.Twilio.PhoneNumber
	}

	msg, err := h.Twilio.SendMessage(req.To, from, req.Body, nil)
	if err != nil {
		logger.Errorf("❌ send sms: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Relay.RecordOutboundMessage(logstore.KindSMS, logstore.Entry{
		ID:     msg.SID,
		From:   from,
		To:     req.To,
		Body:   req.Body,
		Status: msg.Status,
	})

	writeJSON(w, map[string]any{
		"success": true,
		"sid":     msg.SID,
		"status":  msg.Status,
	})
}

// SendMMS accepts a multipart form with a "media" file plus to/body/from
// fields, stores the file locally and hands the vendor a public URL to it.
func (h *MessagesHandler) SendMMS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMediaSize); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	to := r.FormValue("to")
	body := r.FormValue("body")
	from := r.FormValue("from")
	if from == "" {
		from = h.Cfg.Twilio.PhoneNumber
	}

	if to == "" {
		http.Error(w, "to and media file are required", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		http.Error(w, "to and media file are required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mediaType := header.Header.Get("Content-Type")
	if !allowedMediaTypes[mediaType] {
		http.Error(w, "unsupported media type", http.StatusBadRequest)
		return
	}

	if h.Twilio == nil {
		http.Error(w, "telephony service not configured", http.StatusServiceUnavailable)
		return
	}

	fileName := fmt.Sprintf("mms_%d_%s_%s",
		time.Now().UnixMilli(), uuid.NewString()[:8], filepath.Base(header.Filename))

	if err := h.saveMedia(fileName, file); err != nil {
		logger.Errorf("❌ save media: %v", err)
		http.Error(w, "failed to store media", http.StatusInternalServerError)
		return
	}

	mediaURL := h.Cfg.Twilio.PublicURL + "/api/media/" + fileName

	msg, err := h.Twilio.SendMessage(to, from, body, []string{mediaURL})
	if err != nil {
		logger.Errorf("❌ send mms: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Relay.RecordOutboundMessage(logstore.KindMMS, logstore.Entry{
		ID:        msg.SID,
		From:      from,
		To:        to,
		Body:      body,
		MediaURL:  mediaURL,
		MediaType: mediaType,
		FileName:  header.Filename,
		Status:    msg.Status,
	})

	writeJSON(w, map[string]any{
		"success":  true,
		"sid":      msg.SID,
		"status":   msg.Status,
		"mediaUrl": mediaURL,
	})
}

func (h *MessagesHandler) saveMedia(name string, src io.Reader) error {
	if err := os.MkdirAll(h.MediaDir, 0o755); err != nil {
		return err
	}
	dst, err := os.Create(filepath.Join(h.MediaDir, name))
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src)
	return err
}

// ServeMedia serves stored MMS attachments back to the vendor and the UI.
func (h *MessagesHandler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(chi.URLParam(r, "filename"))
	path := filepath.Join(h.MediaDir, name)

	if _, err := os.Stat(path); err != nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, path)
}
