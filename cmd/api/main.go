package main

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger"

	"softphonix/internal/auth"
	"softphonix/internal/config"
	"softphonix/internal/contacts"
	"softphonix/internal/db"
	"softphonix/internal/handlers"
	"softphonix/internal/logstore"
	"softphonix/internal/relay"
	"softphonix/internal/twilio"
	"softphonix/internal/webhooks"
	"softphonix/internal/ws"
	"softphonix/pkg/logger"

	_ "softphonix/docs"
)

// @title Softphonix API
// @version 1.0
// @description Browser softphone backend: call/SMS/MMS relay over Twilio
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	defer logger.Sync()

	pool, err := db.New(cfg.DB.DSN)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	// Stores + relay
	hub := ws.NewHub()
	callLog := logstore.New(filepath.Join(cfg.Data.Dir, "call_log.json"), cfg.Data.CallCap, cfg.Data.DedupeBySID)
	smsLog := logstore.New(filepath.Join(cfg.Data.Dir, "sms_log.json"), cfg.Data.SMSCap, cfg.Data.DedupeBySID)
	mmsLog := logstore.New(filepath.Join(cfg.Data.Dir, "mms_log.json"), cfg.Data.MMSCap, cfg.Data.DedupeBySID)

	rel := relay.New(callLog, smsLog, mmsLog, hub)
	rel.SetIdentity(cfg.Twilio.ClientIdentity)

	var twilioClient twilio.Client
	if cfg.TwilioConfigured() {
		twilioClient = twilio.NewRestClient(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken)
	} else {
		logger.Warnf("⚠️ Twilio credentials missing, calls and messaging disabled")
	}

	// Handlers
	authHandler := &auth.Handler{
		DB:     pool,
		Secret: cfg.JWT.Secret,
		TTL:    time.Minute * time.Duration(cfg.JWT.TTLMinutes),
	}
	logsHandler := &handlers.LogsHandler{Relay: rel}
	callsHandler := &handlers.CallsHandler{Relay: rel, Twilio: twilioClient, Cfg: cfg}
	messagesHandler := &handlers.MessagesHandler{
		Relay:    rel,
		Twilio:   twilioClient,
		Cfg:      cfg,
		MediaDir: filepath.Join(cfg.Data.Dir, "messages"),
	}
	tokenHandler := &handlers.TokenHandler{Relay: rel, Cfg: cfg}
	statusHandler := &handlers.StatusHandler{Relay: rel, Cfg: cfg}
	contactsHandler := &contacts.Handler{
		Store: contacts.NewStore(filepath.Join(cfg.Data.Dir, "contacts.json")),
	}
	hooks := &webhooks.Handler{Relay: rel, Cfg: cfg}

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(100, 15*time.Minute))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	// Public routes
	r.Post("/api/auth/login", authHandler.Login)

	// Vendor webhooks: unauthenticated by contract, must always answer 200
	r.Post("/api/call-status", hooks.CallStatus)
	r.Post("/twiml/voice", hooks.Voice)
	r.Post("/twiml/outgoing", hooks.Outgoing)
	r.Post("/handle_calls", hooks.HandleCalls)
	r.Post("/handle_sms", hooks.HandleSMS)
	r.Post("/handle_mms", hooks.HandleMMS)
	r.Post("/message-status", hooks.MessageStatus)
	r.Get("/api/media/{filename}", messagesHandler.ServeMedia)

	// Realtime push
	r.Get("/ws", ws.Handler(hub, func() any { return rel.ActiveCalls() }, cfg.JWT.Secret))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(cfg.JWT.Secret))

		r.Get("/api/status", statusHandler.Status)
		r.Get("/api/config", statusHandler.ClientConfig)

		r.Post("/api/token", tokenHandler.Token)
		r.Post("/api/register-identity", tokenHandler.RegisterIdentity)

		r.Post("/api/call", callsHandler.PlaceCall)
		r.Post("/api/hangup", callsHandler.Hangup)
		r.Post("/api/transfer", callsHandler.Transfer)

		r.Get("/api/call-logs", logsHandler.GetCallLogs)
		r.Get("/api/call-stats", logsHandler.GetCallStats)
		r.Delete("/api/call-logs", logsHandler.DeleteCallLogs)
		r.Get("/api/sms-logs", logsHandler.GetSMSLogs)
		r.Delete("/api/sms-logs", logsHandler.DeleteSMSLogs)
		r.Get("/api/mms-logs", logsHandler.GetMMSLogs)
		r.Delete("/api/mms-logs", logsHandler.DeleteMMSLogs)

		r.Post("/api/send-sms", messagesHandler.SendSMS)
		r.Post("/api/send-mms", messagesHandler.SendMMS)

		r.Get("/api/contacts", contactsHandler.List)
		r.Post("/api/contacts", contactsHandler.Add)
		r.Delete("/api/contacts", contactsHandler.Clear)
		r.Delete("/api/contacts/{id}", contactsHandler.Delete)
		r.Post("/api/contacts/import", contactsHandler.Import)
		r.Get("/api/contacts/export", contactsHandler.Export)
	})

	// Swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Static UI
	r.Handle("/*", http.FileServer(http.Dir("public")))

	logger.Infof("🚀 softphonix listening on %s", cfg.HTTP.Addr)
	if err := http.ListenAndServe(cfg.HTTP.Addr, r); err != nil {
		panic(err)
	}
}
