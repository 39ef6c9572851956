package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/version", h.getVersion)

	router.Route("/api/wallet", func(r chi.Router) {
		r.Get("/snapshot", h.getSnapshot)
		r.Get("/info", h.getInfo)
		r.Get("/balance", h.getBalance)
		r.Get("/addresses", h.getAddresses)
		r.Get("/transactions", h.getTransactions)
		r.Get("/settings", h.getWalletSettings)
		r.Get("/sync", h.getSyncStatus)

		r.Post("/refresh", h.refresh)
		r.Post("/rescan", h.rescan)

		r.Post("/encrypt", h.encrypt)
		r.Post("/decrypt", h.decrypt)
		r.Post("/lock", h.lock)
		r.Post("/unlock", h.unlock)
		r.Post("/addresses", h.newAddress)
		r.Get("/seed", h.getSeed)
		r.Get("/keys/{address}", h.getKeys)
		r.Post("/import", h.importKey)
		r.Get("/fee", h.getDefaultFee)
		r.Put("/options", h.setWalletOption)
	})

	router.Post("/api/send", h.send)
	router.Get("/api/send/progress", h.getSendProgress)

	router.Get("/api/addressbook", h.listAddressBook)
	router.Post("/api/addressbook", h.addAddressBookEntry)
	router.Delete("/api/addressbook/{label}", h.removeAddressBookEntry)

	router.Get("/api/settings/server", h.getServer)
	router.Put("/api/settings/server", h.setServer)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
