package router

import (
	"log/slog"
	"net/http"

	"github.com/tendermarket/tender-lifecycle/internal/handlers"
)

func InitRoutes(tenderHandler *handlers.TenderHandler, bidHandler *handlers.BidHandler, vendorHandler *handlers.VendorHandler, sweepHandler *handlers.SweepHandler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", handlers.PingHandler(logger))

	mux.HandleFunc("GET /api/tenders", tenderHandler.GetTenders)
	mux.HandleFunc("POST /api/tenders/new", tenderHandler.CreateTender)
	mux.HandleFunc("GET /api/tenders/{tenderId}/status", tenderHandler.GetTenderStatus)
	mux.HandleFunc("POST /api/tenders/sweep", sweepHandler.TriggerSweep)

	mux.HandleFunc("POST /api/bids/new", bidHandler.CreateBid)
	mux.HandleFunc("GET /api/bids/{tenderId}/list", bidHandler.GetTenderBids)

	mux.HandleFunc("GET /api/vendors", vendorHandler.GetVendorProfiles)
	mux.HandleFunc("POST /api/vendors/new", vendorHandler.CreateVendorProfile)

	return mux
}
